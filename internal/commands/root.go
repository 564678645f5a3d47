package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ledgerdesk/ledgerdesk/internal/activity"
	"github.com/ledgerdesk/ledgerdesk/internal/api"
	"github.com/ledgerdesk/ledgerdesk/internal/buildinfo"
	"github.com/ledgerdesk/ledgerdesk/internal/config"
	"github.com/ledgerdesk/ledgerdesk/internal/logging"
)

// app carries state shared by subcommands once the root has loaded config.
type app struct {
	v       *viper.Viper
	cfgPath string
	cfg     *config.Config
	now     func() time.Time
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New(), now: time.Now}

	rootCmd := &cobra.Command{
		Use:     "ledgerdesk",
		Short:   "School administration: chart of accounts and attendance requests",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", config.FileName, "config file")
	flags.String("api-url", "", "backend base URL (overrides config)")
	flags.String("token", "", "API bearer token (overrides config)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")

	_ = a.v.BindPFlag("config", flags.Lookup("config"))
	_ = a.v.BindPFlag("api.base_url", flags.Lookup("api-url"))
	_ = a.v.BindPFlag("api.token", flags.Lookup("token"))
	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", flags.Lookup("log-format"))

	a.v.SetEnvPrefix("LEDGERDESK")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	rootCmd.AddCommand(newInitCommand(a))
	rootCmd.AddCommand(newAccountsCommand(a))
	rootCmd.AddCommand(newRequestsCommand(a))

	return rootCmd
}

// init loads the config file (defaults when absent), applies flag and
// environment overrides, and sets up logging.
func (a *app) init(cmd *cobra.Command, _ []string) error {
	a.cfgPath = a.v.GetString("config")

	cfg, err := config.Load(a.cfgPath)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		cfg = config.Default("")
	default:
		return err
	}

	if s := a.v.GetString("api.base_url"); s != "" {
		cfg.API.BaseURL = s
	}
	if s := a.v.GetString("api.token"); s != "" {
		cfg.API.Token = s
	}
	if s := a.v.GetString("logging.level"); s != "" {
		cfg.Logging.Level = s
	}
	if s := a.v.GetString("logging.format"); s != "" {
		cfg.Logging.Format = s
	}
	a.cfg = cfg

	if err := logging.Setup(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	return nil
}

func (a *app) client() (*api.Client, error) {
	if a.cfg.API.BaseURL == "" {
		return nil, errors.New("no API base URL configured: run 'ledgerdesk init --api-url URL' or pass --api-url")
	}
	return api.New(api.Options{
		BaseURL:  a.cfg.API.BaseURL,
		Token:    a.cfg.API.Token,
		PageSize: a.cfg.API.PageSize,
		Timeout:  a.cfg.API.Timeout,
	})
}

// record appends to the activity log. Failures are logged, not returned:
// the backend call already succeeded.
func (a *app) record(action, subject, details string) {
	if !a.cfg.Activity.Enabled {
		return
	}
	entry := activity.Entry{Timestamp: a.now().UTC(), Action: action, Subject: subject, Details: details}
	if err := activity.Append(a.cfg.ActivityPath(a.cfgPath), entry); err != nil {
		slog.Warn("failed to write activity log", "error", err)
	}
}
