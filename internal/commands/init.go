package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgerdesk/ledgerdesk/internal/api"
	"github.com/ledgerdesk/ledgerdesk/internal/config"
)

func newInitCommand(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a ledgerdesk.yaml config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, a, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func runInit(cmd *cobra.Command, a *app, force bool) error {
	if a.cfg.API.BaseURL == "" {
		return fmt.Errorf("--api-url is required")
	}
	// Fail early on a malformed URL.
	if _, err := api.New(api.Options{BaseURL: a.cfg.API.BaseURL}); err != nil {
		return err
	}

	if _, err := os.Stat(a.cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", a.cfgPath)
	}

	if dir := filepath.Dir(a.cfgPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	cfg := config.Default(a.cfg.API.BaseURL)
	cfg.API.Token = a.cfg.API.Token
	if err := config.Save(a.cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", a.cfgPath)
	return nil
}
