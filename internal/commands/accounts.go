package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerdesk/ledgerdesk/internal/accounts"
	"github.com/ledgerdesk/ledgerdesk/internal/activity"
	"github.com/ledgerdesk/ledgerdesk/internal/cli"
	"github.com/ledgerdesk/ledgerdesk/internal/model"
)

func newAccountsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Chart of accounts",
	}
	cmd.AddCommand(newAccountsListCommand(a))
	cmd.AddCommand(newAccountsTreeCommand(a))
	cmd.AddCommand(newAccountsShowCommand(a))
	cmd.AddCommand(newAccountsSuggestCommand(a))
	cmd.AddCommand(newAccountsCreateCommand(a))
	cmd.AddCommand(newAccountsExportCommand(a))
	return cmd
}

func (a *app) accountsService() (*accounts.Service, error) {
	c, err := a.client()
	if err != nil {
		return nil, err
	}
	return accounts.NewService(c), nil
}

// loadView fetches the chart. A fetch failure is printed and the view is
// returned empty.
func (a *app) loadView(cmd *cobra.Command) (*accounts.View, error) {
	svc, err := a.accountsService()
	if err != nil {
		return nil, err
	}
	view, err := svc.Load(cmd.Context())
	if err != nil {
		return nil, err
	}
	if view.FetchErr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.ErrorStyle.Render("Could not fetch accounts: "+view.FetchErr.Error()))
	}
	return view, nil
}

func parseAccountType(s string) (model.AccountType, error) {
	t := model.AccountType(s)
	if !t.Valid() {
		return "", fmt.Errorf("invalid account type %q (want %s or %s)", s, model.AccountTypeSynthetic, model.AccountTypeAnalytical)
	}
	return t, nil
}

func newAccountsListCommand(a *app) *cobra.Command {
	var typeFilter string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts in source order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.loadView(cmd)
			if err != nil {
				return err
			}

			list := view.Chart.All()
			if typeFilter != "" {
				t, err := parseAccountType(typeFilter)
				if err != nil {
					return err
				}
				list = view.Chart.ByType(t)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), list)
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("No accounts found."))
				return nil
			}
			return cli.WriteAccounts(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().StringVar(&typeFilter, "type", "", "only accounts of this type (synthetic, analytical)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func newAccountsTreeCommand(a *app) *cobra.Command {
	var expandAll bool
	var expand []int
	var selected int

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the account hierarchy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.loadView(cmd)
			if err != nil {
				return err
			}

			exp := &accounts.Expansion{}
			if expandAll {
				exp.ExpandAll(view.Tree)
			}
			for _, id := range expand {
				exp.Toggle(id)
			}

			out := cli.RenderTree(view.Tree, cli.TreeOptions{Expansion: exp, SelectedID: selected})
			if out == "" {
				out = cli.SubtleStyle.Render("No accounts found.") + "\n"
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&expandAll, "expand-all", false, "expand every node")
	cmd.Flags().IntSliceVar(&expand, "toggle", nil, "toggle expansion of these account ids")
	cmd.Flags().IntVar(&selected, "select", 0, "highlight this account id")

	return cmd
}

func newAccountsShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one account and its direct children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			view, err := a.loadView(cmd)
			if err != nil {
				return err
			}
			node, ok := view.Tree.Select(id)
			if !ok {
				return fmt.Errorf("account %d not found", id)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.TitleStyle.Render(node.AccountCode+"  "+node.Name))
			fmt.Fprintf(out, "id:       %d\n", node.ID)
			fmt.Fprintf(out, "type:     %s\n", node.Type)
			fmt.Fprintf(out, "level:    %d\n", node.Level)
			if node.ParentID != nil {
				fmt.Fprintf(out, "parent:   %d\n", *node.ParentID)
			}
			fmt.Fprintf(out, "children: %d\n", node.ChildCount())
			for _, c := range node.Children {
				fmt.Fprintf(out, "  %s  %s (%s)\n", c.AccountCode, c.Name, c.Type)
			}
			return nil
		},
	}
}

// createFlags are the form fields accepted by create and suggest.
type createFlags struct {
	name       string
	code       string
	suffix     string
	accType    string
	parent     int
	addChildOf int
}

func (f *createFlags) register(cmd *cobra.Command, withFields bool) {
	cmd.Flags().IntVar(&f.parent, "parent", 0, "parent account id (suggests code parent.0)")
	cmd.Flags().IntVar(&f.addChildOf, "add-child-of", 0, "add a child to this account (suggests code parent. and the opposite type)")
	cmd.MarkFlagsMutuallyExclusive("parent", "add-child-of")
	if withFields {
		cmd.Flags().StringVar(&f.name, "name", "", "account name")
		cmd.Flags().StringVar(&f.code, "code", "", "account code, e.g. 1.1.0")
		cmd.Flags().StringVar(&f.suffix, "suffix", "", "segment appended to the add-child code stub")
		cmd.Flags().StringVar(&f.accType, "type", string(model.AccountTypeSynthetic), "account type (synthetic, analytical)")
	}
}

// form builds the input the way the creation form does: the chosen entry
// point fills defaults, then explicitly given fields win.
func (f *createFlags) form(cmd *cobra.Command, chart *accounts.Chart) (model.AccountInput, error) {
	in := model.AccountInput{Name: f.name, AccountCode: f.code, Type: model.AccountType(f.accType)}

	switch {
	case f.parent != 0:
		parent, ok := chart.Get(f.parent)
		if !ok {
			return in, fmt.Errorf("parent account %d not found", f.parent)
		}
		in = accounts.SuggestForParentSelect(in, parent)
	case f.addChildOf != 0:
		parent, ok := chart.Get(f.addChildOf)
		if !ok {
			return in, fmt.Errorf("parent account %d not found", f.addChildOf)
		}
		in = accounts.SuggestForAddChild(in, parent)
		in.AccountCode += f.suffix
		if cmd.Flags().Changed("type") {
			in.Type = model.AccountType(f.accType)
		}
	}
	if cmd.Flags().Changed("code") {
		in.AccountCode = f.code
	}
	return in, nil
}

func newAccountsSuggestCommand(a *app) *cobra.Command {
	var f createFlags
	f.accType = string(model.AccountTypeSynthetic)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Show the code and type suggested for a new child account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.parent == 0 && f.addChildOf == 0 {
				return errors.New("one of --parent or --add-child-of is required")
			}
			view, err := a.loadView(cmd)
			if err != nil {
				return err
			}
			in, err := f.form(cmd, view.Chart)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "code: %s\ntype: %s\nparent: %d\n", in.AccountCode, in.Type, *in.ParentID)
			return nil
		},
	}
	f.register(cmd, false)
	return cmd
}

func newAccountsCreateCommand(a *app) *cobra.Command {
	var f createFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Validate and create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.accountsService()
			if err != nil {
				return err
			}

			chart := accounts.NewChart(nil)
			if f.parent != 0 || f.addChildOf != 0 {
				view, err := svc.Load(cmd.Context())
				if err != nil {
					return err
				}
				chart = view.Chart
			}

			in, err := f.form(cmd, chart)
			if err != nil {
				return err
			}

			created, err := svc.Create(cmd.Context(), in)
			if err != nil {
				return reportCreateError(cmd, err)
			}

			a.record(activity.ActionAccountCreated, fmt.Sprintf("account:%d", created.ID), created.AccountCode+" "+created.Name)
			fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render(
				fmt.Sprintf("Created account %d: %s %s (%s)", created.ID, created.AccountCode, created.Name, created.Type)))
			return nil
		},
	}
	f.register(cmd, true)
	return cmd
}

func reportCreateError(cmd *cobra.Command, err error) error {
	var fieldErrs accounts.FieldErrors
	if errors.As(err, &fieldErrs) {
		fmt.Fprint(cmd.ErrOrStderr(), cli.FormatFieldErrors(fieldErrs))
		return errors.New("account not created: fix the fields above")
	}
	var submitErr *accounts.SubmitError
	if errors.As(err, &submitErr) {
		fmt.Fprint(cmd.ErrOrStderr(), cli.FormatFieldErrors(map[string]string{accounts.FieldSubmit: submitErr.Message}))
		return err
	}
	return err
}

func newAccountsExportCommand(a *app) *cobra.Command {
	var asTree bool
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the chart of accounts as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.loadView(cmd)
			if err != nil {
				return err
			}
			if view.FetchErr != nil {
				return fmt.Errorf("fetching accounts: %w", view.FetchErr)
			}

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			if asTree {
				return accounts.WriteTree(w, view.Tree)
			}
			return accounts.WriteAccounts(w, view.Chart.All())
		},
	}

	cmd.Flags().BoolVar(&asTree, "tree", false, "write in hierarchy order with a level column")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
