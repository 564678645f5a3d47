package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/ledgerdesk/ledgerdesk/internal/model"
)

// WriteAccounts prints a flat account table.
func WriteAccounts(out io.Writer, accts []model.Account) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		TableHeaderStyle.Render("ID"),
		TableHeaderStyle.Render("Code"),
		TableHeaderStyle.Render("Name"),
		TableHeaderStyle.Render("Type"),
		TableHeaderStyle.Render("Parent"))
	for _, a := range accts {
		parent := "-"
		if a.ParentID != nil {
			parent = fmt.Sprint(*a.ParentID)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", a.ID, a.AccountCode, a.Name, a.Type, parent)
	}
	return w.Flush()
}

// WriteRequests prints a request history table.
func WriteRequests(out io.Writer, history []model.Request) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		TableHeaderStyle.Render("ID"),
		TableHeaderStyle.Render("Kind"),
		TableHeaderStyle.Render("Status"),
		TableHeaderStyle.Render("Created"),
		TableHeaderStyle.Render("Reason"))
	for _, r := range history {
		created := "-"
		if !r.CreatedAt.IsZero() {
			created = r.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Kind, statusStyle(r.Status).Render(string(r.Status)), created, r.Reason)
	}
	return w.Flush()
}

// FormatFieldErrors renders field errors one per line, sorted by field.
func FormatFieldErrors(errs map[string]string) string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s %s\n", ErrorStyle.Render(k+":"), errs[k])
	}
	return b.String()
}

func statusStyle(s model.RequestStatus) lipgloss.Style {
	switch s {
	case model.StatusApproved:
		return SuccessStyle
	case model.StatusRejected:
		return ErrorStyle
	default:
		return WarningStyle
	}
}
