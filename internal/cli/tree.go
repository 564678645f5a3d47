package cli

import (
	"fmt"
	"strings"

	"github.com/ledgerdesk/ledgerdesk/internal/accounts"
	"github.com/ledgerdesk/ledgerdesk/internal/model"
)

// Tree glyphs.
const (
	ExpandedMarker  = "▾"
	CollapsedMarker = "▸"
	FolderIcon      = "📁"
	FileIcon        = "📄"
	SelectedMarker  = "›"
)

// TreeOptions controls RenderTree.
type TreeOptions struct {
	Expansion *accounts.Expansion
	// SelectedID highlights one node; zero selects nothing.
	SelectedID int
}

// RenderTree draws the hierarchy, descending only into expanded nodes.
func RenderTree(t *accounts.Tree, opts TreeOptions) string {
	exp := opts.Expansion
	if exp == nil {
		exp = &accounts.Expansion{}
	}

	var b strings.Builder
	var draw func(nodes []*accounts.Node)
	draw = func(nodes []*accounts.Node) {
		for _, n := range nodes {
			b.WriteString(renderNode(n, exp.IsExpanded(n.ID), n.ID == opts.SelectedID))
			b.WriteByte('\n')
			if exp.IsExpanded(n.ID) {
				draw(n.Children)
			}
		}
	}
	draw(t.Roots)

	if len(t.Orphans) > 0 {
		b.WriteString(WarningStyle.Render("Accounts with a missing parent:"))
		b.WriteByte('\n')
		for _, a := range t.Orphans {
			fmt.Fprintf(&b, "  %s %s  %s\n", icon(a.Type), a.AccountCode, a.Name)
		}
	}
	return b.String()
}

func renderNode(n *accounts.Node, expanded, selected bool) string {
	toggle := " "
	if !n.IsLeaf() {
		toggle = CollapsedMarker
		if expanded {
			toggle = ExpandedMarker
		}
	}

	line := fmt.Sprintf("%s %s %s  %s", toggle, icon(n.Type), n.AccountCode, n.Name)
	if n.Type == model.AccountTypeSynthetic {
		line += SubtleStyle.Render(fmt.Sprintf(" (%d)", n.ChildCount()))
	}

	prefix := "  "
	if selected {
		prefix = SelectedMarker + " "
		line = SelectedStyle.Render(line)
	}
	return prefix + strings.Repeat("  ", n.Level) + line
}

func icon(t model.AccountType) string {
	if t == model.AccountTypeSynthetic {
		return FolderIcon
	}
	return FileIcon
}
