package accounts

import (
	"github.com/ledgerdesk/ledgerdesk/internal/code"
	"github.com/ledgerdesk/ledgerdesk/internal/model"
)

// SuggestForParentSelect fills the form after a parent is picked in the tree.
// The code becomes parent + ".0"; the type is forced to analytical only when
// the parent is analytical, otherwise the current choice stays.
func SuggestForParentSelect(form model.AccountInput, parent model.Account) model.AccountInput {
	form.ParentID = model.IntPtr(parent.ID)
	form.AccountCode = code.SelectChild(parent.AccountCode)
	if parent.Type == model.AccountTypeAnalytical {
		form.Type = model.AccountTypeAnalytical
	}
	return form
}

// SuggestForAddChild fills the form for the "add child" action on a node.
// The code becomes parent + "." awaiting a suffix and the type is the
// opposite of the parent's.
//
// This intentionally differs from SuggestForParentSelect. For an analytical
// parent it suggests a synthetic child even though analytical accounts
// take no children.
func SuggestForAddChild(form model.AccountInput, parent model.Account) model.AccountInput {
	form.ParentID = model.IntPtr(parent.ID)
	form.AccountCode = code.AddChildPrefix(parent.AccountCode)
	form.Type = parent.Type.Opposite()
	return form
}
