package accounts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledgerdesk/ledgerdesk/internal/code"
	"github.com/ledgerdesk/ledgerdesk/internal/model"
)

// Form field keys used in FieldErrors.
const (
	FieldName   = "name"
	FieldCode   = "account_code"
	FieldType   = "type"
	FieldSubmit = "submit"
)

// Validation messages.
const (
	MsgNameRequired        = "name is required"
	MsgCodeRequired        = "account code is required"
	MsgParentRequired      = "analytical accounts require a parent account"
	MsgAnalyticalInside    = "analytical accounts cannot be created inside other analytical accounts"
	MsgCodeFormat          = "account code must follow format " + code.Format + " (e.g., 1.1.0)"
	MsgSubmitFailedDefault = "failed to create account"
)

// FieldErrors maps a form field to its error message. Empty means valid.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e[k])
	}
	return "invalid account: " + strings.Join(parts, "; ")
}

// Validate checks a new-account form against the current flat list. Every
// rule runs; when two rules target the same field the later one wins.
func Validate(form model.AccountInput, accounts []model.Account) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(form.Name) == "" {
		errs[FieldName] = MsgNameRequired
	}

	accountCode := strings.TrimSpace(form.AccountCode)
	if accountCode == "" {
		errs[FieldCode] = MsgCodeRequired
	}

	if form.Type == model.AccountTypeAnalytical {
		parent, ok := findParent(form.ParentID, accounts)
		switch {
		case !ok:
			errs[FieldType] = MsgParentRequired
		case parent.Type == model.AccountTypeAnalytical:
			errs[FieldType] = MsgAnalyticalInside
		}
	}

	if !code.Valid(accountCode) {
		errs[FieldCode] = MsgCodeFormat
	}

	return errs
}

func findParent(id *int, accounts []model.Account) (model.Account, bool) {
	if id == nil {
		return model.Account{}, false
	}
	for _, a := range accounts {
		if a.ID == *id {
			return a, true
		}
	}
	return model.Account{}, false
}
