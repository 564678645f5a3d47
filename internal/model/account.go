package model

import "strings"

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	// AccountTypeSynthetic groups other accounts and takes no postings.
	AccountTypeSynthetic AccountType = "synthetic"
	// AccountTypeAnalytical is a leaf account used for postings.
	AccountTypeAnalytical AccountType = "analytical"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	return t == AccountTypeSynthetic || t == AccountTypeAnalytical
}

// Opposite returns the other account type.
func (t AccountType) Opposite() AccountType {
	if t == AccountTypeSynthetic {
		return AccountTypeAnalytical
	}
	return AccountTypeSynthetic
}

// Account is one entry of the chart of accounts as served by the backend.
type Account struct {
	ID          int         `json:"id"`
	AccountCode string      `json:"account_code"`
	Name        string      `json:"name"`
	Type        AccountType `json:"type"`
	ParentID    *int        `json:"parent_id"` // nil = top-level
}

// IsRoot reports whether the account has no parent.
func (a Account) IsRoot() bool {
	return a.ParentID == nil
}

// IntPtr returns a pointer to v, for building ParentID values.
func IntPtr(v int) *int {
	return &v
}

// AccountInput is the payload of a create-account request.
type AccountInput struct {
	Name        string      `json:"name"`
	Type        AccountType `json:"type"`
	AccountCode string      `json:"account_code"`
	ParentID    *int        `json:"parent_id"`
}

// Normalized returns the input with name and code trimmed.
func (in AccountInput) Normalized() AccountInput {
	in.Name = strings.TrimSpace(in.Name)
	in.AccountCode = strings.TrimSpace(in.AccountCode)
	return in
}
