package accounts

import "github.com/ledgerdesk/ledgerdesk/internal/model"

// Chart provides in-memory lookup over a fetched chart of accounts.
type Chart struct {
	accounts []model.Account
	byID     map[int]model.Account
}

// NewChart creates a Chart from a flat slice of accounts.
func NewChart(accounts []model.Account) *Chart {
	byID := make(map[int]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return &Chart{accounts: accounts, byID: byID}
}

// All returns all accounts in source order.
func (c *Chart) All() []model.Account {
	return c.accounts
}

// Get returns an account by ID.
func (c *Chart) Get(id int) (model.Account, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// Exists reports whether an account ID exists.
func (c *Chart) Exists(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// ByType returns all accounts of the given type.
func (c *Chart) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range c.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}
