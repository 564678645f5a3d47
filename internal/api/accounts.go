package api

import (
	"context"
	"net/http"

	"github.com/ledgerdesk/ledgerdesk/internal/model"
)

const accountsPath = "accounts"

// ListAccounts fetches the full flat chart of accounts, following pagination.
func (c *Client) ListAccounts(ctx context.Context) ([]model.Account, error) {
	return listAll[model.Account](ctx, c, accountsPath, nil)
}

// CreateAccount submits a new account and returns the stored record.
func (c *Client) CreateAccount(ctx context.Context, in model.AccountInput) (model.Account, error) {
	var acct model.Account
	if err := c.do(ctx, http.MethodPost, accountsPath, nil, in, &acct); err != nil {
		return model.Account{}, err
	}
	return acct, nil
}
