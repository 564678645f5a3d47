package accounts

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ledgerdesk/ledgerdesk/internal/api"
	"github.com/ledgerdesk/ledgerdesk/internal/model"
)

// Repository is the backend holding the chart of accounts.
type Repository interface {
	ListAccounts(ctx context.Context) ([]model.Account, error)
	CreateAccount(ctx context.Context, in model.AccountInput) (model.Account, error)
}

// SubmitError is a rejected or failed create call.
type SubmitError struct {
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("%s: %s", FieldSubmit, e.Message)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// View is a freshly fetched chart together with its hierarchy.
type View struct {
	Chart *Chart
	Tree  *Tree
	// FetchErr is set when the list could not be fetched; Chart and Tree are
	// then empty.
	FetchErr error
}

// Service ties the repository to validation and tree building.
type Service struct {
	repo Repository
}

// NewService creates an accounts Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Load fetches the flat list and rebuilds the tree. A fetch failure is
// recorded on the view rather than returned; a list that cannot be arranged
// into a tree is returned as an error.
func (s *Service) Load(ctx context.Context) (*View, error) {
	accts, err := s.repo.ListAccounts(ctx)
	view := &View{}
	if err != nil {
		slog.Error("failed to fetch accounts", "error", err)
		view.FetchErr = err
		accts = nil
	}

	tree, err := Build(accts)
	if err != nil {
		return nil, fmt.Errorf("building account tree: %w", err)
	}
	view.Chart = NewChart(accts)
	view.Tree = tree
	if len(tree.Orphans) > 0 {
		slog.Warn("accounts reference missing parents", "count", len(tree.Orphans))
	}
	return view, nil
}

// Create validates in against the current list and submits it. Validation
// failures are returned as FieldErrors and nothing is sent; repository
// failures are returned as *SubmitError.
func (s *Service) Create(ctx context.Context, in model.AccountInput) (model.Account, error) {
	accts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		slog.Warn("validating against an empty account list", "error", err)
		accts = nil
	}

	in = in.Normalized()
	if errs := Validate(in, accts); len(errs) > 0 {
		return model.Account{}, errs
	}

	created, err := s.repo.CreateAccount(ctx, in)
	if err != nil {
		msg, ok := api.ErrorMessage(err)
		if !ok {
			msg = MsgSubmitFailedDefault
		}
		return model.Account{}, &SubmitError{Message: msg, Err: err}
	}

	slog.Info("account created", "id", created.ID, "code", created.AccountCode)
	return created, nil
}
