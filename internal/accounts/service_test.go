package accounts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk/internal/api"
	"github.com/ledgerdesk/ledgerdesk/internal/model"
)

// fakeRepo implements Repository for testing.
type fakeRepo struct {
	accounts  []model.Account
	listErr   error
	createErr error
	created   []model.AccountInput
}

func (f *fakeRepo) ListAccounts(context.Context) ([]model.Account, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.accounts, nil
}

func (f *fakeRepo) CreateAccount(_ context.Context, in model.AccountInput) (model.Account, error) {
	if f.createErr != nil {
		return model.Account{}, f.createErr
	}
	f.created = append(f.created, in)
	a := model.Account{ID: 100 + len(f.created), AccountCode: in.AccountCode, Name: in.Name, Type: in.Type, ParentID: in.ParentID}
	f.accounts = append(f.accounts, a)
	return a, nil
}

func TestLoad(t *testing.T) {
	svc := NewService(&fakeRepo{accounts: sampleChart()})

	view, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.NoError(t, view.FetchErr)
	assert.Equal(t, 6, view.Tree.Len())
	assert.True(t, view.Chart.Exists(4))
}

func TestLoad_FetchError(t *testing.T) {
	svc := NewService(&fakeRepo{accounts: sampleChart(), listErr: errors.New("connection refused")})

	view, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Error(t, view.FetchErr)
	assert.Equal(t, 0, view.Tree.Len())
	assert.Empty(t, view.Chart.All())
}

func TestLoad_Cycle(t *testing.T) {
	repo := &fakeRepo{accounts: []model.Account{
		acct(1, "1", "A", model.AccountTypeSynthetic, 2),
		acct(2, "2", "B", model.AccountTypeSynthetic, 1),
	}}
	_, err := NewService(repo).Load(context.Background())

	var cycleErr *CycleError
	assert.ErrorAs(t, err, &cycleErr)
}

func TestCreate(t *testing.T) {
	repo := &fakeRepo{accounts: sampleChart()}
	svc := NewService(repo)

	in := model.AccountInput{Name: "  Petty Cash ", Type: model.AccountTypeAnalytical, AccountCode: " 1.1.3", ParentID: model.IntPtr(2)}
	created, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Petty Cash", created.Name)
	assert.Equal(t, "1.1.3", created.AccountCode)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "Petty Cash", repo.created[0].Name)
}

func TestCreate_ValidationBlocksSubmit(t *testing.T) {
	repo := &fakeRepo{accounts: sampleChart()}
	svc := NewService(repo)

	in := model.AccountInput{Name: "Rent", Type: model.AccountTypeAnalytical, AccountCode: "1.1.1.0", ParentID: model.IntPtr(4)}
	_, err := svc.Create(context.Background(), in)

	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, MsgAnalyticalInside, fieldErrs[FieldType])
	assert.Empty(t, repo.created, "nothing is sent when validation fails")
}

func TestCreate_SubmitErrorUsesServerMessage(t *testing.T) {
	apiErr := &api.Error{Status: 422, Message: "account code already taken"}
	svc := NewService(&fakeRepo{accounts: sampleChart(), createErr: apiErr})

	in := model.AccountInput{Name: "Group", Type: model.AccountTypeSynthetic, AccountCode: "3"}
	_, err := svc.Create(context.Background(), in)

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.Equal(t, "account code already taken", submitErr.Message)
	assert.ErrorIs(t, err, apiErr)
}

func TestCreate_SubmitErrorFallback(t *testing.T) {
	svc := NewService(&fakeRepo{accounts: sampleChart(), createErr: errors.New("timeout")})

	in := model.AccountInput{Name: "Group", Type: model.AccountTypeSynthetic, AccountCode: "3"}
	_, err := svc.Create(context.Background(), in)

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.Equal(t, MsgSubmitFailedDefault, submitErr.Message)
	assert.Equal(t, "submit: failed to create account", err.Error())
}

func TestCreate_FetchFailureValidatesAgainstEmptyList(t *testing.T) {
	repo := &fakeRepo{accounts: sampleChart(), listErr: errors.New("down")}
	svc := NewService(repo)

	in := model.AccountInput{Name: "Petty Cash", Type: model.AccountTypeAnalytical, AccountCode: "1.1.3", ParentID: model.IntPtr(2)}
	_, err := svc.Create(context.Background(), in)

	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, MsgParentRequired, fieldErrs[FieldType])
}
