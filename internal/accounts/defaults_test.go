package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk/internal/model"
)

func TestSuggestForParentSelect_Synthetic(t *testing.T) {
	parent := acct(2, "1.1", "Current Assets", model.AccountTypeSynthetic, 1)
	form := model.AccountInput{Name: "Deposits", Type: model.AccountTypeSynthetic}

	got := SuggestForParentSelect(form, parent)
	assert.Equal(t, "1.1.0", got.AccountCode)
	assert.Equal(t, model.AccountTypeSynthetic, got.Type, "user's type is kept")
	assert.Equal(t, "Deposits", got.Name)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, 2, *got.ParentID)
}

func TestSuggestForParentSelect_Analytical(t *testing.T) {
	parent := acct(4, "1.1.1", "Cash", model.AccountTypeAnalytical, 2)
	got := SuggestForParentSelect(model.AccountInput{Type: model.AccountTypeSynthetic}, parent)
	assert.Equal(t, "1.1.1.0", got.AccountCode)
	assert.Equal(t, model.AccountTypeAnalytical, got.Type)
}

func TestSuggestForAddChild(t *testing.T) {
	tests := []struct {
		parentType model.AccountType
		want       model.AccountType
	}{
		{model.AccountTypeSynthetic, model.AccountTypeAnalytical},
		{model.AccountTypeAnalytical, model.AccountTypeSynthetic},
	}
	for _, tt := range tests {
		parent := acct(2, "1.1", "Parent", tt.parentType, 1)
		got := SuggestForAddChild(model.AccountInput{Type: tt.parentType}, parent)
		assert.Equal(t, "1.1.", got.AccountCode)
		assert.Equal(t, tt.want, got.Type, "child of %s", tt.parentType)
		require.NotNil(t, got.ParentID)
		assert.Equal(t, 2, *got.ParentID)
	}
}

func TestSuggestForAddChild_NeedsSuffix(t *testing.T) {
	parent := acct(2, "1.1", "Current Assets", model.AccountTypeSynthetic, 1)
	form := SuggestForAddChild(model.AccountInput{Name: "Safe"}, parent)

	errs := Validate(form, sampleChart())
	assert.Equal(t, MsgCodeFormat, errs[FieldCode])

	form.AccountCode += "9"
	assert.Empty(t, Validate(form, sampleChart()))
}
