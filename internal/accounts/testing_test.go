package accounts

import "github.com/ledgerdesk/ledgerdesk/internal/model"

func acct(id int, accountCode, name string, t model.AccountType, parent int) model.Account {
	a := model.Account{ID: id, AccountCode: accountCode, Name: name, Type: t}
	if parent != 0 {
		a.ParentID = model.IntPtr(parent)
	}
	return a
}

// sampleChart is a small two-root chart listed out of hierarchy order.
func sampleChart() []model.Account {
	return []model.Account{
		acct(4, "1.1.1", "Cash", model.AccountTypeAnalytical, 2),
		acct(1, "1", "Assets", model.AccountTypeSynthetic, 0),
		acct(2, "1.1", "Current Assets", model.AccountTypeSynthetic, 1),
		acct(5, "1.1.2", "Bank", model.AccountTypeAnalytical, 2),
		acct(3, "2", "Liabilities", model.AccountTypeSynthetic, 0),
		acct(6, "2.1", "Suppliers", model.AccountTypeAnalytical, 3),
	}
}
