package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ledgerdesk/ledgerdesk/internal/model"
)

const (
	numFields = 5
	colID     = 0
	colCode   = 1
	colName   = 2
	colType   = 3
	colParent = 4
)

var header = []string{"id", "account_code", "name", "type", "parent_id"}

// ReadAccounts reads a chart-of-accounts CSV export.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes the flat chart as CSV.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(acct.ID)
	row[colCode] = acct.AccountCode
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	if acct.ParentID != nil {
		row[colParent] = strconv.Itoa(*acct.ParentID)
	}
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	id, err := strconv.Atoi(record[colID])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing id %q: %w", record[colID], err)
	}

	acctType := model.AccountType(record[colType])
	if !acctType.Valid() {
		return model.Account{}, fmt.Errorf("unknown account type %q", record[colType])
	}

	var parentID *int
	if record[colParent] != "" {
		p, err := strconv.Atoi(record[colParent])
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing parent_id %q: %w", record[colParent], err)
		}
		parentID = &p
	}

	return model.Account{
		ID:          id,
		AccountCode: record[colCode],
		Name:        record[colName],
		Type:        acctType,
		ParentID:    parentID,
	}, nil
}

// WriteTree writes the hierarchy depth-first with a level column, the layout
// used for printed reports.
func WriteTree(w io.Writer, t *Tree) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(append([]string{"level"}, header...)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	var werr error
	t.Walk(func(n *Node) {
		if werr != nil {
			return
		}
		row := append([]string{strconv.Itoa(n.Level)}, MarshalAccount(n.Account)...)
		if err := cw.Write(row); err != nil {
			werr = fmt.Errorf("writing account %d: %w", n.ID, err)
		}
	})
	if werr != nil {
		return werr
	}

	cw.Flush()
	return cw.Error()
}
