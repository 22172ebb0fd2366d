package fio

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/liborw/fiogo/pkg/domain"
)

// ParsedReport is everything one structured-JSON report contains.
// Transactions keep the order the bank returned them in.
type ParsedReport struct {
	Account      domain.AccountInfo
	Transactions []domain.Transaction
}

// Fio addresses transaction fields by stable numeric column IDs, not
// by name or position. The published column table, in one place:
const (
	colDate               = 0
	colAmount             = 1
	colCounterAccount     = 2
	colCounterBankID      = 3
	colConstantSymbol     = 4
	colVariableSymbol     = 5
	colSpecificSymbol     = 6
	colUserIdentification = 7
	colType               = 8
	colExecutor           = 9
	colCounterAccountName = 10
	colCounterBankName    = 12
	colCurrency           = 14
	colMessage            = 16
	colOrderID            = 17
	colSpecification      = 18
	colID                 = 22
	colComment            = 25
	colBIC                = 26
	colPayerReference     = 27
)

type columnSpec struct {
	id       int
	name     string
	required bool
	set      func(*domain.Transaction, json.RawMessage) error
}

// columnTable drives the whole transaction mapping. Columns absent
// from this table are ignored; optional columns absent from a payload
// become zero values; required ones fail the parse.
var columnTable = []columnSpec{
	{colID, "transaction id", true, func(t *domain.Transaction, raw json.RawMessage) error {
		return setString(&t.ID, raw)
	}},
	{colDate, "date", true, func(t *domain.Transaction, raw json.RawMessage) error {
		return setDate(&t.Date, raw)
	}},
	{colAmount, "amount", true, func(t *domain.Transaction, raw json.RawMessage) error {
		return setDecimal(&t.Amount, raw)
	}},
	{colCurrency, "currency", true, func(t *domain.Transaction, raw json.RawMessage) error {
		return setString(&t.Currency, raw)
	}},
	{colCounterAccount, "counter account", false, func(t *domain.Transaction, raw json.RawMessage) error {
		return setString(&t.Account, raw)
	}},
	{colCounterAccountName, "counter account name", false, func(t *domain.Transaction, raw json.RawMessage) error {
		return setString(&t.AccountName, raw)
	}},
	{colCounterBankID, "counter bank id", false, func(t *domain.Transaction, raw json.RawMessage) error {
		return setString(&t.BankID, raw)
	}},
	{colCounterBankName, "counter bank name", false, func(t *domain.Transaction, raw json.RawMessage) error {
		return setString(&t.BankName, raw)
	}},
	{colConstantSymbol, "constant symbol", false, func(t *domain.Transaction, raw json.RawMessage) error {
		return setString(&t.ConstantSymbol, raw)
	}},
	{colVariableSymbol, "variable symbol", false, func(t *domain.Transaction, raw json.RawMessage) error {
		return setString(&t.VariableSymbol, raw)
	}},
	{colSpecificSymbol, "specific symbol", false, func(t *domain.Transaction, raw json.RawMessage) error {
		return setString(&t.SpecificSymbol, raw)
	}},
	{colUserIdentification, "user identification", false, func(t *domain.Transaction, raw json.RawMessage) error {
		return setString(&t.UserIdentification, raw)
	}},
	{colMessage, "message for recipient", false, func(t *domain.Transaction, raw json.RawMessage) error {
		return setString(&t.Message, raw)
	}},
	{colType, "transaction type", false, func(t *domain.Transaction, raw json.RawMessage) error {
		return setString(&t.Type, raw)
	}},
	{colExecutor, "executor", false, func(t *domain.Transaction, raw json.RawMessage) error {
		return setString(&t.Executor, raw)
	}},
	{colSpecification, "specification", false, func(t *domain.Transaction, raw json.RawMessage) error {
		return setString(&t.Specification, raw)
	}},
	{colComment, "comment", false, func(t *domain.Transaction, raw json.RawMessage) error {
		return setString(&t.Comment, raw)
	}},
	{colBIC, "bic", false, func(t *domain.Transaction, raw json.RawMessage) error {
		return setString(&t.BIC, raw)
	}},
	{colOrderID, "order id", false, func(t *domain.Transaction, raw json.RawMessage) error {
		return setInt64(&t.OrderID, raw)
	}},
	{colPayerReference, "payer reference", false, func(t *domain.Transaction, raw json.RawMessage) error {
		return setString(&t.PayerReference, raw)
	}},
}

// wire envelope: accountStatement { info {...}, transactionList {
// transaction [ { "columnN": { "value": ... } } ] } }

type cell struct {
	Value json.RawMessage `json:"value"`
}

type envelope struct {
	AccountStatement *struct {
		Info            map[string]json.RawMessage `json:"info"`
		TransactionList *struct {
			Transaction []map[string]cell `json:"transaction"`
		} `json:"transactionList"`
	} `json:"accountStatement"`
}

// ParseReport decodes a structured-JSON report into typed records.
// Pure and all-or-nothing: identical bytes always yield an identical
// result, and a report with any bad required column yields no records
// at all. An empty transaction list is a valid result.
func ParseReport(data []byte) (*ParsedReport, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, malformedField(-1, "document", "not a structured-JSON report")
	}
	if env.AccountStatement == nil {
		return nil, malformedField(-1, "accountStatement", "missing")
	}
	if env.AccountStatement.Info == nil {
		return nil, malformedField(-1, "info", "missing")
	}

	account, err := parseAccountInfo(env.AccountStatement.Info)
	if err != nil {
		return nil, err
	}

	report := &ParsedReport{Account: account, Transactions: []domain.Transaction{}}
	if env.AccountStatement.TransactionList == nil {
		return report, nil
	}

	for i, raw := range env.AccountStatement.TransactionList.Transaction {
		txn, err := parseTransaction(raw)
		if err != nil {
			var fe *Error
			if errors.As(err, &fe) {
				fe.Reason = fmt.Sprintf("transaction %d, %s", i, fe.Reason)
			}
			return nil, err
		}
		report.Transactions = append(report.Transactions, txn)
	}
	return report, nil
}

// ParseTransactions is a shortcut for callers that only want the
// transaction list.
func ParseTransactions(data []byte) ([]domain.Transaction, error) {
	report, err := ParseReport(data)
	if err != nil {
		return nil, err
	}
	return report.Transactions, nil
}

// ParseAccountInfo is a shortcut for callers that only want the
// statement header.
func ParseAccountInfo(data []byte) (domain.AccountInfo, error) {
	report, err := ParseReport(data)
	if err != nil {
		return domain.AccountInfo{}, err
	}
	return report.Account, nil
}

func parseTransaction(raw map[string]cell) (domain.Transaction, error) {
	var txn domain.Transaction
	for _, col := range columnTable {
		c, ok := raw[fmt.Sprintf("column%d", col.id)]
		if !ok || len(c.Value) == 0 || string(c.Value) == "null" {
			if col.required {
				return domain.Transaction{}, malformedField(col.id, col.name, "missing")
			}
			continue
		}
		if err := col.set(&txn, c.Value); err != nil {
			return domain.Transaction{}, malformedField(col.id, col.name, err.Error())
		}
	}
	return txn, nil
}

func parseAccountInfo(info map[string]json.RawMessage) (domain.AccountInfo, error) {
	var acc domain.AccountInfo
	fields := []struct {
		key string
		set func(json.RawMessage) error
	}{
		{"accountId", func(raw json.RawMessage) error { return setString(&acc.AccountID, raw) }},
		{"bankId", func(raw json.RawMessage) error { return setString(&acc.BankID, raw) }},
		{"currency", func(raw json.RawMessage) error { return setString(&acc.Currency, raw) }},
		{"iban", func(raw json.RawMessage) error { return setString(&acc.IBAN, raw) }},
		{"bic", func(raw json.RawMessage) error { return setString(&acc.BIC, raw) }},
		{"openingBalance", func(raw json.RawMessage) error { return setDecimal(&acc.OpeningBalance, raw) }},
		{"closingBalance", func(raw json.RawMessage) error { return setDecimal(&acc.ClosingBalance, raw) }},
		{"dateStart", func(raw json.RawMessage) error { return setDate(&acc.DateStart, raw) }},
		{"dateEnd", func(raw json.RawMessage) error { return setDate(&acc.DateEnd, raw) }},
		{"yearList", func(raw json.RawMessage) error { return setInt(&acc.YearList, raw) }},
		{"idList", func(raw json.RawMessage) error { return setInt(&acc.IDList, raw) }},
		{"idFrom", func(raw json.RawMessage) error { return setInt64(&acc.IDFrom, raw) }},
		{"idTo", func(raw json.RawMessage) error { return setInt64(&acc.IDTo, raw) }},
		{"idLastDownload", func(raw json.RawMessage) error { return setInt64(&acc.IDLastDownload, raw) }},
	}
	for _, f := range fields {
		raw, ok := info[f.key]
		if !ok || len(raw) == 0 || string(raw) == "null" {
			continue
		}
		if err := f.set(raw); err != nil {
			return domain.AccountInfo{}, malformedField(-1, "info."+f.key, err.Error())
		}
	}
	return acc, nil
}

// Value converters. Fio is loose about scalar types (IDs arrive as
// numbers or strings depending on the column), so these accept any
// scalar and convert.

func setString(dst *string, raw json.RawMessage) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		*dst = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		*dst = n.String()
		return nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		*dst = fmt.Sprintf("%t", b)
		return nil
	}
	return fmt.Errorf("expected a scalar, got %s", raw)
}

func setDecimal(dst *decimal.Decimal, raw json.RawMessage) error {
	// decimal.Decimal decodes both 50.25 and "50.25" from the literal
	// digits, so no binary-float rounding can creep in.
	var d decimal.Decimal
	if err := d.UnmarshalJSON(raw); err != nil {
		return fmt.Errorf("not a decimal number: %s", raw)
	}
	*dst = d
	return nil
}

func setDate(dst *time.Time, raw json.RawMessage) error {
	var s string
	if err := setString(&s, raw); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	t, err := domain.ParseDate(s)
	if err != nil {
		return err
	}
	*dst = t
	return nil
}

func setInt64(dst *int64, raw json.RawMessage) error {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return fmt.Errorf("not an integer: %s", raw)
	}
	v, err := n.Int64()
	if err != nil {
		return fmt.Errorf("not an integer: %s", n)
	}
	*dst = v
	return nil
}

func setInt(dst *int, raw json.RawMessage) error {
	var v int64
	if err := setInt64(&v, raw); err != nil {
		return err
	}
	*dst = int(v)
	return nil
}
