package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one ledger entry from a Fio report. Amount keeps the
// sign and scale exactly as the bank supplied them: debits negative,
// credits positive, no normalization.
type Transaction struct {
	ID       string          `json:"id"`
	Date     time.Time       `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`

	// Counterparty; empty for fees, interest and similar entries.
	Account     string `json:"account,omitempty"`
	AccountName string `json:"account_name,omitempty"`
	BankID      string `json:"bank_id,omitempty"`
	BankName    string `json:"bank_name,omitempty"`
	BIC         string `json:"bic,omitempty"`

	// Czech payment symbols.
	ConstantSymbol string `json:"constant_symbol,omitempty"`
	VariableSymbol string `json:"variable_symbol,omitempty"`
	SpecificSymbol string `json:"specific_symbol,omitempty"`

	Type               string `json:"type,omitempty"`
	UserIdentification string `json:"user_identification,omitempty"`
	Message            string `json:"message,omitempty"`
	Executor           string `json:"executor,omitempty"`
	Specification      string `json:"specification,omitempty"`
	Comment            string `json:"comment,omitempty"`
	OrderID            int64  `json:"order_id,omitempty"`
	PayerReference     string `json:"payer_reference,omitempty"`
}

func (t *Transaction) JSON() ([]byte, error) {
	return json.Marshal(t)
}
