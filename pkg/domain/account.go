package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountInfo is the statement header: who the report is about and the
// balance bracket it covers. Built once per parsed report, then
// read-only.
type AccountInfo struct {
	AccountID string `json:"account_id"`
	BankID    string `json:"bank_id"`
	Currency  string `json:"currency"`
	IBAN      string `json:"iban"`
	BIC       string `json:"bic"`

	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`

	// Date range the statement covers. Zero when the report omits it.
	DateStart time.Time `json:"date_start"`
	DateEnd   time.Time `json:"date_end"`

	// Statement numbering and download pointers, when present.
	YearList       int   `json:"year_list,omitempty"`
	IDList         int   `json:"id_list,omitempty"`
	IDFrom         int64 `json:"id_from,omitempty"`
	IDTo           int64 `json:"id_to,omitempty"`
	IDLastDownload int64 `json:"id_last_download,omitempty"`
}
