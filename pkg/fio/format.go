package fio

import (
	"fmt"
	"time"

	"github.com/liborw/fiogo/pkg/domain"
)

// TransactionFormat is an export format for transaction reports. Only
// FormatJSON can be parsed into the domain model; the rest are opaque
// payloads the caller may persist but not introspect.
type TransactionFormat string

const (
	FormatCSV  TransactionFormat = "csv"
	FormatGPC  TransactionFormat = "gpc"
	FormatHTML TransactionFormat = "html"
	FormatJSON TransactionFormat = "json"
	FormatOFX  TransactionFormat = "ofx"
	FormatXML  TransactionFormat = "xml"
)

// Parseable reports whether reports in this format can be turned into
// typed records.
func (f TransactionFormat) Parseable() bool {
	return f == FormatJSON
}

func (f TransactionFormat) valid() bool {
	switch f {
	case FormatCSV, FormatGPC, FormatHTML, FormatJSON, FormatOFX, FormatXML:
		return true
	}
	return false
}

// StatementFormat is an export format for account statements. A
// superset of TransactionFormat.
type StatementFormat string

const (
	StatementCSV   StatementFormat = "csv"
	StatementGPC   StatementFormat = "gpc"
	StatementHTML  StatementFormat = "html"
	StatementJSON  StatementFormat = "json"
	StatementOFX   StatementFormat = "ofx"
	StatementXML   StatementFormat = "xml"
	StatementPDF   StatementFormat = "pdf"
	StatementMT940 StatementFormat = "mt940"
	StatementCBA   StatementFormat = "cba_xml"
	StatementSBA   StatementFormat = "sba_xml"
)

// Binary reports whether the payload is binary rather than text.
func (f StatementFormat) Binary() bool {
	return f == StatementPDF
}

func (f StatementFormat) valid() bool {
	switch f {
	case StatementCSV, StatementGPC, StatementHTML, StatementJSON, StatementOFX,
		StatementXML, StatementPDF, StatementMT940, StatementCBA, StatementSBA:
		return true
	}
	return false
}

// Addressing selects which transactions a report request covers.
// Exactly three implementations exist: Period, StatementID and
// SinceLast.
type Addressing interface {
	path(token domain.Token, ext string) (string, error)
}

// Period addresses transactions by an inclusive date range.
type Period struct {
	From time.Time
	To   time.Time
}

func (p Period) path(token domain.Token, ext string) (string, error) {
	if p.From.After(p.To) {
		return "", fmt.Errorf("invalid date range: start %s is after end %s",
			domain.FormatDate(p.From), domain.FormatDate(p.To))
	}
	return fmt.Sprintf("/periods/%s/%s/%s/transactions.%s",
		token.Value(), domain.FormatDate(p.From), domain.FormatDate(p.To), ext), nil
}

// StatementID addresses an official numbered statement within a year.
type StatementID struct {
	Year int
	ID   int64
}

func (s StatementID) path(token domain.Token, ext string) (string, error) {
	if s.ID < 0 {
		return "", fmt.Errorf("statement id must not be negative, got %d", s.ID)
	}
	return fmt.Sprintf("/by-id/%s/%d/%d/transactions.%s", token.Value(), s.Year, s.ID, ext), nil
}

// SinceLast addresses everything since the persisted download marker.
// The client resolves it to a Period against its marker store before
// building the path.
type SinceLast struct{}

func (SinceLast) path(domain.Token, string) (string, error) {
	return "", fmt.Errorf("since-last addressing must be resolved against a marker store first")
}
