package fio

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/liborw/fiogo/pkg/domain"
	"github.com/liborw/fiogo/pkg/marker"
)

// https://fioapi.fio.cz/v1/rest — see the published API documentation
// for the column table and status semantics.

const (
	DefaultBaseURL = "https://fioapi.fio.cz/v1/rest"

	// How far back a first "since last download" request reaches when
	// no marker has ever been set.
	maxLookbackDays = 90

	defaultTimeout = 10 * time.Second
)

// Client is a thin façade over the bank's REST API: it builds request
// paths, performs exactly one GET per call, routes non-2xx statuses
// through the error mapper and hands bodies to the parser. It never
// retries, caches or mutates shared state apart from explicit marker
// writes.
type Client struct {
	token   domain.Token
	baseURL string
	http    *http.Client
	markers marker.Store
}

type Option func(*Client)

// WithBaseURL overrides the production endpoint, e.g. for a proxy or a
// test server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient substitutes the transport. Timeouts and connection
// pooling are its concern, not the client's.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithMarkerStore injects where the download marker lives. Defaults to
// an in-memory store that forgets on process exit.
func WithMarkerStore(s marker.Store) Option {
	return func(c *Client) {
		c.markers = s
	}
}

// New validates the token and builds a client for the production API.
func New(token string, opts ...Option) (*Client, error) {
	tok, err := domain.NewToken(token)
	if err != nil {
		return nil, err
	}
	c := &Client{
		token:   tok,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		markers: marker.NewMemory(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchTransactionReport performs one round trip for the addressed
// transactions in the given format and returns the raw payload.
// Callers parse JSON payloads separately via ParseReport.
func (c *Client) FetchTransactionReport(ctx context.Context, addr Addressing, format TransactionFormat) ([]byte, error) {
	if !format.valid() {
		return nil, unknownFormat(string(format))
	}
	resolved, err := c.resolve(addr)
	if err != nil {
		return nil, err
	}
	path, err := resolved.path(c.token, string(format))
	if err != nil {
		return nil, err
	}
	return c.get(ctx, path)
}

// FetchTransactionReportSinceLastDownload covers the span from the
// persisted marker date to today. It does not advance the marker; call
// MarkDownloaded once downstream processing has actually succeeded.
func (c *Client) FetchTransactionReportSinceLastDownload(ctx context.Context, format TransactionFormat) ([]byte, error) {
	return c.FetchTransactionReport(ctx, SinceLast{}, format)
}

// FetchAccountStatement fetches an official numbered statement. PDF
// payloads come back as opaque bytes.
func (c *Client) FetchAccountStatement(ctx context.Context, year int, statementID int64, format StatementFormat) ([]byte, error) {
	if !format.valid() {
		return nil, unknownFormat(string(format))
	}
	path, err := StatementID{Year: year, ID: statementID}.path(c.token, string(format))
	if err != nil {
		return nil, err
	}
	return c.get(ctx, path)
}

// LastStatementInfo identifies the most recent official statement.
type LastStatementInfo struct {
	Year        int
	StatementID int64
}

// FetchLastStatementInfo returns the year and number of the newest
// statement. The endpoint answers with a bare "year,id" body.
func (c *Client) FetchLastStatementInfo(ctx context.Context) (LastStatementInfo, error) {
	body, err := c.get(ctx, fmt.Sprintf("/lastStatement/%s/statement", c.token.Value()))
	if err != nil {
		return LastStatementInfo{}, err
	}

	parts := strings.SplitN(strings.TrimSpace(string(body)), ",", 2)
	if len(parts) != 2 {
		return LastStatementInfo{}, malformedField(-1, "statement info", "expected year,id")
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return LastStatementInfo{}, malformedField(-1, "statement info", "year is not a number")
	}
	id, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return LastStatementInfo{}, malformedField(-1, "statement info", "statement id is not a number")
	}
	return LastStatementInfo{Year: year, StatementID: id}, nil
}

// SetLastDownloadedTransactionID moves the bank-side resume pointer to
// the given transaction.
func (c *Client) SetLastDownloadedTransactionID(ctx context.Context, transactionID int64) error {
	if transactionID < 0 {
		return fmt.Errorf("transaction id must not be negative, got %d", transactionID)
	}
	_, err := c.get(ctx, fmt.Sprintf("/set-last-id/%s/%d/", c.token.Value(), transactionID))
	return err
}

// MarkDownloaded advances the download marker to the given date.
// Deliberately a separate step from fetching: the marker only moves
// once the caller's own processing of a fetched report succeeded.
func (c *Client) MarkDownloaded(date time.Time) error {
	return c.markers.SetMarker(date)
}

// SetLastUnsuccessfulDownloadDate rewinds the marker to a known-good
// date, used to recover manually after a bad download.
func (c *Client) SetLastUnsuccessfulDownloadDate(date time.Time) error {
	return c.markers.SetMarker(date)
}

// ParseReport decodes a fetched payload into typed records. Fails with
// UnsupportedFormat unless the payload was requested as JSON. Usable
// offline against stored fixtures.
func (c *Client) ParseReport(format TransactionFormat, data []byte) (*ParsedReport, error) {
	if !format.Parseable() {
		return nil, unsupportedFormat(string(format))
	}
	return ParseReport(data)
}

// ParseTransactions is ParseReport reduced to the transaction list.
func (c *Client) ParseTransactions(format TransactionFormat, data []byte) ([]domain.Transaction, error) {
	report, err := c.ParseReport(format, data)
	if err != nil {
		return nil, err
	}
	return report.Transactions, nil
}

// resolve turns SinceLast into a concrete Period using the marker
// store; other addressings pass through.
func (c *Client) resolve(addr Addressing) (Addressing, error) {
	if _, ok := addr.(SinceLast); !ok {
		return addr, nil
	}
	last, set, err := c.markers.LastMarker()
	if err != nil {
		return nil, fmt.Errorf("marker store: %w", err)
	}
	today := domain.Today()
	if !set {
		// First run: cover the bank's maximum look-back window.
		return Period{From: today.AddDate(0, 0, -maxLookbackDays), To: today}, nil
	}
	return Period{From: last, To: today}, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	log.Printf("GET %s%s", c.baseURL, c.token.Redact(path))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, transportError(c.token.Redact(err.Error()), err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// transport errors carry the URL, token included
		return nil, transportError(c.token.Redact(err.Error()), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(c.token.Redact(err.Error()), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, mapStatus(resp.StatusCode, c.token.Redact(string(body)))
	}
	return body, nil
}
