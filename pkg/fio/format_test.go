package fio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liborw/fiogo/pkg/domain"
)

func testToken(t *testing.T) domain.Token {
	t.Helper()
	tok, err := domain.NewToken(tokenValue)
	require.NoError(t, err)
	return tok
}

func TestParseable(t *testing.T) {
	assert.True(t, FormatJSON.Parseable())
	for _, f := range []TransactionFormat{FormatCSV, FormatGPC, FormatHTML, FormatOFX, FormatXML} {
		assert.False(t, f.Parseable(), string(f))
	}
}

func TestStatementBinary(t *testing.T) {
	assert.True(t, StatementPDF.Binary())
	assert.False(t, StatementJSON.Binary())
	assert.False(t, StatementMT940.Binary())
}

func TestPeriodPath(t *testing.T) {
	p := Period{From: domain.Date(2024, 1, 1), To: domain.Date(2024, 1, 31)}
	path, err := p.path(testToken(t), "json")
	require.NoError(t, err)
	assert.Equal(t, "/periods/"+tokenValue+"/2024-01-01/2024-01-31/transactions.json", path)
}

func TestPeriodPathInvertedRange(t *testing.T) {
	p := Period{From: domain.Date(2024, 2, 1), To: domain.Date(2024, 1, 1)}
	_, err := p.path(testToken(t), "json")
	assert.Error(t, err)
}

func TestStatementIDPath(t *testing.T) {
	path, err := StatementID{Year: 2023, ID: 12}.path(testToken(t), "pdf")
	require.NoError(t, err)
	assert.Equal(t, "/by-id/"+tokenValue+"/2023/12/transactions.pdf", path)

	_, err = StatementID{Year: 2023, ID: -1}.path(testToken(t), "pdf")
	assert.Error(t, err)
}

func TestSinceLastPathUnresolved(t *testing.T) {
	_, err := SinceLast{}.path(testToken(t), "json")
	assert.Error(t, err)
}
