package domain

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToken(t *testing.T) {
	value := strings.Repeat("a", TokenLength)
	tok, err := NewToken(value)
	require.NoError(t, err)
	assert.Equal(t, value, tok.Value())
}

func TestNewTokenWrongLength(t *testing.T) {
	for _, v := range []string{"", "short", strings.Repeat("a", TokenLength+1)} {
		_, err := NewToken(v)
		assert.Error(t, err, v)
	}
}

func TestTokenRedact(t *testing.T) {
	value := strings.Repeat("b", TokenLength)
	tok, err := NewToken(value)
	require.NoError(t, err)

	redacted := tok.Redact("/periods/" + value + "/2024-01-01/2024-01-31/transactions.json")
	assert.Equal(t, "/periods/<token>/2024-01-01/2024-01-31/transactions.json", redacted)
}

func TestTokenNeverFormatsItsValue(t *testing.T) {
	value := strings.Repeat("c", TokenLength)
	tok, err := NewToken(value)
	require.NoError(t, err)

	assert.NotContains(t, fmt.Sprintf("%v %s", tok, tok), value)
}
