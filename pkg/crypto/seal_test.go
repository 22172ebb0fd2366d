package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpenRoundTrip(t *testing.T) {
	key, err := NewKey()
	require.NoError(t, err)

	sealed, err := Seal([]byte("a-very-secret-token"), key)
	require.NoError(t, err)
	assert.NotContains(t, sealed, "a-very-secret-token")

	opened, err := Open(sealed, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("a-very-secret-token"), opened)
}

func TestOpenTamperedValue(t *testing.T) {
	key, err := NewKey()
	require.NoError(t, err)

	sealed, err := Seal([]byte("secret"), key)
	require.NoError(t, err)

	flipped := byte('A')
	if sealed[0] == flipped {
		flipped = 'B'
	}
	tampered := string(flipped) + sealed[1:]
	_, err = Open(tampered, key)
	assert.Error(t, err)
}

func TestOpenWrongKey(t *testing.T) {
	key, err := NewKey()
	require.NoError(t, err)
	other, err := NewKey()
	require.NoError(t, err)

	sealed, err := Seal([]byte("secret"), key)
	require.NoError(t, err)

	_, err = Open(sealed, other)
	assert.Error(t, err)
}

func TestShortKeyRejected(t *testing.T) {
	_, err := Seal([]byte("secret"), "too-short")
	assert.Error(t, err)

	_, err = Open("a.b", "too-short")
	assert.Error(t, err)
}
