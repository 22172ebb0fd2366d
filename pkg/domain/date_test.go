package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2023-01-02", Date(2023, 1, 2)},
		{"2023-01-02+0000", Date(2023, 1, 2)}, // Fio's zone-suffixed form
		{" 2024-12-31 ", Date(2024, 12, 31)},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, raw := range []string{"", "02.01.2023", "2023-13-01", "garbage"} {
		_, err := ParseDate(raw)
		assert.Error(t, err, raw)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2023-01-02", FormatDate(Date(2023, 1, 2)))
}

func TestTodayIsMidnightUTC(t *testing.T) {
	today := Today()
	assert.Equal(t, time.UTC, today.Location())
	h, m, s := today.Clock()
	assert.Zero(t, h+m+s)
}
