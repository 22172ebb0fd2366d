package marker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liborw/fiogo/pkg/domain"
)

func TestJSONFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marker.json")
	jf := NewJSONFile(path)

	_, set, err := jf.LastMarker()
	require.NoError(t, err)
	assert.False(t, set, "missing file means no marker")

	want := domain.Date(2024, 1, 15)
	require.NoError(t, jf.SetMarker(want))

	got, set, err := jf.LastMarker()
	require.NoError(t, err)
	require.True(t, set)
	assert.Equal(t, want, got)
}

func TestJSONFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marker.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, _, err := NewJSONFile(path).LastMarker()
	assert.Error(t, err)
}

func TestMemory(t *testing.T) {
	m := NewMemory()

	_, set, err := m.LastMarker()
	require.NoError(t, err)
	assert.False(t, set)

	want := domain.Date(2024, 3, 1)
	require.NoError(t, m.SetMarker(want))

	got, set, err := m.LastMarker()
	require.NoError(t, err)
	require.True(t, set)
	assert.Equal(t, want, got)
}
