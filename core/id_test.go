package core

import (
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_ValidPrefix(t *testing.T) {
	testCases := []struct {
		name     string
		prefix   string
		expected string
	}{
		{
			name:     "simple prefix",
			prefix:   "fwd",
			expected: "fwd",
		},
		{
			name:     "uppercase prefix gets lowercased",
			prefix:   "REQ",
			expected: "req",
		},
		{
			name:     "prefix with leading/trailing spaces gets trimmed",
			prefix:   "  req  ",
			expected: "req",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id := NewID(tc.prefix)

			prefix, rest, ok := strings.Cut(id, "_")
			require.True(t, ok, "ID should contain an underscore separator")
			assert.Equal(t, tc.expected, prefix)

			_, err := ulid.Parse(rest)
			assert.NoError(t, err, "suffix should be a valid ULID")
			assert.True(t, IsValidID(id))
		})
	}
}

func TestNewID_EmptyPrefixPanics(t *testing.T) {
	assert.Panics(t, func() { NewID("") })
	assert.Panics(t, func() { NewID("   ") })
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for range 100 {
		id := NewID("fwd")
		_, dup := seen[id]
		require.False(t, dup, "duplicate id generated: %s", id)
		seen[id] = struct{}{}
	}
}

func TestIsValidID(t *testing.T) {
	assert.False(t, IsValidID(""))
	assert.False(t, IsValidID("fwd"))
	assert.False(t, IsValidID("_01G0EZ1XTM37C5X11SQTDNCTM1"))
	assert.False(t, IsValidID("fwd_short"))
	assert.True(t, IsValidID("fwd_01G0EZ1XTM37C5X11SQTDNCTM1"))
}
