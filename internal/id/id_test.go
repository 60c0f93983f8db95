package id

import (
	"sort"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsValidULID(t *testing.T) {
	s := New()
	require.Len(t, s, 26)
	_, err := ulid.ParseStrict(s)
	assert.NoError(t, err)
}

func TestNewIsUniqueAndOrdered(t *testing.T) {
	const n = 1000

	ids := make([]string, n)
	seen := make(map[string]bool, n)
	for i := range ids {
		ids[i] = New()
		require.False(t, seen[ids[i]], "duplicate id %s", ids[i])
		seen[ids[i]] = true
	}

	assert.True(t, sort.StringsAreSorted(ids), "ids should sort by generation order")
}
