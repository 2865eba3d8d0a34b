package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogShape(t *testing.T) {
	entries := Controls()
	require.Len(t, entries, Count)

	seen := make(map[string]bool, len(entries))
	perDomain := make(map[string]int)
	for _, e := range entries {
		assert.False(t, seen[e.ID], "duplicate control id %s", e.ID)
		seen[e.ID] = true
		perDomain[e.Domain]++
	}

	assert.Equal(t, 37, perDomain["A.5"])
	assert.Equal(t, 8, perDomain["A.6"])
	assert.Equal(t, 14, perDomain["A.7"])
	assert.Equal(t, 34, perDomain["A.8"])
}

func TestLookup(t *testing.T) {
	e, ok := Lookup("A.8.13")
	require.True(t, ok)
	assert.Equal(t, "Information backup", e.Title)
	assert.Equal(t, "A.8", e.Domain)

	_, ok = Lookup("A.9.1")
	assert.False(t, ok)
}

func TestControlsReturnsCopy(t *testing.T) {
	first := Controls()
	first[0].Title = "mutated"

	again := Controls()
	assert.NotEqual(t, "mutated", again[0].Title)
}
