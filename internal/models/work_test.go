package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	works := DefaultCatalog()
	require.Len(t, works, 7)
	assert.Equal(t, "The Stranger", works[0].Title)
	assert.Equal(t, 1942, works[0].Year)
	assert.Equal(t, "Absurdist fiction", works[0].Genre)

	t.Run("returns a copy", func(t *testing.T) {
		works[0].Title = "changed"
		assert.Equal(t, "The Stranger", DefaultCatalog()[0].Title)
	})

	t.Run("titles are unique ignoring case", func(t *testing.T) {
		assert.Len(t, Dedupe(DefaultCatalog()), 7)
	})
}

func TestDefaultCatalogN(t *testing.T) {
	assert.Len(t, DefaultCatalogN(3), 3)
	assert.Len(t, DefaultCatalogN(10), 7)
	assert.Empty(t, DefaultCatalogN(0))
	assert.Empty(t, DefaultCatalogN(-4))
	assert.NotNil(t, DefaultCatalogN(0))
}

func TestLookupDefault(t *testing.T) {
	w, ok := LookupDefault("the PLAGUE")
	require.True(t, ok)
	assert.Equal(t, "The Plague", w.Title)
	assert.Equal(t, "Philosophical novel", w.Genre)

	_, ok = LookupDefault("Not A Real Book")
	assert.False(t, ok)
}

func TestDedupe(t *testing.T) {
	in := []Work{
		{Title: "The Fall", Year: 1956},
		{Title: "THE FALL", Year: 2001},
		{Title: "   "},
		{Title: "The Rebel"},
	}

	out := Dedupe(in)

	require.Len(t, out, 2)
	assert.Equal(t, 1956, out[0].Year)
	assert.Equal(t, "The Rebel", out[1].Title)
}
