package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osukit/diffcalc/app/rulesets/api"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	cache, err := NewCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)

	t.Cleanup(func() { cache.Close() })

	return cache
}

func TestCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)

	attr := api.NewAttributes()
	attr.Set("star_rating", 5.25)
	attr.Set("max_combo", 100)

	strains := []float64{1, 2.5, 3}

	require.NoError(t, cache.Store("abc", 0, "HRDT", 1, attr, strains))

	restored, restoredStrains, ok, err := cache.Lookup("abc", 0, "HRDT", 1)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, attr.Keys(), restored.Keys())
	assert.Equal(t, strains, restoredStrains)

	stars, _ := restored.Get("star_rating")
	assert.Equal(t, 5.25, stars)
}

func TestCacheMiss(t *testing.T) {
	cache := newTestCache(t)

	_, _, ok, err := cache.Lookup("missing", 0, "NM", 1)
	require.NoError(t, err)

	assert.False(t, ok)
}

func TestCacheKeyIncludesVersionAndMods(t *testing.T) {
	cache := newTestCache(t)

	attr := api.NewAttributes()
	attr.Set("star_rating", 1)

	require.NoError(t, cache.Store("abc", 0, "NM", 1, attr, nil))

	_, _, ok, err := cache.Lookup("abc", 0, "NM", 2)
	require.NoError(t, err)
	assert.False(t, ok, "a new engine version must miss")

	_, _, ok, err = cache.Lookup("abc", 0, "HR", 1)
	require.NoError(t, err)
	assert.False(t, ok, "different mods must miss")

	_, _, ok, err = cache.Lookup("abc", 1, "NM", 1)
	require.NoError(t, err)
	assert.False(t, ok, "a different ruleset must miss")
}

func TestCacheOverwrite(t *testing.T) {
	cache := newTestCache(t)

	attr := api.NewAttributes()
	attr.Set("star_rating", 1)

	require.NoError(t, cache.Store("abc", 0, "NM", 1, attr, nil))

	attr.Set("star_rating", 2)
	require.NoError(t, cache.Store("abc", 0, "NM", 1, attr, nil))

	restored, _, ok, err := cache.Lookup("abc", 0, "NM", 1)
	require.NoError(t, err)
	require.True(t, ok)

	stars, _ := restored.Get("star_rating")
	assert.Equal(t, 2.0, stars)
}
