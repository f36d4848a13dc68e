package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryOnlyRoundTrip(t *testing.T) {
	s, err := NewUserDataStore("")
	require.NoError(t, err)
	defer s.Close()

	type entry struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	ok, err := s.Get("likes", &[]entry{})
	require.NoError(t, err)
	assert.False(t, ok, "absent key should report not found")

	want := []entry{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	require.NoError(t, s.Set("likes", want))

	var got []entry
	ok, err = s.Get("likes", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, s.Delete("likes"))
	ok, err = s.Get("likes", &got)
	require.NoError(t, err)
	assert.False(t, ok, "deleted key should report not found")
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewUserDataStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("watchlist", map[string]int{"movie:5": 8}))
	require.NoError(t, s.Close())

	s2, err := NewUserDataStore(dir)
	require.NoError(t, err)
	defer s2.Close()

	var got map[string]int
	ok, err := s2.Get("watchlist", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]int{"movie:5": 8}, got)

	assert.FileExists(t, filepath.Join(dir, "filmdb.db"))
}

func TestSetOverwrites(t *testing.T) {
	s, err := NewUserDataStore("")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("search-history", []string{"alien"}))
	require.NoError(t, s.Set("search-history", []string{"blade runner", "alien"}))

	var got []string
	ok, err := s.Get("search-history", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"blade runner", "alien"}, got)
}

func TestDeleteAbsentKeyIsNoOp(t *testing.T) {
	s, err := NewUserDataStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	assert.NoError(t, s.Delete("never-written"))
}
