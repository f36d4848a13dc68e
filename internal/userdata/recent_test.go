package userdata

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmdb/internal/domain"
)

func TestRecentlyWatchedCapEvictsOldest(t *testing.T) {
	recent := NewRecentlyWatched(newMemStorage(t), nil)
	recent.Load()

	for i := 1; i <= recentlyWatchedCap+1; i++ {
		recent.Add(movie(i, fmt.Sprintf("Movie %d", i)))
	}

	assert.Equal(t, recentlyWatchedCap, recent.Len())
	assert.False(t, recent.IsWatched(1, domain.MediaTypeMovie), "oldest entry evicted")
	assert.True(t, recent.IsWatched(recentlyWatchedCap+1, domain.MediaTypeMovie))

	items := recent.Items()
	assert.Equal(t, recentlyWatchedCap+1, items[0].ID, "newest entry first")
}

func TestRecentlyWatchedRewatchMovesToFront(t *testing.T) {
	recent := NewRecentlyWatched(newMemStorage(t), nil)
	recent.Load()

	recent.Add(movie(1, "First"))
	recent.Add(movie(2, "Second"))
	recent.Add(movie(1, "First"))

	require.Equal(t, 2, recent.Len())
	items := recent.Items()
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 2, items[1].ID)
}

// Dedup policy: composite (id, media type), applied consistently with the
// other stores. A movie and a show sharing an id are distinct entries.
func TestRecentlyWatchedDedupUsesCompositeIdentity(t *testing.T) {
	recent := NewRecentlyWatched(newMemStorage(t), nil)
	recent.Load()

	recent.Add(movie(42, "Movie 42"))
	recent.Add(show(42, "Show 42"))

	assert.Equal(t, 2, recent.Len())
	assert.True(t, recent.IsWatched(42, domain.MediaTypeMovie))
	assert.True(t, recent.IsWatched(42, domain.MediaTypeTV))
}

func TestRecentlyWatchedSurvivesReload(t *testing.T) {
	storage := newMemStorage(t)

	recent := NewRecentlyWatched(storage, nil)
	recent.Load()
	recent.Add(movie(7, "Se7en"))
	recent.Flush()

	reloaded := NewRecentlyWatched(storage, nil)
	reloaded.Load()
	assert.True(t, reloaded.IsWatched(7, domain.MediaTypeMovie))
}
