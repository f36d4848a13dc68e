package userdata

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmdb/internal/domain"
	"filmdb/internal/store"
)

func newMemStorage(t *testing.T) domain.Storage {
	t.Helper()
	s, err := store.NewUserDataStore("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func movie(id int, title string) domain.ContentRef {
	return domain.ContentRef{ID: id, MediaType: domain.MediaTypeMovie, Title: title}
}

func show(id int, title string) domain.ContentRef {
	return domain.ContentRef{ID: id, MediaType: domain.MediaTypeTV, Title: title}
}

// brokenStorage fails every operation, for degraded-mode tests
type brokenStorage struct{}

func (brokenStorage) Get(string, interface{}) (bool, error) { return false, errors.New("corrupt") }
func (brokenStorage) Set(string, interface{}) error         { return errors.New("quota exceeded") }
func (brokenStorage) Delete(string) error                   { return errors.New("quota exceeded") }
func (brokenStorage) Close() error                          { return nil }

func TestAddIsIdempotentOnIdentity(t *testing.T) {
	likes := NewLikes(newMemStorage(t), nil)
	likes.Load()

	assert.True(t, likes.Toggle(movie(603, "The Matrix")))
	assert.Equal(t, 1, likes.Len())

	// Same identity again via the underlying list must not grow it
	added := NewContentList[domain.LikedEntry]("likes-2", newMemStorage(t), nil)
	added.Load()
	entry := domain.LikedEntry{ContentRef: movie(603, "The Matrix")}
	assert.True(t, added.Add(entry))
	assert.False(t, added.Add(entry))
	assert.Equal(t, 1, added.Len())
}

func TestToggleParity(t *testing.T) {
	likes := NewLikes(newMemStorage(t), nil)
	likes.Load()

	ref := movie(550, "Fight Club")

	// Odd number of toggles -> present
	for i := 0; i < 3; i++ {
		likes.Toggle(ref)
	}
	assert.True(t, likes.IsLiked(550, domain.MediaTypeMovie))

	// Even number -> absent
	likes.Toggle(ref)
	assert.False(t, likes.IsLiked(550, domain.MediaTypeMovie))
	assert.Equal(t, 0, likes.Len())
}

func TestCompositeIdentityKeepsMovieAndShowDistinct(t *testing.T) {
	likes := NewLikes(newMemStorage(t), nil)
	likes.Load()

	likes.Toggle(movie(100, "Lock, Stock"))
	likes.Toggle(show(100, "Some Show"))

	assert.Equal(t, 2, likes.Len())
	assert.True(t, likes.IsLiked(100, domain.MediaTypeMovie))
	assert.True(t, likes.IsLiked(100, domain.MediaTypeTV))

	// Removing the movie leaves the show
	likes.Toggle(movie(100, "Lock, Stock"))
	assert.False(t, likes.IsLiked(100, domain.MediaTypeMovie))
	assert.True(t, likes.IsLiked(100, domain.MediaTypeTV))
}

func TestInsertionOrderIsPreserved(t *testing.T) {
	watch := NewWatchList(newMemStorage(t), nil)
	watch.Load()

	watch.Toggle(movie(1, "First"))
	watch.Toggle(movie(2, "Second"))
	watch.Toggle(movie(3, "Third"))

	items := watch.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "First", items[0].Title)
	assert.Equal(t, "Second", items[1].Title)
	assert.Equal(t, "Third", items[2].Title)
}

func TestWatchListToggleScenario(t *testing.T) {
	watch := NewWatchList(newMemStorage(t), nil)
	watch.Load()

	ref := movie(5, "Heat")

	assert.True(t, watch.Toggle(ref))
	assert.True(t, watch.Contains(5, domain.MediaTypeMovie))
	assert.Equal(t, 1, watch.Len())

	assert.False(t, watch.Toggle(ref))
	assert.Equal(t, 0, watch.Len())
}

func TestWriteThroughSurvivesReload(t *testing.T) {
	storage := newMemStorage(t)

	likes := NewLikes(storage, nil)
	likes.Load()
	likes.Toggle(movie(603, "The Matrix"))
	likes.Toggle(show(1396, "Breaking Bad"))
	likes.Flush()

	reloaded := NewLikes(storage, nil)
	reloaded.Load()
	assert.Equal(t, 2, reloaded.Len())
	assert.True(t, reloaded.IsLiked(603, domain.MediaTypeMovie))
	assert.True(t, reloaded.IsLiked(1396, domain.MediaTypeTV))
}

// recordingStorage captures every Set value in arrival order
type recordingStorage struct {
	mu   sync.Mutex
	sets []interface{}
}

func (r *recordingStorage) Get(string, interface{}) (bool, error) { return false, nil }
func (r *recordingStorage) Set(_ string, value interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets = append(r.sets, value)
	return nil
}
func (r *recordingStorage) Delete(string) error { return nil }
func (r *recordingStorage) Close() error        { return nil }

func TestWriteThroughKeepsNewestSnapshot(t *testing.T) {
	rec := &recordingStorage{}
	w := newStoreWriter("likes", rec, slog.Default())

	// Scheduling order of the background writes is arbitrary, but the
	// newest snapshot must be the one that ends up in storage.
	for i := 0; i < 50; i++ {
		w.dispatch(i)
	}
	w.flush()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.NotEmpty(t, rec.sets)
	assert.Equal(t, 49, rec.sets[len(rec.sets)-1])
}

func TestReloadAfterRapidMutations(t *testing.T) {
	storage := newMemStorage(t)

	watch := NewWatchList(storage, nil)
	watch.Load()
	for i := 1; i <= 30; i++ {
		watch.Toggle(movie(i, fmt.Sprintf("Movie %d", i)))
	}
	watch.Toggle(movie(30, "Movie 30"))
	watch.Flush()

	reloaded := NewWatchList(storage, nil)
	reloaded.Load()
	assert.Equal(t, 29, reloaded.Len())
	assert.False(t, reloaded.Contains(30, domain.MediaTypeMovie), "the undo of the last toggle is what persists")
}

func TestLoadFailureDegradesToEmpty(t *testing.T) {
	likes := NewLikes(brokenStorage{}, nil)
	likes.Load()

	assert.True(t, likes.Loaded(), "hydration completes even on failure")
	assert.Equal(t, 0, likes.Len())

	// Mutations still work in memory; the failed write is swallowed
	likes.Toggle(movie(1, "Whatever"))
	likes.Flush()
	assert.True(t, likes.IsLiked(1, domain.MediaTypeMovie))
}
