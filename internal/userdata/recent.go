package userdata

import (
	"log/slog"
	"sync"
	"time"

	"filmdb/internal/domain"
)

const (
	keyRecentlyWatched = "recently-watched"

	// recentlyWatchedCap bounds the list; inserting beyond it evicts the
	// oldest entry by watch time.
	recentlyWatchedCap = 50
)

// RecentlyWatched keeps the most-recent-first capped list of watched content.
// Re-watching an item moves it to the front. Deduplication uses the composite
// (id, media type) identity, same as every other store.
type RecentlyWatched struct {
	storage domain.Storage
	logger  *slog.Logger
	writer  *storeWriter

	mu     sync.RWMutex
	items  []domain.WatchedEntry
	loaded bool
}

func NewRecentlyWatched(storage domain.Storage, logger *slog.Logger) *RecentlyWatched {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecentlyWatched{
		storage: storage,
		logger:  logger,
		writer:  newStoreWriter(keyRecentlyWatched, storage, logger),
	}
}

// Load hydrates the list from storage
func (r *RecentlyWatched) Load() {
	var items []domain.WatchedEntry
	ok, err := r.storage.Get(keyRecentlyWatched, &items)
	if err != nil {
		r.logger.Error("failed to load recently watched", "error", err)
	}

	r.mu.Lock()
	if ok {
		r.items = items
	}
	r.loaded = true
	r.mu.Unlock()
}

// Loaded reports whether hydration has completed
func (r *RecentlyWatched) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// Add records the item as watched now, moving it to the front if already
// present and evicting past the cap.
func (r *RecentlyWatched) Add(ref domain.ContentRef) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ref.Key()
	next := make([]domain.WatchedEntry, 0, len(r.items)+1)
	next = append(next, domain.WatchedEntry{ContentRef: ref, WatchedAt: time.Now().UTC()})
	for _, entry := range r.items {
		if entry.Key() == key {
			continue
		}
		next = append(next, entry)
	}
	if len(next) > recentlyWatchedCap {
		next = next[:recentlyWatchedCap]
	}
	r.items = next
	r.persistLocked()
}

// IsWatched reports whether the item is in the recent list
func (r *RecentlyWatched) IsWatched(id int, mediaType domain.MediaType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := domain.Key{ID: id, Type: mediaType}
	for _, entry := range r.items {
		if entry.Key() == key {
			return true
		}
	}
	return false
}

// Items returns a most-recent-first snapshot
func (r *RecentlyWatched) Items() []domain.WatchedEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.WatchedEntry, len(r.items))
	copy(out, r.items)
	return out
}

// Len returns the number of entries
func (r *RecentlyWatched) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Clear removes all entries
func (r *RecentlyWatched) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
	r.persistLocked()
}

func (r *RecentlyWatched) persistLocked() {
	snapshot := make([]domain.WatchedEntry, len(r.items))
	copy(snapshot, r.items)
	r.writer.dispatch(snapshot)
}

// Flush waits for outstanding write-throughs (shutdown path)
func (r *RecentlyWatched) Flush() { r.writer.flush() }
