// Package userdata holds the personal-state stores: likes, watch list,
// collections, ratings, recently watched and search history. Each store keeps
// its state in memory for the session and mirrors every mutation to durable
// storage with a fire-and-forget write-through.
package userdata

import (
	"log/slog"
	"sync"

	"filmdb/internal/domain"
)

type keyedEntry interface {
	Key() domain.Key
}

// ContentList is a named, ordered list of saved content entries backed by
// durable storage. Entries are unique by (id, media type) and kept in
// insertion order; the list applies no sorting of its own.
type ContentList[E keyedEntry] struct {
	storageKey string
	storage    domain.Storage
	logger     *slog.Logger
	writer     *storeWriter

	mu     sync.RWMutex
	items  []E
	loaded bool
}

func NewContentList[E keyedEntry](storageKey string, storage domain.Storage, logger *slog.Logger) *ContentList[E] {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentList[E]{
		storageKey: storageKey,
		storage:    storage,
		logger:     logger,
		writer:     newStoreWriter(storageKey, storage, logger),
	}
}

// Load hydrates the list from storage. It runs once at startup; an absent key
// or a read failure degrades to an empty list. The list reports loaded either
// way so the session can proceed.
func (l *ContentList[E]) Load() {
	var items []E
	ok, err := l.storage.Get(l.storageKey, &items)
	if err != nil {
		l.logger.Error("failed to load list", "key", l.storageKey, "error", err)
	}

	l.mu.Lock()
	if ok {
		l.items = items
	}
	l.loaded = true
	l.mu.Unlock()
}

// Loaded reports whether hydration has completed
func (l *ContentList[E]) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

// Add appends the entry if its identity is not already present.
// Returns false if the entry was already in the list.
func (l *ContentList[E]) Add(entry E) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := entry.Key()
	for _, existing := range l.items {
		if existing.Key() == key {
			return false
		}
	}
	l.items = append(l.items, entry)
	l.persistLocked()
	return true
}

// Remove filters out entries matching the key. Returns true if one was removed.
func (l *ContentList[E]) Remove(key domain.Key) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.items[:0]
	removed := false
	for _, entry := range l.items {
		if entry.Key() == key {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	l.items = kept
	if removed {
		l.persistLocked()
	}
	return removed
}

// Has reports membership over in-memory state
func (l *ContentList[E]) Has(key domain.Key) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, entry := range l.items {
		if entry.Key() == key {
			return true
		}
	}
	return false
}

// Items returns a snapshot in insertion order
func (l *ContentList[E]) Items() []E {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]E, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of entries
func (l *ContentList[E]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Clear removes all entries
func (l *ContentList[E]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
	l.persistLocked()
}

// persistLocked dispatches a write-through of the full list. The snapshot is
// taken under the mutation lock and the writer keeps only the newest one, so
// back-to-back mutations cannot land on disk out of order. Callers must
// hold l.mu.
func (l *ContentList[E]) persistLocked() {
	snapshot := make([]E, len(l.items))
	copy(snapshot, l.items)
	l.writer.dispatch(snapshot)
}

// Flush blocks until all dispatched write-throughs have completed.
// Called on shutdown so the final state reaches disk.
func (l *ContentList[E]) Flush() {
	l.writer.flush()
}
