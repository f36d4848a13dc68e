package userdata

import (
	"log/slog"
	"sync"
	"time"

	"filmdb/internal/domain"
)

const keyCollectionItems = "collection-items"

// Collections is the named-bucket store. The bucket descriptors are compiled
// in (domain.DefaultCollections); only the per-bucket item lists persist,
// all under a single storage key mapping bucket id to its entries.
type Collections struct {
	storage     domain.Storage
	logger      *slog.Logger
	writer      *storeWriter
	descriptors []domain.Collection

	mu     sync.RWMutex
	items  map[string][]domain.CollectionEntry
	loaded bool
}

func NewCollections(storage domain.Storage, logger *slog.Logger) *Collections {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collections{
		storage:     storage,
		logger:      logger,
		writer:      newStoreWriter(keyCollectionItems, storage, logger),
		descriptors: domain.DefaultCollections,
		items:       make(map[string][]domain.CollectionEntry),
	}
}

// Load hydrates all bucket item lists from storage
func (c *Collections) Load() {
	items := make(map[string][]domain.CollectionEntry)
	ok, err := c.storage.Get(keyCollectionItems, &items)
	if err != nil {
		c.logger.Error("failed to load collections", "error", err)
	}

	c.mu.Lock()
	if ok {
		c.items = items
	}
	c.loaded = true
	c.mu.Unlock()
}

// Loaded reports whether hydration has completed
func (c *Collections) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// AddTo appends the item to a bucket if not already present by identity.
// Returns false if it was already there.
func (c *Collections) AddTo(bucketID string, ref domain.ContentRef) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := ref.Key()
	for _, entry := range c.items[bucketID] {
		if entry.Key() == key {
			return false
		}
	}
	c.items[bucketID] = append(c.items[bucketID], domain.CollectionEntry{
		ContentRef: ref,
		AddedAt:    time.Now().UTC(),
	})
	c.persistLocked()
	return true
}

// RemoveFrom drops the item from a bucket
func (c *Collections) RemoveFrom(bucketID string, id int, mediaType domain.MediaType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := domain.Key{ID: id, Type: mediaType}
	entries := c.items[bucketID]
	kept := entries[:0]
	removed := false
	for _, entry := range entries {
		if entry.Key() == key {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	if removed {
		c.items[bucketID] = kept
		c.persistLocked()
	}
}

// IsIn reports whether the item is in the bucket
func (c *Collections) IsIn(bucketID string, id int, mediaType domain.MediaType) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	key := domain.Key{ID: id, Type: mediaType}
	for _, entry := range c.items[bucketID] {
		if entry.Key() == key {
			return true
		}
	}
	return false
}

// ItemsOf returns a snapshot of the bucket's entries in insertion order
func (c *Collections) ItemsOf(bucketID string) []domain.CollectionEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := c.items[bucketID]
	out := make([]domain.CollectionEntry, len(entries))
	copy(out, entries)
	return out
}

// List returns every bucket descriptor annotated with its current items.
// The view is recomputed on each call, not cached.
func (c *Collections) List() []domain.CollectionView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.CollectionView, len(c.descriptors))
	for i, desc := range c.descriptors {
		entries := c.items[desc.ID]
		items := make([]domain.CollectionEntry, len(entries))
		copy(items, entries)
		out[i] = domain.CollectionView{Collection: desc, Items: items}
	}
	return out
}

// Descriptors returns the compiled-in bucket descriptors
func (c *Collections) Descriptors() []domain.Collection {
	return c.descriptors
}

// MembershipOf returns the set of bucket ids containing the item
func (c *Collections) MembershipOf(id int, mediaType domain.MediaType) map[string]bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	key := domain.Key{ID: id, Type: mediaType}
	membership := make(map[string]bool)
	for bucketID, entries := range c.items {
		for _, entry := range entries {
			if entry.Key() == key {
				membership[bucketID] = true
				break
			}
		}
	}
	return membership
}

func (c *Collections) persistLocked() {
	snapshot := make(map[string][]domain.CollectionEntry, len(c.items))
	for bucketID, entries := range c.items {
		copied := make([]domain.CollectionEntry, len(entries))
		copy(copied, entries)
		snapshot[bucketID] = copied
	}
	c.writer.dispatch(snapshot)
}

// Flush waits for outstanding write-throughs (shutdown path)
func (c *Collections) Flush() { c.writer.flush() }
