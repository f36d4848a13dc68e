package userdata

import (
	"log/slog"
	"time"

	"filmdb/internal/domain"
)

const keyWatchList = "watchlist"

// WatchList is the to-watch store
type WatchList struct {
	list *ContentList[domain.WatchListEntry]
}

func NewWatchList(storage domain.Storage, logger *slog.Logger) *WatchList {
	return &WatchList{list: NewContentList[domain.WatchListEntry](keyWatchList, storage, logger)}
}

// Load hydrates the store from storage
func (w *WatchList) Load() { w.list.Load() }

// Loaded reports whether hydration has completed
func (w *WatchList) Loaded() bool { return w.list.Loaded() }

// Toggle adds the item if absent, removes it otherwise.
// Returns whether the item is on the watch list afterwards.
func (w *WatchList) Toggle(ref domain.ContentRef) bool {
	key := ref.Key()
	if w.list.Has(key) {
		w.list.Remove(key)
		return false
	}
	w.list.Add(domain.WatchListEntry{ContentRef: ref, AddedAt: time.Now().UTC()})
	return true
}

// Contains reports whether the item is on the watch list
func (w *WatchList) Contains(id int, mediaType domain.MediaType) bool {
	return w.list.Has(domain.Key{ID: id, Type: mediaType})
}

// Remove drops the item from the watch list
func (w *WatchList) Remove(id int, mediaType domain.MediaType) {
	w.list.Remove(domain.Key{ID: id, Type: mediaType})
}

// Items returns all entries in insertion order
func (w *WatchList) Items() []domain.WatchListEntry { return w.list.Items() }

// Len returns the number of entries
func (w *WatchList) Len() int { return w.list.Len() }

// ByType returns entries of a single media type
func (w *WatchList) ByType(mediaType domain.MediaType) []domain.WatchListEntry {
	var out []domain.WatchListEntry
	for _, entry := range w.list.Items() {
		if entry.MediaType == mediaType {
			out = append(out, entry)
		}
	}
	return out
}

// Flush waits for outstanding write-throughs (shutdown path)
func (w *WatchList) Flush() { w.list.Flush() }
