package userdata

import (
	"log/slog"
	"time"

	"filmdb/internal/domain"
)

const keyLikes = "likes"

// Likes is the liked-content store. Toggling is the canonical entry point;
// entries are stamped with the like time at insertion.
type Likes struct {
	list *ContentList[domain.LikedEntry]
}

func NewLikes(storage domain.Storage, logger *slog.Logger) *Likes {
	return &Likes{list: NewContentList[domain.LikedEntry](keyLikes, storage, logger)}
}

// Load hydrates the store from storage
func (l *Likes) Load() { l.list.Load() }

// Loaded reports whether hydration has completed
func (l *Likes) Loaded() bool { return l.list.Loaded() }

// Toggle likes the item if it is not liked, unlikes it otherwise.
// Returns whether the item is liked afterwards.
func (l *Likes) Toggle(ref domain.ContentRef) bool {
	key := ref.Key()
	if l.list.Has(key) {
		l.list.Remove(key)
		return false
	}
	l.list.Add(domain.LikedEntry{ContentRef: ref, LikedAt: time.Now().UTC()})
	return true
}

// IsLiked reports whether the item is liked
func (l *Likes) IsLiked(id int, mediaType domain.MediaType) bool {
	return l.list.Has(domain.Key{ID: id, Type: mediaType})
}

// Items returns all liked entries in like order
func (l *Likes) Items() []domain.LikedEntry { return l.list.Items() }

// Len returns the number of liked items
func (l *Likes) Len() int { return l.list.Len() }

// ByType returns liked entries of a single media type
func (l *Likes) ByType(mediaType domain.MediaType) []domain.LikedEntry {
	var out []domain.LikedEntry
	for _, entry := range l.list.Items() {
		if entry.MediaType == mediaType {
			out = append(out, entry)
		}
	}
	return out
}

// Refs returns the liked content records, for taste-profile derivation
func (l *Likes) Refs() []domain.ContentRef {
	items := l.list.Items()
	refs := make([]domain.ContentRef, len(items))
	for i, entry := range items {
		refs[i] = entry.ContentRef
	}
	return refs
}

// ClearAll removes every liked item
func (l *Likes) ClearAll() { l.list.Clear() }

// Flush waits for outstanding write-throughs (shutdown path)
func (l *Likes) Flush() { l.list.Flush() }
