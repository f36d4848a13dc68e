package discovery

import "filmdb/internal/domain"

// Feed accumulates paginated catalog results for infinite scrolling. Items
// already present are skipped when later pages overlap with earlier ones,
// which happens when the upstream listing shifts between requests.
type Feed struct {
	items      []domain.ContentRef
	seen       map[domain.Key]bool
	page       int
	totalPages int
}

func NewFeed() *Feed {
	return &Feed{seen: make(map[domain.Key]bool)}
}

// NextPage returns the page number to request next
func (f *Feed) NextPage() int {
	return f.page + 1
}

// Merge folds a fetched page into the feed and returns how many new items
// were appended. Duplicates keep their original position.
func (f *Feed) Merge(page domain.Page) int {
	added := 0
	for _, item := range page.Results {
		key := item.Key()
		if f.seen[key] {
			continue
		}
		f.seen[key] = true
		f.items = append(f.items, item)
		added++
	}
	f.page = page.Page
	f.totalPages = page.TotalPages
	return added
}

// HasMore reports whether another page exists upstream
func (f *Feed) HasMore() bool {
	return f.page < f.totalPages
}

// Items returns the accumulated results in merge order
func (f *Feed) Items() []domain.ContentRef {
	out := make([]domain.ContentRef, len(f.items))
	copy(out, f.items)
	return out
}

func (f *Feed) Len() int {
	return len(f.items)
}

// Reset clears the feed for a fresh query
func (f *Feed) Reset() {
	f.items = nil
	f.seen = make(map[domain.Key]bool)
	f.page = 0
	f.totalPages = 0
}
