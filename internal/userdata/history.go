package userdata

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"filmdb/internal/domain"
)

const (
	keySearchHistory = "search-history"

	// searchHistoryCap bounds the list; re-adding an existing query moves it
	// to the front without growing the list.
	searchHistoryCap = 15
)

// SearchHistory keeps the most-recent-first capped list of search queries.
// Queries are trimmed on insert and compared exactly (case-sensitive).
type SearchHistory struct {
	storage domain.Storage
	logger  *slog.Logger
	writer  *storeWriter

	mu     sync.RWMutex
	items  []domain.SearchHistoryEntry
	loaded bool
}

func NewSearchHistory(storage domain.Storage, logger *slog.Logger) *SearchHistory {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchHistory{
		storage: storage,
		logger:  logger,
		writer:  newStoreWriter(keySearchHistory, storage, logger),
	}
}

// Load hydrates the list from storage
func (h *SearchHistory) Load() {
	var items []domain.SearchHistoryEntry
	ok, err := h.storage.Get(keySearchHistory, &items)
	if err != nil {
		h.logger.Error("failed to load search history", "error", err)
	}

	h.mu.Lock()
	if ok {
		h.items = items
	}
	h.loaded = true
	h.mu.Unlock()
}

// Loaded reports whether hydration has completed
func (h *SearchHistory) Loaded() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loaded
}

// Add records a query at the front of the history. Empty and
// whitespace-only queries are ignored.
func (h *SearchHistory) Add(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	next := make([]domain.SearchHistoryEntry, 0, len(h.items)+1)
	next = append(next, domain.SearchHistoryEntry{Query: query, Timestamp: time.Now().UTC()})
	for _, entry := range h.items {
		if entry.Query == query {
			continue
		}
		next = append(next, entry)
	}
	if len(next) > searchHistoryCap {
		next = next[:searchHistoryCap]
	}
	h.items = next
	h.persistLocked()
}

// Items returns a most-recent-first snapshot
func (h *SearchHistory) Items() []domain.SearchHistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]domain.SearchHistoryEntry, len(h.items))
	copy(out, h.items)
	return out
}

// Queries returns just the query strings, most recent first
func (h *SearchHistory) Queries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]string, len(h.items))
	for i, entry := range h.items {
		out[i] = entry.Query
	}
	return out
}

// Len returns the number of entries
func (h *SearchHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.items)
}

// Clear removes all entries
func (h *SearchHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = nil
	h.persistLocked()
}

func (h *SearchHistory) persistLocked() {
	snapshot := make([]domain.SearchHistoryEntry, len(h.items))
	copy(snapshot, h.items)
	h.writer.dispatch(snapshot)
}

// Flush waits for outstanding write-throughs (shutdown path)
func (h *SearchHistory) Flush() { h.writer.flush() }
