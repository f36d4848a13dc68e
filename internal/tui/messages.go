package tui

import (
	"filmdb/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// HydratedMsg signals that the personal stores have been loaded from disk
type HydratedMsg struct{}

// FeedPageMsg carries a fetched catalog page for a browse tab
type FeedPageMsg struct {
	Tab  Tab
	Page domain.Page
}

// SearchResultsMsg carries search results for a submitted query. Seq guards
// against stale responses arriving after the query changed.
type SearchResultsMsg struct {
	Query string
	Seq   int
	Page  domain.Page
}

// SearchDebounceMsg fires when the debounce window for a query expires
type SearchDebounceMsg struct {
	Seq int
}

// RecommendationsMsg carries the personalized pool
type RecommendationsMsg struct {
	Items []domain.ContentRef
}

// DetailsLoadedMsg carries the full record for the inspected item
type DetailsLoadedMsg struct {
	Details *domain.ContentDetails
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
