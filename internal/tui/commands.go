package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"filmdb/internal/discovery"
	"filmdb/internal/domain"
)

// Command factories for async operations

const (
	requestTimeout = 30 * time.Second

	// searchDebounce delays the catalog round trip while the user types
	searchDebounce = 300 * time.Millisecond

	statusDisplayTime = 3 * time.Second
)

type loader interface {
	Load()
}

// HydrateCmd loads every personal store from disk
func HydrateCmd(stores ...loader) tea.Cmd {
	return func() tea.Msg {
		for _, s := range stores {
			s.Load()
		}
		return HydratedMsg{}
	}
}

// LoadHomeCmd fetches a page of the selected home listing
func LoadHomeCmd(catalog domain.Catalog, listing HomeListing, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var result domain.Page
		var err error
		switch listing {
		case ListingTrending:
			result, err = catalog.Trending(ctx, "all", domain.TrendingWeek, page)
		case ListingPopularMovies:
			result, err = catalog.Popular(ctx, domain.MediaTypeMovie, page)
		case ListingTopRatedMovies:
			result, err = catalog.TopRated(ctx, domain.MediaTypeMovie, page)
		case ListingPopularTV:
			result, err = catalog.Popular(ctx, domain.MediaTypeTV, page)
		case ListingTopRatedTV:
			result, err = catalog.TopRated(ctx, domain.MediaTypeTV, page)
		}
		if err != nil {
			return ErrMsg{Err: err, Context: "loading " + listing.Title()}
		}
		return FeedPageMsg{Tab: TabHome, Page: result}
	}
}

// DebounceSearchCmd fires a debounce expiry for the given query sequence
func DebounceSearchCmd(seq int) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return SearchDebounceMsg{Seq: seq}
	})
}

// SearchCmd runs a combined search for a query page. The caller's context
// lets a newer query abort this one mid-flight.
func SearchCmd(parent context.Context, svc *discovery.Service, query string, seq, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, requestTimeout)
		defer cancel()

		result, err := svc.CombinedSearch(ctx, query, page)
		if err != nil {
			if parent.Err() != nil {
				return nil // superseded by a newer query
			}
			return ErrMsg{Err: err, Context: "searching"}
		}
		return SearchResultsMsg{Query: query, Seq: seq, Page: result}
	}
}

// LoadRecommendationsCmd builds the personalized pool from the liked items
func LoadRecommendationsCmd(svc *discovery.Service, liked []domain.ContentRef) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		items, err := svc.ForYou(ctx, liked)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading recommendations"}
		}
		return RecommendationsMsg{Items: items}
	}
}

// LoadDetailsCmd fetches the full record for an item
func LoadDetailsCmd(catalog domain.Catalog, mediaType domain.MediaType, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		details, err := catalog.Details(ctx, mediaType, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading details"}
		}
		return DetailsLoadedMsg{Details: details}
	}
}

// StatusCmd shows a status message that clears itself after a delay
func StatusCmd(message string, isError bool) tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return StatusMsg{Message: message, IsError: isError} },
		tea.Tick(statusDisplayTime, func(time.Time) tea.Msg { return ClearStatusMsg{} }),
	)
}
