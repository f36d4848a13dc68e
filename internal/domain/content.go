package domain

import (
	"fmt"
	"time"
)

// MediaType distinguishes catalog content types
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// Key is the composite identity of a catalog item. Movies and TV shows live
// in separate id spaces upstream, so the same numeric id can refer to both;
// the (ID, Type) pair is what makes an item unique.
type Key struct {
	ID   int
	Type MediaType
}

// String returns the key in "type:id" form (used as a storage map key)
func (k Key) String() string {
	return fmt.Sprintf("%s:%d", k.Type, k.ID)
}

// CastMember is a cast excerpt entry carried on saved content
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character,omitempty"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// ContentRef is the minimal identifying + display record for a catalog item.
// It caches the catalog fields needed to render a saved item without
// re-fetching it.
type ContentRef struct {
	ID               int          `json:"id"`
	MediaType        MediaType    `json:"media_type"`
	Title            string       `json:"title"`
	Overview         string       `json:"overview,omitempty"`
	PosterPath       string       `json:"poster_path,omitempty"`
	BackdropPath     string       `json:"backdrop_path,omitempty"`
	VoteAverage      float64      `json:"vote_average,omitempty"`
	VoteCount        int          `json:"vote_count,omitempty"`
	GenreIDs         []int        `json:"genre_ids,omitempty"`
	OriginalLanguage string       `json:"original_language,omitempty"`
	ReleaseDate      string       `json:"release_date,omitempty"`
	Cast             []CastMember `json:"cast,omitempty"`
}

// Key returns the composite identity of the item
func (c ContentRef) Key() Key { return Key{ID: c.ID, Type: c.MediaType} }

// Year returns the release/first-air year, or 0 if unknown
func (c ContentRef) Year() int {
	if len(c.ReleaseDate) < 4 {
		return 0
	}
	var year int
	if _, err := fmt.Sscanf(c.ReleaseDate[:4], "%d", &year); err != nil {
		return 0
	}
	return year
}

// GetDescription returns a short secondary line for list rendering
func (c ContentRef) GetDescription() string {
	if y := c.Year(); y > 0 {
		return fmt.Sprintf("%d", y)
	}
	return string(c.MediaType)
}

// LikedEntry is a ContentRef stamped when the user liked it
type LikedEntry struct {
	ContentRef
	LikedAt time.Time `json:"liked_at"`
}

// WatchListEntry is a ContentRef stamped when added to the watch list
type WatchListEntry struct {
	ContentRef
	AddedAt time.Time `json:"added_at"`
}

// CollectionEntry is a ContentRef stamped when added to a collection
type CollectionEntry struct {
	ContentRef
	AddedAt time.Time `json:"added_at"`
}

// WatchedEntry is a ContentRef stamped when the user marked it watched
type WatchedEntry struct {
	ContentRef
	WatchedAt time.Time `json:"watchedAt"`
}

// SearchHistoryEntry records a past search query
type SearchHistoryEntry struct {
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
}

// Genre is a resolved genre (id + display name) from the catalog
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Video is a trailer/clip reference attached to a detail record
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// ContentDetails is the full detail record for a single item, including
// related data appended by the catalog (credits, videos, similar,
// recommendations).
type ContentDetails struct {
	ContentRef
	Tagline         string       `json:"tagline,omitempty"`
	Runtime         int          `json:"runtime,omitempty"`
	Genres          []Genre      `json:"genres,omitempty"`
	Status          string       `json:"status,omitempty"`
	NumberOfSeasons int          `json:"number_of_seasons,omitempty"`
	Videos          []Video      `json:"videos,omitempty"`
	Similar         []ContentRef `json:"similar,omitempty"`
	Recommendations []ContentRef `json:"recommendations,omitempty"`
}

// Page is one page of catalog results
type Page struct {
	Results      []ContentRef
	Page         int
	TotalPages   int
	TotalResults int
}
