package domain

import "context"

// Storage is the durable key-value mirror for personal state. Values are
// JSON-serializable lists/mappings written whole under a fixed key. It offers
// no transactional guarantees across keys; in-memory store state stays
// authoritative for the session and storage is only read again at next start.
type Storage interface {
	// Get reads the value under key into dest. Returns false if absent.
	Get(key string, dest interface{}) (bool, error)

	// Set writes the value under key, replacing any previous value.
	Set(key string, value interface{}) error

	// Delete removes the value under key. Deleting an absent key is a no-op.
	Delete(key string) error

	Close() error
}

// TrendingWindow selects the trending aggregation period
type TrendingWindow string

const (
	TrendingDay  TrendingWindow = "day"
	TrendingWeek TrendingWindow = "week"
)

// DiscoverFilter holds the filter parameters for a discovery query.
// Zero values mean "not filtered".
type DiscoverFilter struct {
	GenreIDs  []int
	Languages []string // original-language codes, joined with "|" upstream
	Year      int
	MinRating float64 // implies a minimum vote-count floor upstream
	SortBy    string  // defaults to "popularity.desc"
}

// Catalog provides typed access to the external media catalog API.
// All listing calls are paginated; page numbers are 1-based.
type Catalog interface {
	// Popular returns the popular listing for a media type
	Popular(ctx context.Context, mediaType MediaType, page int) (Page, error)

	// TopRated returns the top-rated listing for a media type
	TopRated(ctx context.Context, mediaType MediaType, page int) (Page, error)

	// Trending returns trending content. scope is "all", "movie" or "tv".
	Trending(ctx context.Context, scope string, window TrendingWindow, page int) (Page, error)

	// SearchMulti searches movies and TV shows together
	SearchMulti(ctx context.Context, query string, page int) (Page, error)

	// Search searches a single media type
	Search(ctx context.Context, mediaType MediaType, query string, page int) (Page, error)

	// Discover returns filtered content for a media type
	Discover(ctx context.Context, mediaType MediaType, filter DiscoverFilter, page int) (Page, error)

	// Details returns the full record for an item with credits, videos,
	// similar and recommendations appended
	Details(ctx context.Context, mediaType MediaType, id int) (*ContentDetails, error)

	// ImageURL builds a full image URL from a path fragment and size token
	ImageURL(path, size string) string
}
