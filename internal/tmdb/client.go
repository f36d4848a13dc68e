// Package tmdb implements domain.Catalog against The Movie Database v3 API.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"filmdb/internal/domain"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"

	defaultTimeout = 15 * time.Second
	userAgent      = "FilmDB/1.0"

	// minVoteCount floors rating-filtered discovery so low-sample outliers
	// don't dominate
	minVoteCount = 100

	defaultSort = "popularity.desc"
)

// Client implements domain.Catalog
type Client struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	httpClient   *http.Client
	logger       *slog.Logger
}

// NewClient creates a TMDB API client. Empty baseURL/imageBaseURL fall back
// to the public endpoints.
func NewClient(apiKey, baseURL, imageBaseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if imageBaseURL == "" {
		imageBaseURL = DefaultImageBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:      baseURL,
		imageBaseURL: imageBaseURL,
		apiKey:       apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// doRequest performs an authenticated GET against the API
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return nil, domain.ErrCatalogUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized:
		return nil, domain.ErrAuthFailed
	case http.StatusNotFound:
		return nil, domain.ErrNotFound
	default:
		c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}

func (c *Client) getPage(ctx context.Context, path string, query url.Values, fallback domain.MediaType) (domain.Page, error) {
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return domain.Page{}, err
	}
	var d pageDTO
	if err := json.Unmarshal(body, &d); err != nil {
		return domain.Page{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return mapPage(d, fallback), nil
}

// Popular returns the popular listing for a media type
func (c *Client) Popular(ctx context.Context, mediaType domain.MediaType, page int) (domain.Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	return c.getPage(ctx, fmt.Sprintf("/%s/popular", mediaType), query, mediaType)
}

// TopRated returns the top-rated listing for a media type
func (c *Client) TopRated(ctx context.Context, mediaType domain.MediaType, page int) (domain.Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("language", "en-US")
	return c.getPage(ctx, fmt.Sprintf("/%s/top_rated", mediaType), query, mediaType)
}

// Trending returns trending content; scope is "all", "movie" or "tv"
func (c *Client) Trending(ctx context.Context, scope string, window domain.TrendingWindow, page int) (domain.Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	return c.getPage(ctx, fmt.Sprintf("/trending/%s/%s", scope, window), query, "")
}

// SearchMulti searches movies and TV shows together. Person results are
// dropped during mapping.
func (c *Client) SearchMulti(ctx context.Context, searchQuery string, page int) (domain.Page, error) {
	query := url.Values{}
	query.Set("query", searchQuery)
	query.Set("page", strconv.Itoa(page))
	return c.getPage(ctx, "/search/multi", query, "")
}

// Search searches a single media type. Results are tagged with the media
// type since the per-type endpoints omit it.
func (c *Client) Search(ctx context.Context, mediaType domain.MediaType, searchQuery string, page int) (domain.Page, error) {
	query := url.Values{}
	query.Set("query", searchQuery)
	query.Set("page", strconv.Itoa(page))
	return c.getPage(ctx, fmt.Sprintf("/search/%s", mediaType), query, mediaType)
}

// Discover returns filtered content for a media type
func (c *Client) Discover(ctx context.Context, mediaType domain.MediaType, filter domain.DiscoverFilter, page int) (domain.Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = defaultSort
	}
	query.Set("sort_by", sortBy)

	if len(filter.GenreIDs) > 0 {
		query.Set("with_genres", joinInts(filter.GenreIDs, ","))
	}
	if len(filter.Languages) > 0 {
		query.Set("with_original_language", strings.Join(filter.Languages, "|"))
	}
	if filter.Year > 0 {
		if mediaType == domain.MediaTypeTV {
			query.Set("first_air_date_year", strconv.Itoa(filter.Year))
		} else {
			query.Set("primary_release_year", strconv.Itoa(filter.Year))
		}
	}
	if filter.MinRating > 0 {
		query.Set("vote_average.gte", strconv.FormatFloat(filter.MinRating, 'f', -1, 64))
		query.Set("vote_count.gte", strconv.Itoa(minVoteCount))
	}

	return c.getPage(ctx, fmt.Sprintf("/discover/%s", mediaType), query, mediaType)
}

// Details returns the full record for an item with credits, videos, similar
// and recommendations appended in a single call
func (c *Client) Details(ctx context.Context, mediaType domain.MediaType, id int) (*domain.ContentDetails, error) {
	query := url.Values{}
	query.Set("append_to_response", "credits,videos,similar,recommendations")

	body, err := c.doRequest(ctx, fmt.Sprintf("/%s/%d", mediaType, id), query)
	if err != nil {
		return nil, err
	}

	var d detailDTO
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if d.ID == 0 {
		return nil, domain.ErrNotFound
	}
	return mapDetails(d, mediaType), nil
}

// ImageURL builds a full image URL from a path fragment and size token
// (w200, w500, original, ...). Empty paths yield an empty URL.
func (c *Client) ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s%s", c.imageBaseURL, size, path)
}

func joinInts(values []int, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}
