package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmdb/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", srv.URL, "https://img.example/t/p", nil)
}

func TestPopularTagsMediaType(t *testing.T) {
	var gotPath, gotKey, gotPage string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("api_key")
		gotPage = r.URL.Query().Get("page")
		w.Write([]byte(`{
			"page": 2,
			"results": [{"id": 603, "title": "The Matrix", "vote_average": 8.2}],
			"total_pages": 10,
			"total_results": 200
		}`))
	})

	page, err := client.Popular(context.Background(), domain.MediaTypeMovie, 2)
	require.NoError(t, err)

	assert.Equal(t, "/movie/popular", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "2", gotPage)

	require.Len(t, page.Results, 1)
	assert.Equal(t, domain.MediaTypeMovie, page.Results[0].MediaType, "per-type endpoint results get tagged")
	assert.Equal(t, "The Matrix", page.Results[0].Title)
	assert.Equal(t, 10, page.TotalPages)
}

func TestSearchMultiDropsPersonsAndKeepsTypes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/multi", r.URL.Path)
		assert.Equal(t, "matrix", r.URL.Query().Get("query"))
		w.Write([]byte(`{
			"page": 1,
			"results": [
				{"id": 603, "media_type": "movie", "title": "The Matrix"},
				{"id": 777, "media_type": "person", "name": "Keanu Reeves"},
				{"id": 1396, "media_type": "tv", "name": "Breaking Bad", "first_air_date": "2008-01-20"}
			],
			"total_pages": 1,
			"total_results": 3
		}`))
	})

	page, err := client.SearchMulti(context.Background(), "matrix", 1)
	require.NoError(t, err)

	require.Len(t, page.Results, 2, "person results are dropped")
	assert.Equal(t, domain.MediaTypeMovie, page.Results[0].MediaType)
	assert.Equal(t, domain.MediaTypeTV, page.Results[1].MediaType)
	assert.Equal(t, "Breaking Bad", page.Results[1].Title, "tv name maps to title")
	assert.Equal(t, 2008, page.Results[1].Year(), "first_air_date maps to release date")
}

func TestDiscoverBuildsFilterParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/discover/movie", r.URL.Path)
		assert.Equal(t, "28,12,16", q.Get("with_genres"))
		assert.Equal(t, "en|ko", q.Get("with_original_language"))
		assert.Equal(t, "1999", q.Get("primary_release_year"))
		assert.Equal(t, "6.5", q.Get("vote_average.gte"))
		assert.Equal(t, "100", q.Get("vote_count.gte"), "rating filter carries the vote-count floor")
		assert.Equal(t, "popularity.desc", q.Get("sort_by"))
		w.Write([]byte(`{"page":1,"results":[],"total_pages":0,"total_results":0}`))
	})

	_, err := client.Discover(context.Background(), domain.MediaTypeMovie, domain.DiscoverFilter{
		GenreIDs:  []int{28, 12, 16},
		Languages: []string{"en", "ko"},
		Year:      1999,
		MinRating: 6.5,
	}, 1)
	require.NoError(t, err)
}

func TestDiscoverTVUsesAirDateYear(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discover/tv", r.URL.Path)
		assert.Equal(t, "2008", r.URL.Query().Get("first_air_date_year"))
		assert.Empty(t, r.URL.Query().Get("primary_release_year"))
		w.Write([]byte(`{"page":1,"results":[],"total_pages":0,"total_results":0}`))
	})

	_, err := client.Discover(context.Background(), domain.MediaTypeTV, domain.DiscoverFilter{Year: 2008}, 1)
	require.NoError(t, err)
}

func TestDetailsMapsAppendedData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603", r.URL.Path)
		assert.Equal(t, "credits,videos,similar,recommendations", r.URL.Query().Get("append_to_response"))
		w.Write([]byte(`{
			"id": 603,
			"title": "The Matrix",
			"tagline": "Free your mind",
			"runtime": 136,
			"genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}],
			"credits": {"cast": [{"id": 6384, "name": "Keanu Reeves", "character": "Neo"}]},
			"videos": {"results": [{"key": "abc", "name": "Trailer", "site": "YouTube", "type": "Trailer"}]},
			"similar": {"results": [{"id": 604, "title": "The Matrix Reloaded"}]},
			"recommendations": {"results": [{"id": 550, "title": "Fight Club"}]}
		}`))
	})

	details, err := client.Details(context.Background(), domain.MediaTypeMovie, 603)
	require.NoError(t, err)

	assert.Equal(t, "Free your mind", details.Tagline)
	assert.Equal(t, 136, details.Runtime)
	assert.Equal(t, []int{28, 878}, details.GenreIDs, "genre ids derived from detail genres")
	require.Len(t, details.Cast, 1)
	assert.Equal(t, "Neo", details.Cast[0].Character)
	require.Len(t, details.Videos, 1)
	assert.Equal(t, "YouTube", details.Videos[0].Site)
	require.Len(t, details.Similar, 1)
	assert.Equal(t, domain.MediaTypeMovie, details.Similar[0].MediaType)
	require.Len(t, details.Recommendations, 1)
}

func TestErrorMapping(t *testing.T) {
	status := http.StatusUnauthorized
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})

	_, err := client.Popular(context.Background(), domain.MediaTypeMovie, 1)
	assert.ErrorIs(t, err, domain.ErrAuthFailed)

	status = http.StatusNotFound
	_, err = client.Details(context.Background(), domain.MediaTypeMovie, 999999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestImageURL(t *testing.T) {
	client := NewClient("k", "", "", nil)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/abc.jpg", client.ImageURL("/abc.jpg", "w500"))
	assert.Empty(t, client.ImageURL("", "w500"), "missing path yields no URL")
}
