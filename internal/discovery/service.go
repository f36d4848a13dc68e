// Package discovery layers browse, search and recommendation flows on top of
// the raw catalog client.
package discovery

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"filmdb/internal/domain"
	"filmdb/internal/stats"
)

const (
	// recommendedMinRating filters the personalized pool to well-received titles
	recommendedMinRating = 6.5
	recommendationLimit  = 20
	languageLimit        = 2
)

// Service coordinates catalog queries that span multiple endpoints
type Service struct {
	catalog domain.Catalog
	logger  *slog.Logger
	rng     *rand.Rand
}

// NewService creates a discovery service. A nil rng gets a time-seeded one;
// tests pass a fixed seed for deterministic shuffles.
func NewService(catalog domain.Catalog, logger *slog.Logger, rng *rand.Rand) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		catalog: catalog,
		logger:  logger,
		rng:     rng,
	}
}

// CombinedSearch runs a multi search and, when the first page comes back
// empty, retries movies and TV separately and merges the results. The
// per-type endpoints sometimes match titles the multi endpoint misses.
func (s *Service) CombinedSearch(ctx context.Context, query string, page int) (domain.Page, error) {
	result, err := s.catalog.SearchMulti(ctx, query, page)
	if err != nil {
		return domain.Page{}, err
	}
	if len(result.Results) > 0 || page > 1 {
		return result, nil
	}

	s.logger.Debug("multi search empty, trying per-type search", "query", query)

	var wg sync.WaitGroup
	var moviePage, tvPage domain.Page
	var movieErr, tvErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		moviePage, movieErr = s.catalog.Search(ctx, domain.MediaTypeMovie, query, page)
	}()
	go func() {
		defer wg.Done()
		tvPage, tvErr = s.catalog.Search(ctx, domain.MediaTypeTV, query, page)
	}()
	wg.Wait()

	if movieErr != nil && tvErr != nil {
		return domain.Page{}, movieErr
	}

	merged := domain.Page{Page: page}
	merged.Results = append(merged.Results, moviePage.Results...)
	merged.Results = append(merged.Results, tvPage.Results...)
	merged.TotalResults = moviePage.TotalResults + tvPage.TotalResults
	merged.TotalPages = max(moviePage.TotalPages, tvPage.TotalPages)
	return merged, nil
}

// ForYou builds a personalized pool from the taste profile of the liked
// items. Movies and shows are fetched in parallel, shuffled together and
// capped. An empty profile yields no recommendations.
func (s *Service) ForYou(ctx context.Context, liked []domain.ContentRef) ([]domain.ContentRef, error) {
	profile := stats.Profile(liked)
	if profile.IsEmpty() {
		return nil, nil
	}

	filter := domain.DiscoverFilter{
		GenreIDs:  profile.TopGenres,
		Languages: priorityLanguages(profile.TopLanguages),
		MinRating: recommendedMinRating,
	}

	var wg sync.WaitGroup
	var moviePage, tvPage domain.Page
	var movieErr, tvErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		moviePage, movieErr = s.catalog.Discover(ctx, domain.MediaTypeMovie, filter, 1)
	}()
	go func() {
		defer wg.Done()
		tvPage, tvErr = s.catalog.Discover(ctx, domain.MediaTypeTV, filter, 1)
	}()
	wg.Wait()

	if movieErr != nil && tvErr != nil {
		return nil, movieErr
	}
	if movieErr != nil {
		s.logger.Warn("movie recommendations failed", "error", movieErr)
	}
	if tvErr != nil {
		s.logger.Warn("tv recommendations failed", "error", tvErr)
	}

	pool := make([]domain.ContentRef, 0, len(moviePage.Results)+len(tvPage.Results))
	pool = append(pool, moviePage.Results...)
	pool = append(pool, tvPage.Results...)

	s.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if len(pool) > recommendationLimit {
		pool = pool[:recommendationLimit]
	}
	return pool, nil
}

// priorityLanguages always leads with "en", fills the remaining slots from
// the profile's top languages and caps the list. English-language matches
// dominate the catalog, so dropping it starves the pool whenever the profile
// leans toward a sparse language.
func priorityLanguages(langs []string) []string {
	ordered := []string{"en"}
	for _, l := range langs {
		if l != "en" {
			ordered = append(ordered, l)
		}
	}
	if len(ordered) > languageLimit {
		ordered = ordered[:languageLimit]
	}
	return ordered
}
