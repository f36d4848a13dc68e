// Package stats derives frequency-ranked summaries from saved content.
// Everything here is a pure function over a snapshot; nothing is cached or
// persisted, callers recompute on demand.
package stats

import (
	"sort"

	"filmdb/internal/domain"
)

const (
	topGenreCount    = 3
	topLanguageCount = 2
	topCastCount     = 5

	// castPerItem bounds how many credits of a single item feed the profile
	castPerItem = 5
)

// TasteProfile is the aggregate summary driving recommendation queries
type TasteProfile struct {
	TopGenres    []int
	TopLanguages []string
	TopCast      []domain.CastMember
}

// IsEmpty reports whether the profile carries no signal at all
func (p TasteProfile) IsEmpty() bool {
	return len(p.TopGenres) == 0 && len(p.TopLanguages) == 0
}

// Profile tallies genre, language and cast occurrences across the items and
// returns the top genres and languages by descending frequency. Ties keep
// first-encountered order. Cast collection is first-seen-wins on id.
func Profile(items []domain.ContentRef) TasteProfile {
	genreCounts := make(map[int]int)
	var genreOrder []int

	langCounts := make(map[string]int)
	var langOrder []string

	seenCast := make(map[int]bool)
	var cast []domain.CastMember

	for _, item := range items {
		for _, genreID := range item.GenreIDs {
			if _, seen := genreCounts[genreID]; !seen {
				genreOrder = append(genreOrder, genreID)
			}
			genreCounts[genreID]++
		}

		if item.OriginalLanguage != "" {
			if _, seen := langCounts[item.OriginalLanguage]; !seen {
				langOrder = append(langOrder, item.OriginalLanguage)
			}
			langCounts[item.OriginalLanguage]++
		}

		credits := item.Cast
		if len(credits) > castPerItem {
			credits = credits[:castPerItem]
		}
		for _, member := range credits {
			if seenCast[member.ID] {
				continue
			}
			seenCast[member.ID] = true
			cast = append(cast, member)
		}
	}

	sort.SliceStable(genreOrder, func(i, j int) bool {
		return genreCounts[genreOrder[i]] > genreCounts[genreOrder[j]]
	})
	sort.SliceStable(langOrder, func(i, j int) bool {
		return langCounts[langOrder[i]] > langCounts[langOrder[j]]
	})

	return TasteProfile{
		TopGenres:    truncate(genreOrder, topGenreCount),
		TopLanguages: truncate(langOrder, topLanguageCount),
		TopCast:      truncate(cast, topCastCount),
	}
}

// Breakdown counts items per media type
type Breakdown struct {
	Movies int
	Shows  int
}

// CountByType splits a content snapshot into per-media-type counts
func CountByType(items []domain.ContentRef) Breakdown {
	var b Breakdown
	for _, item := range items {
		switch item.MediaType {
		case domain.MediaTypeMovie:
			b.Movies++
		case domain.MediaTypeTV:
			b.Shows++
		}
	}
	return b
}

func truncate[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
