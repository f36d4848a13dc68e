package tmdb

import "filmdb/internal/domain"

// Wire DTOs for the TMDB v3 API. Movie and TV payloads share a shape except
// for the title and date field names, so one result DTO covers both.

type pageDTO struct {
	Page         int         `json:"page"`
	Results      []resultDTO `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

type resultDTO struct {
	ID               int     `json:"id"`
	MediaType        string  `json:"media_type"` // only present on multi/trending results
	Title            string  `json:"title"`      // movies
	Name             string  `json:"name"`       // tv
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	GenreIDs         []int   `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
	ReleaseDate      string  `json:"release_date"`   // movies
	FirstAirDate     string  `json:"first_air_date"` // tv
}

type genreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type castDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

type videoDTO struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type detailDTO struct {
	resultDTO
	Tagline         string     `json:"tagline"`
	Runtime         int        `json:"runtime"`
	Status          string     `json:"status"`
	NumberOfSeasons int        `json:"number_of_seasons"`
	Genres          []genreDTO `json:"genres"`
	Credits         struct {
		Cast []castDTO `json:"cast"`
	} `json:"credits"`
	Videos struct {
		Results []videoDTO `json:"results"`
	} `json:"videos"`
	Similar         pageDTO `json:"similar"`
	Recommendations pageDTO `json:"recommendations"`
}

// castExcerptSize bounds the cast excerpt cached on saved content
const castExcerptSize = 10

// mapResult converts a result DTO, falling back to the given media type when
// the payload carries none (the per-type endpoints omit it)
func mapResult(d resultDTO, fallback domain.MediaType) domain.ContentRef {
	mediaType := fallback
	if d.MediaType != "" {
		mediaType = domain.MediaType(d.MediaType)
	}

	title := d.Title
	if title == "" {
		title = d.Name
	}
	releaseDate := d.ReleaseDate
	if releaseDate == "" {
		releaseDate = d.FirstAirDate
	}

	return domain.ContentRef{
		ID:               d.ID,
		MediaType:        mediaType,
		Title:            title,
		Overview:         d.Overview,
		PosterPath:       d.PosterPath,
		BackdropPath:     d.BackdropPath,
		VoteAverage:      d.VoteAverage,
		VoteCount:        d.VoteCount,
		GenreIDs:         d.GenreIDs,
		OriginalLanguage: d.OriginalLanguage,
		ReleaseDate:      releaseDate,
	}
}

// mapPage converts a page of results, dropping person entries from
// multi-search payloads
func mapPage(d pageDTO, fallback domain.MediaType) domain.Page {
	results := make([]domain.ContentRef, 0, len(d.Results))
	for _, r := range d.Results {
		if r.MediaType == "person" {
			continue
		}
		results = append(results, mapResult(r, fallback))
	}
	return domain.Page{
		Results:      results,
		Page:         d.Page,
		TotalPages:   d.TotalPages,
		TotalResults: d.TotalResults,
	}
}

func mapDetails(d detailDTO, mediaType domain.MediaType) *domain.ContentDetails {
	ref := mapResult(d.resultDTO, mediaType)

	if len(ref.GenreIDs) == 0 && len(d.Genres) > 0 {
		for _, g := range d.Genres {
			ref.GenreIDs = append(ref.GenreIDs, g.ID)
		}
	}

	cast := d.Credits.Cast
	if len(cast) > castExcerptSize {
		cast = cast[:castExcerptSize]
	}
	for _, c := range cast {
		ref.Cast = append(ref.Cast, domain.CastMember{
			ID:          c.ID,
			Name:        c.Name,
			Character:   c.Character,
			ProfilePath: c.ProfilePath,
		})
	}

	details := &domain.ContentDetails{
		ContentRef:      ref,
		Tagline:         d.Tagline,
		Runtime:         d.Runtime,
		Status:          d.Status,
		NumberOfSeasons: d.NumberOfSeasons,
	}
	for _, g := range d.Genres {
		details.Genres = append(details.Genres, domain.Genre{ID: g.ID, Name: g.Name})
	}
	for _, v := range d.Videos.Results {
		details.Videos = append(details.Videos, domain.Video{
			Key: v.Key, Name: v.Name, Site: v.Site, Type: v.Type,
		})
	}
	details.Similar = mapPage(d.Similar, mediaType).Results
	details.Recommendations = mapPage(d.Recommendations, mediaType).Results

	return details
}
