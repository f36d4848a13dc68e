package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmdb/internal/domain"
)

func TestProfileRanksGenresByFrequency(t *testing.T) {
	items := []domain.ContentRef{
		{GenreIDs: []int{1, 2}},
		{GenreIDs: []int{2, 3}},
		{GenreIDs: []int{2}},
	}

	profile := Profile(items)

	require.NotEmpty(t, profile.TopGenres)
	assert.Equal(t, 2, profile.TopGenres[0], "genre 2 (count 3) ranks first")
	assert.Equal(t, []int{2, 1, 3}, profile.TopGenres, "ties keep first-encountered order")
}

func TestProfileCapsTopGenresAtThree(t *testing.T) {
	items := []domain.ContentRef{
		{GenreIDs: []int{1, 2, 3, 4, 5}},
	}
	assert.Len(t, Profile(items).TopGenres, 3)
}

func TestProfileRanksLanguages(t *testing.T) {
	items := []domain.ContentRef{
		{OriginalLanguage: "en"},
		{OriginalLanguage: "ko"},
		{OriginalLanguage: "ko"},
		{OriginalLanguage: "fr"},
	}

	profile := Profile(items)
	assert.Equal(t, []string{"ko", "en"}, profile.TopLanguages)
}

func TestProfileCastFirstSeenWins(t *testing.T) {
	items := []domain.ContentRef{
		{Cast: []domain.CastMember{
			{ID: 1, Name: "A", Character: "Lead"},
			{ID: 2, Name: "B"},
		}},
		{Cast: []domain.CastMember{
			{ID: 1, Name: "A", Character: "Cameo"}, // same actor, later credit
			{ID: 3, Name: "C"},
		}},
	}

	profile := Profile(items)
	require.Len(t, profile.TopCast, 3)
	assert.Equal(t, "Lead", profile.TopCast[0].Character, "first-seen credit wins")
}

func TestProfileCapsCastAtFive(t *testing.T) {
	var cast []domain.CastMember
	for i := 1; i <= 8; i++ {
		cast = append(cast, domain.CastMember{ID: i})
	}
	// Only the first five credits of an item are considered
	profile := Profile([]domain.ContentRef{{Cast: cast}})
	assert.Len(t, profile.TopCast, 5)
	assert.Equal(t, 5, profile.TopCast[4].ID)
}

func TestProfileEmptyInput(t *testing.T) {
	profile := Profile(nil)
	assert.True(t, profile.IsEmpty())
	assert.Empty(t, profile.TopGenres)
	assert.Empty(t, profile.TopLanguages)
	assert.Empty(t, profile.TopCast)
}

func TestCountByType(t *testing.T) {
	items := []domain.ContentRef{
		{MediaType: domain.MediaTypeMovie},
		{MediaType: domain.MediaTypeMovie},
		{MediaType: domain.MediaTypeTV},
	}

	b := CountByType(items)
	assert.Equal(t, 2, b.Movies)
	assert.Equal(t, 1, b.Shows)
}
