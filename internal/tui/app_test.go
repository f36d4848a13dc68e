package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmdb/internal/config"
	"filmdb/internal/domain"
	"filmdb/internal/store"
	"filmdb/internal/userdata"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	storage, err := store.NewUserDataStore("")
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })

	logger := config.NullLogger()
	m := NewModel(
		nil, nil,
		userdata.NewLikes(storage, logger),
		userdata.NewWatchList(storage, logger),
		userdata.NewRecentlyWatched(storage, logger),
		userdata.NewSearchHistory(storage, logger),
		userdata.NewRatings(storage, logger),
		userdata.NewCollections(storage, logger),
	)
	m.width = 80
	m.height = 24
	m.hydrated = true
	return m
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func page(ids ...int) domain.Page {
	p := domain.Page{Page: 1, TotalPages: 1}
	for _, id := range ids {
		p.Results = append(p.Results, domain.ContentRef{
			ID: id, MediaType: domain.MediaTypeMovie, Title: "Title",
		})
	}
	p.TotalResults = len(p.Results)
	return p
}

func TestStaleSearchResultsAreDropped(t *testing.T) {
	m := newTestModel(t)
	m.searchSeq = 2

	m.Update(SearchResultsMsg{Query: "old", Seq: 1, Page: page(1)})
	assert.Zero(t, m.searchFeed.Len(), "response for an abandoned query is ignored")

	m.Update(SearchResultsMsg{Query: "new", Seq: 2, Page: page(1)})
	assert.Equal(t, 1, m.searchFeed.Len())
	assert.Equal(t, []string{"new"}, m.history.Queries(), "successful search lands in history")
}

func TestEmptySearchResultsStayOutOfHistory(t *testing.T) {
	m := newTestModel(t)
	m.searchSeq = 1

	m.Update(SearchResultsMsg{Query: "nothing", Seq: 1, Page: domain.Page{Page: 1}})
	assert.Empty(t, m.history.Queries())
}

func TestFeedPageMergesIntoHome(t *testing.T) {
	m := newTestModel(t)

	m.Update(FeedPageMsg{Tab: TabHome, Page: page(1, 2, 3)})
	assert.Equal(t, 3, m.homeFeed.Len())
	assert.False(t, m.loading)
}

func TestRatingKeyFlow(t *testing.T) {
	m := newTestModel(t)
	m.Update(FeedPageMsg{Tab: TabHome, Page: page(42)})

	m.handleKey(keyPress('r'))
	require.True(t, m.ratingMode)

	m.handleKey(keyPress('8'))
	assert.False(t, m.ratingMode)
	rating, ok := m.ratings.Get(42, domain.MediaTypeMovie)
	require.True(t, ok)
	assert.Equal(t, 8, rating)

	m.handleKey(keyPress('r'))
	m.handleKey(keyPress('x'))
	_, ok = m.ratings.Get(42, domain.MediaTypeMovie)
	assert.False(t, ok)
}

func TestLikeToggleMarksRecommendationsStale(t *testing.T) {
	m := newTestModel(t)
	m.Update(FeedPageMsg{Tab: TabHome, Page: page(7)})
	m.forYouStale = false

	m.handleKey(keyPress('L'))
	assert.True(t, m.likes.IsLiked(7, domain.MediaTypeMovie))
	assert.True(t, m.forYouStale, "liking invalidates the personalized pool")

	m.handleKey(keyPress('L'))
	assert.False(t, m.likes.IsLiked(7, domain.MediaTypeMovie))
}

func TestWatchListToggleFromKey(t *testing.T) {
	m := newTestModel(t)
	m.Update(FeedPageMsg{Tab: TabHome, Page: page(9)})

	m.handleKey(keyPress('w'))
	assert.True(t, m.watchList.Contains(9, domain.MediaTypeMovie))

	m.handleKey(keyPress('w'))
	assert.False(t, m.watchList.Contains(9, domain.MediaTypeMovie))
}

func TestRemoveOnWatchListTab(t *testing.T) {
	m := newTestModel(t)
	m.watchList.Toggle(domain.ContentRef{ID: 5, MediaType: domain.MediaTypeMovie, Title: "Saved"})
	m.tab = TabWatchList

	m.handleKey(keyPress('x'))
	assert.Zero(t, m.watchList.Len())
	assert.Nil(t, m.selectedItem())
}

func TestCursorClampsToVisibleItems(t *testing.T) {
	m := newTestModel(t)
	m.Update(FeedPageMsg{Tab: TabHome, Page: page(1, 2)})

	m.moveCursor(10)
	assert.Equal(t, 1, m.cursors[TabHome])

	m.moveCursor(-10)
	assert.Equal(t, 0, m.cursors[TabHome])
}
