// Package tui implements the terminal interface: tabbed browsing over the
// catalog plus the personal likes, watch list, collections, ratings and
// stats views.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"filmdb/internal/discovery"
	"filmdb/internal/domain"
	"filmdb/internal/tui/components"
	"filmdb/internal/tui/styles"
	"filmdb/internal/userdata"
)

// Tab identifies a top-level view
type Tab int

const (
	TabHome Tab = iota
	TabSearch
	TabWatchList
	TabLiked
	TabCollections
	TabForYou
	TabStats

	tabCount
)

// Title returns the tab bar label
func (t Tab) Title() string {
	switch t {
	case TabHome:
		return "Home"
	case TabSearch:
		return "Search"
	case TabWatchList:
		return "Watch List"
	case TabLiked:
		return "Liked"
	case TabCollections:
		return "Collections"
	case TabForYou:
		return "For You"
	case TabStats:
		return "Stats"
	}
	return ""
}

// HomeListing selects which catalog listing feeds the home tab
type HomeListing int

const (
	ListingTrending HomeListing = iota
	ListingPopularMovies
	ListingTopRatedMovies
	ListingPopularTV
	ListingTopRatedTV

	listingCount
)

// Title returns the home listing header label
func (l HomeListing) Title() string {
	switch l {
	case ListingTrending:
		return "Trending This Week"
	case ListingPopularMovies:
		return "Popular Movies"
	case ListingTopRatedMovies:
		return "Top Rated Movies"
	case ListingPopularTV:
		return "Popular TV Shows"
	case ListingTopRatedTV:
		return "Top Rated TV Shows"
	}
	return ""
}

const (
	suggestionLimit = 5

	// loadAheadMargin triggers the next page fetch this many rows before the
	// end of a feed
	loadAheadMargin = 5
)

// Model is the root bubbletea model
type Model struct {
	catalog domain.Catalog
	disc    *discovery.Service

	likes       *userdata.Likes
	watchList   *userdata.WatchList
	recent      *userdata.RecentlyWatched
	history     *userdata.SearchHistory
	ratings     *userdata.Ratings
	collections *userdata.Collections

	keys KeyMap
	tab  Tab

	width  int
	height int

	hydrated bool
	loading  bool
	spinner  spinner.Model

	homeFeed    *discovery.Feed
	homeListing HomeListing
	searchFeed  *discovery.Feed

	searchInput  textinput.Model
	searching    bool
	searchSeq    int
	searchCancel context.CancelFunc
	lastQuery    string
	suggestions  []string

	filterInput textinput.Model
	filtering   bool
	filterQuery string

	ratingMode bool

	forYou      []domain.ContentRef
	forYouStale bool

	details *domain.ContentDetails

	colIndex int
	cursors  [tabCount]int

	collectionModal components.CollectionModal

	showHelp    bool
	status      string
	statusError bool
}

// NewModel creates the root model with all services wired in
func NewModel(
	catalog domain.Catalog,
	disc *discovery.Service,
	likes *userdata.Likes,
	watchList *userdata.WatchList,
	recent *userdata.RecentlyWatched,
	history *userdata.SearchHistory,
	ratings *userdata.Ratings,
	collections *userdata.Collections,
) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	searchInput := textinput.New()
	searchInput.Placeholder = "Search movies and TV shows..."
	searchInput.Prompt = "> "
	searchInput.CharLimit = 100

	filterInput := textinput.New()
	filterInput.Prompt = "/"
	filterInput.CharLimit = 50

	return &Model{
		catalog:         catalog,
		disc:            disc,
		likes:           likes,
		watchList:       watchList,
		recent:          recent,
		history:         history,
		ratings:         ratings,
		collections:     collections,
		keys:            Keys,
		spinner:         sp,
		homeFeed:        discovery.NewFeed(),
		searchFeed:      discovery.NewFeed(),
		searchInput:     searchInput,
		filterInput:     filterInput,
		forYouStale:     true,
		collectionModal: components.NewCollectionModal(),
	}
}

// Init starts hydration and the first catalog fetch
func (m *Model) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(
		m.spinner.Tick,
		HydrateCmd(m.likes, m.watchList, m.recent, m.history, m.ratings, m.collections),
		LoadHomeCmd(m.catalog, m.homeListing, 1),
	)
}

// Update handles all messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.collectionModal.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case HydratedMsg:
		m.hydrated = true
		return m, nil

	case FeedPageMsg:
		m.loading = false
		if msg.Tab == TabHome {
			m.homeFeed.Merge(msg.Page)
		}
		return m, nil

	case SearchDebounceMsg:
		if msg.Seq != m.searchSeq {
			return m, nil
		}
		query := m.searchInput.Value()
		if query == "" {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, SearchCmd(m.newSearchContext(), m.disc, query, m.searchSeq, 1))

	case SearchResultsMsg:
		if msg.Seq != m.searchSeq {
			return m, nil // stale response for an abandoned query
		}
		m.loading = false
		if msg.Page.Page <= 1 {
			m.searchFeed.Reset()
			m.cursors[TabSearch] = 0
		}
		m.searchFeed.Merge(msg.Page)
		if msg.Page.Page <= 1 && len(msg.Page.Results) > 0 {
			m.history.Add(msg.Query)
		}
		m.lastQuery = msg.Query
		return m, nil

	case RecommendationsMsg:
		m.loading = false
		m.forYou = msg.Items
		m.forYouStale = false
		m.clampCursor()
		return m, nil

	case DetailsLoadedMsg:
		m.loading = false
		m.details = msg.Details
		return m, nil

	case ErrMsg:
		m.loading = false
		if errors.Is(msg.Err, domain.ErrNotFound) {
			return m, StatusCmd("Not in the catalog", true)
		}
		return m, StatusCmd(msg.Error(), true)

	case StatusMsg:
		m.status = msg.Message
		m.statusError = msg.IsError
		return m, nil

	case ClearStatusMsg:
		m.status = ""
		m.statusError = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal gets keys first
	if m.collectionModal.IsVisible() {
		if handled, shouldClose := m.collectionModal.HandleKeyMsg(msg); handled {
			if shouldClose {
				return m, m.applyCollectionChanges()
			}
			return m, nil
		}
	}

	// Details overlay
	if m.details != nil {
		switch msg.String() {
		case "esc", "q", "enter":
			m.details = nil
		}
		return m, nil
	}

	if m.ratingMode {
		return m.handleRatingKey(msg)
	}

	if m.searching {
		return m.handleSearchInputKey(msg)
	}

	if m.filtering {
		return m.handleFilterInputKey(msg)
	}

	return m.handleGlobalKey(msg)
}

// handleRatingKey maps digit keys to a 1-10 rating for the selected item
func (m *Model) handleRatingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := m.selectedItem()
	if item == nil {
		m.ratingMode = false
		return m, nil
	}

	pressed := msg.String()
	switch {
	case pressed >= "1" && pressed <= "9":
		rating := int(pressed[0] - '0')
		m.ratings.Set(item.ID, item.MediaType, rating)
		m.ratingMode = false
		return m, StatusCmd(fmt.Sprintf("Rated %s %d/10", item.Title, rating), false)
	case pressed == "0":
		m.ratings.Set(item.ID, item.MediaType, userdata.MaxRating)
		m.ratingMode = false
		return m, StatusCmd(fmt.Sprintf("Rated %s 10/10", item.Title), false)
	case pressed == "x":
		m.ratings.Unset(item.ID, item.MediaType)
		m.ratingMode = false
		return m, StatusCmd("Rating cleared", false)
	case pressed == "esc" || pressed == "q":
		m.ratingMode = false
	}
	return m, nil
}

func (m *Model) handleSearchInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.suggestions = nil
		return m, nil
	case "enter":
		query := m.searchInput.Value()
		if query == "" {
			return m, nil
		}
		m.searching = false
		m.searchInput.Blur()
		m.suggestions = nil
		m.searchSeq++
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, SearchCmd(m.newSearchContext(), m.disc, query, m.searchSeq, 1))
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	after := m.searchInput.Value()

	if after != before {
		m.suggestions = discovery.Suggest(after, m.history.Queries(), suggestionLimit)
		m.searchSeq++
		return m, tea.Batch(cmd, DebounceSearchCmd(m.searchSeq))
	}
	return m, cmd
}

func (m *Model) handleFilterInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filterQuery = ""
		m.filterInput.SetValue("")
		m.filterInput.Blur()
		m.clampCursor()
		return m, nil
	case "enter":
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.filterQuery = m.filterInput.Value()
	m.cursors[m.tab] = 0
	return m, cmd
}

func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys

	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, k.Escape):
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.filterQuery != "" {
			m.filterQuery = ""
			m.filterInput.SetValue("")
			m.clampCursor()
		}
		return m, nil

	case key.Matches(msg, k.NextTab):
		return m.switchTab((m.tab + 1) % tabCount)

	case key.Matches(msg, k.PrevTab):
		return m.switchTab((m.tab + tabCount - 1) % tabCount)

	case key.Matches(msg, k.Search):
		m.tab = TabSearch
		m.searching = true
		m.suggestions = discovery.Suggest("", m.history.Queries(), suggestionLimit)
		return m, m.searchInput.Focus()

	case key.Matches(msg, k.Filter):
		if m.tab == TabStats {
			return m, nil
		}
		m.filtering = true
		return m, m.filterInput.Focus()

	case key.Matches(msg, k.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, k.Down):
		m.moveCursor(1)
		return m, m.maybeLoadMore()

	case key.Matches(msg, k.PageUp):
		m.moveCursor(-m.listHeight() / 2)
		return m, nil

	case key.Matches(msg, k.PageDown):
		m.moveCursor(m.listHeight() / 2)
		return m, m.maybeLoadMore()

	case key.Matches(msg, k.Home):
		m.cursors[m.tab] = 0
		return m, nil

	case key.Matches(msg, k.End):
		m.cursors[m.tab] = len(m.visibleItems()) - 1
		m.clampCursor()
		return m, m.maybeLoadMore()

	case key.Matches(msg, k.Left):
		if m.tab == TabCollections && m.colIndex > 0 {
			m.colIndex--
			m.cursors[TabCollections] = 0
		}
		return m, nil

	case key.Matches(msg, k.Right):
		if m.tab == TabCollections && m.colIndex < len(m.collections.Descriptors())-1 {
			m.colIndex++
			m.cursors[TabCollections] = 0
		}
		return m, nil

	case key.Matches(msg, k.Enter):
		item := m.selectedItem()
		if item == nil {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, LoadDetailsCmd(m.catalog, item.MediaType, item.ID))

	case key.Matches(msg, k.Like):
		return m, m.toggleLike()

	case key.Matches(msg, k.WatchList):
		return m, m.toggleWatchList()

	case key.Matches(msg, k.Watched):
		item := m.selectedItem()
		if item == nil {
			return m, nil
		}
		m.recent.Add(*item)
		return m, StatusCmd(fmt.Sprintf("Marked %s watched", item.Title), false)

	case key.Matches(msg, k.Rate):
		if m.selectedItem() != nil {
			m.ratingMode = true
		}
		return m, nil

	case key.Matches(msg, k.Collect):
		item := m.selectedItem()
		if item == nil {
			return m, nil
		}
		m.collectionModal.Show(
			m.collections.Descriptors(),
			m.collections.MembershipOf(item.ID, item.MediaType),
			item,
		)
		return m, nil

	case key.Matches(msg, k.Remove):
		return m, m.removeSelected()

	case key.Matches(msg, k.Listing):
		if m.tab != TabHome {
			return m, nil
		}
		m.homeListing = (m.homeListing + 1) % listingCount
		m.homeFeed.Reset()
		m.cursors[TabHome] = 0
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, LoadHomeCmd(m.catalog, m.homeListing, 1))

	case key.Matches(msg, k.Refresh):
		return m.refreshTab()
	}

	// Direct tab selection with number keys
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '0'+byte(tabCount) {
		return m.switchTab(Tab(s[0] - '1'))
	}

	return m, nil
}

func (m *Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	m.tab = tab
	m.filterQuery = ""
	m.filterInput.SetValue("")
	m.clampCursor()

	if tab == TabForYou && m.forYouStale && m.hydrated {
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, LoadRecommendationsCmd(m.disc, m.likes.Refs()))
	}
	return m, nil
}

func (m *Model) refreshTab() (tea.Model, tea.Cmd) {
	switch m.tab {
	case TabHome:
		m.homeFeed.Reset()
		m.cursors[TabHome] = 0
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, LoadHomeCmd(m.catalog, m.homeListing, 1))
	case TabSearch:
		if m.lastQuery == "" {
			return m, nil
		}
		m.searchSeq++
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, SearchCmd(m.newSearchContext(), m.disc, m.lastQuery, m.searchSeq, 1))
	case TabForYou:
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, LoadRecommendationsCmd(m.disc, m.likes.Refs()))
	}
	return m, nil
}

func (m *Model) toggleLike() tea.Cmd {
	item := m.selectedItem()
	if item == nil {
		return nil
	}
	m.forYouStale = true
	if m.likes.Toggle(*item) {
		return StatusCmd(fmt.Sprintf("Liked %s", item.Title), false)
	}
	m.clampCursor()
	return StatusCmd(fmt.Sprintf("Removed like from %s", item.Title), false)
}

func (m *Model) toggleWatchList() tea.Cmd {
	item := m.selectedItem()
	if item == nil {
		return nil
	}
	if m.watchList.Toggle(*item) {
		return StatusCmd(fmt.Sprintf("Added %s to watch list", item.Title), false)
	}
	m.clampCursor()
	return StatusCmd(fmt.Sprintf("Removed %s from watch list", item.Title), false)
}

// removeSelected removes the selected item from the store backing the
// current tab. Catalog tabs have nothing to remove from.
func (m *Model) removeSelected() tea.Cmd {
	item := m.selectedItem()
	if item == nil {
		return nil
	}

	switch m.tab {
	case TabWatchList:
		m.watchList.Remove(item.ID, item.MediaType)
	case TabLiked:
		m.likes.Toggle(*item)
		m.forYouStale = true
	case TabCollections:
		descriptors := m.collections.Descriptors()
		if m.colIndex < len(descriptors) {
			m.collections.RemoveFrom(descriptors[m.colIndex].ID, item.ID, item.MediaType)
		}
	default:
		return nil
	}
	m.clampCursor()
	return StatusCmd(fmt.Sprintf("Removed %s", item.Title), false)
}

func (m *Model) applyCollectionChanges() tea.Cmd {
	item := m.collectionModal.Item()
	changes := m.collectionModal.Changes()
	m.collectionModal.Hide()

	if item == nil || len(changes) == 0 {
		return nil
	}
	for _, change := range changes {
		if change.Add {
			m.collections.AddTo(change.CollectionID, *item)
		} else {
			m.collections.RemoveFrom(change.CollectionID, item.ID, item.MediaType)
		}
	}
	m.clampCursor()
	return StatusCmd(fmt.Sprintf("Updated collections for %s", item.Title), false)
}

// maybeLoadMore fetches the next page when the cursor nears the end of a
// paginated feed
func (m *Model) maybeLoadMore() tea.Cmd {
	if m.loading || m.filterQuery != "" {
		return nil
	}

	switch m.tab {
	case TabHome:
		if m.homeFeed.HasMore() && m.cursors[TabHome] >= m.homeFeed.Len()-loadAheadMargin {
			m.loading = true
			return tea.Batch(m.spinner.Tick, LoadHomeCmd(m.catalog, m.homeListing, m.homeFeed.NextPage()))
		}
	case TabSearch:
		if m.lastQuery != "" && m.searchFeed.HasMore() && m.cursors[TabSearch] >= m.searchFeed.Len()-loadAheadMargin {
			m.loading = true
			return tea.Batch(m.spinner.Tick, SearchCmd(m.newSearchContext(), m.disc, m.lastQuery, m.searchSeq, m.searchFeed.NextPage()))
		}
	}
	return nil
}

// tabItems returns the unfiltered content list for the current tab
func (m *Model) tabItems() []domain.ContentRef {
	switch m.tab {
	case TabHome:
		return m.homeFeed.Items()
	case TabSearch:
		return m.searchFeed.Items()
	case TabWatchList:
		entries := m.watchList.Items()
		refs := make([]domain.ContentRef, len(entries))
		for i, e := range entries {
			refs[i] = e.ContentRef
		}
		return refs
	case TabLiked:
		return m.likes.Refs()
	case TabCollections:
		descriptors := m.collections.Descriptors()
		if m.colIndex >= len(descriptors) {
			return nil
		}
		entries := m.collections.ItemsOf(descriptors[m.colIndex].ID)
		refs := make([]domain.ContentRef, len(entries))
		for i, e := range entries {
			refs[i] = e.ContentRef
		}
		return refs
	case TabForYou:
		return m.forYou
	}
	return nil
}

// visibleItems applies the local fuzzy filter to the current tab's items
func (m *Model) visibleItems() []domain.ContentRef {
	items := m.tabItems()
	if m.filterQuery == "" {
		return items
	}
	return filterContent(m.filterQuery, items)
}

func (m *Model) selectedItem() *domain.ContentRef {
	items := m.visibleItems()
	cursor := m.cursors[m.tab]
	if cursor < 0 || cursor >= len(items) {
		return nil
	}
	item := items[cursor]
	return &item
}

func (m *Model) moveCursor(delta int) {
	m.cursors[m.tab] += delta
	m.clampCursor()
}

// newSearchContext cancels any in-flight search and returns a fresh context
// for the next one
func (m *Model) newSearchContext() context.Context {
	if m.searchCancel != nil {
		m.searchCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.searchCancel = cancel
	return ctx
}

func (m *Model) clampCursor() {
	n := len(m.visibleItems())
	if m.cursors[m.tab] >= n {
		m.cursors[m.tab] = n - 1
	}
	if m.cursors[m.tab] < 0 {
		m.cursors[m.tab] = 0
	}
}
