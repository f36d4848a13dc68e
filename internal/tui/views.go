package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"filmdb/internal/domain"
	"filmdb/internal/stats"
	"filmdb/internal/tui/styles"
)

// genreNames maps the catalog's genre ids to display names
var genreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
	10759: "Action & Adventure",
	10762: "Kids",
	10763: "News",
	10764: "Reality",
	10765: "Sci-Fi & Fantasy",
	10766: "Soap",
	10767: "Talk",
	10768: "War & Politics",
}

func genreName(id int) string {
	if name, ok := genreNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Genre %d", id)
}

// View renders the full screen
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderTabBar())
	b.WriteString("\n\n")

	switch {
	case m.showHelp:
		b.WriteString(m.renderHelp())
	case m.details != nil:
		b.WriteString(m.renderDetails())
	case m.collectionModal.IsVisible():
		b.WriteString(lipgloss.Place(m.width, m.listHeight(), lipgloss.Center, lipgloss.Center, m.collectionModal.View()))
	case m.tab == TabStats:
		b.WriteString(m.renderStats())
	default:
		b.WriteString(m.renderListTab())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m *Model) listHeight() int {
	h := m.height - 7
	if h < 3 {
		return 3
	}
	return h
}

func (m *Model) renderTabBar() string {
	var parts []string
	for t := TabHome; t < tabCount; t++ {
		label := fmt.Sprintf("%d %s", int(t)+1, t.Title())
		if t == m.tab {
			parts = append(parts, styles.ActiveTabStyle.Render(label))
		} else {
			parts = append(parts, styles.InactiveTabStyle.Render(label))
		}
	}
	return " " + strings.Join(parts, " ")
}

func (m *Model) renderListTab() string {
	var b strings.Builder

	if m.tab == TabSearch {
		b.WriteString(" " + m.searchInput.View() + "\n")
		if m.searching && len(m.suggestions) > 0 {
			for _, s := range m.suggestions {
				b.WriteString("   " + styles.DimStyle.Render(s) + "\n")
			}
		}
		b.WriteString("\n")
	}

	if m.tab == TabHome {
		b.WriteString(" " + styles.TitleStyle.Render(m.homeListing.Title()) +
			"  " + styles.DimStyle.Render("t to change") + "\n")
	}

	if m.tab == TabCollections {
		b.WriteString(m.renderCollectionHeader())
		b.WriteString("\n")
	}

	if m.filtering || m.filterQuery != "" {
		b.WriteString(" " + styles.FilterPromptStyle.Render(m.filterInput.View()) + "\n")
	}

	items := m.visibleItems()
	if len(items) == 0 {
		b.WriteString(m.renderEmptyState())
		return b.String()
	}

	height := m.listHeight() - strings.Count(b.String(), "\n")
	if height < 3 {
		height = 3
	}
	cursor := m.cursors[m.tab]

	// Scroll window around the cursor
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := start + height
	if end > len(items) {
		end = len(items)
	}

	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(items[i], i == cursor))
		b.WriteString("\n")
	}

	if m.loading {
		b.WriteString(" " + m.spinner.View() + styles.DimStyle.Render(" loading..."))
	}
	return b.String()
}

func (m *Model) renderCollectionHeader() string {
	descriptors := m.collections.Descriptors()
	var parts []string
	for i, desc := range descriptors {
		label := fmt.Sprintf("%s %s (%d)", desc.Icon, desc.Name, len(m.collections.ItemsOf(desc.ID)))
		style := lipgloss.NewStyle().Foreground(styles.DimGray)
		if i == m.colIndex {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(desc.Color)).Bold(true)
		}
		parts = append(parts, style.Render(label))
	}
	return " " + strings.Join(parts, "  ") + "  " + styles.DimStyle.Render("h/l to switch")
}

func (m *Model) renderRow(item domain.ContentRef, selected bool) string {
	marks := " "
	if m.likes.IsLiked(item.ID, item.MediaType) {
		marks = styles.LikedMark
	}
	wl := " "
	if m.watchList.Contains(item.ID, item.MediaType) {
		wl = styles.WatchListMark
	}
	watched := " "
	if m.recent.IsWatched(item.ID, item.MediaType) {
		watched = styles.WatchedMark
	}

	title := item.Title
	if year := item.Year(); year > 0 {
		title = fmt.Sprintf("%s (%d)", title, year)
	}

	meta := fmt.Sprintf("%-5s ★%.1f", item.MediaType, item.VoteAverage)
	if rating, ok := m.ratings.Get(item.ID, item.MediaType); ok {
		meta += styles.RatingStyle.Render(fmt.Sprintf("  [%d/10]", rating))
	}

	width := m.width - 30
	if width < 20 {
		width = 20
	}
	line := fmt.Sprintf("%s%s%s %s  %s", marks, wl, watched, styles.Truncate(title, width), meta)

	if selected {
		return styles.SelectedItemStyle.Render(line)
	}
	return styles.NormalItemStyle.Render(line)
}

func (m *Model) renderEmptyState() string {
	var hint string
	switch m.tab {
	case TabHome:
		hint = "Nothing trending loaded yet. Press R to refresh."
	case TabSearch:
		hint = "Press s to search."
	case TabWatchList:
		hint = "Your watch list is empty. Press w on any item to add it."
	case TabLiked:
		hint = "Nothing liked yet. Press L on any item to like it."
	case TabCollections:
		hint = "This collection is empty. Press space on any item to file it."
	case TabForYou:
		if m.likes.Len() == 0 {
			hint = "Like a few titles and recommendations will show up here."
		} else {
			hint = "No recommendations right now. Press R to refresh."
		}
	}
	if m.filterQuery != "" {
		hint = "No matches for the current filter."
	}
	if m.loading {
		return "\n " + m.spinner.View() + styles.DimStyle.Render(" loading...")
	}
	return "\n " + styles.DimStyle.Render(hint)
}

func (m *Model) renderStats() string {
	liked := m.likes.Refs()
	profile := stats.Profile(liked)
	breakdown := stats.CountByType(liked)

	var b strings.Builder
	b.WriteString(" " + styles.TitleStyle.Render("Your Stats") + "\n\n")

	b.WriteString(fmt.Sprintf("  %s %d (%d movies, %d shows)\n",
		styles.SubtitleStyle.Render("Liked:"), m.likes.Len(), breakdown.Movies, breakdown.Shows))
	b.WriteString(fmt.Sprintf("  %s %d\n", styles.SubtitleStyle.Render("Watch list:"), m.watchList.Len()))
	b.WriteString(fmt.Sprintf("  %s %d\n", styles.SubtitleStyle.Render("Watched:"), m.recent.Len()))

	if count := m.ratings.Count(); count > 0 {
		b.WriteString(fmt.Sprintf("  %s %d rated, %.1f average\n",
			styles.SubtitleStyle.Render("Ratings:"), count, m.ratings.Average()))
	} else {
		b.WriteString(fmt.Sprintf("  %s none yet\n", styles.SubtitleStyle.Render("Ratings:")))
	}

	if profile.IsEmpty() {
		b.WriteString("\n " + styles.DimStyle.Render("Like a few titles to build your taste profile."))
		return b.String()
	}

	b.WriteString("\n " + styles.TitleStyle.Render("Taste Profile") + "\n\n")

	if len(profile.TopGenres) > 0 {
		names := make([]string, len(profile.TopGenres))
		for i, id := range profile.TopGenres {
			names[i] = genreName(id)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", styles.SubtitleStyle.Render("Top genres:"),
			styles.AccentStyle.Render(strings.Join(names, ", "))))
	}
	if len(profile.TopLanguages) > 0 {
		b.WriteString(fmt.Sprintf("  %s %s\n", styles.SubtitleStyle.Render("Top languages:"),
			styles.AccentStyle.Render(strings.Join(profile.TopLanguages, ", "))))
	}
	if len(profile.TopCast) > 0 {
		names := make([]string, len(profile.TopCast))
		for i, member := range profile.TopCast {
			names[i] = member.Name
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", styles.SubtitleStyle.Render("Familiar faces:"),
			styles.AccentStyle.Render(strings.Join(names, ", "))))
	}

	return b.String()
}

func (m *Model) renderDetails() string {
	d := m.details
	var b strings.Builder

	title := d.Title
	if year := d.Year(); year > 0 {
		title = fmt.Sprintf("%s (%d)", title, year)
	}
	b.WriteString(" " + styles.TitleStyle.Render(title) + "\n")

	if d.Tagline != "" {
		b.WriteString(" " + styles.DimStyle.Render(d.Tagline) + "\n")
	}
	b.WriteString("\n")

	var meta []string
	if d.MediaType == domain.MediaTypeTV && d.NumberOfSeasons > 0 {
		meta = append(meta, fmt.Sprintf("%d seasons", d.NumberOfSeasons))
	}
	if d.Runtime > 0 {
		meta = append(meta, fmt.Sprintf("%d min", d.Runtime))
	}
	if d.VoteAverage > 0 {
		meta = append(meta, fmt.Sprintf("★ %.1f (%d votes)", d.VoteAverage, d.VoteCount))
	}
	if rating, ok := m.ratings.Get(d.ID, d.MediaType); ok {
		meta = append(meta, fmt.Sprintf("your rating %d/10", rating))
	}
	if len(meta) > 0 {
		b.WriteString(" " + styles.SubtitleStyle.Render(strings.Join(meta, "  ·  ")) + "\n")
	}

	if len(d.Genres) > 0 {
		names := make([]string, len(d.Genres))
		for i, g := range d.Genres {
			names[i] = g.Name
		}
		b.WriteString(" " + styles.AccentStyle.Render(strings.Join(names, ", ")) + "\n")
	}

	if d.Overview != "" {
		wrapped := lipgloss.NewStyle().Width(m.width - 4).Render(d.Overview)
		b.WriteString("\n " + wrapped + "\n")
	}

	if len(d.Cast) > 0 {
		b.WriteString("\n " + styles.TitleStyle.Render("Cast") + "\n")
		for _, member := range d.Cast {
			line := member.Name
			if member.Character != "" {
				line += styles.DimStyle.Render(" as " + member.Character)
			}
			b.WriteString("  " + line + "\n")
		}
	}

	if len(d.Similar) > 0 {
		names := make([]string, 0, len(d.Similar))
		for _, s := range d.Similar {
			names = append(names, s.Title)
		}
		b.WriteString("\n " + styles.TitleStyle.Render("Similar") + "\n")
		b.WriteString("  " + styles.SubtitleStyle.Render(styles.Truncate(strings.Join(names, ", "), m.width-4)) + "\n")
	}

	b.WriteString("\n " + styles.DimStyle.Render("esc to close"))
	return b.String()
}

func (m *Model) renderHelp() string {
	bindings := []struct {
		keys string
		desc string
	}{
		{"j/k", "move"},
		{"tab / 1-7", "switch tab"},
		{"enter", "details"},
		{"s", "search"},
		{"t", "cycle home listing"},
		{"/", "filter current list"},
		{"L", "like / unlike"},
		{"w", "toggle watch list"},
		{"m", "mark watched"},
		{"r then 1-9,0", "rate 1-10 (x clears)"},
		{"space", "collections"},
		{"x", "remove from list"},
		{"R", "refresh"},
		{"?", "toggle help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(" " + styles.TitleStyle.Render("Keyboard Shortcuts") + "\n\n")
	for _, bind := range bindings {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			styles.HelpKeyStyle.Render(styles.Pad(bind.keys, 14)),
			styles.HelpDescStyle.Render(bind.desc)))
	}
	return b.String()
}

func (m *Model) renderStatusBar() string {
	if m.status != "" {
		if m.statusError {
			return " " + styles.ErrorStyle.Render(m.status)
		}
		return " " + styles.SuccessStyle.Render(m.status)
	}
	if m.ratingMode {
		return " " + styles.AccentStyle.Render("Rate 1-9, 0 for 10, x to clear, esc to cancel")
	}
	if !m.hydrated {
		return " " + styles.DimStyle.Render("Loading saved data...")
	}
	return " " + styles.DimStyle.Render("? for help")
}
