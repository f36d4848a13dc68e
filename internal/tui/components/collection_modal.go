package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"filmdb/internal/domain"
	"filmdb/internal/tui/styles"
)

// CollectionChange represents a pending change to collection membership
type CollectionChange struct {
	CollectionID string
	Add          bool
}

// CollectionModal is a modal for managing which collections hold an item
type CollectionModal struct {
	visible     bool
	item        *domain.ContentRef
	collections []domain.Collection
	membership  map[string]bool // current membership: collection id -> is member
	pending     map[string]bool // toggled state: collection id -> should be member

	cursor int
	width  int
}

// NewCollectionModal creates a new collection modal
func NewCollectionModal() CollectionModal {
	return CollectionModal{
		membership: make(map[string]bool),
		pending:    make(map[string]bool),
	}
}

// Show displays the modal for an item with its current membership
func (m *CollectionModal) Show(collections []domain.Collection, membership map[string]bool, item *domain.ContentRef) {
	m.visible = true
	m.collections = collections
	m.item = item
	m.membership = membership
	m.cursor = 0

	m.pending = make(map[string]bool)
	for id, isMember := range membership {
		m.pending[id] = isMember
	}
}

// Hide dismisses the modal
func (m *CollectionModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m *CollectionModal) IsVisible() bool {
	return m.visible
}

// Item returns the content the modal is managing
func (m *CollectionModal) Item() *domain.ContentRef {
	return m.item
}

// SetSize sets the modal dimensions
func (m *CollectionModal) SetSize(width, _ int) {
	m.width = width
}

// Changes returns the membership changes to apply
func (m *CollectionModal) Changes() []CollectionChange {
	var changes []CollectionChange
	for id, shouldBeMember := range m.pending {
		if shouldBeMember != m.membership[id] {
			changes = append(changes, CollectionChange{CollectionID: id, Add: shouldBeMember})
		}
	}
	return changes
}

// HandleKeyMsg processes a key message, returns (handled, shouldClose)
func (m *CollectionModal) HandleKeyMsg(msg tea.KeyMsg) (handled bool, shouldClose bool) {
	if !m.visible {
		return false, false
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.collections)-1 {
			m.cursor++
		}
		return true, false
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return true, false
	case " ", "enter":
		if m.cursor < len(m.collections) {
			id := m.collections[m.cursor].ID
			m.pending[id] = !m.pending[id]
		}
		return true, false
	case "esc", "q":
		return true, true
	}

	return true, false // consume all keys while visible
}

// View renders the collection modal
func (m *CollectionModal) View() string {
	if !m.visible {
		return ""
	}

	modalWidth := 40
	if m.width > 0 && m.width < 60 {
		modalWidth = m.width - 10
	}

	var lines []string
	lines = append(lines, styles.ModalTitleStyle.Render("Add to Collection"))

	if m.item != nil {
		lines = append(lines, styles.DimStyle.Render(styles.Truncate(m.item.Title, modalWidth-4)))
	}
	lines = append(lines, "")

	for i, col := range m.collections {
		selected := i == m.cursor
		isMember := m.pending[col.ID]

		checkbox := "[ ]"
		if isMember {
			checkbox = "[x]"
		}
		line := checkbox + " " + col.Icon + " " + col.Name

		switch {
		case selected:
			line = lipgloss.NewStyle().
				Foreground(styles.White).
				Background(styles.SlateLight).
				Render(styles.Pad(line, modalWidth-4))
		case isMember:
			line = lipgloss.NewStyle().
				Foreground(lipgloss.Color(col.Color)).
				Render(styles.Pad(line, modalWidth-4))
		default:
			line = lipgloss.NewStyle().
				Foreground(styles.LightGray).
				Render(styles.Pad(line, modalWidth-4))
		}
		lines = append(lines, "  "+line)
	}

	lines = append(lines, "")
	lines = append(lines, styles.DimStyle.Render("Space: Toggle  Esc: Done"))

	content := strings.Join(lines, "\n")

	return styles.ModalStyle.Width(modalWidth).Render(content)
}
