package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/andri/podgrid/pkg/tui/format"
	"github.com/andri/podgrid/pkg/tui/styles"
)

// podPhases are the filterable status values, in display order.
var podPhases = []string{"Running", "Pending", "Succeeded", "Failed", "Unknown"}

// Sidebar is the collapsible filter panel next to the grid. Its collapsed
// flag is persisted in the view state; its filter selections are not.
type Sidebar struct {
	Collapsed bool

	namespaces       []string
	selectedNS       map[string]bool
	selectedStatuses map[string]bool

	cursor int
	width  int
}

// NewSidebar creates an empty sidebar.
func NewSidebar() *Sidebar {
	return &Sidebar{
		selectedNS:       make(map[string]bool),
		selectedStatuses: make(map[string]bool),
		width:            24,
	}
}

// SetNamespaces replaces the selectable namespace list. Selections for
// namespaces that disappeared are dropped.
func (s *Sidebar) SetNamespaces(namespaces []string) {
	s.namespaces = namespaces

	known := make(map[string]bool, len(namespaces))
	for _, ns := range namespaces {
		known[ns] = true
	}
	for ns := range s.selectedNS {
		if !known[ns] {
			delete(s.selectedNS, ns)
		}
	}
	if s.cursor >= s.entryCount() {
		s.cursor = s.entryCount() - 1
	}
}

// ToggleNamespace flips a namespace filter.
func (s *Sidebar) ToggleNamespace(ns string) {
	if s.selectedNS[ns] {
		delete(s.selectedNS, ns)
		return
	}
	s.selectedNS[ns] = true
}

// ToggleStatus flips a status filter.
func (s *Sidebar) ToggleStatus(status string) {
	if s.selectedStatuses[status] {
		delete(s.selectedStatuses, status)
		return
	}
	s.selectedStatuses[status] = true
}

// SelectedNamespaces returns the active namespace filters in list order.
func (s *Sidebar) SelectedNamespaces() []string {
	var out []string
	for _, ns := range s.namespaces {
		if s.selectedNS[ns] {
			out = append(out, ns)
		}
	}
	return out
}

// SelectedStatuses returns the active status filters in display order.
func (s *Sidebar) SelectedStatuses() []string {
	var out []string
	for _, status := range podPhases {
		if s.selectedStatuses[status] {
			out = append(out, status)
		}
	}
	return out
}

// entryCount is the number of navigable entries: statuses then namespaces.
func (s *Sidebar) entryCount() int {
	return len(podPhases) + len(s.namespaces)
}

// CursorUp moves the filter cursor up one entry.
func (s *Sidebar) CursorUp() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// CursorDown moves the filter cursor down one entry.
func (s *Sidebar) CursorDown() {
	if s.cursor < s.entryCount()-1 {
		s.cursor++
	}
}

// ToggleAtCursor flips the filter under the cursor and reports whether a
// filter actually changed.
func (s *Sidebar) ToggleAtCursor() bool {
	if s.cursor < len(podPhases) {
		s.ToggleStatus(podPhases[s.cursor])
		return true
	}
	i := s.cursor - len(podPhases)
	if i < len(s.namespaces) {
		s.ToggleNamespace(s.namespaces[i])
		return true
	}
	return false
}

// ClearFilters drops all selections.
func (s *Sidebar) ClearFilters() {
	s.selectedNS = make(map[string]bool)
	s.selectedStatuses = make(map[string]bool)
}

// SetWidth sets the expanded render width.
func (s *Sidebar) SetWidth(width int) {
	s.width = width
}

// View renders the sidebar, empty when collapsed.
func (s *Sidebar) View() string {
	if s.Collapsed {
		return ""
	}

	var b strings.Builder
	inner := s.width - 2

	b.WriteString(styles.StyleHeading.Render("Filters"))
	b.WriteString("\n\n")

	b.WriteString(styles.StyleSubtle.Render("Status"))
	b.WriteString("\n")
	for i, status := range podPhases {
		b.WriteString(s.renderEntry(status, s.selectedStatuses[status], i == s.cursor, inner, styles.PhaseStyle(status)))
	}

	b.WriteString("\n")
	b.WriteString(styles.StyleSubtle.Render("Namespace"))
	b.WriteString("\n")
	if len(s.namespaces) == 0 {
		b.WriteString(styles.StyleSubtle.Render("  (loading)"))
		b.WriteString("\n")
	}
	for i, ns := range s.namespaces {
		at := len(podPhases) + i
		b.WriteString(s.renderEntry(ns, s.selectedNS[ns], at == s.cursor, inner, styles.StyleNormal))
	}

	return b.String()
}

func (s *Sidebar) renderEntry(label string, selected, atCursor bool, width int, style lipgloss.Style) string {
	marker := "[ ] "
	if selected {
		marker = "[" + styles.IconCheckmark + "] "
	}
	text := format.TruncateWithEllipsis(label, width-4)
	if atCursor {
		return marker + styles.StyleSelectedRow.Render(text) + "\n"
	}
	return marker + style.Render(text) + "\n"
}
