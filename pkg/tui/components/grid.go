// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andri/podgrid/pkg/k8s"
	"github.com/andri/podgrid/pkg/tui/format"
	"github.com/andri/podgrid/pkg/tui/styles"
	"github.com/andri/podgrid/pkg/viewstate"
)

// columnTitles maps column IDs to their header text.
var columnTitles = map[string]string{
	viewstate.ColumnName:      "NAME",
	viewstate.ColumnNamespace: "NAMESPACE",
	viewstate.ColumnStatus:    "STATUS",
	viewstate.ColumnReady:     "READY",
	viewstate.ColumnRestarts:  "RESTARTS",
	viewstate.ColumnImage:     "IMAGE",
	viewstate.ColumnNode:      "NODE",
	viewstate.ColumnPodIP:     "POD IP",
	viewstate.ColumnApp:       "APP",
	viewstate.ColumnCreated:   "CREATED",
}

// Grid renders the pod table driven by a persisted layout: column order,
// width, and visibility all come from the ViewState.
type Grid struct {
	layout  viewstate.ViewState
	records []k8s.PodRecord
	cursor  int
	width   int
}

// NewGrid creates a grid with the given layout.
func NewGrid(layout viewstate.ViewState) *Grid {
	return &Grid{layout: layout}
}

// SetLayout replaces the grid layout, clamping the cursor.
func (g *Grid) SetLayout(layout viewstate.ViewState) {
	g.layout = layout
	g.clampCursor()
}

// Layout returns the current layout.
func (g *Grid) Layout() viewstate.ViewState {
	return g.layout
}

// SetRecords replaces the rows. The cursor follows the previously selected
// pod by ID when it still exists, so selection survives refreshes.
func (g *Grid) SetRecords(records []k8s.PodRecord) {
	selectedID := ""
	if rec, ok := g.Selected(); ok {
		selectedID = rec.ID
	}

	g.records = records
	g.cursor = 0
	if selectedID != "" {
		for i, rec := range records {
			if rec.ID == selectedID {
				g.cursor = i
				break
			}
		}
	}
	g.clampCursor()
}

// Records returns the current rows.
func (g *Grid) Records() []k8s.PodRecord {
	return g.records
}

// Selected returns the record under the cursor.
func (g *Grid) Selected() (k8s.PodRecord, bool) {
	if g.cursor < 0 || g.cursor >= len(g.records) {
		return k8s.PodRecord{}, false
	}
	return g.records[g.cursor], true
}

// SetWidth sets the render width.
func (g *Grid) SetWidth(width int) {
	g.width = width
}

// CursorUp moves the selection up one row.
func (g *Grid) CursorUp() {
	if g.cursor > 0 {
		g.cursor--
	}
}

// CursorDown moves the selection down one row.
func (g *Grid) CursorDown() {
	if g.cursor < len(g.records)-1 {
		g.cursor++
	}
}

// CursorTop moves the selection to the first row.
func (g *Grid) CursorTop() {
	g.cursor = 0
}

// CursorBottom moves the selection to the last row.
func (g *Grid) CursorBottom() {
	if len(g.records) > 0 {
		g.cursor = len(g.records) - 1
	}
}

func (g *Grid) clampCursor() {
	if g.cursor >= len(g.records) {
		g.cursor = len(g.records) - 1
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
}

// Init implements tea.Model
func (g *Grid) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Navigation is driven by the parent model.
func (g *Grid) Update(_ tea.Msg) (tea.Model, tea.Cmd) {
	return g, nil
}

// View implements tea.Model
func (g *Grid) View() string {
	columns := g.layout.VisibleColumns()
	if len(columns) == 0 {
		return styles.StyleSubtle.Render("no columns visible")
	}

	widths := g.columnWidths(columns)

	var lines []string
	lines = append(lines, g.renderHeader(columns, widths))

	if len(g.records) == 0 {
		lines = append(lines, styles.StyleSubtle.Render("no pods"))
		return strings.Join(lines, "\n")
	}

	for i, rec := range g.records {
		lines = append(lines, g.renderRow(rec, columns, widths, i == g.cursor))
	}

	return strings.Join(lines, "\n")
}

// defaultWidths are used for columns whose saved width is zero (auto).
var defaultWidths = map[string]int{
	viewstate.ColumnName:      32,
	viewstate.ColumnNamespace: 16,
	viewstate.ColumnStatus:    11,
	viewstate.ColumnReady:     5,
	viewstate.ColumnRestarts:  8,
	viewstate.ColumnImage:     28,
	viewstate.ColumnNode:      18,
	viewstate.ColumnPodIP:     15,
	viewstate.ColumnApp:       14,
	viewstate.ColumnCreated:   17,
}

func (g *Grid) columnWidths(columns []viewstate.ColumnState) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		if col.Width > 0 {
			widths[i] = col.Width
		} else {
			widths[i] = defaultWidths[col.ID]
		}
		if widths[i] < 3 {
			widths[i] = 3
		}
	}
	return widths
}

func (g *Grid) renderHeader(columns []viewstate.ColumnState, widths []int) string {
	cells := make([]string, len(columns))
	for i, col := range columns {
		title := columnTitles[col.ID]
		switch col.Sort {
		case viewstate.SortAsc:
			title += " ↑"
		case viewstate.SortDesc:
			title += " ↓"
		}
		cells[i] = styles.StyleColumnHeader.Render(format.PadRight(title, widths[i]))
	}
	return strings.Join(cells, "  ")
}

func (g *Grid) renderRow(rec k8s.PodRecord, columns []viewstate.ColumnState, widths []int, selected bool) string {
	cells := make([]string, len(columns))
	for i, col := range columns {
		cells[i] = g.renderCell(rec, col.ID, widths[i], selected)
	}
	return strings.Join(cells, "  ")
}

func (g *Grid) renderCell(rec k8s.PodRecord, columnID string, width int, selected bool) string {
	var text string
	style := styles.StyleNormal

	switch columnID {
	case viewstate.ColumnName:
		text = rec.Name
	case viewstate.ColumnNamespace:
		text = rec.Namespace
		style = styles.StyleSubtle
	case viewstate.ColumnStatus:
		text = statusPillText(rec.Phase)
		style = statusPillStyle(rec.Phase)
	case viewstate.ColumnReady:
		text = rec.Ready
	case viewstate.ColumnRestarts:
		text = fmt.Sprintf("%d", rec.RestartCount)
		style = styles.RestartStyle(rec.RestartCount)
	case viewstate.ColumnImage:
		text = rec.Image
		style = styles.StyleSubtle
	case viewstate.ColumnNode:
		text = rec.NodeName
	case viewstate.ColumnPodIP:
		text = rec.PodIP
	case viewstate.ColumnApp:
		text = rec.AppName
	case viewstate.ColumnCreated:
		text = format.Created(rec.CreatedTimestamp)
		style = styles.StyleSubtle
	}

	padded := format.PadRight(format.TruncateWithEllipsis(text, width), width)
	if selected {
		return styles.StyleSelectedRow.Render(padded)
	}
	return style.Render(padded)
}

// StatusPill renders a colored standalone status badge for a phase.
func StatusPill(phase string) string {
	return statusPillStyle(phase).Render(statusPillText(phase))
}

func statusPillText(phase string) string {
	return "● " + phase
}

func statusPillStyle(phase string) lipgloss.Style {
	return styles.PhaseStyle(phase).Bold(true)
}

// Place centers content in the available area.
func Place(width, height int, content string) string {
	if width == 0 || height == 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
