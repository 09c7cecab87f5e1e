package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/andri/podgrid/pkg/k8s"
	"github.com/andri/podgrid/pkg/tui/format"
)

// TableWriter writes pod listings as a formatted ASCII table
type TableWriter struct {
	w     io.Writer
	color bool
	width int
}

// NewTableWriter creates a new table writer
func NewTableWriter(w io.Writer) *TableWriter {
	tw := &TableWriter{
		w:     w,
		color: isTerminal(w),
		width: 80,
	}

	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			tw.width = width
		}
	}

	return tw
}

// isTerminal checks if the writer is a terminal
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// column defines a table column
type column struct {
	header string
	width  int
}

// cell defines a table cell
type cell struct {
	value string
	color string
}

var podColumns = []column{
	{header: "NAME", width: 40},
	{header: "NAMESPACE", width: 16},
	{header: "STATUS", width: 11},
	{header: "READY", width: 6},
	{header: "RESTARTS", width: 9},
	{header: "NODE", width: 20},
	{header: "AGE", width: 8},
}

// Write writes the listing as a formatted table
func (tw *TableWriter) Write(data *Data) error {
	tw.writeSectionHeader(data)

	if len(data.Pods) == 0 {
		_, _ = fmt.Fprintln(tw.w, "No pods found")
		return nil
	}

	tw.writeTableHeader(podColumns)
	tw.writeTableSeparator(podColumns)

	for _, pod := range data.Pods {
		tw.writeTableRow(podColumns, tw.podRow(pod))
	}

	if data.Pagination.MaxLimitReached {
		_, _ = fmt.Fprintln(tw.w, tw.colorize("Listing truncated: backend fetch limit reached", colorYellow))
	}

	return nil
}

// phaseColor maps a pod phase to its table color. Mirrors the grid
// palette: Running and Succeeded are healthy, Pending is in flight,
// Failed is broken, everything else is unknown territory.
func phaseColor(phase string) string {
	switch phase {
	case "Running", "Succeeded":
		return colorGreen
	case "Pending":
		return colorYellow
	case "Failed":
		return colorRed
	default:
		return ""
	}
}

func (tw *TableWriter) podRow(pod k8s.PodRecord) []cell {
	restartColor := colorGreen
	if pod.RestartCount >= 1 {
		restartColor = colorRed
	}

	name := pod.Name
	if len(name) > 38 {
		name = name[:35] + "..."
	}
	node := pod.NodeName
	if len(node) > 18 {
		node = node[:15] + "..."
	}

	return []cell{
		{value: name},
		{value: pod.Namespace},
		{value: pod.Phase, color: phaseColor(pod.Phase)},
		{value: pod.Ready},
		{value: fmt.Sprintf("%d", pod.RestartCount), color: restartColor},
		{value: node},
		{value: format.Age(pod.CreatedTimestamp, time.Now())},
	}
}

// writeSectionHeader writes the listing header with the page window
func (tw *TableWriter) writeSectionHeader(data *Data) {
	p := data.Pagination
	header := fmt.Sprintf("=== PODS (page %d/%d, %d total) ===", p.Page, p.TotalPages, p.TotalItems)
	if p.TotalPages == 0 {
		header = fmt.Sprintf("=== PODS (%d) ===", len(data.Pods))
	}
	_, _ = fmt.Fprintln(tw.w, tw.colorize(header, colorBold+colorCyan))
}

// writeTableHeader writes the table header row
func (tw *TableWriter) writeTableHeader(cols []column) {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = tw.padRight(col.header, col.width)
	}
	_, _ = fmt.Fprintln(tw.w, tw.colorize(strings.Join(parts, " "), colorBold))
}

// writeTableSeparator writes a separator line
func (tw *TableWriter) writeTableSeparator(cols []column) {
	totalWidth := 0
	for _, col := range cols {
		totalWidth += col.width + 1
	}
	_, _ = fmt.Fprintln(tw.w, strings.Repeat("-", totalWidth-1))
}

// writeTableRow writes a table row
func (tw *TableWriter) writeTableRow(cols []column, cells []cell) {
	parts := make([]string, len(cols))
	for i, col := range cols {
		value := ""
		color := ""
		if i < len(cells) {
			value = cells[i].value
			color = cells[i].color
		}
		padded := tw.padRight(value, col.width)
		if color != "" {
			padded = tw.colorize(padded, color)
		}
		parts[i] = padded
	}
	_, _ = fmt.Fprintln(tw.w, strings.Join(parts, " "))
}

// padRight pads a string to the specified width
func (tw *TableWriter) padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// colorize adds ANSI color codes if color is enabled
func (tw *TableWriter) colorize(s, color string) string {
	if !tw.color || color == "" {
		return s
	}
	return color + s + colorReset
}

// RenderTable renders data to a table and writes to the given writer
func RenderTable(w io.Writer, data *Data) error {
	tw := NewTableWriter(w)
	return tw.Write(data)
}
