// Package viewstate persists the grid layout between sessions.
package viewstate

import "time"

const (
	// VersionV1 is the current layout file version.
	VersionV1 = "v1"
)

// Column identifiers, in default display order.
const (
	ColumnName      = "name"
	ColumnNamespace = "namespace"
	ColumnStatus    = "status"
	ColumnReady     = "ready"
	ColumnRestarts  = "restarts"
	ColumnImage     = "image"
	ColumnNode      = "node"
	ColumnPodIP     = "pod_ip"
	ColumnApp       = "app"
	ColumnCreated   = "created"
)

// SortNone, SortAsc, and SortDesc are the allowed per-column sort markers.
const (
	SortNone = ""
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ColumnState captures one column's layout: its position is the slice index.
type ColumnState struct {
	ID      string `json:"id"`
	Width   int    `json:"width"`
	Visible bool   `json:"visible"`
	Sort    string `json:"sort,omitempty"`
}

// ViewState captures everything about the grid layout worth restoring.
type ViewState struct {
	Version          string        `json:"version"`
	Columns          []ColumnState `json:"columns"`
	PageSize         int           `json:"pageSize"`
	Page             int           `json:"page"`
	SidebarCollapsed bool          `json:"sidebarCollapsed"`
	Timestamp        time.Time     `json:"timestamp,omitempty"`
}

// defaultColumns is the factory layout. Width zero means auto-size.
func defaultColumns() []ColumnState {
	return []ColumnState{
		{ID: ColumnName, Visible: true, Sort: SortAsc},
		{ID: ColumnNamespace, Visible: true},
		{ID: ColumnStatus, Visible: true},
		{ID: ColumnReady, Visible: true},
		{ID: ColumnRestarts, Visible: true},
		{ID: ColumnImage, Visible: true},
		{ID: ColumnNode, Visible: false},
		{ID: ColumnPodIP, Visible: false},
		{ID: ColumnApp, Visible: true},
		{ID: ColumnCreated, Visible: true},
	}
}

// DefaultViewState returns the factory layout used before any restore and
// whenever no valid saved layout exists.
func DefaultViewState() ViewState {
	return ViewState{
		Version:  VersionV1,
		Columns:  defaultColumns(),
		PageSize: 50,
		Page:     1,
	}
}

// KnownColumn reports whether id names a grid column.
func KnownColumn(id string) bool {
	for _, col := range defaultColumns() {
		if col.ID == id {
			return true
		}
	}
	return false
}

// Normalize reconciles a restored layout against the current column set:
// unknown columns are dropped, missing ones are appended with their factory
// defaults, and out-of-range values fall back. Saved layouts from older
// builds stay usable this way.
func Normalize(vs ViewState) ViewState {
	out := vs
	out.Version = VersionV1

	seen := make(map[string]bool, len(vs.Columns))
	sorted := false
	columns := make([]ColumnState, 0, len(defaultColumns()))
	for _, col := range vs.Columns {
		if !KnownColumn(col.ID) || seen[col.ID] {
			continue
		}
		seen[col.ID] = true
		if col.Width < 0 {
			col.Width = 0
		}
		if col.Sort != SortNone && col.Sort != SortAsc && col.Sort != SortDesc {
			col.Sort = SortNone
		}
		// At most one column carries a sort marker; extras are cleared so
		// the header and the backend query agree on the sort.
		if col.Sort != SortNone {
			if sorted {
				col.Sort = SortNone
			}
			sorted = true
		}
		columns = append(columns, col)
	}
	for _, col := range defaultColumns() {
		if seen[col.ID] {
			continue
		}
		if sorted {
			col.Sort = SortNone
		} else if col.Sort != SortNone {
			sorted = true
		}
		columns = append(columns, col)
	}
	out.Columns = columns

	if out.PageSize < 1 {
		out.PageSize = DefaultViewState().PageSize
	}
	if out.Page < 1 {
		out.Page = 1
	}

	return out
}

// SortedColumn returns the column carrying a sort marker, if any.
func (vs ViewState) SortedColumn() (ColumnState, bool) {
	for _, col := range vs.Columns {
		if col.Sort == SortAsc || col.Sort == SortDesc {
			return col, true
		}
	}
	return ColumnState{}, false
}

// VisibleColumns returns the columns to render, in order.
func (vs ViewState) VisibleColumns() []ColumnState {
	visible := make([]ColumnState, 0, len(vs.Columns))
	for _, col := range vs.Columns {
		if col.Visible {
			visible = append(visible, col)
		}
	}
	return visible
}
