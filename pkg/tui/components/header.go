package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/andri/podgrid/pkg/api"
	"github.com/andri/podgrid/pkg/tui/styles"
)

// Header is the one-line status bar above the grid: backend target,
// pagination position, last refresh time, and the truncation marker when
// the backend hit its fetch cap.
type Header struct {
	BackendURL  string
	Pagination  api.PaginationInfo
	LastRefresh time.Time
	Refreshing  bool
}

// View renders the header line.
func (h Header) View() string {
	var parts []string

	parts = append(parts, styles.StyleHeading.Render("podgrid"))
	if h.BackendURL != "" {
		parts = append(parts, styles.StyleSubtle.Render(h.BackendURL))
	}

	if h.Pagination.TotalPages > 0 {
		parts = append(parts, styles.StyleNormal.Render(fmt.Sprintf(
			"page %d/%d (%d pods)",
			h.Pagination.Page, h.Pagination.TotalPages, h.Pagination.TotalItems)))
	}

	if h.Pagination.MaxLimitReached {
		parts = append(parts, styles.StyleWarning.Render(styles.IconWarning+" truncated"))
	}

	switch {
	case h.Refreshing:
		parts = append(parts, styles.StyleInfo.Render(styles.IconSpinner+" refreshing"))
	case !h.LastRefresh.IsZero():
		parts = append(parts, styles.StyleSubtle.Render("refreshed "+h.LastRefresh.Format("15:04:05")))
	}

	return strings.Join(parts, styles.StyleSubtle.Render("  │  "))
}
