package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andri/podgrid/pkg/tui/styles"
)

// NoticeLevel selects the notice palette.
type NoticeLevel int

const (
	// NoticeInfo is for neutral notices
	NoticeInfo NoticeLevel = iota
	// NoticeSuccess is for completed actions
	NoticeSuccess
	// NoticeDanger is for destructive-action outcomes
	NoticeDanger
)

// NoticeExpiredMsg is sent when a timed notice reaches its deadline.
type NoticeExpiredMsg struct {
	ID int
}

// Notice is a transient message bar. Deletion results use the danger
// palette even on success, since something was destroyed.
type Notice struct {
	ID      int
	Text    string
	Level   NoticeLevel
	timeout time.Duration
}

// NewNotice creates a timed notice.
func NewNotice(id int, text string, level NoticeLevel, timeout time.Duration) *Notice {
	return &Notice{
		ID:      id,
		Text:    text,
		Level:   level,
		timeout: timeout,
	}
}

// Start returns the expiry command for this notice.
func (n *Notice) Start() tea.Cmd {
	id := n.ID
	return tea.Tick(n.timeout, func(_ time.Time) tea.Msg {
		return NoticeExpiredMsg{ID: id}
	})
}

// Init implements tea.Model
func (n *Notice) Init() tea.Cmd {
	return n.Start()
}

// Update implements tea.Model
func (n *Notice) Update(_ tea.Msg) (tea.Model, tea.Cmd) {
	return n, nil
}

// View implements tea.Model
func (n *Notice) View() string {
	var style lipgloss.Style
	icon := styles.IconInfo

	switch n.Level {
	case NoticeSuccess:
		style = styles.StyleSuccess
		icon = styles.IconCheckmark
	case NoticeDanger:
		style = styles.StyleError
		icon = styles.IconWarning
	default:
		style = styles.StyleInfo
	}

	return style.Render(icon + " " + n.Text)
}

// ErrorBanner is a persistent inline banner shown above the grid while the
// backend is unreachable. The grid keeps rendering its last known rows
// underneath it.
type ErrorBanner struct {
	Text string
}

// View renders the banner, empty when there is no error.
func (b ErrorBanner) View() string {
	if b.Text == "" {
		return ""
	}
	return styles.StyleError.Render(styles.IconWarning+" "+b.Text) +
		styles.StyleSubtle.Render("  (showing last known data)")
}
