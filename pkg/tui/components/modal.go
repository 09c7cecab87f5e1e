package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andri/podgrid/pkg/tui/keys"
	"github.com/andri/podgrid/pkg/tui/styles"
)

// FailureAckMsg is sent when the operator acknowledges a failure modal.
type FailureAckMsg struct{}

// FailureModal is the blocking acknowledgment dialog shown when a pod
// action fails. Unlike a timed notice it stays up until dismissed, so a
// failed destructive action cannot go unnoticed.
type FailureModal struct {
	Title   string
	Message string

	width    int
	height   int
	bindings keys.ConfirmBindings
}

// NewFailureModal creates a failure acknowledgment modal.
func NewFailureModal(title, message string) *FailureModal {
	return &FailureModal{
		Title:    title,
		Message:  message,
		bindings: keys.DefaultConfirmBindings(),
	}
}

// SetSize sets the terminal dimensions used for centering.
func (m *FailureModal) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init implements tea.Model
func (m *FailureModal) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Enter or esc acknowledges; everything else
// is swallowed while the modal is up.
func (m *FailureModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(keyMsg, m.bindings.Accept) || key.Matches(keyMsg, m.bindings.Cancel) {
		return m, func() tea.Msg { return FailureAckMsg{} }
	}
	return m, nil
}

// View implements tea.Model
func (m *FailureModal) View() string {
	content := fmt.Sprintf("%s\n\n%s\n\n%s",
		styles.StyleError.Render(styles.IconCross+" "+m.Title),
		styles.StyleNormal.Render(m.Message),
		styles.StyleSubtle.Render("enter: dismiss"))

	box := styles.StyleBoxDanger.Width(min(m.width-4, 70))
	if m.width == 0 {
		box = styles.StyleBoxDanger.Width(70)
	}

	return Place(m.width, m.height, box.Render(content))
}
