package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andri/podgrid/pkg/k8s"
	"github.com/andri/podgrid/pkg/tui/keys"
	"github.com/andri/podgrid/pkg/tui/styles"
)

// ConfirmResult represents the result of a confirmation prompt
type ConfirmResult int

const (
	// ConfirmPending indicates no answer has been given yet
	ConfirmPending ConfirmResult = iota
	// ConfirmYes indicates the user confirmed
	ConfirmYes
	// ConfirmCancelled indicates the user declined or cancelled
	ConfirmCancelled
)

// ActionKind names the pod action being confirmed.
type ActionKind int

const (
	// ActionDelete confirms a pod deletion
	ActionDelete ActionKind = iota
	// ActionScript confirms running a catalog script in a pod
	ActionScript
)

// ConfirmResultMsg is sent when the user answers the prompt.
type ConfirmResultMsg struct {
	Result ConfirmResult
	Kind   ActionKind
	Target k8s.PodRecord
	Script string
}

// noScriptSelected is the selector placeholder. While it is selected the
// prompt cannot be confirmed.
const noScriptSelected = "— select a script —"

// ActionConfirm is the confirmation dialog shown before any pod action.
// The target pod is always identified by its full in-cluster DNS name so
// the operator sees exactly which pod in which namespace is affected.
type ActionConfirm struct {
	kind   ActionKind
	target k8s.PodRecord
	result ConfirmResult

	// script selector state, used only for ActionScript
	scripts     []string
	scriptIndex int

	width           int
	confirmBindings keys.ConfirmBindings
	selectBindings  keys.SelectorBindings
}

// NewDeleteConfirm builds a delete confirmation for a pod.
func NewDeleteConfirm(target k8s.PodRecord) *ActionConfirm {
	return &ActionConfirm{
		kind:            ActionDelete,
		target:          target,
		width:           64,
		confirmBindings: keys.DefaultConfirmBindings(),
		selectBindings:  keys.DefaultSelectorBindings(),
	}
}

// NewScriptConfirm builds a script confirmation for a pod. The selector
// starts on the placeholder entry; confirmation stays disabled until the
// operator picks a real script.
func NewScriptConfirm(target k8s.PodRecord, scripts []string) *ActionConfirm {
	return &ActionConfirm{
		kind:            ActionScript,
		target:          target,
		scripts:         append([]string{noScriptSelected}, scripts...),
		width:           64,
		confirmBindings: keys.DefaultConfirmBindings(),
		selectBindings:  keys.DefaultSelectorBindings(),
	}
}

// SelectedScript returns the chosen script name, empty while the
// placeholder is selected.
func (c *ActionConfirm) SelectedScript() string {
	if c.kind != ActionScript || c.scriptIndex == 0 {
		return ""
	}
	return c.scripts[c.scriptIndex]
}

// CanConfirm reports whether confirmation is currently allowed.
func (c *ActionConfirm) CanConfirm() bool {
	if c.kind == ActionScript {
		return c.scriptIndex != 0
	}
	return true
}

// IsAnswered returns true if the user has provided an answer.
func (c *ActionConfirm) IsAnswered() bool {
	return c.result != ConfirmPending
}

// Init implements tea.Model
func (c *ActionConfirm) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (c *ActionConfirm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if c.result != ConfirmPending {
		return c, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	if c.kind == ActionScript {
		switch {
		case key.Matches(keyMsg, c.selectBindings.Up):
			if c.scriptIndex > 0 {
				c.scriptIndex--
			}
			return c, nil
		case key.Matches(keyMsg, c.selectBindings.Down):
			if c.scriptIndex < len(c.scripts)-1 {
				c.scriptIndex++
			}
			return c, nil
		}
	}

	switch {
	case key.Matches(keyMsg, c.confirmBindings.Yes), key.Matches(keyMsg, c.confirmBindings.Accept):
		if !c.CanConfirm() {
			return c, nil
		}
		c.result = ConfirmYes
		return c, c.emit(ConfirmYes)

	case key.Matches(keyMsg, c.confirmBindings.No), key.Matches(keyMsg, c.confirmBindings.Cancel):
		c.result = ConfirmCancelled
		return c, c.emit(ConfirmCancelled)
	}

	return c, nil
}

func (c *ActionConfirm) emit(result ConfirmResult) tea.Cmd {
	msg := ConfirmResultMsg{
		Result: result,
		Kind:   c.kind,
		Target: c.target,
		Script: c.SelectedScript(),
	}
	return func() tea.Msg { return msg }
}

// View implements tea.Model
func (c *ActionConfirm) View() string {
	var b strings.Builder

	switch c.kind {
	case ActionDelete:
		b.WriteString(styles.StyleHeading.Render("Delete pod"))
	case ActionScript:
		b.WriteString(styles.StyleHeading.Render("Run script"))
	}
	b.WriteString("\n\n")

	fqdn := c.target.FQDN()
	switch c.kind {
	case ActionDelete:
		b.WriteString(fmt.Sprintf("Delete %s?", styles.StyleHighlight.Render(fqdn)))
		if c.target.Phase != "" {
			b.WriteString("\n\n" + StatusPill(c.target.Phase))
		}
	case ActionScript:
		b.WriteString(fmt.Sprintf("Run a script in %s", styles.StyleHighlight.Render(fqdn)))
		b.WriteString("\n\n")
		for i, script := range c.scripts {
			marker := "  "
			style := styles.StyleNormal
			if i == c.scriptIndex {
				marker = styles.StyleInfo.Render("> ")
				style = styles.StyleHighlight
			}
			if i == 0 {
				style = styles.StyleSubtle
			}
			b.WriteString(marker + style.Render(script) + "\n")
		}
	}

	b.WriteString("\n\n")
	if c.CanConfirm() {
		b.WriteString(styles.StyleSubtle.Render("y: confirm  n/esc: cancel"))
	} else {
		b.WriteString(styles.StyleSubtle.Render("j/k: choose a script  esc: cancel"))
	}

	return styles.StyleBoxWarning.Width(c.width).Render(b.String())
}

// SetWidth sets the dialog width.
func (c *ActionConfirm) SetWidth(width int) {
	c.width = width
}
