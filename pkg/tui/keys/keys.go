// Package keys provides centralized keybinding definitions for the TUI.
package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

// GlobalBindings are active everywhere in the application.
type GlobalBindings struct {
	Quit key.Binding
	Help key.Binding
}

// DefaultGlobalBindings returns the default global keybindings.
func DefaultGlobalBindings() GlobalBindings {
	return GlobalBindings{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// GridBindings drive the pod grid.
type GridBindings struct {
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Refresh  key.Binding
	Delete   key.Binding
	Script   key.Binding
	Sidebar  key.Binding
	Sort     key.Binding
}

// DefaultGridBindings returns the default grid keybindings.
func DefaultGridBindings() GridBindings {
	return GridBindings{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("l", "right", "pgdown"),
			key.WithHelp("l/right", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("h", "left", "pgup"),
			key.WithHelp("h/left", "previous page"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete pod"),
		),
		Script: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "run script"),
		),
		Sidebar: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle sidebar"),
		),
		Sort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "cycle sort"),
		),
	}
}

// ConfirmBindings answer a confirmation prompt.
type ConfirmBindings struct {
	Yes    key.Binding
	No     key.Binding
	Accept key.Binding
	Cancel key.Binding
}

// DefaultConfirmBindings returns the default confirmation keybindings.
func DefaultConfirmBindings() ConfirmBindings {
	return ConfirmBindings{
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "no"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "accept default"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// SelectorBindings move through an option list.
type SelectorBindings struct {
	Up     key.Binding
	Down   key.Binding
	Accept key.Binding
	Cancel key.Binding
}

// DefaultSelectorBindings returns the default selector keybindings.
func DefaultSelectorBindings() SelectorBindings {
	return SelectorBindings{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "previous option"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "next option"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
