// Package styles provides theming and styling utilities for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for the grid interface
// These colors are defined to work with both 256-color and 16-color terminals
var (
	// Primary colors
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7C7AE6"}
	ColorPrimaryFg = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}

	// Status colors (semantic)
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#00AF87", Dark: "#00D787"} // Green
	ColorSuccessFg = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#000000"}

	ColorWarning   = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"} // Yellow
	ColorWarningFg = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#000000"}

	ColorDanger   = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"} // Red
	ColorDangerFg = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#000000"}

	ColorInfo   = lipgloss.AdaptiveColor{Light: "#0087D7", Dark: "#5FAFFF"} // Blue
	ColorInfoFg = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#000000"}

	// UI element colors
	ColorBorder     = lipgloss.AdaptiveColor{Light: "#B2B2B2", Dark: "#585858"}
	ColorSubtle     = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"}
	ColorHighlight  = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	ColorBackground = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#000000"}
	ColorSelection  = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#303030"} // Selected row background
)

// Text styles for various UI elements
var (
	// StyleHeading is used for section headings and titles
	StyleHeading = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleNormal is the default text style
	StyleNormal = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// StyleError is used for error messages
	StyleError = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	// StyleWarning is used for warning messages
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	// StyleSuccess is used for success messages
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	// StyleInfo is used for informational messages
	StyleInfo = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)

	// StyleSubtle is used for secondary information
	StyleSubtle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	// StyleHighlight is used for emphasized text
	StyleHighlight = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	// StyleSelectedRow marks the grid cursor row
	StyleSelectedRow = lipgloss.NewStyle().
				Background(ColorSelection).
				Bold(true)

	// StyleColumnHeader is used for grid column headers
	StyleColumnHeader = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)
)

// Phase styles. Every pod phase maps to a style: Running and Succeeded get
// the success palette, Pending gets warning, Failed gets danger, and
// anything else (including Unknown and future phases) falls back to subtle.
var (
	stylePhaseSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	stylePhaseWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	stylePhaseDanger  = lipgloss.NewStyle().Foreground(ColorDanger)
	stylePhaseNeutral = lipgloss.NewStyle().Foreground(ColorSubtle)
)

// PhaseStyle returns the style for a pod phase string.
func PhaseStyle(phase string) lipgloss.Style {
	switch phase {
	case "Running", "Succeeded":
		return stylePhaseSuccess
	case "Pending":
		return stylePhaseWarning
	case "Failed":
		return stylePhaseDanger
	default:
		return stylePhaseNeutral
	}
}

// RestartStyle returns the style for a restart count cell. Zero restarts
// renders in the success palette; one or more renders bold danger.
func RestartStyle(restarts int32) lipgloss.Style {
	if restarts >= 1 {
		return lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(ColorSuccess)
}

// Border styles for boxes and containers
var (
	BorderRounded = lipgloss.RoundedBorder()

	// StyleBox is a standard bordered box
	StyleBox = lipgloss.NewStyle().
			Border(BorderRounded).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	// StyleBoxDanger is a danger-themed box, used for failure modals
	StyleBoxDanger = lipgloss.NewStyle().
			Border(BorderRounded).
			BorderForeground(ColorDanger).
			Padding(1, 2)

	// StyleBoxWarning is a warning-themed box
	StyleBoxWarning = lipgloss.NewStyle().
			Border(BorderRounded).
			BorderForeground(ColorWarning).
			Padding(1, 2)

	// StyleBoxInfo is an info-themed box
	StyleBoxInfo = lipgloss.NewStyle().
			Border(BorderRounded).
			BorderForeground(ColorInfo).
			Padding(1, 2)
)

// Icons and symbols
const (
	IconCheckmark = "✓"
	IconCross     = "✗"
	IconWarning   = "⚠"
	IconInfo      = "ℹ"
	IconSpinner   = "◐"
	IconArrow     = "→"
)
