// Package terminal provides terminal detection and compatibility utilities.
package terminal

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Capability represents terminal capabilities
type Capability struct {
	// Profile is the detected color profile
	Profile termenv.Profile

	// HasUnicode indicates Unicode symbol support
	HasUnicode bool

	// IsTmux indicates running inside tmux
	IsTmux bool

	// IsScreen indicates running inside GNU screen
	IsScreen bool

	// Term is the TERM environment variable
	Term string
}

// The grid needs room for its default visible columns, so the minimums
// are wider than a classic 80x24 terminal.
const (
	// MinRecommendedWidth is the minimum recommended terminal width
	MinRecommendedWidth = 100

	// MinRecommendedHeight is the minimum recommended terminal height
	MinRecommendedHeight = 20
)

// DetectCapabilities detects terminal capabilities from environment.
// Color profile detection honors NO_COLOR and CLICOLOR_FORCE.
func DetectCapabilities() Capability {
	termVar := os.Getenv("TERM")

	cap := Capability{
		Profile:    termenv.EnvColorProfile(),
		Term:       termVar,
		HasUnicode: termVar != "" && termVar != "dumb",
		IsTmux:     os.Getenv("TMUX") != "",
		IsScreen:   strings.Contains(termVar, "screen"),
	}

	return cap
}

// HasColor reports whether the terminal supports any color output.
func (c Capability) HasColor() bool {
	return c.Profile != termenv.Ascii
}

// ConfigureLipgloss pins the lipgloss renderer to the detected profile so
// styles degrade consistently instead of re-probing the environment.
func ConfigureLipgloss(cap Capability) {
	lipgloss.SetColorProfile(cap.Profile)
}

// IsTerminal reports whether the file is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Size returns the terminal dimensions, zero when unknown.
func Size(f *os.File) (width, height int) {
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0
	}
	return width, height
}

// IsTooNarrow checks if the terminal width is below minimum
func IsTooNarrow(width int) bool {
	return width > 0 && width < MinRecommendedWidth
}

// IsTooShort checks if the terminal height is below minimum
func IsTooShort(height int) bool {
	return height > 0 && height < MinRecommendedHeight
}

// SizeWarning returns a warning message if terminal is too small
func SizeWarning(width, height int) string {
	var warnings []string

	if IsTooNarrow(width) {
		warnings = append(warnings, "Terminal too narrow, recommend 100+ columns")
	}
	if IsTooShort(height) {
		warnings = append(warnings, "Terminal too short, recommend 20+ rows")
	}

	if len(warnings) == 0 {
		return ""
	}

	return strings.Join(warnings, "; ")
}
