package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Printer writes pod action results to the terminal.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a new Printer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{w: w}
}

// PrintTarget prints the pod an action is about to run against.
func (p *Printer) PrintTarget(fqdn, phase string) {
	_, _ = fmt.Fprintf(p.w, "Target pod: %s\n", fqdn)
	if phase != "" {
		_, _ = fmt.Fprintf(p.w, "Phase:      %s\n", phase)
	}
	_, _ = fmt.Fprintln(p.w)
}

// PrintSuccess prints a success message.
func (p *Printer) PrintSuccess(message string) {
	_, _ = fmt.Fprintf(p.w, "✓ %s\n", message)
}

// PrintError prints an error message.
func (p *Printer) PrintError(message string) {
	_, _ = fmt.Fprintf(p.w, "✗ %s\n", message)
}

// PrintOutput prints captured script output, indented under a header.
func (p *Printer) PrintOutput(output string) {
	output = strings.TrimSpace(output)
	if output == "" {
		return
	}

	_, _ = fmt.Fprintln(p.w, "Output:")
	for _, line := range strings.Split(output, "\n") {
		_, _ = fmt.Fprintf(p.w, "  %s\n", line)
	}
}
