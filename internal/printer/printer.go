// Package printer formats user-facing CLI output. Colors are disabled when
// NO_COLOR is set or the output is not a terminal.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Printer writes messages to an output and an error stream.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

// New returns a printer writing normal output to out and errors to errOut.
func New(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

// Success prints a message in green with a checkmark prefix.
func (p *Printer) Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		msg = "✓ " + msg
	}
	green.Fprint(p.out, msg)
}

// Info prints a message in the default color.
func (p *Printer) Info(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Warning prints a message in yellow with a warning prefix.
func (p *Printer) Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		msg = "⚠️  " + msg
	}
	yellow.Fprint(p.out, msg)
}

// Step prints a step of a multi-step operation.
func (p *Printer) Step(format string, a ...any) {
	cyan.Fprint(p.out, "→ "+fmt.Sprintf(format, a...))
}

// Error prints a title, an explanation and numbered suggestions to the error
// stream and returns a short error for Cobra, which is configured not to
// print it again.
func (p *Printer) Error(title, explanation string, suggestions []string) error {
	red.Fprintf(p.errOut, "%s\n\n", title)

	if explanation != "" {
		fmt.Fprintf(p.errOut, "%s\n", explanation)
	}

	if len(suggestions) > 0 {
		fmt.Fprintf(p.errOut, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(p.errOut, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(p.errOut, "Either:\n")
			for i, s := range suggestions {
				fmt.Fprintf(p.errOut, "  %d. %s\n", i+1, s)
			}
		}
	}

	return fmt.Errorf("%s", title)
}
