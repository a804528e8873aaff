// Package ui provides colored console output.
package ui

import (
	"io"

	"github.com/fatih/color"
)

var (
	Red    = color.New(color.FgRed)
	Green  = color.New(color.FgGreen)
	Yellow = color.New(color.FgYellow)
	Blue   = color.New(color.FgBlue)
	Bold   = color.New(color.Bold)
)

// SetColor toggles colored output process-wide.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// Printer writes status lines to a single writer.
type Printer struct {
	out io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{out: w}
}

// Success prints a green success message with checkmark.
func (p *Printer) Success(format string, args ...any) {
	Green.Fprintf(p.out, "✓ "+format+"\n", args...)
}

// Error prints a red error message with X.
func (p *Printer) Error(format string, args ...any) {
	Red.Fprintf(p.out, "✗ "+format+"\n", args...)
}

// Warning prints a yellow warning message.
func (p *Printer) Warning(format string, args ...any) {
	Yellow.Fprintf(p.out, "⚠ "+format+"\n", args...)
}

// Info prints a blue info message.
func (p *Printer) Info(format string, args ...any) {
	Blue.Fprintf(p.out, format+"\n", args...)
}

// Header prints a bold header.
func (p *Printer) Header(format string, args ...any) {
	Bold.Fprintf(p.out, format+"\n", args...)
}
