// Package output provides the printer used by all now-cli commands.
//
// Commands and workflows receive a Printer rather than writing to
// os.Stdout directly, so tests can capture everything the user would see.
package output

import (
	"fmt"
	"io"
)

// Printer is the user-facing message sink injected into commands and
// workflows.
type Printer interface {
	// Print writes a raw line with no prefix.
	Print(msg string)

	// Log writes an informational line.
	Log(format string, args ...any)

	// Warn writes a warning line.
	Warn(format string, args ...any)

	// Error writes an error line to the error stream.
	Error(format string, args ...any)

	// Success writes a success line.
	Success(format string, args ...any)

	// Debug writes a line only when debug output is enabled.
	Debug(format string, args ...any)
}

// Writer is the standard Printer implementation. It writes informational
// output to Out and errors to Err.
type Writer struct {
	Out     io.Writer
	Err     io.Writer
	Verbose bool
}

// New creates a Writer printing to the given streams. Debug lines are
// emitted only when verbose is set.
func New(out, err io.Writer, verbose bool) *Writer {
	return &Writer{Out: out, Err: err, Verbose: verbose}
}

// Print writes a raw line with no prefix.
func (w *Writer) Print(msg string) {
	_, _ = fmt.Fprintln(w.Out, msg)
}

// Log writes an informational line prefixed with "> ".
func (w *Writer) Log(format string, args ...any) {
	_, _ = fmt.Fprintf(w.Out, "> "+format+"\n", args...)
}

// Warn writes a warning line.
func (w *Writer) Warn(format string, args ...any) {
	_, _ = fmt.Fprintf(w.Out, "> Warning! "+format+"\n", args...)
}

// Error writes an error line to the error stream.
func (w *Writer) Error(format string, args ...any) {
	_, _ = fmt.Fprintf(w.Err, "> Error! "+format+"\n", args...)
}

// Success writes a success line.
func (w *Writer) Success(format string, args ...any) {
	_, _ = fmt.Fprintf(w.Out, "> Success! "+format+"\n", args...)
}

// Debug writes a line only when verbose output is enabled.
func (w *Writer) Debug(format string, args ...any) {
	if !w.Verbose {
		return
	}
	_, _ = fmt.Fprintf(w.Err, "> [debug] "+format+"\n", args...)
}
