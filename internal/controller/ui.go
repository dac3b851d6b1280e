// Package controller provides output adapters for displaying tool results.
package controller

import (
	"io"
	"os"

	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/spf13/cobra"
)

// UI defines how listings, run reports and errors reach the user.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplayListing shows the annotations found by a list run.
	DisplayListing(listing m.Listing) error
	// DisplayReport summarizes a finished run.
	DisplayReport(report m.Report) error
	// DisplayErrors prints the accumulated error log.
	DisplayErrors(log *m.ErrorLog)
}

// NewUI returns the TUI for terminals and the SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a character device.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	info, err := f.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}
