package controller

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/spf13/cobra"
)

func newOutputCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	return cmd, &out, &errOut
}

func TestNewUI_SelectsByTerminal(t *testing.T) {
	tests := []struct {
		name    string
		tty     bool
		wantTUI bool
	}{
		{"terminal gets the styled ui", true, true},
		{"pipe gets plain text", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, out, _ := newOutputCmd()

			ui := NewUI(cmd, tt.tty)

			_, isTUI := ui.(*TUI)
			_, isSimple := ui.(*SimpleUI)

			if isTUI != tt.wantTUI || isSimple == tt.wantTUI {
				t.Fatalf("NewUI(%v) returned %T", tt.tty, ui)
			}

			// short listings print the same text either way
			listing := longListing(interactiveThreshold)
			if err := ui.DisplayListing(listing); err != nil {
				t.Fatalf("DisplayListing() error = %v", err)
			}

			if out.String() != listing.String() {
				t.Errorf("listing output = %q, want %q", out.String(), listing.String())
			}
		})
	}
}

func TestNewUI_ErrorStreams(t *testing.T) {
	errs := &m.ErrorLog{}
	errs.Add(errors.New(m.PrefixIO + "disk full"))

	t.Run("terminal prints errors with the output", func(t *testing.T) {
		cmd, out, errOut := newOutputCmd()

		NewUI(cmd, true).DisplayErrors(errs)

		if !strings.Contains(out.String(), "disk full") {
			t.Errorf("output = %q, want the error log", out.String())
		}
		if errOut.Len() != 0 {
			t.Errorf("error stream = %q, want empty", errOut.String())
		}
	})

	t.Run("pipe prints errors to the error stream", func(t *testing.T) {
		cmd, out, errOut := newOutputCmd()

		NewUI(cmd, false).DisplayErrors(errs)

		if errOut.String() != errs.Message()+"\n" {
			t.Errorf("error stream = %q, want %q", errOut.String(), errs.Message()+"\n")
		}
		if out.Len() != 0 {
			t.Errorf("output = %q, want empty", out.String())
		}
	})
}

func TestIsTTY(t *testing.T) {
	regular, err := os.CreateTemp(t.TempDir(), "report")
	if err != nil {
		t.Fatalf("CreateTemp error: %v", err)
	}
	defer regular.Close()

	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe error: %v", err)
	}
	defer reader.Close()
	defer writer.Close()

	closed, err := os.CreateTemp(t.TempDir(), "closed")
	if err != nil {
		t.Fatalf("CreateTemp error: %v", err)
	}
	closed.Close()

	tests := []struct {
		name   string
		output io.Writer
		want   bool
	}{
		{"redirected to a file", regular, false},
		{"piped to another program", writer, false},
		{"closed file", closed, false},
		{"in-memory buffer", &bytes.Buffer{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTTY(tt.output); got != tt.want {
				t.Errorf("IsTTY() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("character device", func(t *testing.T) {
		devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if err != nil {
			t.Skip("null device not available")
		}
		defer devNull.Close()

		if !IsTTY(devNull) {
			t.Errorf("IsTTY(%s) = false, want true", os.DevNull)
		}
	})
}
