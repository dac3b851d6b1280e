package controller

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	m "github.com/mouse-blink/codeeraser/internal/model"
)

func longListing(n int) m.Listing {
	listing := m.Listing{IDs: []string{"mem"}}
	for i := range n {
		listing.Classes = append(listing.Classes, m.AnnotatedClass{Name: fmt.Sprintf("test.C%d", i), IDs: []string{"mem"}})
	}

	return listing
}

func TestTUI_DisplayListing_Short(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)
	tui.run = func(tea.Model) error {
		t.Fatal("short listing started a program")

		return nil
	}

	listing := longListing(2)
	if err := tui.DisplayListing(listing); err != nil {
		t.Fatalf("DisplayListing() error = %v", err)
	}

	if buf.String() != listing.String() {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestTUI_DisplayListing_Interactive(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	var got tea.Model
	tui.run = func(model tea.Model) error {
		got = model

		return nil
	}

	if err := tui.DisplayListing(longListing(interactiveThreshold + 1)); err != nil {
		t.Fatalf("DisplayListing() error = %v", err)
	}

	lm, ok := got.(listingModel)
	if !ok {
		t.Fatalf("program model = %T, want listingModel", got)
	}

	if !lm.rendered || len(lm.classList.Items()) != interactiveThreshold+1 {
		t.Fatalf("listing model not populated")
	}

	tui.run = func(tea.Model) error { return errors.New("no tty") }
	if err := tui.DisplayListing(longListing(interactiveThreshold + 1)); err == nil {
		t.Fatalf("DisplayListing() expected error")
	}
}

func TestTUI_DisplayReport(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	report := m.Report{
		Tool:     "replace",
		Output:   "out.jar",
		Changes:  []m.Change{{Kind: m.ElementField, Element: "test.A.f", Decision: m.Decision{Kind: m.Remove}}},
		Renamed:  []m.Renamed{{From: "test.ReplaceMe", To: "test2.test.ReplaceMe"}},
		Modified: []string{"javassist.expr.ExprEditor"},
		Warnings: []string{"careful"},
		Written:  2,
	}

	if err := tui.DisplayReport(report); err != nil {
		t.Fatalf("DisplayReport() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"replace", "test.A.f", "test2.test.ReplaceMe", "javassist.expr.ExprEditor", "careful", "Written"} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\n%s", want, output)
		}
	}
}

func TestTUI_DisplayErrors(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	tui.DisplayErrors(&m.ErrorLog{})
	if buf.Len() != 0 {
		t.Fatalf("empty log printed %q", buf.String())
	}

	log := &m.ErrorLog{}
	log.Addf("%sbad jar", m.PrefixIO)
	tui.DisplayErrors(log)

	if !strings.Contains(buf.String(), "bad jar") {
		t.Fatalf("output missing error\n%s", buf.String())
	}
}
