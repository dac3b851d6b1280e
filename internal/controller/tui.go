package controller

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "github.com/mouse-blink/codeeraser/internal/model"
)

// interactiveThreshold is the number of classes above which a listing
// opens the interactive browser.
const interactiveThreshold = 20

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
	run    func(tea.Model) error
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	t := &TUI{output: output}
	t.run = t.runProgram

	return t
}

func (t *TUI) runProgram(model tea.Model) error {
	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	_, err := program.Run()

	return err
}

// DisplayListing prints short listings and browses long ones.
func (t *TUI) DisplayListing(listing m.Listing) error {
	if len(listing.Classes) <= interactiveThreshold {
		_, _ = fmt.Fprint(t.output, listing.String())

		return nil
	}

	model := newListingModel().handleListingMsg(newListingMsg(listing))
	if err := t.run(model); err != nil {
		return fmt.Errorf("listing view: %w", err)
	}

	return nil
}

// DisplayReport prints a styled summary of the run.
func (t *TUI) DisplayReport(report m.Report) error {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	removedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	_, _ = fmt.Fprintln(t.output, titleStyle.Render(fmt.Sprintf("%s → %s", report.Tool, report.Output)))

	for _, c := range report.Changes {
		_, _ = fmt.Fprintf(t.output, "  %s %s %s\n",
			removedStyle.Render(decisionText(c.Decision)), c.Kind, c.Element)
	}

	for _, r := range report.Renamed {
		_, _ = fmt.Fprintf(t.output, "  %s → %s\n", r.From, accentStyle.Render(r.To))
	}

	for _, f := range report.Modified {
		_, _ = fmt.Fprintf(t.output, "  modified %s\n", accentStyle.Render(f))
	}

	for _, w := range report.Warnings {
		_, _ = fmt.Fprintln(t.output, warnStyle.Render("  warning: "+w))
	}

	_, _ = fmt.Fprintf(t.output, "Written: %s   Copied: %s\n",
		accentStyle.Render(fmt.Sprintf("%d", report.Written)),
		accentStyle.Render(fmt.Sprintf("%d", report.Copied)))

	return nil
}

// DisplayErrors prints the error log.
func (t *TUI) DisplayErrors(log *m.ErrorLog) {
	if log == nil || !log.HasErrors() {
		return
	}

	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	_, _ = fmt.Fprintln(t.output, errStyle.Render(log.Message()))
}
