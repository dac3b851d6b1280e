package controller

import (
	"bytes"
	"fmt"

	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// SimpleUI implements UI using cobra Command's output streams.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayListing prints the listing in its text form.
func (s *SimpleUI) DisplayListing(listing m.Listing) error {
	s.printf("%s", listing.String())

	return nil
}

// DisplayReport prints the changed elements and renamed classes as tables,
// followed by the modified fields and the warnings.
func (s *SimpleUI) DisplayReport(report m.Report) error {
	if len(report.Changes) > 0 {
		rows := make([][]string, 0, len(report.Changes))
		for _, c := range report.Changes {
			rows = append(rows, []string{string(c.Kind), c.Element, decisionText(c.Decision)})
		}

		s.printf("\n%s", renderTable([]string{"Kind", "Element", "Decision"}, rows,
			[]string{"Total", fmt.Sprintf("%d", len(report.Changes)), ""}))
	}

	if len(report.Renamed) > 0 {
		rows := make([][]string, 0, len(report.Renamed))
		for _, r := range report.Renamed {
			rows = append(rows, []string{r.From, r.To})
		}

		s.printf("\n%s", renderTable([]string{"From", "To"}, rows, nil))
	}

	for _, f := range report.Modified {
		s.printf("modified %s\n", f)
	}

	for _, w := range report.Warnings {
		s.errorf("warning: %s\n", w)
	}

	s.printf("%s: %s written (%d classes, %d copied entries)\n", report.Tool, report.Output, report.Written, report.Copied)

	return nil
}

// DisplayErrors prints the error log to the error stream.
func (s *SimpleUI) DisplayErrors(log *m.ErrorLog) {
	if log == nil || !log.HasErrors() {
		return
	}

	s.errorf("%s\n", log.Message())
}

func decisionText(d m.Decision) string {
	if d.Kind == m.Replace {
		return fmt.Sprintf("%s(%s)", d.Kind, d.Value)
	}

	return d.Kind.String()
}

func renderTable(header []string, rows [][]string, footer []string) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)

	if footer != nil {
		table.SetFooter(footer)
	}

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) errorf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}
