package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/mouse-blink/codeeraser/internal/adapter"
	"github.com/mouse-blink/codeeraser/internal/domain"
	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
)

const taskFile = `tasks:
  - type: erase
    jarFile: app.jar
    outFile: lite.jar
    bindings:
      - {name: logging, value: "false"}
  - type: erase
    jarFile: app.jar
    list: true
  - type: replicate
    outFile: copies.jar
    mappings:
      - {name: a.A, value: b.A}
`

func withTaskFile(t *testing.T, path, content string) {
	t.Helper()

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	original := taskFiles
	taskFiles = adapter.NewLocalTaskFileAdapter(fs)

	t.Cleanup(func() {
		taskFiles = original
	})
}

func TestTaskCmd_RunsTasksInOrder(t *testing.T) {
	mockWorkflow, mockUI := withMocks(t)
	withTaskFile(t, "/build/tasks.yaml", taskFile)

	var order []string

	report := m.Report{Tool: domain.ToolErase, Written: 3}
	listing := m.Listing{IDs: []string{"logging"}}

	mockWorkflow.EXPECT().Erase(mock.MatchedBy(func(args domain.EraseArgs) bool {
		return args.Jar == "app.jar" && args.Bindings.State("logging") == m.Disabled
	})).Run(func(domain.EraseArgs) { order = append(order, "erase") }).Return(report, nil).Once()
	mockWorkflow.EXPECT().List(mock.Anything).
		Run(func(domain.EraseArgs) { order = append(order, "list") }).Return(listing, nil).Once()
	mockWorkflow.EXPECT().Replicate(mock.Anything).
		Run(func(domain.ReplicateArgs) { order = append(order, "replicate") }).
		Return(m.Report{Tool: domain.ToolReplicate}, errors.New(m.PrefixIO+"disk full")).Once()

	mockUI.EXPECT().DisplayReport(report).Return(nil).Once()
	mockUI.EXPECT().DisplayListing(listing).Return(nil).Once()
	mockUI.EXPECT().DisplayErrors(mock.MatchedBy(func(log *m.ErrorLog) bool {
		return log.Message() == "task 2 (replicate): "+m.PrefixIO+"disk full"
	})).Return().Once()

	_, err := execute(newTaskCmd(), "/build/tasks.yaml")
	if !errors.Is(err, errReported) {
		t.Fatalf("Execute() error = %v, want errReported", err)
	}

	if strings.Join(order, ",") != "erase,list,replicate" {
		t.Errorf("tasks ran in order %v", order)
	}
}

func TestTaskCmd_UnknownType(t *testing.T) {
	_, mockUI := withMocks(t)
	withTaskFile(t, "/tasks.yaml", "tasks:\n  - type: shrink\n")

	mockUI.EXPECT().DisplayErrors(mock.MatchedBy(func(log *m.ErrorLog) bool {
		return strings.HasPrefix(log.Message(), m.PrefixIO) && strings.Contains(log.Message(), `unknown type "shrink"`)
	})).Return().Once()

	_, err := execute(newTaskCmd(), "/tasks.yaml")
	if !errors.Is(err, errReported) {
		t.Fatalf("Execute() error = %v, want errReported", err)
	}
}

func TestTaskCmd_RequiresFile(t *testing.T) {
	withMocks(t)

	if _, err := execute(newTaskCmd()); err == nil {
		t.Fatal("Execute() without a task file should fail")
	}
}
