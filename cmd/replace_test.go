package cmd

import (
	"errors"
	"testing"

	"github.com/mouse-blink/codeeraser/internal/domain"
	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/stretchr/testify/mock"
)

func TestReplaceCmd(t *testing.T) {
	mockWorkflow, mockUI := withMocks(t)

	report := m.Report{Tool: domain.ToolReplace, Written: 2, Copied: 1}

	mockWorkflow.EXPECT().Replace(mock.MatchedBy(func(args domain.ReplaceArgs) bool {
		return args.Jar == "in.jar" && args.Out == "out.jar" &&
			args.Mappings.Names["a.Old"] == "a.New" &&
			len(args.Mappings.Patterns) == 1 && args.Mappings.Patterns[0].Expression == `^b\.(.*)$`
	})).Return(report, nil).Once()
	mockUI.EXPECT().DisplayReport(report).Return(nil).Once()

	_, err := execute(newReplaceCmd(), "--in", "in.jar", "--out", "out.jar",
		"-M", "a.Old=a.New", "-M", `pattern:^b\.(.*)$=c.$1`)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
}

func TestReplaceCmd_InvalidPattern(t *testing.T) {
	mockWorkflow, mockUI := withMocks(t)

	mockWorkflow.EXPECT().Replace(mock.MatchedBy(func(args domain.ReplaceArgs) bool {
		return len(args.Mappings.Patterns) == 0 && args.Mappings.Names["a.Old"] == "a.New"
	})).Return(m.Report{Tool: domain.ToolReplace}, nil).Once()
	mockUI.EXPECT().DisplayReport(mock.Anything).Return(nil).Once()
	mockUI.EXPECT().DisplayErrors(mock.Anything).Return().Once()

	_, err := execute(newReplaceCmd(), "--in", "in.jar", "--out", "out.jar",
		"-M", "pattern:([=x", "-M", "a.Old=a.New")
	if !errors.Is(err, errReported) {
		t.Fatalf("Execute() error = %v, want errReported", err)
	}
}
