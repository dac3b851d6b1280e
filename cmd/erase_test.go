package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/mouse-blink/codeeraser/internal/domain"
	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/stretchr/testify/mock"
)

func TestEraseCmd_Erase(t *testing.T) {
	mockWorkflow, mockUI := withMocks(t)

	report := m.Report{Tool: domain.ToolErase, Output: "out.jar", Written: 4}

	mockWorkflow.EXPECT().Erase(mock.MatchedBy(func(args domain.EraseArgs) bool {
		return args.Jar == "in.jar" &&
			args.Out == "out.jar" &&
			args.Bindings.State("mem") == m.Disabled &&
			args.Bindings.State("io") == m.Enabled &&
			len(args.Classpath) == 2 && args.Classpath[1] == "lib/b.jar" &&
			args.Flat && args.Lazy && args.Prune && args.UnboundEnabled && !args.List &&
			len(args.Include) == 1 && args.Include[0] == "com/acme/**" &&
			args.BinPath == "bin/"
	})).Return(report, nil).Once()
	mockUI.EXPECT().DisplayReport(report).Return(nil).Once()

	_, err := execute(newEraseCmd(),
		"--in", "in.jar", "--out", "out.jar",
		"-B", "mem=false", "-B", "io=true",
		"--classpath", "lib/a.jar", "--classpath", "lib/b.jar",
		"--flat", "--lazy", "--prune", "--unbound-enabled",
		"--include", "com/acme/**", "--bin-path", "bin/",
	)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
}

func TestEraseCmd_List(t *testing.T) {
	mockWorkflow, mockUI := withMocks(t)

	listing := m.Listing{
		Classes: []m.AnnotatedClass{{Name: "com.acme.Mem", IDs: []string{"mem"}}},
		IDs:     []string{"mem"},
	}

	mockWorkflow.EXPECT().List(mock.MatchedBy(func(args domain.EraseArgs) bool {
		return args.Jar == "in.jar" && args.List
	})).Return(listing, nil).Once()
	mockUI.EXPECT().DisplayListing(listing).Return(nil).Once()

	if _, err := execute(newEraseCmd(), "--in", "in.jar", "--list"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
}

func TestEraseCmd_MalformedBindingStillRuns(t *testing.T) {
	mockWorkflow, mockUI := withMocks(t)

	mockWorkflow.EXPECT().Erase(mock.MatchedBy(func(args domain.EraseArgs) bool {
		return args.Bindings.State("mem") == m.Disabled && len(args.Bindings) == 1
	})).Return(m.Report{Tool: domain.ToolErase}, nil).Once()
	mockUI.EXPECT().DisplayReport(mock.Anything).Return(nil).Once()
	mockUI.EXPECT().DisplayErrors(mock.MatchedBy(func(log *m.ErrorLog) bool {
		return strings.Contains(log.Message(), `malformed pair "broken"`)
	})).Return().Once()

	_, err := execute(newEraseCmd(), "--in", "in.jar", "--out", "out.jar", "-B", "broken", "-B", "mem=false")
	if !errors.Is(err, errReported) {
		t.Fatalf("Execute() error = %v, want errReported", err)
	}
}

func TestEraseCmd_MissingArguments(t *testing.T) {
	mockWorkflow, mockUI := withMocks(t)

	mockWorkflow.EXPECT().Erase(mock.Anything).
		Return(m.Report{}, &domain.ValidationError{Problems: []string{"jar not specified", "out not specified"}}).Once()
	mockUI.EXPECT().DisplayErrors(mock.MatchedBy(func(log *m.ErrorLog) bool {
		return log.Message() == "jar not specified\nout not specified"
	})).Return().Once()

	out, err := execute(newEraseCmd())
	if !errors.Is(err, errReported) {
		t.Fatalf("Execute() error = %v, want errReported", err)
	}

	if !strings.Contains(out, "--unbound-enabled") {
		t.Errorf("expected usage in the output, got %q", out)
	}
}

func TestEraseCmd_RunFailure(t *testing.T) {
	mockWorkflow, mockUI := withMocks(t)

	mockWorkflow.EXPECT().Erase(mock.Anything).
		Return(m.Report{}, errors.New(m.PrefixStructure+"com.acme.Base: class not found")).Once()
	mockUI.EXPECT().DisplayErrors(mock.MatchedBy(func(log *m.ErrorLog) bool {
		return log.Message() == m.PrefixStructure+"com.acme.Base: class not found"
	})).Return().Once()

	_, err := execute(newEraseCmd(), "--in", "in.jar", "--out", "out.jar", "-B", "a=b")
	if !errors.Is(err, errReported) {
		t.Fatalf("Execute() error = %v, want errReported", err)
	}
}

func TestNewEraseCmd(t *testing.T) {
	cmd := newEraseCmd()

	for _, name := range []string{"in", "out", "bindings", "bind", "flat", "list", "lazy", "prune", "classpath", "unbound-enabled"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("newEraseCmd() missing --%s flag", name)
		}
	}

	if f := cmd.Flags().ShorthandLookup("B"); f == nil || f.Name != "bind" {
		t.Error("newEraseCmd() missing -B shorthand")
	}
}
