package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	controllermocks "github.com/mouse-blink/codeeraser/internal/controller/mocks"
	"github.com/mouse-blink/codeeraser/internal/domain"
	domainmocks "github.com/mouse-blink/codeeraser/internal/domain/mocks"
	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zapcore"
)

// withMocks swaps the global workflow and UI for mocks until the test ends.
func withMocks(t *testing.T) (*domainmocks.MockWorkflow, *controllermocks.MockUI) {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)
	mockUI := controllermocks.NewMockUI(t)

	originalWorkflow, originalUI := workflow, ui
	workflow, ui = mockWorkflow, mockUI

	t.Cleanup(func() {
		workflow, ui = originalWorkflow, originalUI
	})

	return mockWorkflow, mockUI
}

func execute(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	if cmd.Use != "codeeraser" {
		t.Errorf("newRootCmd() Use = %v, want %v", cmd.Use, "codeeraser")
	}
	if cmd.Short == "" {
		t.Error("newRootCmd() Short should not be empty")
	}
	if cmd.Long == "" {
		t.Error("newRootCmd() Long should not be empty")
	}

	if cmd.PersistentFlags().Lookup("verbose") == nil {
		t.Error("newRootCmd() missing --verbose flag")
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range []string{"erase", "replicate", "replace", "patch", "task", "serve", "replay"} {
		if !registered[name] {
			t.Errorf("rootCmd is missing the %s command", name)
		}
	}
}

func TestRootCmd_VerboseLowersLogLevel(t *testing.T) {
	original := logLevel.Level()
	defer logLevel.SetLevel(original)

	cmd := newRootCmd()
	cmd.AddCommand(&cobra.Command{Use: "noop", Run: func(*cobra.Command, []string) {}})

	if _, err := execute(cmd, "--verbose", "noop"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if logLevel.Level() != zapcore.DebugLevel {
		t.Errorf("log level = %v, want debug", logLevel.Level())
	}
}

func TestInit(t *testing.T) {
	// Test that init() created all the necessary instances
	if ui == nil {
		t.Error("init() ui is nil")
	}
	if fileSystem == nil {
		t.Error("init() fileSystem is nil")
	}
	if jarAdapter == nil {
		t.Error("init() jarAdapter is nil")
	}
	if taskFiles == nil {
		t.Error("init() taskFiles is nil")
	}
	if configLoader == nil {
		t.Error("init() configLoader is nil")
	}
	if workflow == nil {
		t.Error("init() workflow is nil")
	}
	if logger == nil {
		t.Error("init() logger is nil")
	}
}

func TestFinish(t *testing.T) {
	t.Run("shows the result of a clean run", func(t *testing.T) {
		withMocks(t)

		shown := false
		err := finish(&cobra.Command{}, &m.ErrorLog{}, nil, func() error {
			shown = true

			return nil
		})
		if err != nil {
			t.Fatalf("finish() error = %v", err)
		}
		if !shown {
			t.Error("finish() did not show the result")
		}
	})

	t.Run("prints logged problems after the result", func(t *testing.T) {
		_, mockUI := withMocks(t)

		errs := &m.ErrorLog{}
		errs.Add(errors.New(`malformed pair "x", expected name=value`))

		mockUI.EXPECT().DisplayErrors(errs).Return().Once()

		err := finish(&cobra.Command{}, errs, nil, func() error { return nil })
		if !errors.Is(err, errReported) {
			t.Fatalf("finish() error = %v, want errReported", err)
		}
	})

	t.Run("skips the result of a failed run", func(t *testing.T) {
		_, mockUI := withMocks(t)

		mockUI.EXPECT().DisplayErrors(mock.MatchedBy(func(log *m.ErrorLog) bool {
			return log.Message() == m.PrefixIO+"disk full"
		})).Return().Once()

		err := finish(&cobra.Command{}, &m.ErrorLog{}, errors.New(m.PrefixIO+"disk full"), func() error {
			t.Error("finish() showed the result of a failed run")

			return nil
		})
		if !errors.Is(err, errReported) {
			t.Fatalf("finish() error = %v, want errReported", err)
		}
	})

	t.Run("prints usage for missing arguments", func(t *testing.T) {
		_, mockUI := withMocks(t)

		mockUI.EXPECT().DisplayErrors(mock.MatchedBy(func(log *m.ErrorLog) bool {
			return log.Message() == "jar not specified"
		})).Return().Once()

		var out bytes.Buffer

		cmd := &cobra.Command{Use: "tool", Run: func(*cobra.Command, []string) {}}
		cmd.SetOut(&out)

		err := finish(cmd, &m.ErrorLog{}, &domain.ValidationError{Problems: []string{"jar not specified"}}, nil)
		if !errors.Is(err, errReported) {
			t.Fatalf("finish() error = %v, want errReported", err)
		}
		if !strings.Contains(out.String(), "Usage:") {
			t.Errorf("finish() did not print usage, got %q", out.String())
		}
	})
}

func TestExecute(t *testing.T) {
	// Save original rootCmd
	originalRootCmd := rootCmd

	// Create a mock command that succeeds
	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})

	rootCmd = mockCmd

	// Execute should not panic or exit
	Execute()

	// Restore
	rootCmd = originalRootCmd
}

func TestExecute_ProcessLevel_Success(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS") == "1" {
		originalRootCmd := rootCmd
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Println("success")
				return nil
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		rootCmd = mockCmd
		defer func() { rootCmd = originalRootCmd }()

		Execute()
		return
	}

	// Parent process: spawn subprocess
	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Success")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS=1")
	output, err := cmd.CombinedOutput()

	if err != nil {
		t.Errorf("Process exited with error: %v, output: %s", err, output)
	}

	if !strings.Contains(string(output), "success") {
		t.Errorf("Expected 'success' in output, got: %s", output)
	}
}

func TestExecute_ProcessLevel_Failure(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS_FAIL") == "1" {
		originalRootCmd := rootCmd
		mockCmd := &cobra.Command{
			Use:           "test",
			SilenceErrors: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return fmt.Errorf("command failed")
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		rootCmd = mockCmd
		defer func() { rootCmd = originalRootCmd }()

		Execute() // This should call os.Exit(1)
		return
	}

	// Parent process: spawn subprocess
	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Failure")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS_FAIL=1")
	output, err := cmd.CombinedOutput()

	if err == nil {
		t.Error("Expected process to exit with error")
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.ExitCode() != 1 {
			t.Errorf("Expected exit code 1, got %d", exitErr.ExitCode())
		}
	} else {
		t.Errorf("Expected exec.ExitError, got %T", err)
	}

	if !strings.Contains(string(output), "Error: command failed") {
		t.Errorf("Expected the error in the output, got: %s", output)
	}
}

func TestExecute_ProcessLevel_ReportedFailure(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS_REPORTED") == "1" {
		originalRootCmd := rootCmd
		mockCmd := &cobra.Command{
			Use:           "test",
			SilenceErrors: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return errReported
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		rootCmd = mockCmd
		defer func() { rootCmd = originalRootCmd }()

		Execute()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_ReportedFailure")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS_REPORTED=1")
	output, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("Expected exit code 1, got %v", err)
	}

	if strings.Contains(string(output), errReported.Error()) {
		t.Errorf("Expected no repeated error message, got: %s", output)
	}
}
