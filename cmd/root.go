// Package cmd provides the root command and CLI setup for codeeraser.
package cmd

import (
	"errors"
	"os"

	"github.com/mouse-blink/codeeraser/internal/adapter"
	"github.com/mouse-blink/codeeraser/internal/controller"
	"github.com/mouse-blink/codeeraser/internal/domain"
	m "github.com/mouse-blink/codeeraser/internal/model"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var fileSystem afero.Fs
var jarAdapter adapter.JarAdapter
var taskFiles adapter.TaskFileAdapter
var configLoader *domain.ConfigLoader
var workflow domain.Workflow
var ui controller.UI
var logger *zap.Logger

var logLevel = zap.NewAtomicLevelAt(zapcore.WarnLevel)

// errReported is returned once the UI has shown what went wrong.
var errReported = errors.New("run failed")

func init() {
	logger = newLogger()
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fileSystem = afero.NewOsFs()
	jarAdapter = adapter.NewLocalJarAdapter(fileSystem)
	taskFiles = adapter.NewLocalTaskFileAdapter(fileSystem)
	configLoader = domain.NewConfigLoader(adapter.NewLocalPropertiesAdapter(fileSystem))
	workflow = domain.NewWorkflow(fileSystem, jarAdapter, logger)
}

var verboseFlag bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codeeraser",
		Short: "Bytecode variability eraser",
		Long: `Codeeraser rewrites compiled Java class files inside JARs.

It removes the classes, members and instructions bound to disabled
variability ids, replicates and renames classes, and records runtime
elements sent by instrumented programs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verboseFlag {
				logLevel.SetLevel(zapcore.DebugLevel)
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log debug output to stderr")

	return cmd
}

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = logLevel
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}

	return log
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		if !errors.Is(err, errReported) {
			rootCmd.PrintErrln("Error:", err)
		}

		os.Exit(1)
	}

	_ = logger.Sync()
}

// finish reports the outcome of a run. show displays the result of a run
// that completed. Everything logged on errs is printed afterwards and makes
// the command fail. Missing arguments also print the usage.
func finish(cmd *cobra.Command, errs *m.ErrorLog, err error, show func() error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		errs.Add(err)
		ui.DisplayErrors(errs)
		_ = cmd.Help()

		return errReported
	}

	if err == nil {
		errs.Add(show())
	} else {
		errs.Add(err)
	}

	if errs.HasErrors() {
		ui.DisplayErrors(errs)

		return errReported
	}

	return nil
}

func classPath(entries []string) m.ClassPath {
	cp := make(m.ClassPath, 0, len(entries))
	for _, e := range entries {
		cp = append(cp, m.Path(e))
	}

	return cp
}
