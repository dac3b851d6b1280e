package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/codeeraser/internal/domain"
	m "github.com/mouse-blink/codeeraser/internal/model"
)

const taskLongDescription = `Task runs the tools listed in a YAML task file, in order. A failing task
does not stop the following ones; its errors are reported under its index.

  tasks:
    - type: erase
      jarFile: app.jar
      outFile: app-lite.jar
      bindingsFile: lite.properties
      bindings:
        - {name: logging, value: "false"}
    - type: replace
      jarFile: app-lite.jar
      outFile: app-renamed.jar
      mappings:
        - {name: "pattern:^com\\.acme\\.(.*)$", value: "lite.$1"}`

// taskCmd represents the task command.
var taskCmd = newTaskCmd()

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task <file.yaml>",
		Short: "Run the tools of a task file",
		Long:  taskLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			errs := &m.ErrorLog{}

			tf, err := taskFiles.Load(m.Path(args[0]))
			if err != nil {
				errs.Addf("%s%w", m.PrefixIO, err)
				ui.DisplayErrors(errs)

				return errReported
			}

			runner := domain.NewTaskRunner(workflow, configLoader, logger)

			for _, res := range runner.Run(tf) {
				errs.Merge(res.Errors)

				if res.Failed {
					continue
				}

				if res.Listing != nil {
					errs.Add(ui.DisplayListing(*res.Listing))
				} else {
					errs.Add(ui.DisplayReport(res.Report))
				}
			}

			if errs.HasErrors() {
				ui.DisplayErrors(errs)

				return errReported
			}

			return nil
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(taskCmd)
}
