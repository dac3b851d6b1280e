package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/codeeraser/internal/domain"
	m "github.com/mouse-blink/codeeraser/internal/model"
)

var (
	patchInFlag    string
	patchOutFlag   string
	patchClassFlag string
)

// patchCmd represents the patch command.
var patchCmd = newPatchCmd()

func newPatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Add disable switches to the expression editor",
		Long: "Patch adds public flags to the expression editor class of a bytecode library\n" +
			"jar that let callers skip casts, instanceof checks and exception handlers.\n" +
			"Every other entry is copied unchanged.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := workflow.Patch(domain.PatchArgs{
				Jar:   m.Path(patchInFlag),
				Out:   m.Path(patchOutFlag),
				Class: patchClassFlag,
			})

			return finish(cmd, &m.ErrorLog{}, err, func() error { return ui.DisplayReport(report) })
		},
	}
	cmd.Flags().StringVarP(&patchInFlag, "in", "i", "", "input jar")
	cmd.Flags().StringVarP(&patchOutFlag, "out", "o", "", "output jar")
	cmd.Flags().StringVar(&patchClassFlag, "class", domain.DefaultPatchClass, "class to patch")

	return cmd
}

func init() {
	rootCmd.AddCommand(patchCmd)
}
