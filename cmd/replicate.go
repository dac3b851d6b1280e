package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/codeeraser/internal/domain"
	m "github.com/mouse-blink/codeeraser/internal/model"
)

const replicateLongDescription = `Replicate copies classes found on the class path under new names and
writes the copies to --out. Every reference to a replicated class inside
the copies points to its new name.

Mappings come from a properties file (--mappings) and from -M old=new
arguments. Pattern mappings are ignored; replication needs explicit names.`

var (
	replicateOutFlag        string
	replicateMappingsFlag   string
	replicateMapFlags       []string
	replicateClasspathFlags []string
)

// replicateCmd represents the replicate command.
var replicateCmd = newReplicateCmd()

func newReplicateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replicate",
		Short: "Copy classes under new names",
		Long:  replicateLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			errs := &m.ErrorLog{}

			report, err := workflow.Replicate(domain.ReplicateArgs{
				Out:       m.Path(replicateOutFlag),
				Mappings:  configLoader.Mappings(m.Path(replicateMappingsFlag), replicateMapFlags, errs),
				Classpath: classPath(replicateClasspathFlags),
			})

			return finish(cmd, errs, err, func() error { return ui.DisplayReport(report) })
		},
	}
	cmd.Flags().StringVarP(&replicateOutFlag, "out", "o", "", "output jar")
	cmd.Flags().StringVar(&replicateMappingsFlag, "mappings", "", "properties file with old=new class names")
	cmd.Flags().StringArrayVarP(&replicateMapFlags, "map", "M", nil, "mapping old=new (can be repeated)")
	cmd.Flags().StringArrayVar(&replicateClasspathFlags, "classpath", nil, "directory or jar holding the classes (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(replicateCmd)
}
