package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/codeeraser/internal/domain"
	m "github.com/mouse-blink/codeeraser/internal/model"
)

const replaceLongDescription = `Replace renames the classes of a jar and rewrites every reference to
them. Explicit old=new mappings win over pattern mappings, which are
written as pattern:regex=substitute.`

var (
	replaceInFlag         string
	replaceOutFlag        string
	replaceMappingsFlag   string
	replaceMapFlags       []string
	replaceClasspathFlags []string
)

// replaceCmd represents the replace command.
var replaceCmd = newReplaceCmd()

func newReplaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace",
		Short: "Rename classes inside a jar",
		Long:  replaceLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			errs := &m.ErrorLog{}

			report, err := workflow.Replace(domain.ReplaceArgs{
				Jar:       m.Path(replaceInFlag),
				Out:       m.Path(replaceOutFlag),
				Mappings:  configLoader.Mappings(m.Path(replaceMappingsFlag), replaceMapFlags, errs),
				Classpath: classPath(replaceClasspathFlags),
			})

			return finish(cmd, errs, err, func() error { return ui.DisplayReport(report) })
		},
	}
	cmd.Flags().StringVarP(&replaceInFlag, "in", "i", "", "input jar")
	cmd.Flags().StringVarP(&replaceOutFlag, "out", "o", "", "output jar")
	cmd.Flags().StringVar(&replaceMappingsFlag, "mappings", "", "properties file with old=new class names")
	cmd.Flags().StringArrayVarP(&replaceMapFlags, "map", "M", nil, "mapping old=new or pattern:regex=substitute (can be repeated)")
	cmd.Flags().StringArrayVar(&replaceClasspathFlags, "classpath", nil, "directory or jar to resolve referenced classes (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(replaceCmd)
}
