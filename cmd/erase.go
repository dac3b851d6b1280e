package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/codeeraser/internal/domain"
	m "github.com/mouse-blink/codeeraser/internal/model"
)

const eraseLongDescription = `Erase removes the classes, fields, methods and instructions whose
variability annotations are disabled by the bindings, and writes the
remaining classes together with the resources of the input to --out.

Bindings come from a properties file (--bindings) and from -B id=value
arguments, which win over the file. With --list nothing is written; the
annotated classes and the ids they use are listed instead.`

var (
	eraseInFlag             string
	eraseOutFlag            string
	eraseBindingsFlag       string
	eraseBindFlags          []string
	eraseClasspathFlags     []string
	eraseIncludeFlags       []string
	eraseExcludeFlags       []string
	eraseBinPathFlag        string
	eraseFlatFlag           bool
	eraseListFlag           bool
	eraseLazyFlag           bool
	erasePruneFlag          bool
	eraseUnboundEnabledFlag bool
)

// eraseCmd represents the erase command.
var eraseCmd = newEraseCmd()

func newEraseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "erase",
		Short: "Erase disabled variability from a jar",
		Long:  eraseLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			errs := &m.ErrorLog{}
			args := domain.EraseArgs{
				Jar:            m.Path(eraseInFlag),
				Out:            m.Path(eraseOutFlag),
				Bindings:       configLoader.Bindings(m.Path(eraseBindingsFlag), eraseBindFlags, errs),
				Classpath:      classPath(eraseClasspathFlags),
				Flat:           eraseFlatFlag,
				List:           eraseListFlag,
				Lazy:           eraseLazyFlag,
				Prune:          erasePruneFlag,
				UnboundEnabled: eraseUnboundEnabledFlag,
				Include:        eraseIncludeFlags,
				Exclude:        eraseExcludeFlags,
				BinPath:        eraseBinPathFlag,
			}

			if eraseListFlag {
				listing, err := workflow.List(args)

				return finish(cmd, errs, err, func() error { return ui.DisplayListing(listing) })
			}

			report, err := workflow.Erase(args)

			return finish(cmd, errs, err, func() error { return ui.DisplayReport(report) })
		},
	}
	cmd.Flags().StringVarP(&eraseInFlag, "in", "i", "", "input jar")
	cmd.Flags().StringVarP(&eraseOutFlag, "out", "o", "", "output jar")
	cmd.Flags().StringVar(&eraseBindingsFlag, "bindings", "", "properties file with id=value bindings")
	cmd.Flags().StringArrayVarP(&eraseBindFlags, "bind", "B", nil, "binding id=value (can be repeated)")
	cmd.Flags().StringArrayVar(&eraseClasspathFlags, "classpath", nil, "directory or jar to resolve referenced classes (can be repeated)")
	cmd.Flags().StringArrayVar(&eraseIncludeFlags, "include", nil, "only process classes matching the glob (can be repeated)")
	cmd.Flags().StringArrayVar(&eraseExcludeFlags, "exclude", nil, "skip classes matching the glob (can be repeated)")
	cmd.Flags().StringVar(&eraseBinPathFlag, "bin-path", "", "prefix stripped from class entry names, e.g. bin/")
	cmd.Flags().BoolVar(&eraseFlatFlag, "flat", false, "do not inherit annotations from supertypes and overridden methods")
	cmd.Flags().BoolVarP(&eraseListFlag, "list", "l", false, "list annotated classes instead of erasing")
	cmd.Flags().BoolVar(&eraseLazyFlag, "lazy", false, "keep classes that fail to compile after erasing unmodified")
	cmd.Flags().BoolVar(&erasePruneFlag, "prune", false, "drop debug tables from loaded classes")
	cmd.Flags().BoolVar(&eraseUnboundEnabledFlag, "unbound-enabled", false, "treat unbound ids as enabled")

	return cmd
}

func init() {
	rootCmd.AddCommand(eraseCmd)
}
