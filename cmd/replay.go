package cmd

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/mouse-blink/codeeraser/internal/recorder"
)

var (
	replayAddrFlag string
	replayFileFlag string
)

// replayCmd represents the replay command.
var replayCmd = newReplayCmd()

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Send a captured element stream to a recording server",
		Long: `Replay reads a session captured from an instrumented program, a session
configuration followed by its elements, and sends it to a recording server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			f, err := fileSystem.Open(replayFileFlag)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", replayFileFlag, err)
			}

			defer func() {
				err = multierr.Append(err, f.Close())
			}()

			dec := recorder.NewDecoder(f)

			cfg, err := dec.ReadConfig()
			if err != nil {
				return err
			}

			client, err := recorder.Dial(cmd.Context(), replayAddrFlag, cfg, logger)
			if err != nil {
				return err
			}

			n, err := client.Copy(dec)
			err = multierr.Append(err, client.Close())

			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "replayed %d elements to %s\n", n, replayAddrFlag)

			return nil
		},
	}
	cmd.Flags().StringVarP(&replayAddrFlag, "addr", "a", net.JoinHostPort("localhost", strconv.Itoa(DefaultRecorderPort)), "recording server address")
	cmd.Flags().StringVarP(&replayFileFlag, "file", "f", "", "captured session")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
