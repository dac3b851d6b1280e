package cmd

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mouse-blink/codeeraser/internal/recorder"
)

// DefaultRecorderPort is the port instrumented programs connect to.
const DefaultRecorderPort = 1200

var (
	servePortFlag        int
	serveBaseDirFlag     string
	serveQueueFlag       int
	serveMetricsAddrFlag string
)

// serveCmd represents the serve command.
var serveCmd = newServeCmd()

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Receive recording elements from instrumented programs",
		Long: `Serve accepts recording sessions, decodes their elements and aggregates
them per recorder id. Statistics are printed when a program asks for them.
The server stops after the end-system element or on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			listener, err := net.Listen("tcp", fmt.Sprintf(":%d", servePortFlag))
			if err != nil {
				return fmt.Errorf("failed to listen on port %d: %w", servePortFlag, err)
			}

			reg := prometheus.NewRegistry()
			srv := recorder.NewServer(listener, recorder.NewDefaultStrategy(cmd.OutOrStdout(), logger), logger,
				recorder.WithQueueSize(serveQueueFlag),
				recorder.WithBaseDir(serveBaseDirFlag),
				recorder.WithMetrics(recorder.NewMetrics(reg)),
			)

			if serveMetricsAddrFlag != "" {
				metrics := &http.Server{
					Addr:              serveMetricsAddrFlag,
					Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
					ReadHeaderTimeout: 5 * time.Second,
				}

				go func() {
					if err := metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error("metrics endpoint failed", zap.Error(err))
					}
				}()

				defer func() {
					_ = metrics.Close()
				}()
			}

			logger.Info("recording server listening", zap.Stringer("addr", listener.Addr()))

			return srv.Serve(ctx)
		},
	}
	cmd.Flags().IntVarP(&servePortFlag, "port", "p", DefaultRecorderPort, "port to listen on")
	cmd.Flags().StringVar(&serveBaseDirFlag, "base-dir", "", "override the base directory sent by the programs")
	cmd.Flags().IntVar(&serveQueueFlag, "queue", recorder.DefaultQueueSize, "number of decoded elements waiting to be applied")
	cmd.Flags().StringVar(&serveMetricsAddrFlag, "metrics-addr", "", "serve prometheus metrics on this address, e.g. :9100")

	return cmd
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
