package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bistroworks/bistro/pkg/kitchen"
)

func newRunCommand(opts *rootOptions) *cobra.Command {
	var (
		noStore      bool
		serveMetrics bool
		failOnHalt   bool
	)

	cmd := &cobra.Command{
		Use:   "run <kitchen-file>",
		Short: "Fulfill the orders of a kitchen definition",
		Long: `Load a kitchen definition, route every queued order through the
stations in order, and print what happened to each order.

A station missing ingredients for an assigned dish is topped up from the
backup pool before it prepares. Orders no station can prepare go back to
the end of the queue; the run stops once a full pass over the remaining
orders prepares nothing.`,
		Example: `  # Run a kitchen and record it in the history database
  bistro run kitchen.yaml

  # Print a JSON summary without recording history
  bistro run kitchen.cue --json --no-store

  # Keep serving Prometheus metrics after the run until interrupted
  bistro run kitchen.yaml --serve-metrics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, err := newRunner(ctx, opts, cmd.OutOrStdout(), !noStore)
			if err != nil {
				return err
			}
			defer func() {
				if err := r.Close(); err != nil {
					log.Warn().Err(err).Msg("Failed to shut down cleanly")
				}
			}()

			var errCh chan error
			if serveMetrics {
				errCh = make(chan error, 1)
				if srv := r.tel.Metrics.StartMetricsServer(ctx, errCh); srv != nil {
					log.Info().
						Str("address", srv.Addr).
						Str("path", r.tel.Config.Metrics.Path).
						Msg("Serving metrics")
				}
			}

			result, err := r.run(ctx, args[0])
			if err != nil {
				return err
			}

			if serveMetrics {
				log.Info().Msg("Run finished, serving metrics until interrupted")
				select {
				case <-ctx.Done():
				case err := <-errCh:
					return fmt.Errorf("metrics server failed: %w", err)
				}
			}

			if failOnHalt && result.Outcome == kitchen.DrainOutcomeHalted {
				return fmt.Errorf("%d orders could not be fulfilled", len(result.Remaining))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noStore, "no-store", false, "do not record the session in the history database")
	cmd.Flags().BoolVar(&serveMetrics, "serve-metrics", false, "serve Prometheus metrics until interrupted")
	cmd.Flags().BoolVar(&failOnHalt, "fail-on-halt", false, "exit non-zero when orders remain unfulfilled")

	return cmd
}
