package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bistroworks/bistro/pkg/config"
)

func newWatchCommand(opts *rootOptions) *cobra.Command {
	var noStore bool

	cmd := &cobra.Command{
		Use:   "watch <kitchen-file>",
		Short: "Re-run a kitchen definition whenever it changes",
		Long: `Run a kitchen definition once, then again after every change to the
file until interrupted. Bursts of writes are collapsed into one run.
Invalid definitions are reported and skipped.`,
		Example: `  # Iterate on a kitchen while editing it
  bistro watch kitchen.yaml --no-store`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			r, err := newRunner(ctx, opts, cmd.OutOrStdout(), !noStore)
			if err != nil {
				return err
			}
			defer func() {
				if err := r.Close(); err != nil {
					log.Warn().Err(err).Msg("Failed to shut down cleanly")
				}
			}()

			runOnce := func() {
				if _, err := r.run(ctx, path); err != nil {
					log.Error().Err(err).Str("file", path).Msg("Run failed")
				}
			}

			runOnce()
			return config.WatchFile(ctx, path, config.DefaultWatchDelay, log.Logger, runOnce)
		},
	}

	cmd.Flags().BoolVar(&noStore, "no-store", false, "do not record sessions in the history database")

	return cmd
}
