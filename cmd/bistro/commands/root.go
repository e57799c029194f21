package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bistroworks/bistro/pkg/config"
)

// rootOptions carries global flags and the settings resolved from them.
type rootOptions struct {
	settingsPath string
	logLevel     string
	dbPath       string
	jsonOutput   bool

	version  string
	settings *config.Settings
}

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	opts := &rootOptions{version: version}

	rootCmd := &cobra.Command{
		Use:   "bistro",
		Short: "bistro - order fulfillment for a simulated kitchen",
		Long: `bistro routes queued orders through kitchen workstations, tops up
station stock from a shared backup pool, and reports what could and could
not be prepared.

Kitchens are described in YAML, JSON or CUE files listing the menu, the
stations with their dishes and stock, the backup pool and the orders.
Every run is recorded in a local SQLite history database.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.loadSettings(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.settingsPath, "config", "c", "", "settings file (default: ./bistro.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "session history database path")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "output in JSON format")

	rootCmd.AddCommand(newRunCommand(opts))
	rootCmd.AddCommand(newValidateCommand(opts))
	rootCmd.AddCommand(newHistoryCommand(opts))
	rootCmd.AddCommand(newWatchCommand(opts))

	return rootCmd
}

// loadSettings resolves settings and applies flag overrides.
func (o *rootOptions) loadSettings(cmd *cobra.Command) error {
	settings, err := config.LoadSettings(o.settingsPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		settings.LogLevel = o.logLevel
	}
	if flags.Changed("db") {
		settings.DBPath = o.dbPath
	}

	level, err := zerolog.ParseLevel(strings.ToLower(settings.LogLevel))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", settings.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)

	if settings.ConfigFile != "" {
		log.Debug().Str("file", settings.ConfigFile).Msg("Loaded settings")
	}

	o.settings = settings
	return nil
}
