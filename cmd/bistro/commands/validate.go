package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bistroworks/bistro/pkg/config"
)

func newValidateCommand(opts *rootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <kitchen-file>",
		Short: "Validate a kitchen definition",
		Long: `Validate a kitchen definition without running it.

This command checks:
  - YAML, JSON or CUE syntax
  - Schema conformance (unknown fields, quantities, courses)
  - Unique dish and station names
  - Station items and orders referencing menu dishes`,
		Example: `  # Validate a definition
  bistro validate kitchen.yaml

  # Treat warnings as errors
  bistro validate --strict kitchen.cue`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			out := cmd.OutOrStdout()

			log.Debug().Str("path", path).Bool("strict", strict).Msg("Validating kitchen definition")

			loaded, err := config.NewLoader().LoadFile(path)
			if err != nil {
				return err
			}

			if opts.jsonOutput {
				if err := writeJSON(out, loaded); err != nil {
					return err
				}
			} else {
				for _, p := range loaded.Problems {
					fmt.Fprintf(out, "%s: %s\n", p.Severity, p.String())
				}
			}

			if err := loaded.Err(); err != nil {
				return err
			}
			if strict && len(loaded.Warnings()) > 0 {
				return fmt.Errorf("%d warnings in strict mode", len(loaded.Warnings()))
			}

			if !opts.jsonOutput {
				def := loaded.Definition
				fmt.Fprintf(out, "%s is valid: %d dishes, %d stations, %d orders\n",
					path, len(def.Menu), len(def.Stations), len(def.Orders))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")

	return cmd
}
