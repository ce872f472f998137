package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/prevet/prevet/pkg/config"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <blueprint>...",
		Short: "Validate blueprint files",
		Long: `Validate blueprint YAML files.

This command checks:
  - YAML syntax and unknown fields
  - Required fields and value constraints
  - Tag, link operation and status names

Process paths resolve against the host application's catalog, so they
are checked at load time by the host, not here.`,
		Example: `  # Validate a single blueprint
  prevet validate publish.yaml

  # Validate several blueprints at once
  prevet validate blueprints/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed int
			for _, path := range args {
				source := config.NewFileSource(path)
				data, err := source.Load()
				if err != nil {
					failed++
					log.Error().Err(err).Str("blueprint", path).Msg("Blueprint is invalid")
					continue
				}

				processors := 0
				for _, id := range data.Header {
					if _, ok := data.Descriptions[id]; ok {
						processors++
					}
				}
				log.Info().
					Str("blueprint", path).
					Int("processors", processors).
					Int("settings", len(data.Settings)).
					Msg("Blueprint is valid")
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d blueprints failed validation", failed, len(args))
			}
			return nil
		},
	}

	return cmd
}
