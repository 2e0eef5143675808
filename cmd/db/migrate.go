package db

import (
	"context"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/persistence"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/JojoFlex1/done/internal/util/command"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var errMemoryPersistence = errors.New("SERVER_PERSISTENCE_DRIVER is not postgres, nothing to do")

func newMigrate() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Executes all migrations which are not yet applied.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return command.WithServer(cmd.Context(), config.DefaultServiceConfigFromEnv(), applyMigrations)
		},
	}
}

func applyMigrations(ctx context.Context, s *api.Server) error {
	log := util.LogFromContext(ctx)

	if !s.UsesDatabase() {
		return errMemoryPersistence
	}

	n, err := persistence.Migrate(s.DB)
	if err != nil {
		log.Error().Err(err).Msg("Failed to apply migrations")
		return err
	}

	log.Info().Int("count", n).Msg("Applied migrations")

	return nil
}
