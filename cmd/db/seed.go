package db

import (
	"context"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/config"
	data "github.com/JojoFlex1/done/internal/data/fixtures"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/JojoFlex1/done/internal/util/command"
	"github.com/spf13/cobra"
)

func newSeed() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Upserts the recycling bin fixtures.",
		Long: `Upserts the recycling bin fixtures.

Bins are matched by their QR code, running the command twice is safe.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return command.WithServer(cmd.Context(), config.DefaultServiceConfigFromEnv(), seedFixtures)
		},
	}
}

func seedFixtures(ctx context.Context, s *api.Server) error {
	log := util.LogFromContext(ctx)

	if !s.UsesDatabase() {
		return errMemoryPersistence
	}

	n, err := data.Upsert(ctx, s.Bins, data.Fixtures())
	if err != nil {
		log.Error().Err(err).Msg("Failed to seed fixtures")
		return err
	}

	log.Info().Int("count", n).Msg("Seeded bin fixtures")

	return nil
}
