package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/router"
	"github.com/JojoFlex1/done/internal/config"
	data "github.com/JojoFlex1/done/internal/data/fixtures"
	"github.com/JojoFlex1/done/internal/persistence"
	"github.com/JojoFlex1/done/internal/util/command"
	"github.com/JojoFlex1/done/internal/wallet"
	"github.com/JojoFlex1/done/internal/wallet/seed"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type Flags struct {
	ApplyMigrations bool
	SeedFixtures    bool
}

const (
	migrateFlag = "migrate"
	seedFlag    = "seed"
)

func New() *cobra.Command {
	var flags Flags

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Starts the server",
		Long: `Starts the stateless RESTful JSON server

Requires configuration through ENV and
a fully migrated PostgreSQL database when SERVER_PERSISTENCE_DRIVER=postgres.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServer(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.ApplyMigrations, migrateFlag, "m", false, "If set, applies all pending database migrations before starting the server.")
	cmd.Flags().BoolVarP(&flags.SeedFixtures, seedFlag, "s", false, "If set, upserts the bin fixtures before starting the server.")

	return cmd
}

func runServer(flags Flags) error {
	cfg := config.DefaultServiceConfigFromEnv()
	command.SetupLogger(cfg)

	log.Info().Str("network", cfg.Wallet.Network).Str("persistence", cfg.Persistence.Driver).Msg("Starting server")

	s, err := api.InitNewServer(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize server")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.Logger.WithContext(ctx)

	if s.UsesDatabase() {
		if flags.ApplyMigrations {
			n, err := persistence.Migrate(s.DB)
			if err != nil {
				log.Error().Err(err).Msg("Failed to apply migrations")
				return err
			}
			log.Info().Int("count", n).Msg("Applied migrations")
		}

		if flags.SeedFixtures {
			n, err := data.Upsert(ctx, s.Bins, data.Fixtures())
			if err != nil {
				log.Error().Err(err).Msg("Failed to seed fixtures")
				return err
			}
			log.Info().Int("count", n).Msg("Seeded bin fixtures")
		}
	} else if flags.ApplyMigrations || flags.SeedFixtures {
		log.Warn().Msg("In-memory persistence, ignoring --migrate and --seed")
	}

	seedManager := seed.NewManager()
	defer seedManager.Clear()

	if _, err := wallet.InitializeTreasury(ctx, cfg.Wallet, seedManager, s.Wallet); err != nil {
		log.Error().Err(err).Msg("Failed to initialize treasury wallet")
		return err
	}

	if err := router.Init(s); err != nil {
		log.Error().Err(err).Msg("Failed to initialize router")
		return err
	}

	s.StartBackground(ctx)

	errs := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case <-ctx.Done():
	case err := <-errs:
		if err != nil {
			log.Error().Err(err).Msg("Failed to start server")
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if errs := s.Shutdown(shutdownCtx); len(errs) > 0 {
		log.Error().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
		return errs[0]
	}

	log.Info().Msg("Server shut down")

	return nil
}
