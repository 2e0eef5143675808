package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	ShortTimeout = 10 * time.Second
)

// SetupLogger applies the global zerolog settings of cfg.
func SetupLogger(cfg config.Server) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(cfg.Logger.Level)

	if cfg.Logger.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.TimeFormat = "15:04:05"
			w.Out = os.Stderr
		}))
	}

	if cfg.Logger.LogCaller {
		log.Logger = log.With().Caller().Logger()
	}
}

// WithServer initializes a server from cfg, runs f and shuts the server down again.
// The error returned by f is passed through.
func WithServer(ctx context.Context, cfg config.Server, f func(ctx context.Context, s *api.Server) error) error {
	SetupLogger(cfg)

	s, err := api.InitNewServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	ctx = log.Logger.WithContext(ctx)

	start := time.Now()
	resultErr := f(ctx, s)
	log.Debug().Dur("duration", time.Since(start)).Msg("Command finished")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShortTimeout)
	defer cancel()

	if errs := s.Shutdown(shutdownCtx); len(errs) > 0 {
		log.Error().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
	}

	return resultErr
}

// NewSubcommandGroup returns a command that only groups its subcommands and prints help when run on its own.
func NewSubcommandGroup(name string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " <subcommand>",
		Short: name + " related subcommands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(subcommands...)

	return cmd
}
