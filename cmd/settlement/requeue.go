package settlement

import (
	"context"
	"fmt"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/util/command"
	"github.com/spf13/cobra"
)

func newRequeue() *cobra.Command {
	return &cobra.Command{
		Use:   "requeue <intent-id>...",
		Short: "Moves failed settlement intents back to pending",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return command.WithServer(cmd.Context(), config.DefaultServiceConfigFromEnv(), func(ctx context.Context, s *api.Server) error {
				for _, id := range args {
					if err := s.Outbox.Requeue(ctx, id, s.Clock.Now()); err != nil {
						return fmt.Errorf("failed to requeue %s: %w", id, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "requeued %s\n", id)
				}

				return nil
			})
		},
	}
}
