package settlement

import (
	"context"
	"fmt"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/util/command"
	"github.com/spf13/cobra"
)

func newRun() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Drains the settlement outbox once and exits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return command.WithServer(cmd.Context(), config.DefaultServiceConfigFromEnv(), func(ctx context.Context, s *api.Server) error {
				total := 0
				for {
					n, err := s.Settlement.RunOnce(ctx)
					total += n
					if err != nil {
						return err
					}
					if n < s.Config.Settlement.BatchSize {
						break
					}
				}

				fmt.Fprintf(cmd.OutOrStdout(), "processed %d intents\n", total)

				return nil
			})
		},
	}
}
