package db

import (
	"context"
	"fmt"
	"sort"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/persistence"
	"github.com/JojoFlex1/done/internal/util/command"
	"github.com/spf13/cobra"
)

func newStatus() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Lists the migrations and whether they are applied.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return command.WithServer(cmd.Context(), config.DefaultServiceConfigFromEnv(), func(_ context.Context, s *api.Server) error {
				if !s.UsesDatabase() {
					return errMemoryPersistence
				}

				status, err := persistence.Status(s.DB)
				if err != nil {
					return err
				}

				ids := make([]string, 0, len(status))
				for id := range status {
					ids = append(ids, id)
				}
				sort.Strings(ids)

				out := cmd.OutOrStdout()
				for _, id := range ids {
					state := "pending"
					if status[id] {
						state = "applied"
					}
					fmt.Fprintf(out, "%-10s %s\n", state, id)
				}

				return nil
			})
		},
	}
}
