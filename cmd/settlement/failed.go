package settlement

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/util/command"
	"github.com/spf13/cobra"
)

func newFailed() *cobra.Command {
	return &cobra.Command{
		Use:   "failed",
		Short: "Lists settlement intents that need manual review",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return command.WithServer(cmd.Context(), config.DefaultServiceConfigFromEnv(), func(ctx context.Context, s *api.Server) error {
				intents, err := s.Outbox.ListFailed(ctx)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tSUBMISSION\tATTEMPTS\tUPDATED\tLAST ERROR")
				for _, i := range intents {
					fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", i.ID, i.SubmissionID, i.Attempts, i.UpdatedAt.Format(time.RFC3339), i.LastError.String)
				}

				return w.Flush()
			})
		},
	}
}
