package probe

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/handlers/common"
	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/util/command"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newLiveness() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Runs liveness probes",
		Long: `Runs the same probes as GET /-/healthy, including the writeable touchfile check.

Exits with a non-zero code if any probe fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return command.WithServer(cmd.Context(), config.DefaultServiceConfigFromEnv(), func(ctx context.Context, s *api.Server) error {
				mgmt := s.Config.Management

				report, errs := common.ProbeLiveness(ctx, probeDB(s), mgmt.LivenessTimeout, mgmt.ProbeWriteablePathsAbs, mgmt.ProbeWriteableTouchfile)
				if verbose {
					fmt.Fprint(cmd.OutOrStdout(), report)
				}

				if len(errs) > 0 {
					return errors.Errorf("liveness probe failed with %d error(s)", len(errs))
				}

				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&verbose, verboseFlag, "v", false, "Print the probe report.")

	return cmd
}

func probeDB(s *api.Server) *sql.DB {
	if !s.UsesDatabase() {
		return nil
	}

	return s.DB
}
