package probe

import (
	"context"
	"fmt"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/handlers/common"
	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/util/command"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newReadiness() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Runs readiness probes",
		Long: `Runs the same probes as GET /-/ready.

Exits with a non-zero code if any probe fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return command.WithServer(cmd.Context(), config.DefaultServiceConfigFromEnv(), func(ctx context.Context, s *api.Server) error {
				report, errs := common.ProbeReadiness(ctx, probeDB(s), s.Config.Management.ReadinessTimeout, s.Config.Management.ProbeWriteablePathsAbs)
				if verbose {
					fmt.Fprint(cmd.OutOrStdout(), report)
				}

				if len(errs) > 0 {
					return errors.Errorf("readiness probe failed with %d error(s)", len(errs))
				}

				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&verbose, verboseFlag, "v", false, "Print the probe report.")

	return cmd
}
