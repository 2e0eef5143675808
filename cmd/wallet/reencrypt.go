package wallet

import (
	"context"
	"fmt"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/util/command"
	"github.com/JojoFlex1/done/internal/wallet"
	"github.com/spf13/cobra"
)

func newReencrypt() *cobra.Command {
	return &cobra.Command{
		Use:   "reencrypt",
		Short: "Upgrades stored seed envelopes to the configured scheme",
		Long: `Re-encrypts every stored seed phrase still written with an older envelope scheme.

Requires the ENCRYPTION_KEY the envelopes were written with.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return command.WithServer(cmd.Context(), config.DefaultServiceConfigFromEnv(), func(ctx context.Context, s *api.Server) error {
				res, err := wallet.ReencryptAll(ctx, s.Profiles, s.Wallet)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%d seeds, %d upgraded, %d skipped as stale\n", res.Total, res.Upgraded, res.Stale)

				return nil
			})
		},
	}
}
