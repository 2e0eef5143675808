package wallet

import (
	"context"
	"fmt"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/util/command"
	"github.com/JojoFlex1/done/internal/wallet/address"
	"github.com/spf13/cobra"
)

func newGenerate() *cobra.Command {
	var network string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generates a new wallet and prints its seed phrase",
		Long: `Generates a new wallet, e.g. for the treasury.

The seed phrase is printed to stdout once and is not stored anywhere.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return command.WithServer(cmd.Context(), config.DefaultServiceConfigFromEnv(), func(ctx context.Context, s *api.Server) error {
				n := s.Wallet.Network()
				if len(network) > 0 {
					var err error
					n, err = address.ParseNetwork(network)
					if err != nil {
						return err
					}
				}

				p, err := s.Wallet.Generate(ctx, n)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Network:        %s\n", p.Network)
				fmt.Fprintf(out, "Address:        %s\n", p.Address)
				fmt.Fprintf(out, "Reward address: %s\n", p.RewardAddress)
				fmt.Fprintf(out, "Seed phrase:    %s\n", p.SeedPhrase)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&network, networkFlag, "", "Mainnet, Preprod or Preview. Defaults to CARDANO_NETWORK.")

	return cmd
}
