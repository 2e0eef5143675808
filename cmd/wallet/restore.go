package wallet

import (
	"context"
	"fmt"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/util/command"
	"github.com/JojoFlex1/done/internal/wallet"
	"github.com/JojoFlex1/done/internal/wallet/address"
	"github.com/spf13/cobra"
)

func newRestore() *cobra.Command {
	var network string

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Derives the addresses of an existing seed phrase",
		Long: `Reads a seed phrase from the terminal without echoing it and prints the derived addresses.

Useful to find the value of TREASURY_CONTRACT_ADDRESS for a TREASURY_MNEMONIC.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mnemonic, err := wallet.PromptMnemonic("Seed phrase: ")
			if err != nil {
				return err
			}

			return command.WithServer(cmd.Context(), config.DefaultServiceConfigFromEnv(), func(ctx context.Context, s *api.Server) error {
				n := s.Wallet.Network()
				if len(network) > 0 {
					n, err = address.ParseNetwork(network)
					if err != nil {
						return err
					}
				}

				addrs, err := s.Wallet.Restore(ctx, mnemonic, n)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Network:        %s\n", n)
				fmt.Fprintf(out, "Address:        %s\n", addrs.Address)
				fmt.Fprintf(out, "Reward address: %s\n", addrs.RewardAddress)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&network, networkFlag, "", "Mainnet, Preprod or Preview. Defaults to CARDANO_NETWORK.")

	return cmd
}
