package env

import (
	"encoding/json"
	"fmt"

	"github.com/JojoFlex1/done/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Prints the env config as JSON",
		Long: `Prints the config resolved from ENV as JSON.

Secrets like passwords, the encryption key, the JWT secret and the treasury mnemonic are omitted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.DefaultServiceConfigFromEnv()

			c, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				log.Error().Err(err).Msg("Failed to marshal the env config")
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(c))

			return nil
		},
	}
}
