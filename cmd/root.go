package cmd

import (
	"fmt"
	"os"

	"github.com/JojoFlex1/done/cmd/db"
	"github.com/JojoFlex1/done/cmd/env"
	"github.com/JojoFlex1/done/cmd/probe"
	"github.com/JojoFlex1/done/cmd/server"
	"github.com/JojoFlex1/done/cmd/settlement"
	"github.com/JojoFlex1/done/cmd/wallet"
	"github.com/JojoFlex1/done/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const configFlag = "config"

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "app",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

Recycling rewards backend: OTP signup with Cardano wallet provisioning,
waste drop-off rewards and on-chain settlement.
Requires configuration through ENV, a .env file or --config.`, config.ModuleName),
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		config.LoadDotEnv(".env", ".env.local")

		if len(configFile) == 0 {
			return nil
		}

		return config.ApplyConfigFile(configFile)
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	rootCmd.PersistentFlags().StringVar(&configFile, configFlag, "", "yaml, toml or json config file, ENV variables take precedence")

	// attach the subcommands
	rootCmd.AddCommand(
		db.New(),
		env.New(),
		probe.New(),
		server.New(),
		settlement.New(),
		wallet.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
