package wallet

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/JojoFlex1/done/internal/wallet/address"
	"github.com/JojoFlex1/done/internal/wallet/seed"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// InitializeTreasury loads the treasury seed at server startup.
// This function handles:
// 1. Skipping when no TREASURY_MNEMONIC is configured
// 2. Initializing the seed manager with the mnemonic
// 3. Restoring the treasury addresses for the configured network
// 4. Verifying them against TREASURY_CONTRACT_ADDRESS when set
func InitializeTreasury(ctx context.Context, cfg config.Wallet, seedManager seed.Manager, walletService Service) (*address.Addresses, error) {
	log := util.LogFromContext(ctx).With().Str("component", "treasury_init").Logger()

	if len(cfg.TreasuryMnemonic) == 0 {
		log.Info().Msg("No treasury mnemonic configured, skipping treasury initialization")
		return nil, nil
	}

	if err := seedManager.Initialize(cfg.TreasuryMnemonic); err != nil {
		return nil, errors.Wrap(err, "failed to initialize seed manager")
	}

	log.Info().Msg("Seed manager initialized")

	addrs, err := RestoreFromManager(ctx, seedManager, walletService)
	if err != nil {
		seedManager.Clear()
		return nil, err
	}

	if len(cfg.TreasuryAddress) > 0 {
		valid, err := VerifyTreasuryAddress(addrs, cfg.TreasuryAddress)
		if err != nil {
			seedManager.Clear()
			return nil, errors.Wrap(err, "failed to verify treasury address")
		}

		if !valid {
			seedManager.Clear()
			return nil, errors.New("treasury verification failed: derived address does not match TREASURY_CONTRACT_ADDRESS")
		}

		log.Info().Msg("Treasury address verification successful")
	}

	log.Info().Str("address", util.TruncateAddress(addrs.Address)).Msg("Treasury wallet loaded")

	return addrs, nil
}

// PromptMnemonic reads a seed phrase from the terminal without echoing it.
//
//nolint:forbidigo // Mnemonic input requires direct terminal I/O
func PromptMnemonic(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	mnemonicBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", errors.Wrap(err, "failed to read mnemonic from terminal")
	}

	fmt.Fprintln(os.Stderr)

	return strings.TrimSpace(string(mnemonicBytes)), nil
}
