package wallet

import (
	"context"

	"github.com/JojoFlex1/done/internal/wallet/address"
	"github.com/JojoFlex1/done/internal/wallet/seed"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

// RestoreFromManager derives the treasury addresses from the seed held in memory.
func RestoreFromManager(ctx context.Context, seedManager seed.Manager, walletService Service) (*address.Addresses, error) {
	entropy, err := seedManager.Entropy()
	if err != nil {
		return nil, err
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, errors.Wrap(err, "failed to rebuild mnemonic")
	}

	return walletService.Restore(ctx, mnemonic, walletService.Network())
}

// VerifyTreasuryAddress compares the derived treasury addresses with the configured one.
// Either the base address or the reward address may be configured.
func VerifyTreasuryAddress(derived *address.Addresses, configured string) (bool, error) {
	if derived == nil {
		return false, errors.New("no derived addresses")
	}

	if _, err := address.StakeCredential(configured); err != nil {
		return false, errors.Wrap(err, "configured treasury address is malformed")
	}

	return configured == derived.Address || configured == derived.RewardAddress, nil
}
