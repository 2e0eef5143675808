package wallet_test

import (
	"context"
	"strings"
	"testing"

	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/wallet"
	"github.com/JojoFlex1/done/internal/wallet/address"
	"github.com/JojoFlex1/done/internal/wallet/keystore"
	"github.com/JojoFlex1/done/internal/wallet/seed"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func newWalletService(t *testing.T, network string) wallet.Service {
	t.Helper()

	ks, err := keystore.NewService(keystore.Params{Version: keystore.VersionScryptGCM, ScryptLogN: 4})
	require.NoError(t, err)

	svc, err := wallet.NewService(config.Wallet{
		Network:       network,
		EncryptionKey: "test-encryption-key",
		MnemonicWords: 24,
	}, ks, address.NewService())
	require.NoError(t, err)

	return svc
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	svc := newWalletService(t, "Preprod")

	p, err := svc.Generate(ctx, svc.Network())
	require.NoError(t, err)

	assert.Len(t, strings.Fields(p.SeedPhrase), 24)
	assert.True(t, strings.HasPrefix(p.Address, "addr_test1"))
	assert.True(t, strings.HasPrefix(p.RewardAddress, "stake_test1"))
	assert.True(t, svc.ValidateAddress(p.Address))
	assert.NotContains(t, p.EncryptedSeed, p.SeedPhrase)

	plaintext, err := svc.DecryptSeed(ctx, p.EncryptedSeed)
	require.NoError(t, err)
	assert.Equal(t, p.SeedPhrase, plaintext)

	restored, err := svc.Restore(ctx, p.SeedPhrase, svc.Network())
	require.NoError(t, err)
	assert.Equal(t, p.Address, restored.Address)
	assert.Equal(t, p.RewardAddress, restored.RewardAddress)
}

func TestGenerateMainnet(t *testing.T) {
	svc := newWalletService(t, "Mainnet")

	p, err := svc.Generate(context.Background(), address.Mainnet)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.Address, "addr1"))
	assert.True(t, svc.Network().IsMainnet())
}

func TestGenerateUnique(t *testing.T) {
	ctx := context.Background()
	svc := newWalletService(t, "Preprod")

	a, err := svc.Generate(ctx, svc.Network())
	require.NoError(t, err)
	b, err := svc.Generate(ctx, svc.Network())
	require.NoError(t, err)

	assert.NotEqual(t, a.SeedPhrase, b.SeedPhrase)
	assert.NotEqual(t, a.Address, b.Address)
}

func TestRestoreInvalidMnemonic(t *testing.T) {
	svc := newWalletService(t, "Preprod")

	_, err := svc.Restore(context.Background(), "abandon abandon", svc.Network())
	require.ErrorIs(t, err, seed.ErrInvalidWordCount)
}

func TestDecryptWithPassword(t *testing.T) {
	ctx := context.Background()
	svc := newWalletService(t, "Preprod")

	p, err := svc.Generate(ctx, svc.Network())
	require.NoError(t, err)

	_, err = svc.Decrypt(ctx, p.EncryptedSeed, "wrong")
	require.ErrorIs(t, err, keystore.ErrDecryptionFailed)

	_, err = svc.Decrypt(ctx, "no-separator", "test-encryption-key")
	require.ErrorIs(t, err, keystore.ErrInvalidEnvelope)

	plaintext, err := svc.Decrypt(ctx, p.EncryptedSeed, "test-encryption-key")
	require.NoError(t, err)
	assert.Equal(t, p.SeedPhrase, plaintext)
}

func TestReencryptSeed(t *testing.T) {
	ctx := context.Background()
	svc := newWalletService(t, "Preprod")

	legacy, err := keystore.NewService(keystore.Params{Version: keystore.VersionLegacy})
	require.NoError(t, err)

	old, err := legacy.Encrypt(ctx, testMnemonic, "test-encryption-key")
	require.NoError(t, err)

	upgraded, changed, err := svc.ReencryptSeed(ctx, old)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NotEqual(t, old, upgraded)

	plaintext, err := svc.DecryptSeed(ctx, upgraded)
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, plaintext)

	same, changed, err := svc.ReencryptSeed(ctx, upgraded)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, upgraded, same)
}

func TestNewServiceValidation(t *testing.T) {
	ks, err := keystore.NewService(keystore.DefaultParams())
	require.NoError(t, err)

	_, err = wallet.NewService(config.Wallet{Network: "Preprod"}, ks, address.NewService())
	require.Error(t, err)

	_, err = wallet.NewService(config.Wallet{Network: "Testnet", EncryptionKey: "k"}, ks, address.NewService())
	require.ErrorIs(t, err, address.ErrUnknownNetwork)
}

func TestUnitConversion(t *testing.T) {
	toLovelace := func(s string) int64 {
		t.Helper()
		l, err := wallet.AdaToLovelace(decimal.RequireFromString(s))
		require.NoError(t, err, s)
		return l
	}

	assert.Equal(t, int64(5_000_000), toLovelace("5"))
	assert.True(t, decimal.NewFromInt(5).Equal(wallet.LovelaceToAda(toLovelace("5"))))

	for _, s := range []string{"0", "1", "3", "1.5", "0.000001", "123456.654321"} {
		assert.True(t, decimal.RequireFromString(s).Equal(wallet.LovelaceToAda(toLovelace(s))), s)
	}

	assert.Equal(t, int64(1), toLovelace("0.0000005"))
	assert.Equal(t, int64(0), toLovelace("0.0000004"))
	assert.InDelta(t, 3.0, wallet.AdaFloat(3_000_000), 0)
}

func TestAdaToLovelaceBounds(t *testing.T) {
	l, err := wallet.AdaToLovelace(decimal.NewFromInt(wallet.MaxSupplyAda))
	require.NoError(t, err)
	assert.Equal(t, int64(45_000_000_000_000_000), l)

	for _, s := range []string{"45000000000.000001", "10000000000000", "9300000000000", "-45000000001"} {
		_, err := wallet.AdaToLovelace(decimal.RequireFromString(s))
		require.ErrorIs(t, err, wallet.ErrAmountOutOfRange, s)
	}
}
