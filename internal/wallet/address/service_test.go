package address_test

import (
	"context"
	"strings"
	"testing"

	"github.com/JojoFlex1/done/internal/wallet/address"
	"github.com/JojoFlex1/done/internal/wallet/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func deriveFrom(t *testing.T, mnemonic string, network address.Network) *address.Addresses {
	t.Helper()

	entropy, err := seed.Entropy(mnemonic)
	require.NoError(t, err)

	addrs, err := address.NewService().Derive(context.Background(), entropy, network)
	require.NoError(t, err)

	return addrs
}

func TestDeriveTestnet(t *testing.T) {
	for _, network := range []address.Network{address.Preprod, address.Preview} {
		addrs := deriveFrom(t, testMnemonic, network)

		assert.True(t, strings.HasPrefix(addrs.Address, "addr_test1"))
		assert.Len(t, addrs.Address, 108)
		assert.True(t, strings.HasPrefix(addrs.RewardAddress, "stake_test1"))
		assert.Len(t, addrs.RewardAddress, 64)
	}
}

func TestDeriveMainnet(t *testing.T) {
	addrs := deriveFrom(t, testMnemonic, address.Mainnet)

	assert.True(t, strings.HasPrefix(addrs.Address, "addr1"))
	assert.Len(t, addrs.Address, 103)
	assert.True(t, strings.HasPrefix(addrs.RewardAddress, "stake1"))
	assert.Len(t, addrs.RewardAddress, 59)

	assert.True(t, address.NewService().Validate(addrs.Address))
}

func TestDeriveDeterministic(t *testing.T) {
	a := deriveFrom(t, testMnemonic, address.Preprod)
	b := deriveFrom(t, testMnemonic, address.Preprod)
	assert.Equal(t, a, b)

	// Preprod and Preview share the network id
	c := deriveFrom(t, testMnemonic, address.Preview)
	assert.Equal(t, a, c)

	other, err := seed.NewMnemonic(24)
	require.NoError(t, err)
	d := deriveFrom(t, other, address.Preprod)
	assert.NotEqual(t, a.Address, d.Address)
	assert.NotEqual(t, a.RewardAddress, d.RewardAddress)
}

func TestBaseAndRewardShareStakeCredential(t *testing.T) {
	for _, network := range []address.Network{address.Mainnet, address.Preprod} {
		addrs := deriveFrom(t, testMnemonic, network)

		fromBase, err := address.StakeCredential(addrs.Address)
		require.NoError(t, err)
		fromReward, err := address.StakeCredential(addrs.RewardAddress)
		require.NoError(t, err)

		assert.Len(t, fromBase, 28)
		assert.Equal(t, fromBase, fromReward)
	}
}

func TestDeriveUnknownNetwork(t *testing.T) {
	entropy, err := seed.Entropy(testMnemonic)
	require.NoError(t, err)

	_, err = address.NewService().Derive(context.Background(), entropy, address.Network("Sanchonet"))
	require.ErrorIs(t, err, address.ErrUnknownNetwork)
}

func TestValidate(t *testing.T) {
	svc := address.NewService()

	assert.True(t, svc.Validate("addr1"+strings.Repeat("q", 98)))
	assert.True(t, svc.Validate("addr_test1"+strings.Repeat("q", 98)))

	assert.False(t, svc.Validate(""))
	assert.False(t, svc.Validate("addr1short"))
	assert.False(t, svc.Validate("stake1"+strings.Repeat("q", 98)))
	assert.False(t, svc.Validate("0x"+strings.Repeat("a", 100)))
	assert.False(t, svc.Validate("addr1"+strings.Repeat("q", 120)))
}

func TestPaths(t *testing.T) {
	svc := address.NewService()
	assert.Equal(t, "m/1852'/1815'/0'/0/0", svc.PaymentPath(0))
	assert.Equal(t, "m/1852'/1815'/0'/2/3", svc.StakePath(3))
}

func TestParseNetwork(t *testing.T) {
	n, err := address.ParseNetwork("Mainnet")
	require.NoError(t, err)
	assert.True(t, n.IsMainnet())
	assert.Equal(t, byte(1), n.ID())

	n, err = address.ParseNetwork("Preview")
	require.NoError(t, err)
	assert.False(t, n.IsMainnet())
	assert.Equal(t, "addr_test", n.AddressHRP())
	assert.Equal(t, "stake_test", n.RewardHRP())

	_, err = address.ParseNetwork("mainnet")
	require.ErrorIs(t, err, address.ErrUnknownNetwork)
}
