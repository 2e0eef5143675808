package address

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrUnknownNetwork = errors.New("unknown network")
	ErrInvalidPath    = errors.New("invalid derivation path")
)

// Network is a Cardano network the service mints addresses for.
type Network string

const (
	Mainnet Network = "Mainnet"
	Preprod Network = "Preprod"
	Preview Network = "Preview"
)

// ParseNetwork returns the Network for its configuration name.
func ParseNetwork(s string) (Network, error) {
	switch Network(s) {
	case Mainnet, Preprod, Preview:
		return Network(s), nil
	default:
		return "", errors.Wrapf(ErrUnknownNetwork, "%q", s)
	}
}

func (n Network) String() string {
	return string(n)
}

func (n Network) IsMainnet() bool {
	return n == Mainnet
}

// ID is the network tag encoded in the low nibble of an address header.
func (n Network) ID() byte {
	if n.IsMainnet() {
		return 1
	}
	return 0
}

// AddressHRP is the bech32 prefix of base addresses.
func (n Network) AddressHRP() string {
	if n.IsMainnet() {
		return "addr"
	}
	return "addr_test"
}

// RewardHRP is the bech32 prefix of reward (stake) addresses.
func (n Network) RewardHRP() string {
	if n.IsMainnet() {
		return "stake"
	}
	return "stake_test"
}

// Addresses is the spendable base address and its reward address.
type Addresses struct {
	Address       string
	RewardAddress string
}

// Service provides address derivation functionality
type Service interface {
	// Derive derives the account 0 base and reward addresses from BIP39 entropy.
	Derive(ctx context.Context, entropy []byte, network Network) (*Addresses, error)

	// Validate is a structural check of a bech32 payment address, not a cryptographic one.
	Validate(address string) bool

	// PaymentPath is the CIP-1852 path of the payment key.
	PaymentPath(addressIndex int) string

	// StakePath is the CIP-1852 path of the stake key.
	StakePath(addressIndex int) string
}
