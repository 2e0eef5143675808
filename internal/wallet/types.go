package wallet

import (
	"context"

	"github.com/JojoFlex1/done/internal/wallet/address"
)

// Provisioned is a freshly minted wallet. SeedPhrase is plaintext and must
// only be shown to its owner once.
type Provisioned struct {
	Network       address.Network
	Address       string
	RewardAddress string
	SeedPhrase    string
	EncryptedSeed string
}

// Service provisions user wallets and protects their seed phrases
type Service interface {
	// Generate creates a new seed phrase, derives its addresses and encrypts it with the server key.
	Generate(ctx context.Context, network address.Network) (*Provisioned, error)

	// Restore re-derives addresses from an existing seed phrase. Nothing is persisted.
	Restore(ctx context.Context, mnemonic string, network address.Network) (*address.Addresses, error)

	// ValidateAddress is a structural format check.
	ValidateAddress(addr string) bool

	// DecryptSeed opens an envelope written by Generate.
	DecryptSeed(ctx context.Context, envelope string) (string, error)

	// Decrypt opens an envelope with a caller supplied password.
	Decrypt(ctx context.Context, envelope string, password string) (string, error)

	// ReencryptSeed rewrites envelopes of an older scheme. The bool reports whether a new envelope was produced.
	ReencryptSeed(ctx context.Context, envelope string) (string, bool, error)

	// Network returns the configured network.
	Network() address.Network
}
