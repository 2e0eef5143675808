package wallet

import (
	"context"

	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/JojoFlex1/done/internal/wallet/address"
	"github.com/JojoFlex1/done/internal/wallet/keystore"
	"github.com/JojoFlex1/done/internal/wallet/seed"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
)

type service struct {
	network       address.Network
	encryptionKey string
	mnemonicWords int
	keystore      keystore.Service
	address       address.Service
}

// NewService creates a new wallet Service
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(cfg config.Wallet, keystoreService keystore.Service, addressService address.Service) (Service, error) {
	if err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(cfg.EncryptionKey, "ENCRYPTION_KEY"),
		vala.IsNotNil(keystoreService, "keystoreService"),
		vala.IsNotNil(addressService, "addressService"),
	).Check(); err != nil {
		return nil, errors.Wrap(err, "invalid wallet service configuration")
	}

	network, err := address.ParseNetwork(cfg.Network)
	if err != nil {
		return nil, err
	}

	words := cfg.MnemonicWords
	if words == 0 {
		words = seed.DefaultWordCount
	}

	return &service{
		network:       network,
		encryptionKey: cfg.EncryptionKey,
		mnemonicWords: words,
		keystore:      keystoreService,
		address:       addressService,
	}, nil
}

func (s *service) Generate(ctx context.Context, network address.Network) (*Provisioned, error) {
	log := util.LogFromContext(ctx).With().Str("component", "wallet").Logger()

	mnemonic, err := seed.NewMnemonic(s.mnemonicWords)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate seed phrase")
	}

	addrs, err := s.Restore(ctx, mnemonic, network)
	if err != nil {
		return nil, err
	}

	encrypted, err := s.keystore.Encrypt(ctx, mnemonic, s.encryptionKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encrypt seed phrase")
	}

	log.Info().Str("network", network.String()).Str("address", util.TruncateAddress(addrs.Address)).Msg("Generated wallet")

	return &Provisioned{
		Network:       network,
		Address:       addrs.Address,
		RewardAddress: addrs.RewardAddress,
		SeedPhrase:    mnemonic,
		EncryptedSeed: encrypted,
	}, nil
}

func (s *service) Restore(ctx context.Context, mnemonic string, network address.Network) (*address.Addresses, error) {
	entropy, err := seed.Entropy(mnemonic)
	if err != nil {
		return nil, err
	}
	defer func() {
		for i := range entropy {
			entropy[i] = 0
		}
	}()

	addrs, err := s.address.Derive(ctx, entropy, network)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive addresses")
	}

	return addrs, nil
}

func (s *service) ValidateAddress(addr string) bool {
	return s.address.Validate(addr)
}

func (s *service) DecryptSeed(ctx context.Context, envelope string) (string, error) {
	return s.keystore.Decrypt(ctx, envelope, s.encryptionKey)
}

func (s *service) Decrypt(ctx context.Context, envelope string, password string) (string, error) {
	return s.keystore.Decrypt(ctx, envelope, password)
}

func (s *service) ReencryptSeed(ctx context.Context, envelope string) (string, bool, error) {
	if !s.keystore.NeedsUpgrade(envelope) {
		return envelope, false, nil
	}

	plaintext, err := s.DecryptSeed(ctx, envelope)
	if err != nil {
		return "", false, err
	}

	upgraded, err := s.keystore.Encrypt(ctx, plaintext, s.encryptionKey)
	if err != nil {
		return "", false, errors.Wrap(err, "failed to re-encrypt seed phrase")
	}

	return upgraded, true, nil
}

func (s *service) Network() address.Network {
	return s.network
}
