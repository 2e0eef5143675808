package address

import (
	"context"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const (
	keyHashSize = 28

	headerBase   = 0x00
	headerReward = 0xe0

	minAddressLength = 100
	maxAddressLength = 115

	mainnetAddressPrefix = "addr1"
	testnetAddressPrefix = "addr_test1"
)

type service struct{}

// NewService creates a new address Service
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService() Service {
	return &service{}
}

// Derive derives the payment and stake keys of account 0 and encodes a base
// address (payment + stake credential) and a reward address.
func (s *service) Derive(_ context.Context, entropy []byte, network Network) (*Addresses, error) {
	if _, err := ParseNetwork(string(network)); err != nil {
		return nil, err
	}

	root := newMasterKey(entropy)
	defer root.wipe()

	paymentHash, err := keyHashAt(root, s.PaymentPath(0))
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive payment key")
	}

	stakeHash, err := keyHashAt(root, s.StakePath(0))
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive stake key")
	}

	base := make([]byte, 0, 1+2*keyHashSize)
	base = append(base, headerBase|network.ID())
	base = append(base, paymentHash...)
	base = append(base, stakeHash...)

	reward := make([]byte, 0, 1+keyHashSize)
	reward = append(reward, headerReward|network.ID())
	reward = append(reward, stakeHash...)

	addr, err := encodeBech32(network.AddressHRP(), base)
	if err != nil {
		return nil, err
	}

	rewardAddr, err := encodeBech32(network.RewardHRP(), reward)
	if err != nil {
		return nil, err
	}

	return &Addresses{
		Address:       addr,
		RewardAddress: rewardAddr,
	}, nil
}

func (s *service) Validate(address string) bool {
	if address == "" {
		return false
	}

	hasPrefix := strings.HasPrefix(address, mainnetAddressPrefix) || strings.HasPrefix(address, testnetAddressPrefix)
	validLength := len(address) >= minAddressLength && len(address) <= maxAddressLength

	return hasPrefix && validLength
}

func keyHashAt(root *extendedKey, path string) ([]byte, error) {
	key, err := deriveKeyFromPath(root, path)
	if err != nil {
		return nil, err
	}
	defer key.wipe()

	pub, err := key.publicKey()
	if err != nil {
		return nil, err
	}

	h, err := blake2b.New(keyHashSize, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create blake2b-224")
	}
	h.Write(pub)

	return h.Sum(nil), nil
}

func encodeBech32(hrp string, data []byte) (string, error) {
	conv, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(err, "failed to convert bits")
	}

	encoded, err := bech32.Encode(hrp, conv)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode bech32")
	}

	return encoded, nil
}

// decodeBech32 returns the hrp and the raw payload of an address.
func decodeBech32(address string) (string, []byte, error) {
	hrp, conv, err := bech32.DecodeNoLimit(address)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to decode bech32")
	}

	data, err := bech32.ConvertBits(conv, 5, 8, false)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to convert bits")
	}

	return hrp, data, nil
}

// StakeCredential returns the stake key hash shared by a base address and its reward address.
func StakeCredential(address string) ([]byte, error) {
	_, data, err := decodeBech32(address)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, errors.New("empty address payload")
	}

	switch {
	case len(data) == 1+2*keyHashSize && data[0]&0xf0 == headerBase:
		return data[1+keyHashSize:], nil
	case len(data) == 1+keyHashSize && data[0]&0xf0 == headerReward:
		return data[1:], nil
	default:
		return nil, errors.Errorf("unsupported address header 0x%02x", data[0])
	}
}
