package seed

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

// entropyBits maps BIP39 word counts to entropy sizes.
var entropyBits = map[int]int{
	12: 128,
	15: 160,
	18: 192,
	21: 224,
	24: 256,
}

// NewMnemonic returns a fresh random BIP39 mnemonic with the given number of words.
func NewMnemonic(words int) (string, error) {
	bits, ok := entropyBits[words]
	if !ok {
		return "", ErrInvalidWordCount
	}

	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}
	defer wipe(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate mnemonic")
	}

	return mnemonic, nil
}

// Normalize lowercases the phrase and collapses whitespace.
func Normalize(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
}

// ValidateMnemonic checks word count and checksum.
func ValidateMnemonic(mnemonic string) error {
	normalized := Normalize(mnemonic)

	if _, ok := entropyBits[len(strings.Fields(normalized))]; !ok {
		return ErrInvalidWordCount
	}

	if !bip39.IsMnemonicValid(normalized) {
		return ErrInvalidMnemonic
	}

	return nil
}

// Entropy returns the raw entropy encoded by a valid mnemonic.
func Entropy(mnemonic string) ([]byte, error) {
	if err := ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}

	entropy, err := bip39.EntropyFromMnemonic(Normalize(mnemonic))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidMnemonic, err.Error())
	}

	return entropy, nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
