package keystore

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidEnvelope is returned when the envelope is not exactly two colon separated segments.
	ErrInvalidEnvelope = errors.New("invalid envelope")
	// ErrDecryptionFailed covers every other decrypt failure, including a wrong password.
	ErrDecryptionFailed = errors.New("decryption failed")
	// ErrEmptyPassword is returned by Encrypt when no password is given.
	ErrEmptyPassword = errors.New("password must not be empty")
)

// Version identifies the envelope scheme.
type Version int

const (
	// VersionLegacy is hex(iv):hex(ct) with key = sha256(password) and AES-256-CTR.
	VersionLegacy Version = 0
	// VersionScryptGCM is hex(header):hex(sealed) with key = scrypt(password, salt) and AES-256-GCM.
	VersionScryptGCM Version = 1
)

const (
	envelopeSeparator = ":"

	legacyIVSize = 16

	headerVersionByte = 0x01
	saltSize          = 16
	nonceSize         = 12
	headerSize        = 2 + saltSize + nonceSize

	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32

	minScryptLogN = 1
	maxScryptLogN = 20

	// Decrypt accepts envelopes up to this cost even when Encrypt is configured lower.
	decryptLogNFloor = 15
)

// Service encrypts wallet seed phrases at rest.
// Envelopes always have the shape hex(A):hex(B).
type Service interface {
	// Encrypt seals plaintext with a key derived from password.
	Encrypt(ctx context.Context, plaintext string, password string) (string, error)

	// Decrypt opens an envelope of any supported version. Envelopes whose scrypt cost
	// exceeds the configured one, or 2^15 if that is higher, are rejected unopened.
	Decrypt(ctx context.Context, envelope string, password string) (string, error)

	// NeedsUpgrade reports whether envelope was written with an older scheme than the one configured for Encrypt.
	NeedsUpgrade(envelope string) bool
}

// Params configures the envelope written by Encrypt.
type Params struct {
	Version Version
	// ScryptLogN is log2 of the scrypt cost parameter N.
	ScryptLogN uint8
}

// DefaultParams returns the parameters used for newly written envelopes.
func DefaultParams() Params {
	const defaultLogN = 15

	return Params{
		Version:    VersionScryptGCM,
		ScryptLogN: defaultLogN,
	}
}
