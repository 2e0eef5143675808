package keystore

import (
	"context"

	"github.com/JojoFlex1/done/internal/util"
	"github.com/pkg/errors"
)

type service struct {
	params Params
}

// NewService creates a new keystore Service writing envelopes according to params.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(params Params) (Service, error) {
	switch params.Version {
	case VersionLegacy:
	case VersionScryptGCM:
		if params.ScryptLogN < minScryptLogN || params.ScryptLogN > maxScryptLogN {
			return nil, errors.Errorf("scrypt logN must be within [%d, %d], got %d", minScryptLogN, maxScryptLogN, params.ScryptLogN)
		}
	default:
		return nil, errors.Errorf("unsupported envelope version %d", params.Version)
	}

	return &service{
		params: params,
	}, nil
}

func (s *service) Encrypt(ctx context.Context, plaintext string, password string) (string, error) {
	if len(password) == 0 {
		return "", ErrEmptyPassword
	}

	var (
		envelope string
		err      error
	)

	switch s.params.Version {
	case VersionLegacy:
		envelope, err = encryptLegacy([]byte(plaintext), password)
	default:
		envelope, err = encryptScryptGCM([]byte(plaintext), password, s.params.ScryptLogN)
	}

	if err != nil {
		util.LogFromContext(ctx).Error().Err(err).Int("version", int(s.params.Version)).Msg("Failed to encrypt secret")
		return "", errors.Wrap(err, "failed to encrypt secret")
	}

	return envelope, nil
}

func (s *service) Decrypt(ctx context.Context, envelope string, password string) (string, error) {
	head, body, err := splitEnvelope(envelope)
	if err != nil {
		return "", err
	}

	version, ok := envelopeVersion(head)
	if !ok {
		util.LogFromContext(ctx).Debug().Int("header_len", len(head)).Msg("Unknown envelope header")
		return "", ErrDecryptionFailed
	}

	if version == VersionLegacy {
		return decryptLegacy(head, body, password)
	}

	if logN := head[1]; logN > s.maxDecryptLogN() {
		util.LogFromContext(ctx).Warn().Uint8("log_n", logN).Uint8("max_log_n", s.maxDecryptLogN()).Msg("Rejecting envelope with excessive scrypt cost")
		return "", ErrDecryptionFailed
	}

	return decryptScryptGCM(head, body, password)
}

func (s *service) maxDecryptLogN() uint8 {
	return max(s.params.ScryptLogN, decryptLogNFloor)
}

func (s *service) NeedsUpgrade(envelope string) bool {
	head, _, err := splitEnvelope(envelope)
	if err != nil {
		return false
	}

	version, ok := envelopeVersion(head)
	if !ok {
		return false
	}

	if version != s.params.Version {
		return version < s.params.Version
	}

	return version == VersionScryptGCM && head[1] < s.params.ScryptLogN
}
