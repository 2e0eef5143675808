package keystore

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// splitEnvelope returns both decoded segments. Segment count errors are
// ErrInvalidEnvelope, decoding errors are ErrDecryptionFailed.
func splitEnvelope(envelope string) ([]byte, []byte, error) {
	parts := strings.Split(envelope, envelopeSeparator)
	if len(parts) != 2 {
		return nil, nil, ErrInvalidEnvelope
	}

	head, err := hex.DecodeString(parts[0])
	if err != nil {
		return nil, nil, ErrDecryptionFailed
	}

	body, err := hex.DecodeString(parts[1])
	if err != nil {
		return nil, nil, ErrDecryptionFailed
	}

	return head, body, nil
}

func envelopeVersion(head []byte) (Version, bool) {
	switch {
	case len(head) == headerSize && head[0] == headerVersionByte:
		return VersionScryptGCM, true
	case len(head) == legacyIVSize:
		return VersionLegacy, true
	default:
		return 0, false
	}
}

func decryptScryptGCM(header []byte, sealed []byte, password string) (string, error) {
	logN := header[1]
	salt := header[2 : 2+saltSize]
	nonce := header[2+saltSize:]

	key, err := deriveScryptKey(password, salt, logN)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	aead, err := newGCM(key)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	plaintext, err := aead.Open(nil, nonce, sealed, header)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}

// decryptLegacy is not authenticated, a wrong password is only detected
// when the output is not valid UTF-8.
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func decryptLegacy(iv []byte, ciphertext []byte, password string) (string, error) {
	key := sha256.Sum256([]byte(password))

	plaintext, err := xorAES256CTR(key[:], iv, ciphertext)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	if !utf8.Valid(plaintext) {
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}
