package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

// encryptScryptGCM writes a v1 envelope: header = 0x01 || logN || salt || nonce.
func encryptScryptGCM(plaintext []byte, password string, logN uint8) (string, error) {
	header := make([]byte, headerSize)
	header[0] = headerVersionByte
	header[1] = logN

	if _, err := rand.Read(header[2:]); err != nil {
		return "", errors.Wrap(err, "failed to generate salt and nonce")
	}

	salt := header[2 : 2+saltSize]
	nonce := header[2+saltSize:]

	key, err := deriveScryptKey(password, salt, logN)
	if err != nil {
		return "", err
	}

	aead, err := newGCM(key)
	if err != nil {
		return "", err
	}

	// header is bound as additional data so logN and salt cannot be swapped
	sealed := aead.Seal(nil, nonce, plaintext, header)

	return hex.EncodeToString(header) + envelopeSeparator + hex.EncodeToString(sealed), nil
}

// encryptLegacy writes a v0 envelope, kept for migration windows only.
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func encryptLegacy(plaintext []byte, password string) (string, error) {
	iv := make([]byte, legacyIVSize)
	if _, err := rand.Read(iv); err != nil {
		return "", errors.Wrap(err, "failed to generate IV")
	}

	key := sha256.Sum256([]byte(password))

	ciphertext, err := xorAES256CTR(key[:], iv, plaintext)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(iv) + envelopeSeparator + hex.EncodeToString(ciphertext), nil
}

func deriveScryptKey(password string, salt []byte, logN uint8) ([]byte, error) {
	if logN < minScryptLogN || logN > maxScryptLogN {
		return nil, errors.Errorf("scrypt logN %d out of range", logN)
	}

	key, err := scrypt.Key([]byte(password), salt, 1<<logN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key")
	}

	return key, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}

	aead, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create GCM")
	}

	return aead, nil
}

// xorAES256CTR encrypts or decrypts data using AES-256-CTR mode
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func xorAES256CTR(key []byte, iv []byte, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}

	out := make([]byte, len(data))
	stream := cipher.NewCTR(block, iv)
	stream.XORKeyStream(out, data)

	return out, nil
}
