package signup

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

const (
	otpMin = 100000
	otpMax = 999999

	generatedPasswordBytes = 32
)

// newOTP returns a uniformly random six digit code.
func newOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", errors.Wrap(err, "failed to generate otp")
	}

	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}

func otpMatches(expected string, given string) bool {
	given = strings.TrimSpace(given)
	if len(expected) == 0 {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(expected), []byte(given)) == 1
}

// newPassword is the credential used when the user did not choose one.
func newPassword() (string, error) {
	b := make([]byte, generatedPasswordBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "failed to generate password")
	}

	return hex.EncodeToString(b), nil
}
