package address

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	purposeCIP1852 = 1852
	coinTypeADA    = 1815

	roleExternal = 0
	roleStaking  = 2
)

func (s *service) PaymentPath(addressIndex int) string {
	return fmt.Sprintf("m/%d'/%d'/0'/%d/%d", purposeCIP1852, coinTypeADA, roleExternal, addressIndex)
}

func (s *service) StakePath(addressIndex int) string {
	return fmt.Sprintf("m/%d'/%d'/0'/%d/%d", purposeCIP1852, coinTypeADA, roleStaking, addressIndex)
}

// parseDerivationPath parses a path string into indices
// Example: "m/1852'/1815'/0'/0/0" -> [2147485500, 2147485463, 2147483648, 0, 0]
func parseDerivationPath(path string) ([]uint32, error) {
	if path != "m" && !strings.HasPrefix(path, "m/") {
		return nil, errors.Wrapf(ErrInvalidPath, "%q", path)
	}

	segments := strings.Split(strings.TrimPrefix(strings.TrimPrefix(path, "m"), "/"), "/")
	indices := make([]uint32, 0, len(segments))

	for _, part := range segments {
		if part == "" {
			continue
		}

		hardened := strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h")
		if hardened {
			part = part[:len(part)-1]
		}

		index, err := strconv.ParseUint(part, 10, 31)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidPath, "segment %q", part)
		}

		idx := uint32(index)
		if hardened {
			idx += hardenedOffset
		}

		indices = append(indices, idx)
	}

	return indices, nil
}

// deriveKeyFromPath derives a key step by step from the root key
func deriveKeyFromPath(root *extendedKey, path string) (*extendedKey, error) {
	indices, err := parseDerivationPath(path)
	if err != nil {
		return nil, err
	}

	key := root
	for _, index := range indices {
		next, err := key.child(index)
		if key != root {
			key.wipe()
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive child key at index %d", index)
		}
		key = next
	}

	return key, nil
}
