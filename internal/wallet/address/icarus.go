package address

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"

	"filippo.io/edwards25519"
	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
)

const (
	hardenedOffset uint32 = 0x80000000

	icarusIterations = 4096
	xprvSize         = 96
)

// extendedKey is a BIP32-Ed25519 extended private key: kL || kR || chain code.
type extendedKey struct {
	kL        [32]byte
	kR        [32]byte
	chainCode [32]byte
}

// newMasterKey derives the Icarus root key from BIP39 entropy with an empty passphrase.
func newMasterKey(entropy []byte) *extendedKey {
	data := pbkdf2.Key(nil, entropy, icarusIterations, xprvSize, sha512.New)
	defer wipe(data)

	data[0] &= 0xf8
	data[31] &= 0x1f
	data[31] |= 0x40

	k := &extendedKey{}
	copy(k.kL[:], data[0:32])
	copy(k.kR[:], data[32:64])
	copy(k.chainCode[:], data[64:96])

	return k
}

// publicKey returns the Ed25519 point kL*B.
func (k *extendedKey) publicKey() ([]byte, error) {
	var wide [64]byte
	copy(wide[:32], k.kL[:])

	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		return nil, errors.Wrap(err, "failed to load scalar")
	}

	return (&edwards25519.Point{}).ScalarBaseMult(s).Bytes(), nil
}

// child derives the child key at index (V2 derivation scheme).
func (k *extendedKey) child(index uint32) (*extendedKey, error) {
	var idx [4]byte
	binary.LittleEndian.PutUint32(idx[:], index)

	var zData, cData []byte
	if index >= hardenedOffset {
		zData = make([]byte, 0, 1+64+4)
		zData = append(zData, 0x00)
		zData = append(zData, k.kL[:]...)
		zData = append(zData, k.kR[:]...)

		cData = make([]byte, 0, 1+64+4)
		cData = append(cData, 0x01)
		cData = append(cData, k.kL[:]...)
		cData = append(cData, k.kR[:]...)
	} else {
		pub, err := k.publicKey()
		if err != nil {
			return nil, err
		}

		zData = make([]byte, 0, 1+32+4)
		zData = append(zData, 0x02)
		zData = append(zData, pub...)

		cData = make([]byte, 0, 1+32+4)
		cData = append(cData, 0x03)
		cData = append(cData, pub...)
	}
	zData = append(zData, idx[:]...)
	cData = append(cData, idx[:]...)
	defer wipe(zData)
	defer wipe(cData)

	z := hmacSHA512(k.chainCode[:], zData)
	defer wipe(z)
	c := hmacSHA512(k.chainCode[:], cData)

	child := &extendedKey{}
	child.kL = addMul8(k.kL, z[0:28])
	child.kR = add256(k.kR, z[32:64])
	copy(child.chainCode[:], c[32:64])

	return child, nil
}

func (k *extendedKey) wipe() {
	wipe(k.kL[:])
	wipe(k.kR[:])
	wipe(k.chainCode[:])
}

func hmacSHA512(key []byte, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// addMul8 returns kL + 8*zL over little-endian integers, zL being 28 bytes.
func addMul8(kL [32]byte, zL []byte) [32]byte {
	var out [32]byte
	var carry uint16

	for i := 0; i < 32; i++ {
		var z uint16
		if i < len(zL) {
			z = uint16(zL[i]) << 3
		}
		if i > 0 && i-1 < len(zL) {
			z |= uint16(zL[i-1]) >> 5
		}

		r := uint16(kL[i]) + (z & 0xff) + carry
		out[i] = byte(r)
		carry = r >> 8
	}

	return out
}

// add256 returns a + b mod 2^256 over little-endian integers.
func add256(a [32]byte, b []byte) [32]byte {
	var out [32]byte
	var carry uint16

	for i := 0; i < 32; i++ {
		r := uint16(a[i]) + uint16(b[i]) + carry
		out[i] = byte(r)
		carry = r >> 8
	}

	return out
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
