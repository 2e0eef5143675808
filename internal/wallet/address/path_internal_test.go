package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDerivationPath(t *testing.T) {
	indices, err := parseDerivationPath("m/1852'/1815'/0'/0/0")
	require.NoError(t, err)
	assert.Equal(t, []uint32{2147485500, 2147485463, 2147483648, 0, 0}, indices)

	indices, err = parseDerivationPath("m/1852h/1815h/0h/2/5")
	require.NoError(t, err)
	assert.Equal(t, []uint32{2147485500, 2147485463, 2147483648, 2, 5}, indices)

	indices, err = parseDerivationPath("m")
	require.NoError(t, err)
	assert.Empty(t, indices)

	for _, p := range []string{"", "1852'/0", "m/abc", "m/-1", "m/2147483648"} {
		_, err := parseDerivationPath(p)
		require.ErrorIs(t, err, ErrInvalidPath, p)
	}
}

func TestAddMul8(t *testing.T) {
	var kL [32]byte
	kL[0] = 0xff

	zL := make([]byte, 28)
	zL[0] = 0x01
	zL[27] = 0xe0

	out := addMul8(kL, zL)
	// 0xff + 8 = 0x107
	assert.Equal(t, byte(0x07), out[0])
	assert.Equal(t, byte(0x01), out[1])
	// 0xe0 << 3 spills 0x07 into byte 28
	assert.Equal(t, byte(0x00), out[27])
	assert.Equal(t, byte(0x07), out[28])
}

func TestAdd256Wraps(t *testing.T) {
	var a [32]byte
	b := make([]byte, 32)
	for i := range a {
		a[i] = 0xff
	}
	b[0] = 0x01

	assert.Equal(t, [32]byte{}, add256(a, b))
}

func TestMasterKeyClamped(t *testing.T) {
	k := newMasterKey(make([]byte, 16))

	assert.Equal(t, byte(0), k.kL[0]&0x07)
	assert.Equal(t, byte(0x40), k.kL[31]&0xe0)
}
