package seed_test

import (
	"strings"
	"testing"

	"github.com/JojoFlex1/done/internal/wallet/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestNewMnemonicWordCounts(t *testing.T) {
	for _, words := range []int{12, 15, 18, 21, 24} {
		m, err := seed.NewMnemonic(words)
		require.NoError(t, err)
		assert.Len(t, strings.Fields(m), words)
		require.NoError(t, seed.ValidateMnemonic(m))
	}

	_, err := seed.NewMnemonic(13)
	require.ErrorIs(t, err, seed.ErrInvalidWordCount)
}

func TestNewMnemonicIsRandom(t *testing.T) {
	a, err := seed.NewMnemonic(seed.DefaultWordCount)
	require.NoError(t, err)
	b, err := seed.NewMnemonic(seed.DefaultWordCount)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestValidateMnemonic(t *testing.T) {
	require.NoError(t, seed.ValidateMnemonic(validMnemonic))
	require.NoError(t, seed.ValidateMnemonic("  ABANDON abandon abandon abandon abandon abandon\tabandon abandon abandon abandon abandon about "))

	require.ErrorIs(t, seed.ValidateMnemonic("abandon abandon abandon"), seed.ErrInvalidWordCount)
	// bad checksum
	require.ErrorIs(t, seed.ValidateMnemonic(strings.Repeat("abandon ", 11)+"abandon"), seed.ErrInvalidMnemonic)
	require.ErrorIs(t, seed.ValidateMnemonic(strings.Repeat("notaword ", 12)), seed.ErrInvalidMnemonic)
}

func TestEntropy(t *testing.T) {
	entropy, err := seed.Entropy(validMnemonic)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 16), entropy)

	_, err = seed.Entropy("abandon")
	require.Error(t, err)
}

func TestManager(t *testing.T) {
	m := seed.NewManager()
	assert.False(t, m.IsInitialized())

	_, err := m.Entropy()
	require.ErrorIs(t, err, seed.ErrNotInitialized)

	require.Error(t, m.Initialize("not a mnemonic"))
	assert.False(t, m.IsInitialized())

	require.NoError(t, m.Initialize(validMnemonic))
	assert.True(t, m.IsInitialized())

	e1, err := m.Entropy()
	require.NoError(t, err)
	e1[0] = 0xff

	e2, err := m.Entropy()
	require.NoError(t, err)
	assert.Equal(t, byte(0), e2[0], "Entropy must return a copy")

	m.Clear()
	assert.False(t, m.IsInitialized())
	_, err = m.Entropy()
	require.ErrorIs(t, err, seed.ErrNotInitialized)
}
