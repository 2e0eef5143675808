package seed

import "github.com/pkg/errors"

var (
	ErrInvalidMnemonic  = errors.New("invalid mnemonic")
	ErrInvalidWordCount = errors.New("mnemonic word count must be 12, 15, 18, 21 or 24")
	ErrNotInitialized   = errors.New("seed manager not initialized")
)

// DefaultWordCount is the length of newly generated user seed phrases.
const DefaultWordCount = 24

// Manager keeps the treasury seed in memory
type Manager interface {
	// Initialize validates the mnemonic and stores its entropy (called at startup)
	Initialize(mnemonic string) error

	// Entropy returns a copy of the stored entropy
	Entropy() ([]byte, error)

	// IsInitialized checks if seed is initialized
	IsInitialized() bool

	// Clear clears the seed from memory
	Clear()
}
