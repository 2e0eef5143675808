package seed

import (
	"sync"
)

// manager implements seed management with thread-safe access
type manager struct {
	entropy     []byte
	mu          sync.RWMutex
	initialized bool
}

// NewManager creates a new seed Manager
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewManager() Manager {
	return &manager{
		entropy:     nil,
		initialized: false,
	}
}

// Initialize validates the mnemonic and keeps only its entropy.
// The phrase itself is not retained.
func (m *manager) Initialize(mnemonic string) error {
	entropy, err := Entropy(mnemonic)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.entropy != nil {
		wipe(m.entropy)
	}

	m.entropy = entropy
	m.initialized = true

	return nil
}

// Entropy gets the entropy (returns a copy to prevent external modification)
func (m *manager) Entropy() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized || m.entropy == nil {
		return nil, ErrNotInitialized
	}

	entropyCopy := make([]byte, len(m.entropy))
	copy(entropyCopy, m.entropy)
	return entropyCopy, nil
}

// IsInitialized checks if seed is initialized
func (m *manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.initialized
}

// Clear clears the seed from memory
func (m *manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.entropy != nil {
		wipe(m.entropy)
		m.entropy = nil
	}
	m.initialized = false
}
