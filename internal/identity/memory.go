package identity

import (
	"context"
	"sync"

	"github.com/dropbox/godropbox/time2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MemoryRepository keeps profiles in process memory.
// It also maintains the cached point totals for the in-memory reward ledger.
type MemoryRepository struct {
	mu         sync.RWMutex
	clock      time2.Clock
	byID       map[string]*Profile
	byEmail    map[string]string
	byUsername map[string]string
	byWallet   map[string]string
}

func NewMemoryRepository(clock time2.Clock) *MemoryRepository {
	return &MemoryRepository{
		clock:      clock,
		byID:       make(map[string]*Profile),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
		byWallet:   make(map[string]string),
	}
}

func (r *MemoryRepository) Create(_ context.Context, p *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := NormalizeEmail(p.Email)
	if _, ok := r.byEmail[email]; ok {
		return ErrDuplicateIdentity
	}
	if _, ok := r.byUsername[p.Username]; ok {
		return ErrDuplicateIdentity
	}
	if p.HasWallet() {
		if _, ok := r.byWallet[p.WalletAddress]; ok {
			return ErrWalletAlreadyProvisioned
		}
	}

	if len(p.ID) == 0 {
		p.ID = uuid.NewString()
	}
	if _, ok := r.byID[p.ID]; ok {
		return ErrDuplicateIdentity
	}

	now := r.clock.Now()
	p.Email = email
	p.CreatedAt = now
	p.UpdatedAt = now

	stored := *p
	r.byID[p.ID] = &stored
	r.byEmail[email] = p.ID
	r.byUsername[p.Username] = p.ID
	if p.HasWallet() {
		r.byWallet[p.WalletAddress] = p.ID
	}

	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	cp := *p
	return &cp, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	r.mu.RLock()
	id, ok := r.byEmail[NormalizeEmail(email)]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *MemoryRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[NormalizeEmail(email)]
	return ok, nil
}

func (r *MemoryRepository) ProvisionWallet(_ context.Context, userID string, w Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[userID]
	if !ok {
		return ErrNotFound
	}
	if p.HasWallet() {
		return ErrWalletAlreadyProvisioned
	}
	if _, taken := r.byWallet[w.Address]; taken {
		return ErrWalletAlreadyProvisioned
	}

	p.WalletAddress = w.Address
	p.RewardAddress = w.RewardAddress
	p.EncryptedSeed = w.EncryptedSeed
	p.Network = w.Network
	p.UpdatedAt = r.clock.Now()
	r.byWallet[w.Address] = userID

	return nil
}

func (r *MemoryRepository) ListEncryptedSeeds(_ context.Context) ([]*SeedRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*SeedRecord, 0, len(r.byID))
	for _, p := range r.byID {
		if len(p.EncryptedSeed) == 0 {
			continue
		}
		res = append(res, &SeedRecord{UserID: p.ID, EncryptedSeed: p.EncryptedSeed})
	}

	return res, nil
}

func (r *MemoryRepository) UpdateEncryptedSeed(_ context.Context, userID string, previous string, next string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[userID]
	if !ok {
		return ErrNotFound
	}
	if p.EncryptedSeed != previous {
		return ErrStaleSeed
	}

	p.EncryptedSeed = next
	p.UpdatedAt = r.clock.Now()

	return nil
}

// AddPoints adjusts the cached point total of a profile.
func (r *MemoryRepository) AddPoints(_ context.Context, userID string, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[userID]
	if !ok {
		return ErrNotFound
	}
	if p.TotalPoints+delta < 0 {
		return errors.Errorf("cached total of user %s would become negative", userID)
	}

	p.TotalPoints += delta
	return nil
}

// TotalPoints returns the cached point total of a profile.
func (r *MemoryRepository) TotalPoints(_ context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[userID]
	if !ok {
		return 0, ErrNotFound
	}

	return p.TotalPoints, nil
}
