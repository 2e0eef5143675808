package identity

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrNotFound                 = errors.New("profile not found")
	ErrDuplicateIdentity        = errors.New("profile with this email or username already exists")
	ErrWalletAlreadyProvisioned = errors.New("profile already has a wallet")
	ErrStaleSeed                = errors.New("encrypted seed was changed concurrently")
)

// Profile is a verified user. WalletAddress is immutable once set.
type Profile struct {
	ID            string    `boil:"id"`
	Email         string    `boil:"email"`
	Username      string    `boil:"username"`
	FirstName     string    `boil:"first_name"`
	LastName      string    `boil:"last_name"`
	PasswordHash  string    `boil:"password_hash"`
	WalletAddress string    `boil:"wallet_address"`
	RewardAddress string    `boil:"reward_address"`
	EncryptedSeed string    `boil:"encrypted_seed"`
	Network       string    `boil:"network"`
	TotalPoints   int64     `boil:"total_points"`
	CreatedAt     time.Time `boil:"created_at"`
	UpdatedAt     time.Time `boil:"updated_at"`
}

// HasWallet reports whether a wallet was provisioned for the profile.
func (p *Profile) HasWallet() bool {
	return len(p.WalletAddress) > 0
}

// Wallet is the part of a profile written when a wallet is provisioned.
type Wallet struct {
	Address       string
	RewardAddress string
	EncryptedSeed string
	Network       string
}

// SeedRecord is an encrypted seed phrase and its owner.
type SeedRecord struct {
	UserID        string `boil:"id"`
	EncryptedSeed string `boil:"encrypted_seed"`
}

// Repository stores identity profiles
type Repository interface {
	// Create inserts p. ID and timestamps are assigned when empty.
	Create(ctx context.Context, p *Profile) error

	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ProvisionWallet attaches a wallet to a profile that has none.
	ProvisionWallet(ctx context.Context, userID string, w Wallet) error

	// ListEncryptedSeeds returns every stored seed envelope.
	ListEncryptedSeeds(ctx context.Context) ([]*SeedRecord, error)

	// UpdateEncryptedSeed replaces the envelope if it still equals previous.
	UpdateEncryptedSeed(ctx context.Context, userID string, previous string, next string) error
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
