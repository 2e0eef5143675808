package signup

import (
	"context"
	"time"

	"github.com/JojoFlex1/done/internal/identity"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

var (
	ErrNoPendingSignup = errors.New("no pending signup for this email")
	ErrExpired         = errors.New("otp expired")
	ErrInvalidCode     = errors.New("invalid otp")
)

// PendingSignup is an unverified signup attempt, keyed by email.
type PendingSignup struct {
	Email         string    `boil:"email"`
	Username      string    `boil:"username"`
	FirstName     string    `boil:"first_name"`
	LastName      string    `boil:"last_name"`
	WalletAddress string    `boil:"wallet_address"`
	RewardAddress string    `boil:"reward_address"`
	EncryptedSeed string    `boil:"encrypted_seed"`
	Network       string    `boil:"network"`
	PasswordHash  string    `boil:"password_hash"`
	OTPCode       string    `boil:"otp_code"`
	OTPExpiresAt  time.Time `boil:"otp_expires_at"`
	CreatedAt     time.Time `boil:"created_at"`
}

// Expired reports whether the OTP is no longer accepted at now.
func (p *PendingSignup) Expired(now time.Time) bool {
	return now.After(p.OTPExpiresAt)
}

// PendingStore keeps pending signups until they are verified or expire.
type PendingStore interface {
	// Get returns ErrNoPendingSignup when no record exists.
	Get(ctx context.Context, email string) (*PendingSignup, error)

	// Put inserts or replaces the record for p.Email.
	Put(ctx context.Context, p *PendingSignup) error

	// Delete removes the record and reports whether it existed.
	// Only one of several concurrent callers observes true.
	Delete(ctx context.Context, email string) (bool, error)

	// DeleteExpired removes every record whose OTP expired before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Notifier delivers OTP codes.
type Notifier interface {
	SendOTP(ctx context.Context, lang language.Tag, to string, firstName string, otp string, ttl time.Duration) error
}

// TokenIssuer issues the bearer token returned after verification.
type TokenIssuer interface {
	IssueToken(p *identity.Profile) (string, error)
}

// BeginRequest starts a signup. Password is optional, a random credential is generated when empty.
type BeginRequest struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
	Language  language.Tag
}

type BeginResult struct {
	WalletAddress string
	ExpiresAt     time.Time
}

// VerifyResult is returned once per signup. SeedPhrase is never available again.
type VerifyResult struct {
	Profile    *identity.Profile
	SeedPhrase string
	Token      string
}

// Service drives the signup state machine NONE -> PENDING -> VERIFIED | EXPIRED
type Service interface {
	BeginSignup(ctx context.Context, req BeginRequest) (*BeginResult, error)
	Verify(ctx context.Context, email string, otp string) (*VerifyResult, error)
	Resend(ctx context.Context, email string, lang language.Tag) (time.Time, error)

	// SweepExpired deletes expired pending signups.
	SweepExpired(ctx context.Context) (int64, error)

	// StartSweeper runs SweepExpired every interval until ctx is done.
	StartSweeper(ctx context.Context, interval time.Duration)
}
