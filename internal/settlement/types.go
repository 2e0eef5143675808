package settlement

import (
	"context"
	"time"

	"github.com/JojoFlex1/done/internal/rewards"
	"github.com/aarondl/null/v8"
	"github.com/pkg/errors"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusInFlight Status = "in_flight"
	StatusSettled  Status = "settled"
	StatusFailed   Status = "failed"
)

var (
	ErrIntentNotFound = errors.New("settlement intent not found")
	// ErrLeaseLost is returned when an intent is reported on after its claim expired.
	ErrLeaseLost = errors.New("settlement intent lease lost")
	ErrNoWallet       = errors.New("user has no wallet address")
)

// Intent is the durable record of a submission that still needs settling.
type Intent struct {
	ID            string      `boil:"id"`
	SubmissionID  string      `boil:"submission_id"`
	UserID        string      `boil:"user_id"`
	Status        Status      `boil:"status"`
	Attempts      int         `boil:"attempts"`
	NextAttemptAt time.Time   `boil:"next_attempt_at"`
	LastError     null.String `boil:"last_error"`
	SettlementRef null.String `boil:"settlement_ref"`
	CreatedAt     time.Time   `boil:"created_at"`
	UpdatedAt     time.Time   `boil:"updated_at"`
}

// Oracle submits value transfers to the settlement network. Calls sharing an idempotency
// key describe the same transfer and must not move value twice.
type Oracle interface {
	SubmitSettlement(ctx context.Context, idempotencyKey string, toAddress string, amountLovelace int64) (string, error)
}

// References keeps the oracle reference of a submission until it is attached to the ledger.
type References interface {
	SubmittedReference(ctx context.Context, submissionID string) (string, bool, error)
	RecordSubmitted(ctx context.Context, submissionID string, ref string, now time.Time) error
}

// OutboxStore holds settlement intents.
type OutboxStore interface {
	rewards.Outbox
	References

	// ClaimDue leases up to limit due intents. A claimed intent becomes due again after lease
	// unless it is marked settled, retried or failed before.
	ClaimDue(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]*Intent, error)

	// The Mark methods only apply while the claim is still held, that is the intent is in
	// flight with the lease returned by ClaimDue. Otherwise they return ErrLeaseLost.
	MarkSettled(ctx context.Context, claim *Intent, ref string, now time.Time) error
	MarkRetry(ctx context.Context, claim *Intent, attempts int, next time.Time, lastErr string) error
	MarkFailed(ctx context.Context, claim *Intent, attempts int, lastErr string, now time.Time) error
	// Requeue moves a failed intent back to pending with a fresh attempt budget.
	Requeue(ctx context.Context, id string, now time.Time) error
	ListFailed(ctx context.Context) ([]*Intent, error)
}
