package rewards

import (
	"context"
	"time"

	"github.com/JojoFlex1/done/internal/bins"
	"github.com/JojoFlex1/done/internal/rewards/catalog"
	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/pkg/errors"
)

type Kind string

const (
	KindEarned   Kind = "earned"
	KindRedeemed Kind = "redeemed"
)

const (
	StatusConfirmed = "confirmed"
	StatusPending   = "pending"
)

var (
	ErrUnknownWasteType   = catalog.ErrUnknownWasteType
	ErrBinNotFound        = bins.ErrBinNotFound
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrNegativeBalance signals a ledger integrity problem, never a client error.
	ErrNegativeBalance = errors.New("ledger balance is negative or disagrees with cached total")
)

// Submission is a recorded waste drop-off.
type Submission struct {
	ID            string       `boil:"id"`
	UserID        string       `boil:"user_id"`
	BinID         string       `boil:"bin_id"`
	WasteType     string       `boil:"waste_type"`
	PointsEarned  int64        `boil:"points_earned"`
	PhotoRef      null.String  `boil:"photo_ref"`
	WeightKg      null.Float64 `boil:"weight_kg"`
	Note          null.String  `boil:"note"`
	SettlementRef null.String  `boil:"settlement_ref"`
	CreatedAt     time.Time    `boil:"created_at"`

	BinName    string `boil:"bin_name"`
	BinAddress string `boil:"bin_address"`
}

func (s *Submission) Status() string {
	return status(s.SettlementRef)
}

// Transaction is an append-only ledger entry.
type Transaction struct {
	ID            string      `boil:"id"`
	UserID        string      `boil:"user_id"`
	SubmissionID  null.String `boil:"submission_id"`
	Points        int64       `boil:"points"`
	Kind          Kind        `boil:"kind"`
	Description   string      `boil:"description"`
	SettlementRef null.String `boil:"settlement_ref"`
	CreatedAt     time.Time   `boil:"created_at"`

	WasteType null.String `boil:"waste_type"`
	BinName   null.String `boil:"bin_name"`
}

func (t *Transaction) Status() string {
	return status(t.SettlementRef)
}

func status(ref null.String) string {
	if ref.Valid && len(ref.String) > 0 {
		return StatusConfirmed
	}

	return StatusPending
}

// SubmissionRequest is a drop-off as reported by the user.
type SubmissionRequest struct {
	UserID    string
	QRCode    string
	WasteType string
	WeightKg  *float64
	Note      string
	PhotoRef  string
}

type RecordResult struct {
	Submission  *Submission
	Transaction *Transaction
	Bin         *bins.Bin
	Entry       catalog.Entry
}

// Totals are derived from the transactions of a user.
type Totals struct {
	PointsEarned          int64
	PointsRedeemed        int64
	PointsAvailable       int64
	ConfirmedTransactions int64
	PendingConfirmation   int64
	TotalSubmissions      int64
	TotalTransactions     int64
	FirstRewardAt         *time.Time
	LastRewardAt          *time.Time
}

type Stats struct {
	TotalSubmissions int64
	TotalPoints      int64
}

// Outbox receives a settlement intent for every recorded submission.
// exec is the transaction of the write, nil for in-memory repositories.
type Outbox interface {
	Enqueue(ctx context.Context, exec boil.ContextExecutor, submissionID string, userID string) error
}

// Repository persists submissions and transactions.
type Repository interface {
	// Record stores the submission, its earned transaction, the settlement intent and
	// the cached profile total as one unit.
	Record(ctx context.Context, sub *Submission, tx *Transaction) error

	GetSubmission(ctx context.Context, id string) (*Submission, error)
	// ListSubmissions returns the submissions of a user, newest first.
	ListSubmissions(ctx context.Context, userID string) ([]*Submission, error)
	// ListTransactions returns the transactions of a user, newest first.
	ListTransactions(ctx context.Context, userID string) ([]*Transaction, error)
	CachedTotal(ctx context.Context, userID string) (int64, error)
	// Balance returns the transactions of a user, newest first, together with the cached
	// total, both read from the same state of the ledger.
	Balance(ctx context.Context, userID string) ([]*Transaction, int64, error)

	// AttachSettlement sets ref on the submission and its transaction unless a reference
	// is already attached. The reference stored afterwards is returned.
	AttachSettlement(ctx context.Context, submissionID string, ref string) (string, error)
}

type Service interface {
	// CheckSubmission reports ErrUnknownWasteType or ErrBinNotFound for a request that
	// RecordSubmission would reject, without recording anything.
	CheckSubmission(ctx context.Context, req SubmissionRequest) error
	RecordSubmission(ctx context.Context, req SubmissionRequest) (*RecordResult, error)
	GetHistory(ctx context.Context, userID string) ([]*Transaction, error)
	GetTotals(ctx context.Context, userID string) (*Totals, error)
	ListSubmissions(ctx context.Context, userID string) ([]*Submission, error)
	Stats(ctx context.Context, userID string) (*Stats, error)
	GetSubmission(ctx context.Context, id string) (*Submission, error)
	AttachSettlement(ctx context.Context, submissionID string, ref string) (string, error)
}

// Description is the ledger text of an earned transaction.
func Description(wasteType string, binName string) string {
	return "Recycled " + wasteType + " at " + binName
}
