package settlement

import (
	"context"
	"database/sql"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/dropbox/godropbox/time2"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
)

const intentColumns = `id, submission_id, user_id, status, attempts, next_attempt_at, last_error, settlement_ref, created_at, updated_at`

// PostgresOutbox stores intents in settlement_intents. Claims use FOR UPDATE SKIP LOCKED
// so several workers can drain the table side by side.
type PostgresOutbox struct {
	db    *sql.DB
	clock time2.Clock
}

func NewPostgresOutbox(db *sql.DB, clock time2.Clock) *PostgresOutbox {
	return &PostgresOutbox{db: db, clock: clock}
}

// Enqueue runs on exec so the intent commits together with the ledger write.
func (o *PostgresOutbox) Enqueue(ctx context.Context, exec boil.ContextExecutor, submissionID string, userID string) error {
	if exec == nil {
		exec = o.db
	}

	now := o.clock.Now()
	_, err := exec.ExecContext(ctx, `
		INSERT INTO settlement_intents (id, submission_id, user_id, status, attempts, next_attempt_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, $5, $5, $5)`,
		ulid.Make().String(), submissionID, userID, string(StatusPending), now)
	if err != nil {
		return errors.Wrap(err, "failed to enqueue settlement intent")
	}

	return nil
}

func (o *PostgresOutbox) ClaimDue(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]*Intent, error) {
	var res []*Intent
	err := queries.Raw(`
		UPDATE settlement_intents SET status = 'in_flight', next_attempt_at = $2, updated_at = $1
		WHERE id IN (
			SELECT id FROM settlement_intents
			WHERE status IN ('pending', 'in_flight') AND next_attempt_at <= $1
			ORDER BY next_attempt_at ASC, id ASC
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING `+intentColumns,
		now, now.Add(lease), limit).Bind(ctx, o.db, &res)
	if err != nil {
		return nil, errors.Wrap(err, "failed to claim settlement intents")
	}

	return res, nil
}

func (o *PostgresOutbox) MarkSettled(ctx context.Context, claim *Intent, ref string, now time.Time) error {
	return o.exec(ctx, ErrLeaseLost, `
		UPDATE settlement_intents SET status = 'settled', settlement_ref = $3, last_error = NULL, updated_at = $4
		WHERE id = $1 AND status = 'in_flight' AND next_attempt_at = $2`, claim.ID, claim.NextAttemptAt, ref, now)
}

func (o *PostgresOutbox) MarkRetry(ctx context.Context, claim *Intent, attempts int, next time.Time, lastErr string) error {
	return o.exec(ctx, ErrLeaseLost, `
		UPDATE settlement_intents SET status = 'pending', attempts = $3, next_attempt_at = $4, last_error = $5, updated_at = $6
		WHERE id = $1 AND status = 'in_flight' AND next_attempt_at = $2`, claim.ID, claim.NextAttemptAt, attempts, next, lastErr, o.clock.Now())
}

func (o *PostgresOutbox) MarkFailed(ctx context.Context, claim *Intent, attempts int, lastErr string, now time.Time) error {
	return o.exec(ctx, ErrLeaseLost, `
		UPDATE settlement_intents SET status = 'failed', attempts = $3, last_error = $4, updated_at = $5
		WHERE id = $1 AND status = 'in_flight' AND next_attempt_at = $2`, claim.ID, claim.NextAttemptAt, attempts, lastErr, now)
}

func (o *PostgresOutbox) SubmittedReference(ctx context.Context, submissionID string) (string, bool, error) {
	var ref null.String
	err := o.db.QueryRowContext(ctx, `SELECT settlement_ref FROM settlement_intents WHERE submission_id = $1`, submissionID).Scan(&ref)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "failed to load settlement reference")
	}

	return ref.String, ref.Valid, nil
}

// RecordSubmitted keeps an already recorded reference.
func (o *PostgresOutbox) RecordSubmitted(ctx context.Context, submissionID string, ref string, now time.Time) error {
	return o.exec(ctx, ErrIntentNotFound, `
		UPDATE settlement_intents SET settlement_ref = $2, updated_at = $3
		WHERE submission_id = $1 AND (settlement_ref IS NULL OR settlement_ref = $2)`, submissionID, ref, now)
}

func (o *PostgresOutbox) Requeue(ctx context.Context, id string, now time.Time) error {
	return o.exec(ctx, ErrIntentNotFound, `
		UPDATE settlement_intents SET status = 'pending', attempts = 0, next_attempt_at = $2, last_error = NULL, updated_at = $2
		WHERE id = $1 AND status = 'failed'`, id, now)
}

func (o *PostgresOutbox) ListFailed(ctx context.Context) ([]*Intent, error) {
	var res []*Intent
	err := queries.Raw(`SELECT `+intentColumns+` FROM settlement_intents WHERE status = 'failed' ORDER BY id ASC`).
		Bind(ctx, o.db, &res)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list failed settlement intents")
	}

	return res, nil
}

// exec returns notFound when no row was updated.
func (o *PostgresOutbox) exec(ctx context.Context, notFound error, query string, args ...any) error {
	res, err := o.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "failed to update settlement intent")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return notFound
	}

	return nil
}
