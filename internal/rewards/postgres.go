package rewards

import (
	"context"
	"database/sql"

	"github.com/JojoFlex1/done/internal/identity"
	"github.com/JojoFlex1/done/internal/util/db"
	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/pkg/errors"
)

const submissionSelect = `SELECT s.id, s.user_id, s.bin_id, s.waste_type, s.points_earned, s.photo_ref, s.weight_kg,
		s.note, s.settlement_ref, s.created_at, b.name AS bin_name, b.address AS bin_address
	FROM waste_submissions s
	JOIN bins b ON b.id = s.bin_id`

// PostgresRepository stores the ledger in waste_submissions and point_transactions.
type PostgresRepository struct {
	db     *sql.DB
	outbox Outbox
}

// NewPostgresRepository creates a PostgresRepository. outbox may be nil.
func NewPostgresRepository(db *sql.DB, outbox Outbox) *PostgresRepository {
	return &PostgresRepository{db: db, outbox: outbox}
}

func (r *PostgresRepository) Record(ctx context.Context, sub *Submission, tx *Transaction) error {
	return db.WithTransaction(ctx, r.db, func(exec boil.ContextExecutor) error {
		// serializes ledger writes of the user
		var total int64
		err := exec.QueryRowContext(ctx, `SELECT total_points FROM profiles WHERE id = $1 FOR UPDATE`, sub.UserID).Scan(&total)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return identity.ErrNotFound
			}
			return errors.Wrap(err, "failed to lock profile")
		}

		if _, err := exec.ExecContext(ctx, `
			INSERT INTO waste_submissions (id, user_id, bin_id, waste_type, points_earned, photo_ref, weight_kg, note, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			sub.ID, sub.UserID, sub.BinID, sub.WasteType, sub.PointsEarned, sub.PhotoRef, sub.WeightKg, sub.Note, sub.CreatedAt,
		); err != nil {
			return errors.Wrap(err, "failed to insert waste submission")
		}

		if _, err := exec.ExecContext(ctx, `
			INSERT INTO point_transactions (id, user_id, submission_id, points, kind, description, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			tx.ID, tx.UserID, tx.SubmissionID, tx.Points, string(tx.Kind), tx.Description, tx.CreatedAt,
		); err != nil {
			return errors.Wrap(err, "failed to insert point transaction")
		}

		if r.outbox != nil {
			if err := r.outbox.Enqueue(ctx, exec, sub.ID, sub.UserID); err != nil {
				return err
			}
		}

		if _, err := exec.ExecContext(ctx,
			`UPDATE profiles SET total_points = total_points + $2, updated_at = now() WHERE id = $1`,
			sub.UserID, tx.Points,
		); err != nil {
			return errors.Wrap(err, "failed to update cached total")
		}

		return nil
	})
}

func (r *PostgresRepository) GetSubmission(ctx context.Context, id string) (*Submission, error) {
	var s Submission
	if err := queries.Raw(submissionSelect+` WHERE s.id = $1`, id).Bind(ctx, r.db, &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, errors.Wrap(err, "failed to load submission")
	}

	return &s, nil
}

func (r *PostgresRepository) ListSubmissions(ctx context.Context, userID string) ([]*Submission, error) {
	var res []*Submission
	err := queries.Raw(submissionSelect+` WHERE s.user_id = $1 ORDER BY s.created_at DESC, s.id DESC`, userID).
		Bind(ctx, r.db, &res)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list submissions")
	}

	return res, nil
}

func (r *PostgresRepository) ListTransactions(ctx context.Context, userID string) ([]*Transaction, error) {
	return listTransactions(ctx, r.db, userID)
}

func (r *PostgresRepository) CachedTotal(ctx context.Context, userID string) (int64, error) {
	return cachedTotal(ctx, r.db, userID)
}

// Balance reads both inside one repeatable read transaction, so a submission committing
// in between is either fully visible or not at all.
func (r *PostgresRepository) Balance(ctx context.Context, userID string) ([]*Transaction, int64, error) {
	var (
		txs   []*Transaction
		total int64
	)

	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err := db.WithConfiguredTransaction(ctx, r.db, opts, func(exec boil.ContextExecutor) error {
		var err error

		total, err = cachedTotal(ctx, exec, userID)
		if err != nil {
			return err
		}

		txs, err = listTransactions(ctx, exec, userID)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

func listTransactions(ctx context.Context, exec boil.ContextExecutor, userID string) ([]*Transaction, error) {
	var res []*Transaction
	err := queries.Raw(`
		SELECT t.id, t.user_id, t.submission_id, t.points, t.kind, t.description, t.settlement_ref, t.created_at,
			s.waste_type, b.name AS bin_name
		FROM point_transactions t
		LEFT JOIN waste_submissions s ON s.id = t.submission_id
		LEFT JOIN bins b ON b.id = s.bin_id
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC, t.id DESC`, userID).Bind(ctx, exec, &res)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list point transactions")
	}

	return res, nil
}

func cachedTotal(ctx context.Context, exec boil.ContextExecutor, userID string) (int64, error) {
	var total int64
	if err := exec.QueryRowContext(ctx, `SELECT total_points FROM profiles WHERE id = $1`, userID).Scan(&total); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, identity.ErrNotFound
		}
		return 0, errors.Wrap(err, "failed to load cached total")
	}

	return total, nil
}

func (r *PostgresRepository) AttachSettlement(ctx context.Context, submissionID string, ref string) (string, error) {
	stored := ref

	err := db.WithTransaction(ctx, r.db, func(exec boil.ContextExecutor) error {
		var current null.String
		err := exec.QueryRowContext(ctx,
			`SELECT settlement_ref FROM waste_submissions WHERE id = $1 FOR UPDATE`, submissionID,
		).Scan(&current)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrSubmissionNotFound
			}
			return errors.Wrap(err, "failed to lock submission")
		}

		if current.Valid {
			stored = current.String
			return nil
		}

		if _, err := exec.ExecContext(ctx,
			`UPDATE waste_submissions SET settlement_ref = $2 WHERE id = $1 AND settlement_ref IS NULL`,
			submissionID, ref,
		); err != nil {
			return errors.Wrap(err, "failed to attach settlement to submission")
		}

		if _, err := exec.ExecContext(ctx,
			`UPDATE point_transactions SET settlement_ref = $2 WHERE submission_id = $1 AND settlement_ref IS NULL`,
			submissionID, ref,
		); err != nil {
			return errors.Wrap(err, "failed to attach settlement to transaction")
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return stored, nil
}
