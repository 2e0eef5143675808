package signup

import (
	"context"
	"database/sql"
	"time"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/pkg/errors"
)

// PostgresStore keeps pending signups in the pending_signups table so every server instance sees them.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, email string) (*PendingSignup, error) {
	var p PendingSignup

	err := queries.Raw(`
		SELECT email, username, first_name, last_name, wallet_address, reward_address, encrypted_seed,
			network, password_hash, otp_code, otp_expires_at, created_at
		FROM pending_signups
		WHERE email = $1`, email).Bind(ctx, s.db, &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoPendingSignup
		}
		return nil, errors.Wrap(err, "failed to load pending signup")
	}

	return &p, nil
}

func (s *PostgresStore) Put(ctx context.Context, p *PendingSignup) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pending_signups (email, username, first_name, last_name, wallet_address, reward_address,
			encrypted_seed, network, password_hash, otp_code, otp_expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (email) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			wallet_address = EXCLUDED.wallet_address,
			reward_address = EXCLUDED.reward_address,
			encrypted_seed = EXCLUDED.encrypted_seed,
			network = EXCLUDED.network,
			password_hash = EXCLUDED.password_hash,
			otp_code = EXCLUDED.otp_code,
			otp_expires_at = EXCLUDED.otp_expires_at,
			updated_at = now()`,
		p.Email, p.Username, p.FirstName, p.LastName, p.WalletAddress, p.RewardAddress,
		p.EncryptedSeed, p.Network, p.PasswordHash, p.OTPCode, p.OTPExpiresAt, p.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "failed to store pending signup")
	}

	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, email string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pending_signups WHERE email = $1`, email)
	if err != nil {
		return false, errors.Wrap(err, "failed to delete pending signup")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed to read affected rows")
	}

	return affected > 0, nil
}

func (s *PostgresStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pending_signups WHERE otp_expires_at < $1`, now)
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete expired pending signups")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "failed to read affected rows")
	}

	return affected, nil
}
