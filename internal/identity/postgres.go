package identity

import (
	"context"
	"database/sql"

	"github.com/JojoFlex1/done/internal/util/db"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	constraintWalletAddress = "profiles_wallet_address_key"

	profileColumns = `id, email, username, first_name, last_name, password_hash,
		COALESCE(wallet_address, '') AS wallet_address, COALESCE(reward_address, '') AS reward_address,
		COALESCE(encrypted_seed, '') AS encrypted_seed, network, total_points, created_at, updated_at`
)

// PostgresRepository stores profiles in the profiles table.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *Profile) error {
	if len(p.ID) == 0 {
		p.ID = uuid.NewString()
	}
	p.Email = NormalizeEmail(p.Email)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO profiles (id, email, username, first_name, last_name, password_hash,
			wallet_address, reward_address, encrypted_seed, network)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		p.ID, p.Email, p.Username, p.FirstName, p.LastName, p.PasswordHash,
		db.NullIfEmpty(p.WalletAddress), db.NullIfEmpty(p.RewardAddress), db.NullIfEmpty(p.EncryptedSeed), p.Network,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err, constraintWalletAddress) {
			return ErrWalletAlreadyProvisioned
		}
		if db.IsUniqueViolation(err) {
			return ErrDuplicateIdentity
		}
		return errors.Wrap(err, "failed to insert profile")
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE email = $1`, NormalizeEmail(email))
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg string) (*Profile, error) {
	var p Profile
	if err := queries.Raw(query, arg).Bind(ctx, r.db, &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to load profile")
	}

	return &p, nil
}

func (r *PostgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM profiles WHERE email = $1)`, NormalizeEmail(email)).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "failed to check profile existence")
	}

	return exists, nil
}

func (r *PostgresRepository) ProvisionWallet(ctx context.Context, userID string, w Wallet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET wallet_address = $2, reward_address = $3, encrypted_seed = $4, network = $5, updated_at = now()
		WHERE id = $1 AND wallet_address IS NULL`,
		userID, w.Address, w.RewardAddress, w.EncryptedSeed, w.Network)
	if err != nil {
		if db.IsUniqueViolation(err, constraintWalletAddress) {
			return ErrWalletAlreadyProvisioned
		}
		return errors.Wrap(err, "failed to provision wallet")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if affected == 1 {
		return nil
	}

	if _, err := r.GetByID(ctx, userID); err != nil {
		return err
	}

	return ErrWalletAlreadyProvisioned
}

func (r *PostgresRepository) ListEncryptedSeeds(ctx context.Context) ([]*SeedRecord, error) {
	var res []*SeedRecord
	err := queries.Raw(`
		SELECT id, encrypted_seed FROM profiles
		WHERE encrypted_seed IS NOT NULL
		ORDER BY created_at`).Bind(ctx, r.db, &res)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(err, "failed to list encrypted seeds")
	}

	return res, nil
}

func (r *PostgresRepository) UpdateEncryptedSeed(ctx context.Context, userID string, previous string, next string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles SET encrypted_seed = $3, updated_at = now()
		WHERE id = $1 AND encrypted_seed = $2`,
		userID, previous, next)
	if err != nil {
		return errors.Wrap(err, "failed to update encrypted seed")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return ErrStaleSeed
	}

	return nil
}
