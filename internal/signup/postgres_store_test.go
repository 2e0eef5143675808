package signup_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/JojoFlex1/done/internal/signup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := signup.NewPostgresStore(db)
	expires := time.Date(2024, 5, 1, 12, 10, 0, 0, time.UTC)
	created := expires.Add(-10 * time.Minute)

	p := &signup.PendingSignup{
		Email:         "ada@example.com",
		Username:      "ada",
		FirstName:     "Ada",
		LastName:      "Lovelace",
		WalletAddress: "addr_test1ada",
		RewardAddress: "stake_test1ada",
		EncryptedSeed: "00:11",
		Network:       "Preprod",
		PasswordHash:  "hash",
		OTPCode:       "123456",
		OTPExpiresAt:  expires,
		CreatedAt:     created,
	}

	mock.ExpectExec(`INSERT INTO pending_signups .+ ON CONFLICT \(email\) DO UPDATE`).
		WithArgs("ada@example.com", "ada", "Ada", "Lovelace", "addr_test1ada", "stake_test1ada",
			"00:11", "Preprod", "hash", "123456", expires, created).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.Put(ctx, p))

	columns := []string{"email", "username", "first_name", "last_name", "wallet_address", "reward_address",
		"encrypted_seed", "network", "password_hash", "otp_code", "otp_expires_at", "created_at"}

	mock.ExpectQuery(`SELECT .+ FROM pending_signups\s+WHERE email = \$1`).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("ada@example.com", "ada", "Ada", "Lovelace", "addr_test1ada",
			"stake_test1ada", "00:11", "Preprod", "hash", "123456", expires, created))

	got, err := store.Get(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	mock.ExpectQuery(`SELECT .+ FROM pending_signups`).
		WithArgs("bob@example.com").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err = store.Get(ctx, "bob@example.com")
	require.ErrorIs(t, err, signup.ErrNoPendingSignup)

	mock.ExpectExec(`DELETE FROM pending_signups WHERE email = \$1`).
		WithArgs("ada@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM pending_signups WHERE email = \$1`).
		WithArgs("ada@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := store.Delete(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.False(t, deleted)

	mock.ExpectExec(`DELETE FROM pending_signups WHERE otp_expires_at < \$1`).
		WithArgs(expires).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := store.DeleteExpired(ctx, expires)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	require.NoError(t, mock.ExpectationsWereMet())
}
