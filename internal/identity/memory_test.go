package identity_test

import (
	"context"
	"testing"
	"time"

	"github.com/JojoFlex1/done/internal/identity"
	"github.com/dropbox/godropbox/time2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfile(email string, username string, address string) *identity.Profile {
	return &identity.Profile{
		Email:         email,
		Username:      username,
		FirstName:     "Ada",
		LastName:      "Lovelace",
		PasswordHash:  "hash",
		WalletAddress: address,
		RewardAddress: "stake_test1" + username,
		EncryptedSeed: "00:11",
		Network:       "Preprod",
	}
}

func TestMemoryRepositoryCreate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := identity.NewMemoryRepository(time2.NewMockClock(now))

	p := newProfile(" Ada@Example.com ", "ada", "addr_test1ada")
	require.NoError(t, repo.Create(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "ada@example.com", p.Email)
	assert.Equal(t, now, p.CreatedAt)

	got, err := repo.GetByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "addr_test1ada", got.WalletAddress)

	exists, err := repo.ExistsByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, identity.ErrNotFound)
}

func TestMemoryRepositoryDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := identity.NewMemoryRepository(time2.DefaultClock)

	require.NoError(t, repo.Create(ctx, newProfile("ada@example.com", "ada", "addr_test1ada")))

	err := repo.Create(ctx, newProfile("ada@example.com", "other", "addr_test1other"))
	require.ErrorIs(t, err, identity.ErrDuplicateIdentity)

	err = repo.Create(ctx, newProfile("other@example.com", "ada", "addr_test1other"))
	require.ErrorIs(t, err, identity.ErrDuplicateIdentity)

	err = repo.Create(ctx, newProfile("other@example.com", "other", "addr_test1ada"))
	require.ErrorIs(t, err, identity.ErrWalletAlreadyProvisioned)
}

func TestMemoryRepositoryProvisionWallet(t *testing.T) {
	ctx := context.Background()
	repo := identity.NewMemoryRepository(time2.DefaultClock)

	p := newProfile("ada@example.com", "ada", "")
	p.EncryptedSeed = ""
	require.NoError(t, repo.Create(ctx, p))

	w := identity.Wallet{Address: "addr_test1ada", RewardAddress: "stake_test1ada", EncryptedSeed: "aa:bb", Network: "Preprod"}
	require.NoError(t, repo.ProvisionWallet(ctx, p.ID, w))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "addr_test1ada", got.WalletAddress)
	assert.Equal(t, "aa:bb", got.EncryptedSeed)

	err = repo.ProvisionWallet(ctx, p.ID, identity.Wallet{Address: "addr_test1new"})
	require.ErrorIs(t, err, identity.ErrWalletAlreadyProvisioned)

	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "addr_test1ada", got.WalletAddress)

	err = repo.ProvisionWallet(ctx, "missing", w)
	require.ErrorIs(t, err, identity.ErrNotFound)
}

func TestMemoryRepositorySeeds(t *testing.T) {
	ctx := context.Background()
	repo := identity.NewMemoryRepository(time2.DefaultClock)

	p := newProfile("ada@example.com", "ada", "addr_test1ada")
	require.NoError(t, repo.Create(ctx, p))

	seeds, err := repo.ListEncryptedSeeds(ctx)
	require.NoError(t, err)
	require.Len(t, seeds, 1)
	assert.Equal(t, p.ID, seeds[0].UserID)
	assert.Equal(t, "00:11", seeds[0].EncryptedSeed)

	err = repo.UpdateEncryptedSeed(ctx, p.ID, "ff:ff", "22:33")
	require.ErrorIs(t, err, identity.ErrStaleSeed)

	require.NoError(t, repo.UpdateEncryptedSeed(ctx, p.ID, "00:11", "22:33"))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "22:33", got.EncryptedSeed)
	assert.Equal(t, "addr_test1ada", got.WalletAddress)
}

func TestMemoryRepositoryPoints(t *testing.T) {
	ctx := context.Background()
	repo := identity.NewMemoryRepository(time2.DefaultClock)

	p := newProfile("ada@example.com", "ada", "addr_test1ada")
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.AddPoints(ctx, p.ID, 3000000))
	require.NoError(t, repo.AddPoints(ctx, p.ID, 1000000))
	require.Error(t, repo.AddPoints(ctx, p.ID, -5000000))

	total, err := repo.TotalPoints(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4000000), total)

	require.ErrorIs(t, repo.AddPoints(ctx, "missing", 1), identity.ErrNotFound)
}
