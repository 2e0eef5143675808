package signup_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JojoFlex1/done/internal/auth"
	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/identity"
	"github.com/JojoFlex1/done/internal/signup"
	"github.com/JojoFlex1/done/internal/wallet"
	"github.com/JojoFlex1/done/internal/wallet/address"
	"github.com/JojoFlex1/done/internal/wallet/keystore"
	"github.com/dropbox/godropbox/time2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type capturedOTP struct {
	to  string
	otp string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []capturedOTP
}

func (n *fakeNotifier) SendOTP(_ context.Context, _ language.Tag, to string, _ string, otp string, _ time.Duration) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.sent = append(n.sent, capturedOTP{to: to, otp: otp})
	return nil
}

func (n *fakeNotifier) last(t *testing.T) string {
	t.Helper()

	n.mu.Lock()
	defer n.mu.Unlock()

	require.NotEmpty(t, n.sent)
	return n.sent[len(n.sent)-1].otp
}

type fixture struct {
	svc      signup.Service
	store    *signup.MemoryStore
	profiles *identity.MemoryRepository
	wallet   wallet.Service
	notifier *fakeNotifier
	clock    *time2.MockClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := time2.NewMockClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	ks, err := keystore.NewService(keystore.Params{Version: keystore.VersionScryptGCM, ScryptLogN: 4})
	require.NoError(t, err)

	walletService, err := wallet.NewService(config.Wallet{
		Network:       "Preprod",
		EncryptionKey: "test-encryption-key",
		MnemonicWords: 24,
	}, ks, address.NewService())
	require.NoError(t, err)

	profiles := identity.NewMemoryRepository(clock)
	authService, err := auth.NewService(config.AuthServer{JWTSecret: "test-secret", TokenTTL: time.Hour}, profiles, clock)
	require.NoError(t, err)

	store := signup.NewMemoryStore()
	notifier := &fakeNotifier{}

	svc, err := signup.NewService(config.Signup{OTPTTL: 10 * time.Minute}, store, profiles, walletService, notifier, authService, clock, nil)
	require.NoError(t, err)

	return &fixture{
		svc:      svc,
		store:    store,
		profiles: profiles,
		wallet:   walletService,
		notifier: notifier,
		clock:    clock,
	}
}

func begin(t *testing.T, f *fixture, email string) *signup.BeginResult {
	t.Helper()

	res, err := f.svc.BeginSignup(context.Background(), signup.BeginRequest{
		Email:     email,
		Username:  strings.Split(email, "@")[0],
		FirstName: "Ada",
		LastName:  "Lovelace",
		Language:  language.English,
	})
	require.NoError(t, err)

	return res
}

func TestSignupVerifyOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res := begin(t, f, "ada@example.com")
	assert.True(t, strings.HasPrefix(res.WalletAddress, "addr_test1"))
	assert.Equal(t, f.clock.Now().Add(10*time.Minute), res.ExpiresAt)

	otp := f.notifier.last(t)
	assert.Len(t, otp, 6)

	verified, err := f.svc.Verify(ctx, "ada@example.com", " "+otp+" ")
	require.NoError(t, err)
	assert.Len(t, strings.Fields(verified.SeedPhrase), 24)
	assert.NotEmpty(t, verified.Token)
	assert.Equal(t, res.WalletAddress, verified.Profile.WalletAddress)

	restored, err := f.wallet.Restore(ctx, verified.SeedPhrase, address.Preprod)
	require.NoError(t, err)
	assert.Equal(t, res.WalletAddress, restored.Address)

	stored, err := f.profiles.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.NotContains(t, stored.EncryptedSeed, verified.SeedPhrase)
	assert.Equal(t, verified.Profile.ID, stored.ID)

	_, err = f.svc.Verify(ctx, "ada@example.com", otp)
	require.ErrorIs(t, err, signup.ErrNoPendingSignup)
}

func TestSignupDuplicateIdentity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	begin(t, f, "ada@example.com")
	_, err := f.svc.Verify(ctx, "ada@example.com", f.notifier.last(t))
	require.NoError(t, err)

	_, err = f.svc.BeginSignup(ctx, signup.BeginRequest{Email: "ADA@example.com", Username: "ada2", FirstName: "A", LastName: "L"})
	require.ErrorIs(t, err, identity.ErrDuplicateIdentity)
}

func TestSignupExpired(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	begin(t, f, "ada@example.com")
	otp := f.notifier.last(t)

	f.clock.Advance(10*time.Minute + time.Second)

	_, err := f.svc.Verify(ctx, "ada@example.com", otp)
	require.ErrorIs(t, err, signup.ErrExpired)

	_, err = f.store.Get(ctx, "ada@example.com")
	require.ErrorIs(t, err, signup.ErrNoPendingSignup)

	_, err = f.svc.Verify(ctx, "ada@example.com", otp)
	require.ErrorIs(t, err, signup.ErrNoPendingSignup)
}

func TestSignupExactlyAtExpiry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	begin(t, f, "ada@example.com")
	f.clock.Advance(10 * time.Minute)

	_, err := f.svc.Verify(ctx, "ada@example.com", f.notifier.last(t))
	require.NoError(t, err)
}

func TestSignupInvalidCode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	begin(t, f, "ada@example.com")
	otp := f.notifier.last(t)

	wrong := "000000"
	if otp == wrong {
		wrong = "111111"
	}

	_, err := f.svc.Verify(ctx, "ada@example.com", wrong)
	require.ErrorIs(t, err, signup.ErrInvalidCode)

	// a wrong code does not consume the pending signup
	_, err = f.svc.Verify(ctx, "ada@example.com", otp)
	require.NoError(t, err)
}

func TestResendInvalidatesPreviousCode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res := begin(t, f, "ada@example.com")
	first := f.notifier.last(t)

	f.clock.Advance(5 * time.Minute)

	var second string
	var expiresAt time.Time
	for {
		var err error
		expiresAt, err = f.svc.Resend(ctx, "ada@example.com", language.English)
		require.NoError(t, err)

		second = f.notifier.last(t)
		if second != first {
			break
		}
	}
	assert.Equal(t, f.clock.Now().Add(10*time.Minute), expiresAt)

	_, err := f.svc.Verify(ctx, "ada@example.com", first)
	require.ErrorIs(t, err, signup.ErrInvalidCode)

	verified, err := f.svc.Verify(ctx, "ada@example.com", second)
	require.NoError(t, err)
	assert.Equal(t, res.WalletAddress, verified.Profile.WalletAddress)
}

func TestResendWithoutPendingSignup(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Resend(context.Background(), "nobody@example.com", language.English)
	require.ErrorIs(t, err, signup.ErrNoPendingSignup)
}

func TestResendAfterExpiry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	begin(t, f, "ada@example.com")
	f.clock.Advance(11 * time.Minute)

	_, err := f.svc.Resend(ctx, "ada@example.com", language.English)
	require.ErrorIs(t, err, signup.ErrNoPendingSignup)
}

func TestBeginSignupAgainKeepsWallet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first := begin(t, f, "ada@example.com")
	second := begin(t, f, "ada@example.com")
	assert.Equal(t, first.WalletAddress, second.WalletAddress)

	f.clock.Advance(11 * time.Minute)

	third := begin(t, f, "ada@example.com")
	assert.NotEqual(t, first.WalletAddress, third.WalletAddress)

	_, err := f.svc.Verify(ctx, "ada@example.com", f.notifier.last(t))
	require.NoError(t, err)
}

func TestSignupChosenPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.BeginSignup(ctx, signup.BeginRequest{
		Email:     "ada@example.com",
		Username:  "ada",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "s3cret-pass",
	})
	require.NoError(t, err)

	verified, err := f.svc.Verify(ctx, "ada@example.com", f.notifier.last(t))
	require.NoError(t, err)
	assert.True(t, auth.ComparePassword(verified.Profile.PasswordHash, "s3cret-pass"))
}

func TestSweepExpired(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	begin(t, f, "ada@example.com")
	f.clock.Advance(6 * time.Minute)
	begin(t, f, "bob@example.com")
	f.clock.Advance(5 * time.Minute)

	n, err := f.svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = f.store.Get(ctx, "ada@example.com")
	require.ErrorIs(t, err, signup.ErrNoPendingSignup)

	_, err = f.store.Get(ctx, "bob@example.com")
	require.NoError(t, err)
}

func TestConcurrentVerifyRevealsSeedOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	begin(t, f, "ada@example.com")
	otp := f.notifier.last(t)

	const workers = 8

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Verify(ctx, "ada@example.com", otp)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, noPending int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, signup.ErrNoPendingSignup):
			noPending++
		}
	}

	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, noPending)
}
