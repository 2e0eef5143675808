package signup

import (
	"context"
	"time"

	"github.com/JojoFlex1/done/internal/auth"
	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/identity"
	"github.com/JojoFlex1/done/internal/metrics"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/JojoFlex1/done/internal/wallet"
	"github.com/dropbox/godropbox/time2"
	"github.com/google/uuid"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

type service struct {
	ttl      time.Duration
	store    PendingStore
	profiles identity.Repository
	wallet   wallet.Service
	notifier Notifier
	tokens   TokenIssuer
	clock    time2.Clock
	metrics  *metrics.Service
	locks    *keyedMutex
}

// NewService creates a new signup Service
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(
	cfg config.Signup,
	store PendingStore,
	profiles identity.Repository,
	walletService wallet.Service,
	notifier Notifier,
	tokens TokenIssuer,
	clock time2.Clock,
	m *metrics.Service,
) (Service, error) {
	if err := vala.BeginValidation().Validate(
		vala.GreaterThan(int(cfg.OTPTTL), 0, "SIGNUP_OTP_TTL"),
		vala.IsNotNil(store, "store"),
		vala.IsNotNil(profiles, "profiles"),
		vala.IsNotNil(walletService, "walletService"),
		vala.IsNotNil(notifier, "notifier"),
		vala.IsNotNil(tokens, "tokens"),
		vala.IsNotNil(clock, "clock"),
	).Check(); err != nil {
		return nil, errors.Wrap(err, "invalid signup service configuration")
	}

	return &service{
		ttl:      cfg.OTPTTL,
		store:    store,
		profiles: profiles,
		wallet:   walletService,
		notifier: notifier,
		tokens:   tokens,
		clock:    clock,
		metrics:  m,
		locks:    newKeyedMutex(),
	}, nil
}

func (s *service) logger(ctx context.Context) zerolog.Logger {
	return util.LogFromContext(ctx).With().Str("component", "signup").Logger()
}

// BeginSignup moves an email into the pending state. A still pending attempt for the
// same email is replaced, but keeps its wallet so the announced address stays stable.
func (s *service) BeginSignup(ctx context.Context, req BeginRequest) (*BeginResult, error) {
	email := identity.NormalizeEmail(req.Email)
	log := s.logger(ctx)

	unlock := s.locks.Lock(email)
	defer unlock()

	exists, err := s.profiles.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		s.metrics.SignupFailed("duplicate_identity")
		return nil, identity.ErrDuplicateIdentity
	}

	now := s.clock.Now()

	pending := &PendingSignup{
		Email:     email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CreatedAt: now,
	}

	previous, err := s.store.Get(ctx, email)
	switch {
	case err == nil && !previous.Expired(now):
		pending.WalletAddress = previous.WalletAddress
		pending.RewardAddress = previous.RewardAddress
		pending.EncryptedSeed = previous.EncryptedSeed
		pending.Network = previous.Network
		log.Debug().Msg("Replacing pending signup, keeping its wallet")
	case err == nil || errors.Is(err, ErrNoPendingSignup):
		provisioned, err := s.wallet.Generate(ctx, s.wallet.Network())
		if err != nil {
			return nil, err
		}
		pending.WalletAddress = provisioned.Address
		pending.RewardAddress = provisioned.RewardAddress
		pending.EncryptedSeed = provisioned.EncryptedSeed
		pending.Network = provisioned.Network.String()
	default:
		return nil, err
	}

	password := req.Password
	if len(password) == 0 {
		password, err = newPassword()
		if err != nil {
			return nil, err
		}
	}

	pending.PasswordHash, err = auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	pending.OTPCode, err = newOTP()
	if err != nil {
		return nil, err
	}
	pending.OTPExpiresAt = now.Add(s.ttl)

	if err := s.store.Put(ctx, pending); err != nil {
		return nil, err
	}

	if err := s.notifier.SendOTP(ctx, req.Language, email, pending.FirstName, pending.OTPCode, s.ttl); err != nil {
		return nil, errors.Wrap(err, "failed to deliver otp")
	}

	s.metrics.SignupStarted()
	log.Info().Str("address", util.TruncateAddress(pending.WalletAddress)).Msg("Signup initiated")

	return &BeginResult{
		WalletAddress: pending.WalletAddress,
		ExpiresAt:     pending.OTPExpiresAt,
	}, nil
}

// Verify consumes the pending signup and creates the profile. The plaintext seed
// phrase is part of the result of the one call that succeeds and never again.
func (s *service) Verify(ctx context.Context, email string, otp string) (*VerifyResult, error) {
	email = identity.NormalizeEmail(email)
	log := s.logger(ctx)

	unlock := s.locks.Lock(email)
	defer unlock()

	pending, err := s.store.Get(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNoPendingSignup) {
			s.metrics.SignupFailed("no_pending_signup")
		}
		return nil, err
	}

	if pending.Expired(s.clock.Now()) {
		if _, err := s.store.Delete(ctx, email); err != nil {
			log.Warn().Err(err).Msg("Failed to delete expired pending signup")
		}
		s.metrics.SignupFailed("expired")
		return nil, ErrExpired
	}

	if !otpMatches(pending.OTPCode, otp) {
		s.metrics.SignupFailed("invalid_otp")
		return nil, ErrInvalidCode
	}

	seedPhrase, err := s.wallet.DecryptSeed(ctx, pending.EncryptedSeed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open pending seed phrase")
	}

	profile := &identity.Profile{
		ID:            uuid.NewString(),
		Email:         pending.Email,
		Username:      pending.Username,
		FirstName:     pending.FirstName,
		LastName:      pending.LastName,
		PasswordHash:  pending.PasswordHash,
		WalletAddress: pending.WalletAddress,
		RewardAddress: pending.RewardAddress,
		EncryptedSeed: pending.EncryptedSeed,
		Network:       pending.Network,
	}

	token, err := s.tokens.IssueToken(profile)
	if err != nil {
		return nil, err
	}

	consumed, err := s.store.Delete(ctx, email)
	if err != nil {
		return nil, err
	}
	if !consumed {
		s.metrics.SignupFailed("no_pending_signup")
		return nil, ErrNoPendingSignup
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		if restoreErr := s.store.Put(ctx, pending); restoreErr != nil {
			log.Error().Err(restoreErr).Msg("Failed to restore pending signup after profile creation failed")
		}
		return nil, err
	}

	s.metrics.SignupVerified()
	log.Info().Str("user_id", profile.ID).Msg("User created")

	return &VerifyResult{
		Profile:    profile,
		SeedPhrase: seedPhrase,
		Token:      token,
	}, nil
}

// Resend issues a new OTP for the pending signup. The wallet is left untouched.
func (s *service) Resend(ctx context.Context, email string, lang language.Tag) (time.Time, error) {
	email = identity.NormalizeEmail(email)

	unlock := s.locks.Lock(email)
	defer unlock()

	pending, err := s.store.Get(ctx, email)
	if err != nil {
		return time.Time{}, err
	}

	now := s.clock.Now()
	if pending.Expired(now) {
		if _, err := s.store.Delete(ctx, email); err != nil {
			log := s.logger(ctx)
			log.Warn().Err(err).Msg("Failed to delete expired pending signup")
		}
		return time.Time{}, ErrNoPendingSignup
	}

	pending.OTPCode, err = newOTP()
	if err != nil {
		return time.Time{}, err
	}
	pending.OTPExpiresAt = now.Add(s.ttl)

	if err := s.store.Put(ctx, pending); err != nil {
		return time.Time{}, err
	}

	if err := s.notifier.SendOTP(ctx, lang, email, pending.FirstName, pending.OTPCode, s.ttl); err != nil {
		return time.Time{}, errors.Wrap(err, "failed to deliver otp")
	}

	return pending.OTPExpiresAt, nil
}

func (s *service) SweepExpired(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpired(ctx, s.clock.Now())
	if err != nil {
		return 0, err
	}

	if n > 0 {
		log := s.logger(ctx)
		log.Debug().Int64("count", n).Msg("Swept expired pending signups")
	}

	return n, nil
}

func (s *service) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		log := s.logger(ctx)
		log.Info().Dur("interval", interval).Msg("Starting pending signup sweeper")

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("Pending signup sweeper stopped")
				return
			case <-ticker.C:
				if _, err := s.SweepExpired(ctx); err != nil {
					log.Error().Err(err).Msg("Failed to sweep expired pending signups")
				}
			}
		}
	}()
}
