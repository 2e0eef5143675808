package settlement

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/metrics"
	"github.com/JojoFlex1/done/internal/rewards"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/dropbox/godropbox/time2"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	maxErrorLength = 500
	maxBackoff     = 24 * time.Hour
)

// Worker drains the settlement outbox.
type Worker struct {
	cfg        config.Settlement
	store      OutboxStore
	reconciler *Reconciler
	clock      time2.Clock
	metrics    *metrics.Service
	kick       chan struct{}
	jitter     func(time.Duration) time.Duration
}

func NewWorker(cfg config.Settlement, store OutboxStore, reconciler *Reconciler, clock time2.Clock, m *metrics.Service) (*Worker, error) {
	if err := vala.BeginValidation().Validate(
		vala.GreaterThan(cfg.MaxAttempts, 0, "SETTLEMENT_MAX_ATTEMPTS"),
		vala.GreaterThan(cfg.BatchSize, 0, "SETTLEMENT_BATCH_SIZE"),
		vala.GreaterThan(int(cfg.BackoffBase), 0, "SETTLEMENT_BACKOFF_BASE"),
		vala.GreaterThan(int(cfg.Lease), 0, "SETTLEMENT_LEASE"),
		vala.IsNotNil(store, "store"),
		vala.IsNotNil(reconciler, "reconciler"),
		vala.IsNotNil(clock, "clock"),
	).Check(); err != nil {
		return nil, errors.Wrap(err, "invalid settlement worker configuration")
	}

	return &Worker{
		cfg:        cfg,
		store:      store,
		reconciler: reconciler,
		clock:      clock,
		metrics:    m,
		kick:       make(chan struct{}, 1),
		jitter:     defaultJitter,
	}, nil
}

// up to a fifth of d
func defaultJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(d)/5 + 1))
}

// Backoff returns base * 2^(attempt-1), capped at maxDelay. A non-positive maxDelay caps at 24h.
func Backoff(base time.Duration, maxDelay time.Duration, attempt int) time.Duration {
	if maxDelay <= 0 {
		maxDelay = maxBackoff
	}
	if attempt < 1 {
		attempt = 1
	}

	d := base
	for i := 1; i < attempt; i++ {
		if d >= maxDelay/2 {
			return maxDelay
		}
		d *= 2
	}

	return min(d, maxDelay)
}

// settleTimeout leaves a fifth of the lease to report the outcome before the claim expires.
func (w *Worker) settleTimeout() time.Duration {
	return w.cfg.Lease - w.cfg.Lease/5
}

// Notify wakes the worker without blocking the caller.
func (w *Worker) Notify() {
	select {
	case w.kick <- struct{}{}:
	default:
	}
}

// RunOnce claims a batch of due intents and processes it. It returns the number of claimed intents.
func (w *Worker) RunOnce(ctx context.Context) (int, error) {
	now := w.clock.Now()

	intents, err := w.store.ClaimDue(ctx, now, w.cfg.BatchSize, w.cfg.Lease)
	if err != nil {
		return 0, err
	}
	w.metrics.OutboxClaimed(len(intents))

	for _, intent := range intents {
		if err := w.process(ctx, intent); err != nil {
			return len(intents), err
		}
	}

	return len(intents), nil
}

func intentLogger(ctx context.Context, intent *Intent) zerolog.Logger {
	return util.LogFromContext(ctx).With().
		Str("component", "settlement_worker").
		Str("intent_id", intent.ID).
		Str("submission_id", intent.SubmissionID).
		Logger()
}

func (w *Worker) process(ctx context.Context, intent *Intent) error {
	settleCtx, cancel := context.WithTimeout(ctx, w.settleTimeout())
	ref, settleErr := w.reconciler.Settle(settleCtx, intent.SubmissionID)
	cancel()

	err := w.report(ctx, intent, ref, settleErr)
	if errors.Is(err, ErrLeaseLost) {
		log := intentLogger(ctx, intent)
		log.Warn().Msg("Lease expired before the outcome was stored, leaving the intent to its new claim")
		return nil
	}

	return err
}

func (w *Worker) report(ctx context.Context, intent *Intent, ref string, settleErr error) error {
	log := intentLogger(ctx, intent)

	now := w.clock.Now()

	if settleErr == nil {
		log.Info().Str("reference", ref).Msg("Submission settled")
		return w.store.MarkSettled(ctx, intent, ref, now)
	}

	attempts := intent.Attempts + 1
	lastErr := truncate(settleErr.Error(), maxErrorLength)

	if attempts >= w.cfg.MaxAttempts || permanent(settleErr) {
		log.Error().Err(settleErr).Int("attempts", attempts).Msg("Settlement failed permanently, needs manual review")
		return w.store.MarkFailed(ctx, intent, attempts, lastErr, now)
	}

	delay := Backoff(w.cfg.BackoffBase, w.cfg.BackoffMax, attempts)
	delay += w.jitter(delay)

	log.Warn().Err(settleErr).Int("attempts", attempts).Dur("retry_in", delay).Msg("Settlement failed, retrying later")

	return w.store.MarkRetry(ctx, intent, attempts, now.Add(delay), lastErr)
}

func permanent(err error) bool {
	return errors.Is(err, rewards.ErrSubmissionNotFound) || errors.Is(err, ErrNoWallet)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Start runs the worker until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	interval := w.cfg.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	go func() {
		log := util.LogFromContext(ctx).With().Str("component", "settlement_worker").Logger()
		log.Info().Dur("interval", interval).Msg("Starting settlement worker")

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("Settlement worker stopped")
				return
			case <-ticker.C:
			case <-w.kick:
			}

			for {
				n, err := w.RunOnce(ctx)
				if err != nil {
					log.Error().Err(err).Msg("Failed to process settlement outbox")
					break
				}
				if n < w.cfg.BatchSize {
					break
				}
			}
		}
	}()
}
