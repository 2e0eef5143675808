package settlement

import (
	"context"
	"time"

	"github.com/JojoFlex1/done/internal/identity"
	"github.com/JojoFlex1/done/internal/metrics"
	"github.com/JojoFlex1/done/internal/rewards"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/JojoFlex1/done/internal/wallet"
	"github.com/dropbox/godropbox/time2"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// Ledger is the part of the reward ledger settlement writes back to.
type Ledger interface {
	GetSubmission(ctx context.Context, id string) (*rewards.Submission, error)
	AttachSettlement(ctx context.Context, submissionID string, ref string) (string, error)
}

// Reconciler attaches settlement references to ledger entries.
type Reconciler struct {
	ledger     Ledger
	profiles   identity.Repository
	references References
	oracle     Oracle
	clock      time2.Clock
	metrics    *metrics.Service
	inflight   singleflight.Group
}

func NewReconciler(
	ledger Ledger,
	profiles identity.Repository,
	references References,
	oracle Oracle,
	clock time2.Clock,
	m *metrics.Service,
) (*Reconciler, error) {
	if err := vala.BeginValidation().Validate(
		vala.IsNotNil(ledger, "ledger"),
		vala.IsNotNil(profiles, "profiles"),
		vala.IsNotNil(references, "references"),
		vala.IsNotNil(oracle, "oracle"),
		vala.IsNotNil(clock, "clock"),
	).Check(); err != nil {
		return nil, errors.Wrap(err, "invalid reconciler configuration")
	}

	return &Reconciler{
		ledger:     ledger,
		profiles:   profiles,
		references: references,
		oracle:     oracle,
		clock:      clock,
		metrics:    m,
	}, nil
}

// Settle returns the settlement reference of the submission, submitting it to the oracle
// only when none is attached or recorded yet. Concurrent calls for the same submission
// share one attempt. The submission id is the idempotency key of the transfer.
func (r *Reconciler) Settle(ctx context.Context, submissionID string) (string, error) {
	v, err, _ := r.inflight.Do(submissionID, func() (any, error) {
		return r.settle(ctx, submissionID)
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil //nolint:forcetypeassert
}

func (r *Reconciler) settle(ctx context.Context, submissionID string) (string, error) {
	log := util.LogFromContext(ctx).With().Str("component", "settlement").Str("submission_id", submissionID).Logger()

	sub, err := r.ledger.GetSubmission(ctx, submissionID)
	if err != nil {
		return "", err
	}

	if sub.SettlementRef.Valid {
		log.Debug().Msg("Submission already settled, skipping")
		return sub.SettlementRef.String, nil
	}

	recorded, ok, err := r.references.SubmittedReference(ctx, submissionID)
	if err != nil {
		return "", err
	}
	if ok {
		log.Info().Str("reference", recorded).Msg("Submission already sent to the oracle, attaching recorded reference")
		return r.attach(ctx, submissionID, recorded)
	}

	profile, err := r.profiles.GetByID(ctx, sub.UserID)
	if err != nil {
		return "", errors.Wrapf(err, "failed to load profile of user %s", sub.UserID)
	}
	if !profile.HasWallet() {
		return "", ErrNoWallet
	}

	amount := sub.PointsEarned

	log.Info().
		Str("address", util.TruncateAddress(profile.WalletAddress)).
		Int64("lovelace", amount).
		Str("ada", wallet.LovelaceToAda(amount).String()).
		Msg("Submitting settlement")

	start := time.Now()
	ref, err := r.oracle.SubmitSettlement(ctx, submissionID, profile.WalletAddress, amount)
	if err != nil {
		r.metrics.SettlementAttempt("error", time.Since(start))
		return "", errors.Wrap(err, "settlement oracle failed")
	}
	r.metrics.SettlementAttempt("success", time.Since(start))

	if err := r.references.RecordSubmitted(ctx, submissionID, ref, r.clock.Now()); err != nil {
		log.Error().Err(err).Str("reference", ref).Msg("Settlement submitted but reference could not be recorded")
		return "", err
	}

	return r.attach(ctx, submissionID, ref)
}

func (r *Reconciler) attach(ctx context.Context, submissionID string, ref string) (string, error) {
	log := util.LogFromContext(ctx).With().Str("component", "settlement").Str("submission_id", submissionID).Logger()

	stored, err := r.ledger.AttachSettlement(ctx, submissionID, ref)
	if err != nil {
		log.Error().Err(err).Str("reference", ref).Msg("Settlement submitted but reference could not be attached")
		return "", err
	}

	if stored != ref {
		log.Warn().Str("reference", ref).Str("stored", stored).Msg("Submission was settled concurrently, keeping the stored reference")
	}

	return stored, nil
}
