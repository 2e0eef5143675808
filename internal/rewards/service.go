package rewards

import (
	"context"
	"strings"

	"github.com/JojoFlex1/done/internal/bins"
	"github.com/JojoFlex1/done/internal/metrics"
	"github.com/JojoFlex1/done/internal/rewards/catalog"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/aarondl/null/v8"
	"github.com/dropbox/godropbox/time2"
	"github.com/google/uuid"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
)

type service struct {
	catalog   *catalog.Catalog
	directory bins.Directory
	repo      Repository
	clock     time2.Clock
	metrics   *metrics.Service
}

// NewService creates the reward ledger.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(cat *catalog.Catalog, directory bins.Directory, repo Repository, clock time2.Clock, m *metrics.Service) (Service, error) {
	if err := vala.BeginValidation().Validate(
		vala.IsNotNil(cat, "catalog"),
		vala.IsNotNil(directory, "directory"),
		vala.IsNotNil(repo, "repository"),
		vala.IsNotNil(clock, "clock"),
	).Check(); err != nil {
		return nil, errors.Wrap(err, "invalid reward ledger configuration")
	}

	return &service{
		catalog:   cat,
		directory: directory,
		repo:      repo,
		clock:     clock,
		metrics:   m,
	}, nil
}

func (s *service) resolve(ctx context.Context, req SubmissionRequest) (catalog.Entry, *bins.Bin, error) {
	entry, err := s.catalog.Lookup(req.WasteType)
	if err != nil {
		return catalog.Entry{}, nil, err
	}

	bin, err := s.directory.FindActiveByQR(ctx, strings.TrimSpace(req.QRCode))
	if err != nil {
		return catalog.Entry{}, nil, err
	}

	return entry, bin, nil
}

func (s *service) CheckSubmission(ctx context.Context, req SubmissionRequest) error {
	_, _, err := s.resolve(ctx, req)
	return err
}

func (s *service) RecordSubmission(ctx context.Context, req SubmissionRequest) (*RecordResult, error) {
	log := util.LogFromContext(ctx).With().Str("component", "rewards").Str("user_id", req.UserID).Logger()

	entry, bin, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	sub := &Submission{
		ID:           uuid.NewString(),
		UserID:       req.UserID,
		BinID:        bin.ID,
		WasteType:    entry.WasteType,
		PointsEarned: entry.Points,
		PhotoRef:     null.NewString(req.PhotoRef, len(req.PhotoRef) > 0),
		WeightKg:     null.Float64FromPtr(req.WeightKg),
		Note:         null.NewString(req.Note, len(req.Note) > 0),
		CreatedAt:    now,
		BinName:      bin.Name,
		BinAddress:   bin.Address,
	}

	tx := &Transaction{
		ID:           uuid.NewString(),
		UserID:       req.UserID,
		SubmissionID: null.StringFrom(sub.ID),
		Points:       entry.Points,
		Kind:         KindEarned,
		Description:  Description(entry.WasteType, bin.Name),
		CreatedAt:    now,
		WasteType:    null.StringFrom(entry.WasteType),
		BinName:      null.StringFrom(bin.Name),
	}

	if err := s.repo.Record(ctx, sub, tx); err != nil {
		return nil, errors.Wrap(err, "failed to record submission")
	}

	s.metrics.SubmissionRecorded(entry.WasteType, entry.Points)
	log.Info().
		Str("submission_id", sub.ID).
		Str("waste_type", entry.WasteType).
		Int64("points", entry.Points).
		Msg("Waste submission recorded")

	return &RecordResult{
		Submission:  sub,
		Transaction: tx,
		Bin:         bin,
		Entry:       entry,
	}, nil
}

func (s *service) GetHistory(ctx context.Context, userID string) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, userID)
}

func (s *service) GetTotals(ctx context.Context, userID string) (*Totals, error) {
	txs, cached, err := s.repo.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals := &Totals{TotalTransactions: int64(len(txs))}

	for _, t := range txs {
		switch t.Kind {
		case KindEarned:
			totals.PointsEarned += t.Points
			totals.TotalSubmissions++

			// newest first
			created := t.CreatedAt
			if totals.LastRewardAt == nil {
				totals.LastRewardAt = &created
			}
			totals.FirstRewardAt = &created

			if t.Status() == StatusPending {
				totals.PendingConfirmation += t.Points
			}
		case KindRedeemed:
			totals.PointsRedeemed += t.Points
		}

		if t.Status() == StatusConfirmed {
			totals.ConfirmedTransactions++
		}
	}

	totals.PointsAvailable = totals.PointsEarned - totals.PointsRedeemed
	if totals.PointsAvailable < 0 {
		return nil, errors.Wrapf(ErrNegativeBalance, "user %s: earned %d, redeemed %d", userID, totals.PointsEarned, totals.PointsRedeemed)
	}

	if cached != totals.PointsAvailable {
		return nil, errors.Wrapf(ErrNegativeBalance, "user %s: cached total %d, ledger %d", userID, cached, totals.PointsAvailable)
	}

	return totals, nil
}

func (s *service) ListSubmissions(ctx context.Context, userID string) ([]*Submission, error) {
	return s.repo.ListSubmissions(ctx, userID)
}

func (s *service) Stats(ctx context.Context, userID string) (*Stats, error) {
	subs, err := s.repo.ListSubmissions(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.CachedTotal(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalSubmissions: int64(len(subs)),
		TotalPoints:      total,
	}, nil
}

func (s *service) GetSubmission(ctx context.Context, id string) (*Submission, error) {
	return s.repo.GetSubmission(ctx, id)
}

func (s *service) AttachSettlement(ctx context.Context, submissionID string, ref string) (string, error) {
	if len(ref) == 0 {
		return "", errors.New("settlement reference must not be empty")
	}

	return s.repo.AttachSettlement(ctx, submissionID, ref)
}
