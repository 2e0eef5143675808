package rewards

import (
	"context"
	"sort"
	"sync"

	"github.com/aarondl/null/v8"
	"github.com/pkg/errors"
)

// PointsCache holds the cached point total of a profile.
type PointsCache interface {
	AddPoints(ctx context.Context, userID string, delta int64) error
	TotalPoints(ctx context.Context, userID string) (int64, error)
}

// MemoryRepository is a process local Repository. A single mutex serializes all writes.
type MemoryRepository struct {
	mu           sync.RWMutex
	cache        PointsCache
	outbox       Outbox
	submissions  map[string]*Submission
	transactions []*Transaction
}

// NewMemoryRepository creates a MemoryRepository. outbox may be nil.
func NewMemoryRepository(cache PointsCache, outbox Outbox) *MemoryRepository {
	return &MemoryRepository{
		cache:       cache,
		outbox:      outbox,
		submissions: make(map[string]*Submission),
	}
}

func (r *MemoryRepository) Record(ctx context.Context, sub *Submission, tx *Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.submissions[sub.ID]; ok {
		return errors.Errorf("submission %s already recorded", sub.ID)
	}

	if err := r.cache.AddPoints(ctx, sub.UserID, tx.Points); err != nil {
		return err
	}

	if r.outbox != nil {
		if err := r.outbox.Enqueue(ctx, nil, sub.ID, sub.UserID); err != nil {
			if rollbackErr := r.cache.AddPoints(ctx, sub.UserID, -tx.Points); rollbackErr != nil {
				return errors.Wrapf(err, "failed to revert cached total: %v", rollbackErr)
			}
			return err
		}
	}

	s := *sub
	t := *tx
	r.submissions[s.ID] = &s
	r.transactions = append(r.transactions, &t)

	return nil
}

func (r *MemoryRepository) GetSubmission(_ context.Context, id string) (*Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.submissions[id]
	if !ok {
		return nil, ErrSubmissionNotFound
	}

	cp := *s
	return &cp, nil
}

func (r *MemoryRepository) ListSubmissions(_ context.Context, userID string) ([]*Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*Submission, 0)
	for _, s := range r.submissions {
		if s.UserID == userID {
			cp := *s
			res = append(res, &cp)
		}
	}

	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ID > res[j].ID
	})

	return res, nil
}

func (r *MemoryRepository) ListTransactions(_ context.Context, userID string) ([]*Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listTransactions(userID), nil
}

// Balance holds the read lock across both reads. Record changes the cached total only
// while holding the write lock.
func (r *MemoryRepository) Balance(ctx context.Context, userID string) ([]*Transaction, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total, err := r.cache.TotalPoints(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return r.listTransactions(userID), total, nil
}

func (r *MemoryRepository) listTransactions(userID string) []*Transaction {
	res := make([]*Transaction, 0)
	for i := len(r.transactions) - 1; i >= 0; i-- {
		if t := r.transactions[i]; t.UserID == userID {
			cp := *t
			res = append(res, &cp)
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})

	return res
}

func (r *MemoryRepository) CachedTotal(ctx context.Context, userID string) (int64, error) {
	return r.cache.TotalPoints(ctx, userID)
}

func (r *MemoryRepository) AttachSettlement(_ context.Context, submissionID string, ref string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.submissions[submissionID]
	if !ok {
		return "", ErrSubmissionNotFound
	}
	if s.SettlementRef.Valid {
		return s.SettlementRef.String, nil
	}

	s.SettlementRef = null.StringFrom(ref)
	for _, t := range r.transactions {
		if t.SubmissionID.Valid && t.SubmissionID.String == submissionID && !t.SettlementRef.Valid {
			t.SettlementRef = null.StringFrom(ref)
		}
	}

	return ref, nil
}
