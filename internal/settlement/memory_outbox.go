package settlement

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/dropbox/godropbox/time2"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
)

// MemoryOutbox is a process local OutboxStore.
type MemoryOutbox struct {
	mu      sync.Mutex
	clock   time2.Clock
	intents map[string]*Intent
}

func NewMemoryOutbox(clock time2.Clock) *MemoryOutbox {
	return &MemoryOutbox{
		clock:   clock,
		intents: make(map[string]*Intent),
	}
}

func (o *MemoryOutbox) Enqueue(_ context.Context, _ boil.ContextExecutor, submissionID string, userID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, i := range o.intents {
		if i.SubmissionID == submissionID {
			return errors.Errorf("settlement intent for submission %s already exists", submissionID)
		}
	}

	now := o.clock.Now()
	id := ulid.Make().String()
	o.intents[id] = &Intent{
		ID:            id,
		SubmissionID:  submissionID,
		UserID:        userID,
		Status:        StatusPending,
		NextAttemptAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return nil
}

func (o *MemoryOutbox) ClaimDue(_ context.Context, now time.Time, limit int, lease time.Duration) ([]*Intent, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	due := make([]*Intent, 0)
	for _, i := range o.intents {
		if (i.Status == StatusPending || i.Status == StatusInFlight) && !i.NextAttemptAt.After(now) {
			due = append(due, i)
		}
	}

	sort.Slice(due, func(a, b int) bool {
		if !due[a].NextAttemptAt.Equal(due[b].NextAttemptAt) {
			return due[a].NextAttemptAt.Before(due[b].NextAttemptAt)
		}
		return due[a].ID < due[b].ID
	})

	if len(due) > limit {
		due = due[:limit]
	}

	res := make([]*Intent, 0, len(due))
	for _, i := range due {
		i.Status = StatusInFlight
		i.NextAttemptAt = now.Add(lease)
		i.UpdatedAt = now

		cp := *i
		res = append(res, &cp)
	}

	return res, nil
}

func (o *MemoryOutbox) MarkSettled(_ context.Context, claim *Intent, ref string, now time.Time) error {
	return o.updateClaimed(claim, func(i *Intent) {
		i.Status = StatusSettled
		i.SettlementRef = null.StringFrom(ref)
		i.LastError = null.String{}
		i.UpdatedAt = now
	})
}

func (o *MemoryOutbox) MarkRetry(_ context.Context, claim *Intent, attempts int, next time.Time, lastErr string) error {
	return o.updateClaimed(claim, func(i *Intent) {
		i.Status = StatusPending
		i.Attempts = attempts
		i.NextAttemptAt = next
		i.LastError = null.StringFrom(lastErr)
		i.UpdatedAt = o.clock.Now()
	})
}

func (o *MemoryOutbox) MarkFailed(_ context.Context, claim *Intent, attempts int, lastErr string, now time.Time) error {
	return o.updateClaimed(claim, func(i *Intent) {
		i.Status = StatusFailed
		i.Attempts = attempts
		i.LastError = null.StringFrom(lastErr)
		i.UpdatedAt = now
	})
}

func (o *MemoryOutbox) SubmittedReference(_ context.Context, submissionID string) (string, bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, i := range o.intents {
		if i.SubmissionID == submissionID {
			return i.SettlementRef.String, i.SettlementRef.Valid, nil
		}
	}

	return "", false, nil
}

// RecordSubmitted keeps an already recorded reference.
func (o *MemoryOutbox) RecordSubmitted(_ context.Context, submissionID string, ref string, now time.Time) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, i := range o.intents {
		if i.SubmissionID != submissionID {
			continue
		}
		if i.SettlementRef.Valid && i.SettlementRef.String != ref {
			return errors.Errorf("submission %s already has reference %s", submissionID, i.SettlementRef.String)
		}
		i.SettlementRef = null.StringFrom(ref)
		i.UpdatedAt = now
		return nil
	}

	return ErrIntentNotFound
}

func (o *MemoryOutbox) Requeue(_ context.Context, id string, now time.Time) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	i, ok := o.intents[id]
	if !ok || i.Status != StatusFailed {
		return ErrIntentNotFound
	}

	i.Status = StatusPending
	i.Attempts = 0
	i.NextAttemptAt = now
	i.LastError = null.String{}
	i.UpdatedAt = now

	return nil
}

func (o *MemoryOutbox) ListFailed(_ context.Context) ([]*Intent, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	res := make([]*Intent, 0)
	for _, i := range o.intents {
		if i.Status == StatusFailed {
			cp := *i
			res = append(res, &cp)
		}
	}

	sort.Slice(res, func(a, b int) bool {
		return res[a].ID < res[b].ID
	})

	return res, nil
}

// Get returns a copy of the intent for submissionID.
func (o *MemoryOutbox) Get(submissionID string) (*Intent, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, i := range o.intents {
		if i.SubmissionID == submissionID {
			cp := *i
			return &cp, true
		}
	}

	return nil, false
}

func (o *MemoryOutbox) updateClaimed(claim *Intent, f func(i *Intent)) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	i, ok := o.intents[claim.ID]
	if !ok {
		return ErrIntentNotFound
	}
	if i.Status != StatusInFlight || !i.NextAttemptAt.Equal(claim.NextAttemptAt) {
		return ErrLeaseLost
	}

	f(i)
	return nil
}
