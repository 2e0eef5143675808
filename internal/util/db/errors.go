package db

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const (
	pgUniqueViolation = "23505"
)

// IsUniqueViolation reports whether err is a Postgres unique constraint violation.
// constraint optionally restricts the match to the named constraints.
func IsUniqueViolation(err error, constraint ...string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	if pqErr.Code != pgUniqueViolation {
		return false
	}

	if len(constraint) == 0 {
		return true
	}

	for _, c := range constraint {
		if pqErr.Constraint == c {
			return true
		}
	}

	return false
}
