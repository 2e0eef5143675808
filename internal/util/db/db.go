package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JojoFlex1/done/internal/util"
	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/pkg/errors"
)

type TxFn func(boil.ContextExecutor) error

// WithTransaction runs f inside a transaction and commits when it returns nil.
// The transaction is rolled back on error or panic.
func WithTransaction(ctx context.Context, db *sql.DB, f TxFn) error {
	return WithConfiguredTransaction(ctx, db, nil, f)
}

func WithConfiguredTransaction(ctx context.Context, db *sql.DB, options *sql.TxOptions, f TxFn) (err error) {
	tx, err := db.BeginTx(ctx, options)
	if err != nil {
		util.LogFromContext(ctx).Warn().Err(err).Msg("Failed to start transaction")
		return errors.Wrap(err, "failed to start transaction")
	}
	defer func() {
		if p := recover(); p != nil {
			util.LogFromContext(ctx).Error().Interface("p", p).Msg("Recovered from panic, rolling back transaction and panicking again")

			if txErr := tx.Rollback(); txErr != nil {
				util.LogFromContext(ctx).Warn().Err(txErr).Msg("Failed to roll back transaction after recovering from panic")
			}

			panic(p)
		} else if err != nil {
			util.LogFromContext(ctx).Warn().Err(err).Msg("Received error, rolling back transaction")

			if txErr := tx.Rollback(); txErr != nil {
				util.LogFromContext(ctx).Warn().Err(txErr).Msg("Failed to roll back transaction after receiving error")
			}
		} else {
			err = tx.Commit()
			if err != nil {
				util.LogFromContext(ctx).Warn().Err(err).Msg("Failed to commit transaction")
			}
		}
	}()

	err = f(tx)

	return err
}

// NullIfEmpty maps "" to SQL NULL.
func NullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: len(s) > 0}
}

// Placeholders returns "$start, $start+1, ..." for n arguments.
func Placeholders(start int, n int) string {
	var b []byte
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = fmt.Appendf(b, "$%d", start+i)
	}
	return string(b)
}
