package common

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ProbeReadiness runs the read-only probes. A nil db skips the database probe.
// It returns a human readable report and every probe error.
func ProbeReadiness(ctx context.Context, db *sql.DB, timeout time.Duration, writeablePaths []string) (string, []error) {
	var b strings.Builder
	var errs []error

	if db != nil {
		if err := probeDatabasePing(ctx, db, timeout); err != nil {
			errs = append(errs, err)
			fmt.Fprintf(&b, "Probe database: Ping failed: %v\n", err)
		} else {
			b.WriteString("Probe database: Ping succeeded.\n")
		}
	}

	for _, p := range writeablePaths {
		if err := probePathExists(p); err != nil {
			errs = append(errs, err)
			fmt.Fprintf(&b, "Probe path %q: %v\n", p, err)
		} else {
			fmt.Fprintf(&b, "Probe path %q: exists.\n", p)
		}
	}

	return b.String(), errs
}

// ProbeLiveness extends ProbeReadiness with a write probe to every path and a database round trip.
func ProbeLiveness(ctx context.Context, db *sql.DB, timeout time.Duration, writeablePaths []string, touchName string) (string, []error) {
	report, errs := ProbeReadiness(ctx, db, timeout, writeablePaths)

	var b strings.Builder
	b.WriteString(report)

	if db != nil {
		if err := probeDatabaseNow(ctx, db, timeout); err != nil {
			errs = append(errs, err)
			fmt.Fprintf(&b, "Probe database: Query failed: %v\n", err)
		} else {
			b.WriteString("Probe database: Query succeeded.\n")
		}
	}

	for _, p := range writeablePaths {
		if err := probePathWriteable(p, touchName); err != nil {
			errs = append(errs, err)
			fmt.Fprintf(&b, "Probe path %q: not writeable: %v\n", p, err)
		} else {
			fmt.Fprintf(&b, "Probe path %q: writeable.\n", p)
		}
	}

	return b.String(), errs
}

func probeDatabasePing(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return errors.Wrap(err, "database ping failed")
	}

	return nil
}

func probeDatabaseNow(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var now time.Time
	if err := db.QueryRowContext(ctx, "SELECT CURRENT_TIMESTAMP").Scan(&now); err != nil {
		return errors.Wrap(err, "database query failed")
	}

	return nil
}

func probePathExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", path)
	}
	if !info.IsDir() {
		return errors.Errorf("%s is not a directory", path)
	}

	return nil
}

func probePathWriteable(path string, touchName string) error {
	file := filepath.Join(path, touchName)

	if err := os.WriteFile(file, []byte(time.Now().UTC().Format(time.RFC3339)), 0o600); err != nil {
		return errors.Wrapf(err, "failed to write %s", file)
	}

	return os.Remove(file)
}
