package metrics_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cfg := config.Server{Database: config.Database{Database: "reloop"}}
	m, err := metrics.New(cfg, db)
	require.NoError(t, err)

	m.SignupStarted()
	m.SignupVerified()
	m.SignupFailed("invalid_otp")
	m.SubmissionRecorded("smartphone", 3000000)
	m.SubmissionRecorded("laptop", 5000000)
	m.SettlementAttempt("settled", 20*time.Millisecond)
	m.OutboxClaimed(3)

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	names := make(map[string]int, len(families))
	for _, f := range families {
		names[f.GetName()] = len(f.GetMetric())
	}

	assert.Contains(t, names, "reloop_signup_started_total")
	assert.Contains(t, names, "reloop_ledger_points_awarded_total")
	assert.Contains(t, names, "reloop_settlement_oracle_duration_seconds")
	assert.Contains(t, names, "go_sql_stats_connections_open")
	assert.Equal(t, 2, names["reloop_ledger_submissions_total"])
}

func TestNilMetrics(t *testing.T) {
	var m *metrics.Service

	assert.NotPanics(t, func() {
		m.SignupStarted()
		m.SignupVerified()
		m.SignupFailed("expired")
		m.SubmissionRecorded("laptop", 1)
		m.SettlementAttempt("failed", time.Second)
		m.OutboxClaimed(0)
	})
	assert.Nil(t, m.Registry())
}
