package metrics

import (
	"database/sql"
	"time"

	"github.com/JojoFlex1/done/internal/config"
	"github.com/dlmiddlecote/sqlstats"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "reloop"

// Service holds the application metrics. All methods are safe to call on a nil *Service.
type Service struct {
	registry *prometheus.Registry

	signupsStarted  prometheus.Counter
	signupsVerified prometheus.Counter
	signupFailures  *prometheus.CounterVec

	submissions   *prometheus.CounterVec
	pointsAwarded prometheus.Counter

	settlementAttempts *prometheus.CounterVec
	settlementDuration prometheus.Histogram
	outboxDue          prometheus.Gauge
}

func New(cfg config.Server, db *sql.DB) (*Service, error) {
	registry := prometheus.NewRegistry()

	s := &Service{
		registry: registry,
		signupsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "signup",
			Name:      "started_total",
			Help:      "Signups that reached the pending state.",
		}),
		signupsVerified: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "signup",
			Name:      "verified_total",
			Help:      "Signups verified with a correct OTP.",
		}),
		signupFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "signup",
			Name:      "failures_total",
			Help:      "Rejected signup operations by reason.",
		}, []string{"reason"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "submissions_total",
			Help:      "Recorded waste submissions by waste type.",
		}, []string{"waste_type"}),
		pointsAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "points_awarded_total",
			Help:      "Points credited through earned transactions.",
		}),
		settlementAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "settlement",
			Name:      "attempts_total",
			Help:      "Settlement attempts by result.",
		}, []string{"result"}),
		settlementDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "settlement",
			Name:      "oracle_duration_seconds",
			Help:      "Latency of settlement oracle calls.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		outboxDue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "settlement",
			Name:      "outbox_claimed",
			Help:      "Intents claimed by the last worker run.",
		}),
	}

	collectorsToRegister := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		s.signupsStarted,
		s.signupsVerified,
		s.signupFailures,
		s.submissions,
		s.pointsAwarded,
		s.settlementAttempts,
		s.settlementDuration,
		s.outboxDue,
	}

	if db != nil {
		collectorsToRegister = append(collectorsToRegister, sqlstats.NewStatsCollector(cfg.Database.Database, db))
	}

	for _, c := range collectorsToRegister {
		if err := registry.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register metrics collector")
		}
	}

	return s, nil
}

// Registry is the registry all application collectors are registered with.
func (s *Service) Registry() *prometheus.Registry {
	if s == nil {
		return nil
	}
	return s.registry
}

func (s *Service) SignupStarted() {
	if s == nil {
		return
	}
	s.signupsStarted.Inc()
}

func (s *Service) SignupVerified() {
	if s == nil {
		return
	}
	s.signupsVerified.Inc()
}

func (s *Service) SignupFailed(reason string) {
	if s == nil {
		return
	}
	s.signupFailures.WithLabelValues(reason).Inc()
}

func (s *Service) SubmissionRecorded(wasteType string, points int64) {
	if s == nil {
		return
	}
	s.submissions.WithLabelValues(wasteType).Inc()
	s.pointsAwarded.Add(float64(points))
}

func (s *Service) SettlementAttempt(result string, d time.Duration) {
	if s == nil {
		return
	}
	s.settlementAttempts.WithLabelValues(result).Inc()
	s.settlementDuration.Observe(d.Seconds())
}

func (s *Service) OutboxClaimed(n int) {
	if s == nil {
		return
	}
	s.outboxDue.Set(float64(n))
}
