package test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/api/router"
	"github.com/JojoFlex1/done/internal/config"
	"github.com/dropbox/godropbox/time2"
)

// Test secrets, never used outside of tests.
const (
	testJWTSecret     = "test-jwt-secret-0123456789abcdef"
	testEncryptionKey = "test-encryption-key-0123456789"
)

// DefaultTestConfig is the server config used by WithTestServer: in-memory repositories,
// mock mail transport and settlement oracle, photos stored below t.TempDir().
func DefaultTestConfig(t *testing.T) config.Server {
	t.Helper()

	cfg := config.DefaultServiceConfigFromEnv()

	cfg.Persistence.Driver = config.PersistenceMemory
	cfg.Mailer.Transporter = config.MailTransporterMock
	cfg.Settlement.Oracle = config.OracleMock
	cfg.Storage.Driver = config.StorageLocal
	cfg.Storage.UploadPath = t.TempDir()
	cfg.Storage.MaxFileSize = 1 << 20

	cfg.Auth.JWTSecret = testJWTSecret
	cfg.Wallet.EncryptionKey = testEncryptionKey
	cfg.Wallet.Network = "Preprod"
	cfg.Wallet.ScryptLogN = 4
	cfg.Wallet.EnableTestEndpoints = true
	cfg.Wallet.TreasuryMnemonic = ""
	cfg.Wallet.TreasuryAddress = ""

	cfg.Signup.RateLimitPerMinute = 0
	cfg.Signup.SweepInterval = 0

	cfg.Pprof.Enable = false
	cfg.Logger.PrettyPrintConsole = false
	cfg.Management.ProbeWriteablePathsAbs = nil

	return cfg
}

// WithTestServer runs closure against a fully wired server using DefaultTestConfig.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, DefaultTestConfig(t), closure)
}

// WithTestServerConfigurable runs closure against a fully wired server using config.
// The database handle is a sqlmock connection, repositories use it only when
// config selects Postgres persistence.
func WithTestServerConfigurable(t *testing.T, config config.Server, closure func(s *api.Server)) {
	t.Helper()

	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock database: %v", err)
	}

	execClosureNewTestServer(t.Context(), t, config, db, closure)
}

func execClosureNewTestServer(ctx context.Context, t *testing.T, config config.Server, db *sql.DB, closure func(s *api.Server)) {
	t.Helper()

	s := NewTestServer(t, config, db)

	closure(s)

	// the closure may have closed the database already
	_ = s.DB.Close()
	s.DB = nil

	if errs := s.Shutdown(ctx); len(errs) > 0 {
		t.Fatalf("Failed to shutdown server: %v", errs)
	}
}

// NewTestServer wires a server with the mock clock and attaches all routes.
func NewTestServer(t *testing.T, config config.Server, db *sql.DB) *api.Server {
	t.Helper()

	s, err := api.InitNewServerWithDB(config, db, t)
	if err != nil {
		t.Fatalf("Failed to init server: %v", err)
	}

	if err := router.Init(s); err != nil {
		t.Fatalf("Failed to init router: %v", err)
	}

	return s
}

// MockClock returns the mock clock of a test server.
func MockClock(t *testing.T, s *api.Server) *time2.MockClock {
	t.Helper()

	clock, ok := s.Clock.(*time2.MockClock)
	if !ok {
		t.Fatalf("Server clock is %T, not a mock clock", s.Clock)
	}

	return clock
}
