package api

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/JojoFlex1/done/internal/auth"
	"github.com/JojoFlex1/done/internal/bins"
	"github.com/JojoFlex1/done/internal/config"
	data "github.com/JojoFlex1/done/internal/data/fixtures"
	"github.com/JojoFlex1/done/internal/i18n"
	"github.com/JojoFlex1/done/internal/identity"
	"github.com/JojoFlex1/done/internal/mailer"
	"github.com/JojoFlex1/done/internal/mailer/transport"
	"github.com/JojoFlex1/done/internal/metrics"
	"github.com/JojoFlex1/done/internal/rewards"
	"github.com/JojoFlex1/done/internal/rewards/catalog"
	"github.com/JojoFlex1/done/internal/settlement"
	"github.com/JojoFlex1/done/internal/signup"
	"github.com/JojoFlex1/done/internal/storage"
	"github.com/JojoFlex1/done/internal/wallet"
	"github.com/JojoFlex1/done/internal/wallet/address"
	"github.com/JojoFlex1/done/internal/wallet/keystore"
	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// PROVIDERS - order matters, dependencies come first.

// NoTest is used by InitNewServer to satisfy the optional *testing.T of some providers.
func NoTest() []*testing.T {
	return nil
}

func NewDB(cfg config.Server) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	if cfg.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	if cfg.Database.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	return db, nil
}

// NewClock returns a mock clock when running inside a test.
//
//nolint:ireturn
func NewClock(t ...*testing.T) time2.Clock {
	if len(t) > 0 && t[0] != nil {
		t[0].Helper()
		return time2.NewMockClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	}

	return time2.DefaultClock
}

func NewMetrics(cfg config.Server, db *sql.DB) (*metrics.Service, error) {
	if cfg.Persistence.Driver != config.PersistencePostgres {
		return metrics.New(cfg, nil)
	}

	return metrics.New(cfg, db)
}

func NewI18N(cfg config.Server) (*i18n.Service, error) {
	return i18n.New(cfg.I18n)
}

func NewMailer(cfg config.Server, i *i18n.Service) (*mailer.Mailer, error) {
	var t transport.MailTransporter

	switch cfg.Mailer.Transporter {
	case config.MailTransporterSMTP:
		t = transport.NewSMTP(cfg.SMTP)
	case config.MailTransporterMock:
		log.Warn().Msg("Initializing mock mailer, OTP mails are not delivered")
		t = transport.NewMock()
	default:
		return nil, errors.Errorf("unsupported mail transporter %q", cfg.Mailer.Transporter)
	}

	return mailer.New(cfg.Mailer, t, i)
}

//nolint:ireturn
func NewKeystore(cfg config.Server) (keystore.Service, error) {
	return keystore.NewService(keystore.Params{
		Version:    keystore.Version(cfg.Wallet.EnvelopeVersion),
		ScryptLogN: cfg.Wallet.ScryptLogN,
	})
}

//nolint:ireturn
func NewWallet(cfg config.Server, ks keystore.Service) (wallet.Service, error) {
	return wallet.NewService(cfg.Wallet, ks, address.NewService())
}

//nolint:ireturn
func NewProfiles(cfg config.Server, db *sql.DB, clock time2.Clock) identity.Repository {
	if cfg.Persistence.Driver == config.PersistenceMemory {
		return identity.NewMemoryRepository(clock)
	}

	return identity.NewPostgresRepository(db)
}

//nolint:ireturn
func NewAuth(cfg config.Server, profiles identity.Repository, clock time2.Clock) (auth.Service, error) {
	return auth.NewService(cfg.Auth, profiles, clock)
}

//nolint:ireturn
func NewPendingStore(cfg config.Server, db *sql.DB) signup.PendingStore {
	if cfg.Persistence.Driver == config.PersistenceMemory {
		return signup.NewMemoryStore()
	}

	return signup.NewPostgresStore(db)
}

//nolint:ireturn
func NewSignup(
	cfg config.Server,
	store signup.PendingStore,
	profiles identity.Repository,
	walletService wallet.Service,
	mail *mailer.Mailer,
	authService auth.Service,
	clock time2.Clock,
	m *metrics.Service,
) (signup.Service, error) {
	return signup.NewService(cfg.Signup, store, profiles, walletService, mail, authService, clock, m)
}

func NewCatalog() *catalog.Catalog {
	return catalog.Default()
}

// NewBins returns the bin directory. The in-memory directory starts with the fixture bins.
//
//nolint:ireturn
func NewBins(cfg config.Server, db *sql.DB) (bins.Directory, error) {
	if cfg.Persistence.Driver == config.PersistenceMemory {
		dir := bins.NewMemoryDirectory()
		if _, err := data.Upsert(context.Background(), dir, data.Fixtures()); err != nil {
			return nil, err
		}
		return dir, nil
	}

	return bins.NewPostgresDirectory(db), nil
}

//nolint:ireturn
func NewOutbox(cfg config.Server, db *sql.DB, clock time2.Clock) settlement.OutboxStore {
	if cfg.Persistence.Driver == config.PersistenceMemory {
		return settlement.NewMemoryOutbox(clock)
	}

	return settlement.NewPostgresOutbox(db, clock)
}

//nolint:ireturn
func NewRewardsRepository(cfg config.Server, db *sql.DB, profiles identity.Repository, outbox settlement.OutboxStore) (rewards.Repository, error) {
	if cfg.Persistence.Driver == config.PersistenceMemory {
		cache, ok := profiles.(rewards.PointsCache)
		if !ok {
			return nil, errors.Errorf("profile repository %T does not keep point totals", profiles)
		}
		return rewards.NewMemoryRepository(cache, outbox), nil
	}

	return rewards.NewPostgresRepository(db, outbox), nil
}

//nolint:ireturn
func NewRewards(
	cat *catalog.Catalog,
	directory bins.Directory,
	repo rewards.Repository,
	clock time2.Clock,
	m *metrics.Service,
) (rewards.Service, error) {
	return rewards.NewService(cat, directory, repo, clock, m)
}

//nolint:ireturn
func NewOracle(cfg config.Server) (settlement.Oracle, error) {
	switch cfg.Settlement.Oracle {
	case config.OracleRPC:
		oracle, err := settlement.DialRPCOracle(context.Background(), cfg.Settlement.RPCURL)
		if err != nil {
			return nil, err
		}
		return oracle, nil
	case config.OracleMock:
		log.Warn().Msg("Initializing mock settlement oracle, rewards are not settled on chain")
		return settlement.NewMockOracle(), nil
	default:
		return nil, errors.Errorf("unsupported settlement oracle %q", cfg.Settlement.Oracle)
	}
}

func NewReconciler(
	ledger rewards.Service,
	profiles identity.Repository,
	outbox settlement.OutboxStore,
	oracle settlement.Oracle,
	clock time2.Clock,
	m *metrics.Service,
) (*settlement.Reconciler, error) {
	return settlement.NewReconciler(ledger, profiles, outbox, oracle, clock, m)
}

func NewSettlementWorker(
	cfg config.Server,
	outbox settlement.OutboxStore,
	reconciler *settlement.Reconciler,
	clock time2.Clock,
	m *metrics.Service,
) (*settlement.Worker, error) {
	return settlement.NewWorker(cfg.Settlement, outbox, reconciler, clock, m)
}

//nolint:ireturn
func NewPhotoStore(cfg config.Server) (storage.PhotoStore, error) {
	return storage.New(context.Background(), cfg.Storage)
}
