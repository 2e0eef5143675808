package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/JojoFlex1/done/internal/auth"
	"github.com/JojoFlex1/done/internal/bins"
	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/i18n"
	"github.com/JojoFlex1/done/internal/identity"
	"github.com/JojoFlex1/done/internal/mailer"
	"github.com/JojoFlex1/done/internal/metrics"
	"github.com/JojoFlex1/done/internal/rewards"
	"github.com/JojoFlex1/done/internal/rewards/catalog"
	"github.com/JojoFlex1/done/internal/settlement"
	"github.com/JojoFlex1/done/internal/signup"
	"github.com/JojoFlex1/done/internal/storage"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/JojoFlex1/done/internal/wallet"
	"github.com/dropbox/godropbox/time2"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	// Import postgres driver for database/sql package
	_ "github.com/lib/pq"
)

type Router struct {
	Routes     []*echo.Route
	Root       *echo.Group
	Management *echo.Group
	Auth       *echo.Group
	Wallet     *echo.Group
	Waste      *echo.Group
	Rewards    *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the components
// in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized after the InitNewServer* call.
// For more information about wire refer to https://pkg.go.dev/github.com/google/wire
type Server struct {
	// skip wire:
	// -> initialized with router.Init(s) function
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config     config.Server
	DB         *sql.DB
	Clock      time2.Clock
	Metrics    *metrics.Service
	I18n       *i18n.Service
	Mailer     *mailer.Mailer
	Wallet     wallet.Service
	Profiles   identity.Repository
	Auth       auth.Service
	Signup     signup.Service
	Catalog    *catalog.Catalog
	Bins       bins.Directory
	Rewards    rewards.Service
	Outbox     settlement.OutboxStore
	Reconciler *settlement.Reconciler
	Settlement *settlement.Worker
	Photos     storage.PhotoStore
}

// newServerWithComponents is used by wire to initialize the server components.
// Components not listed here won't be handled by wire and should be initialized separately.
// Components which shouldn't be handled must be labeled `wire:"-"` in Server struct.
func newServerWithComponents(
	cfg config.Server,
	db *sql.DB,
	clock time2.Clock,
	m *metrics.Service,
	i18n *i18n.Service,
	mail *mailer.Mailer,
	walletService wallet.Service,
	profiles identity.Repository,
	authService auth.Service,
	signupService signup.Service,
	cat *catalog.Catalog,
	directory bins.Directory,
	rewardsService rewards.Service,
	outbox settlement.OutboxStore,
	reconciler *settlement.Reconciler,
	worker *settlement.Worker,
	photos storage.PhotoStore,
) *Server {
	return &Server{
		Config:     cfg,
		DB:         db,
		Clock:      clock,
		Metrics:    m,
		I18n:       i18n,
		Mailer:     mail,
		Wallet:     walletService,
		Profiles:   profiles,
		Auth:       authService,
		Signup:     signupService,
		Catalog:    cat,
		Bins:       directory,
		Rewards:    rewardsService,
		Outbox:     outbox,
		Reconciler: reconciler,
		Settlement: worker,
		Photos:     photos,
	}
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return true
}

// UsesDatabase reports whether the repositories are backed by Postgres.
func (s *Server) UsesDatabase() bool {
	return s.Config.Persistence.Driver == config.PersistencePostgres
}

// StartBackground launches the signup sweeper and the settlement worker. Both stop with ctx.
func (s *Server) StartBackground(ctx context.Context) {
	s.Signup.StartSweeper(ctx, s.Config.Signup.SweepInterval)
	s.Settlement.Start(ctx)
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.DB != nil {
		log.Debug().Msg("Closing database connection")

		if err := s.DB.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			log.Error().Err(err).Msg("Failed to close database connection")
			errs = append(errs, err)
		}
	}

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	return errs
}
