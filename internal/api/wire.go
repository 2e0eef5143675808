//go:build wireinject

package api

import (
	"database/sql"
	"testing"

	"github.com/JojoFlex1/done/internal/config"
	"github.com/google/wire"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	NewMetrics,
	NewI18N,
	NewMailer,
	walletSet,
	identitySet,
	rewardsSet,
	settlementSet,
	NewPhotoStore,
)

var walletSet = wire.NewSet(
	NewKeystore,
	NewWallet,
)

var identitySet = wire.NewSet(
	NewProfiles,
	NewAuth,
	NewPendingStore,
	NewSignup,
)

var rewardsSet = wire.NewSet(
	NewCatalog,
	NewBins,
	NewRewardsRepository,
	NewRewards,
)

var settlementSet = wire.NewSet(
	NewOutbox,
	NewOracle,
	NewReconciler,
	NewSettlementWorker,
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet, NewDB, NoTest, NewClock)
	return new(Server), nil
}

// InitNewServerWithDB returns a new Server instance with the given DB instance.
// All the other components are initialized via go wire according to the configuration.
func InitNewServerWithDB(
	_ config.Server,
	_ *sql.DB,
	t ...*testing.T,
) (*Server, error) {
	wire.Build(serviceSet, NewClock)
	return new(Server), nil
}
