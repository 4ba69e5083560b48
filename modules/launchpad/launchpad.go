package launchpad

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/runeforge-network/launchpad/common/errs"
	"github.com/runeforge-network/launchpad/core"
	"github.com/runeforge-network/launchpad/internal/config"
	"github.com/runeforge-network/launchpad/internal/postgres"
	"github.com/runeforge-network/launchpad/modules/launchpad/api/httphandler"
	"github.com/runeforge-network/launchpad/modules/launchpad/paymentclient"
	launchpadpostgres "github.com/runeforge-network/launchpad/modules/launchpad/repository/postgres"
	"github.com/runeforge-network/launchpad/modules/launchpad/signerclient"
	"github.com/runeforge-network/launchpad/modules/launchpad/usecase"
	"github.com/runeforge-network/launchpad/pkg/logger"
	"github.com/samber/do/v2"
)

const Version = "v0.1.0"

// Module owns the launchpad ledger: its datastore, external service clients,
// HTTP API and the stuck-transfer sweeper.
type Module struct {
	usecase *usecase.Usecase
	conf    config.Config

	cleanupFuncs []func(context.Context) error
}

var _ core.Worker = (*Module)(nil)

func New(injector do.Injector) (core.Worker, error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)
	moduleConf := conf.Modules.Launchpad

	var cleanupFuncs []func(context.Context) error
	pg, err := postgres.NewPool(ctx, moduleConf.Postgres)
	if err != nil {
		if errors.Is(err, errs.InvalidArgument) {
			return nil, errors.Wrap(err, "Invalid Postgres configuration for launchpad")
		}
		return nil, errors.Wrap(err, "can't create Postgres connection pool")
	}
	cleanupFuncs = append(cleanupFuncs, func(ctx context.Context) error {
		pg.Close()
		return nil
	})
	repo := launchpadpostgres.NewRepository(pg)

	paymentClient, err := paymentclient.New(moduleConf.Payment)
	if err != nil {
		return nil, errors.Wrap(err, "can't create payment service client")
	}
	signerClient, err := signerclient.New(moduleConf.Signer)
	if err != nil {
		return nil, errors.Wrap(err, "can't create signer client")
	}
	signerClient.SetAccount(moduleConf.Signer.Account)

	uc := usecase.New(repo, paymentClient, signerClient, conf.Network, moduleConf.Admin, moduleConf.Payment.Account, clockwork.NewRealClock())

	// a persisted signer override takes priority over the configured account
	if err := uc.RestoreSignerAccount(ctx); err != nil {
		return nil, errors.Wrap(err, "can't restore signer account")
	}

	httpServer := do.MustInvoke[*fiber.App](injector)
	handler := httphandler.New(uc, moduleConf.AuthTokens)
	if err := handler.Mount(httpServer); err != nil {
		return nil, errors.Wrap(err, "can't mount launchpad API")
	}
	logger.InfoContext(ctx, "Mounted launchpad HTTP handler")

	return &Module{
		usecase:      uc,
		conf:         conf,
		cleanupFuncs: cleanupFuncs,
	}, nil
}

// Run drives the stuck-transfer sweeper until ctx is done. A zero sweeper
// interval disables it and Run blocks until shutdown.
func (m *Module) Run(ctx context.Context) error {
	sweeper := m.conf.Modules.Launchpad.Sweeper
	if sweeper.Interval <= 0 {
		<-ctx.Done()
		return nil
	}

	clock := clockwork.NewRealClock()
	ticker := clock.NewTicker(sweeper.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			if _, err := m.usecase.ReportStuckTransfers(ctx, sweeper.MaxAge); err != nil {
				return errors.Wrap(err, "sweeper failed")
			}
		}
	}
}

func (m *Module) Shutdown(ctx context.Context) error {
	for _, cleanup := range m.cleanupFuncs {
		if err := cleanup(ctx); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
