package cmd

import (
	"context"
	"log/slog"

	httpserver "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/in/ws"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/keylock"
	"fulfillment/internal/pkg/metrics"
	"fulfillment/internal/presence"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// CompositionRoot wires the adapters, use cases and realtime channel
// together. Shared state (registry, hub, keyed locks, metrics) is
// created once here and handed to everything that needs it.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	registry *presence.Registry
	hub      *ws.Hub
	router   *ws.Router

	orderLocks *keylock.KeyedMutex
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, registry prometheus.Registerer, logger *slog.Logger) CompositionRoot {
	m := metrics.New(registry)
	presenceRegistry := presence.NewRegistry()
	hub := ws.NewHub(logger, m)
	router := ws.NewRouter(hub, presenceRegistry, logger, m)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   presenceRegistry,
		hub:        hub,
		router:     router,
		orderLocks: keylock.NewKeyedMutex(),
		metrics:    m,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.router)
}

func (c *CompositionRoot) CreateUpdateProgressCommandHandler() commands.UpdateProgressCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateProgressCommandHandler(f, c.router, c.orderLocks, c.logger)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateFilterOrdersQueryHandler() queries.FilterOrdersQueryHandler {
	return queries.NewFilterOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpserver.Server {
	return httpserver.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateProgressCommandHandler(),
		c.CreateGetAllOrdersQueryHandler(),
		c.CreateFilterOrdersQueryHandler(),
		c.hub,
		c.pingDatabase,
		c.metrics,
		c.logger,
	)
}

func (c *CompositionRoot) pingDatabase(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

func (c *CompositionRoot) CreateWSServer() *ws.Server {
	return ws.NewServer(c.hub, c.router)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.router, c.CreateGetAllOrdersQueryHandler(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
