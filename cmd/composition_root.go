package cmd

import (
	"log/slog"
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/adapters/out/postgres"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/adapters/out/postgres/arearepo"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/adapters/out/postgres/promorepo"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/application/usecases/commands"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/application/usecases/queries"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/ports"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the adapters into the command and query handlers.
// One instance is built at startup; every Create* method hands out a handler
// bound to the shared infrastructure.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	areaRepo   ports.ServiceAreaRepository
	promoRepo  ports.PromotionRepository
	gateway    ports.PaymentGateway
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	gateway ports.PaymentGateway,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		areaRepo:   arearepo.NewGormServiceAreaRepository(gormDB),
		promoRepo:  promorepo.NewGormPromotionRepository(gormDB),
		gateway:    gateway,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(
		f, c.areaRepo, c.promoRepo, c.gateway, c.dispatcher, c.logger, time.Now)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmPaymentCommandHandler(f, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimOrderCommandHandler(f, c.dispatcher, c.logger, time.Now)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderCommandHandler(f, c.dispatcher, c.logger, time.Now)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.gateway, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateFailOrderCommandHandler() commands.FailOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewFailOrderCommandHandler(f, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnclaimedOrdersQueryHandler() queries.GetUnclaimedOrdersQueryHandler {
	return queries.NewGetUnclaimedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(&c.uowFactory, c.dispatcher, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
