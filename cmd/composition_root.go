package cmd

import (
	"fmt"
	"log/slog"
	"time"

	httpadapter "checkout/internal/adapters/in/http"
	"checkout/internal/adapters/out/catalog"
	"checkout/internal/adapters/out/orderapi"
	"checkout/internal/adapters/out/postgres"
	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/ports"
	"checkout/internal/jobs"

	"gorm.io/gorm"
)

const (
	defaultOrderAPITimeout        = 5 * time.Second
	defaultSessionIdleTimeout     = 30 * time.Minute
	defaultSessionCleanupSchedule = "*/5 * * * *"
)

type CompositionRoot struct {
	config        Config
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	priceCatalog  ports.PriceCatalog
	branchCatalog ports.BranchCatalog
	submitter     ports.OrderSubmitter
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	branchCatalog, err := catalog.NewDefaultBranchCatalog()
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("failed to build branch catalog: %w", err)
	}

	timeout := defaultOrderAPITimeout
	if config.OrderAPITimeout != "" {
		timeout, err = time.ParseDuration(config.OrderAPITimeout)
		if err != nil {
			return CompositionRoot{}, fmt.Errorf("invalid order API timeout: %w", err)
		}
	}

	return CompositionRoot{
		config:        config,
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		priceCatalog:  catalog.NewGormPriceCatalog(gormDB),
		branchCatalog: branchCatalog,
		submitter:     orderapi.NewClient(config.OrderAPIBaseURL, timeout),
	}, nil
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddCartItemCommandHandler(f, c.priceCatalog)
}

func (c *CompositionRoot) CreateUpdateCartItemCommandHandler() commands.UpdateCartItemCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCartItemCommandHandler(f)
}

func (c *CompositionRoot) CreateRemoveCartItemCommandHandler() commands.RemoveCartItemCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveCartItemCommandHandler(f)
}

func (c *CompositionRoot) CreateStartCheckoutCommandHandler() commands.StartCheckoutCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartCheckoutCommandHandler(f)
}

func (c *CompositionRoot) CreateSubmitContactCommandHandler() commands.SubmitContactCommandHandler {
	return commands.NewSubmitContactCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateSubmitFulfillmentCommandHandler() commands.SubmitFulfillmentCommandHandler {
	return commands.NewSubmitFulfillmentCommandHandler(c.sessionUoWFactory(), c.branchCatalog)
}

func (c *CompositionRoot) CreateSubmitPaymentCommandHandler() commands.SubmitPaymentCommandHandler {
	return commands.NewSubmitPaymentCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateGoBackCommandHandler() commands.GoBackCommandHandler {
	return commands.NewGoBackCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateAbandonCheckoutCommandHandler() commands.AbandonCheckoutCommandHandler {
	return commands.NewAbandonCheckoutCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateAbandonStaleSessionsCommandHandler() commands.AbandonStaleSessionsCommandHandler {
	return commands.NewAbandonStaleSessionsCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.submitter)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCheckoutSessionQueryHandler() queries.GetCheckoutSessionQueryHandler {
	return queries.NewGetCheckoutSessionQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		AddCartItem:       c.CreateAddCartItemCommandHandler(),
		UpdateCartItem:    c.CreateUpdateCartItemCommandHandler(),
		RemoveCartItem:    c.CreateRemoveCartItemCommandHandler(),
		StartCheckout:     c.CreateStartCheckoutCommandHandler(),
		SubmitContact:     c.CreateSubmitContactCommandHandler(),
		SubmitFulfillment: c.CreateSubmitFulfillmentCommandHandler(),
		SubmitPayment:     c.CreateSubmitPaymentCommandHandler(),
		GoBack:            c.CreateGoBackCommandHandler(),
		PlaceOrder:        c.CreatePlaceOrderCommandHandler(),
		AbandonCheckout:   c.CreateAbandonCheckoutCommandHandler(),

		GetCart:            c.CreateGetCartQueryHandler(),
		GetCheckoutSession: c.CreateGetCheckoutSessionQueryHandler(),
		GetOrder:           c.CreateGetOrderQueryHandler(),
	}, c.branchCatalog)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) (*jobs.JobManager, error) {
	idleTimeout := defaultSessionIdleTimeout
	if c.config.SessionIdleTimeout != "" {
		parsed, err := time.ParseDuration(c.config.SessionIdleTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid session idle timeout: %w", err)
		}
		idleTimeout = parsed
	}

	schedule := c.config.SessionCleanupSchedule
	if schedule == "" {
		schedule = defaultSessionCleanupSchedule
	}

	return jobs.NewJobManager(
		c.CreateAbandonStaleSessionsCommandHandler(),
		schedule,
		idleTimeout,
		logger,
	), nil
}

func (c *CompositionRoot) sessionUoWFactory() commands.SessionUoWFactory {
	return FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncSessionUoWFactory func() commands.SessionUoW

func (f FuncSessionUoWFactory) Create() commands.SessionUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
