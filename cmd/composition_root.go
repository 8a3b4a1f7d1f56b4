package cmd

import (
	"log/slog"

	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/adapters/out/payment"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/locker"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into command and query handlers.
// One instance is built at startup; every Create method hands out a handler
// backed by the shared database, lock table and outbound collaborators.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	// orderLocks serializes mutations per order so concurrent requests on
	// the same aggregate queue instead of clobbering each other.
	orderLocks *locker.KeyedMutex

	notifier ports.Notifier
	gateway  ports.PaymentGateway
	executor ports.RefundExecutor
}

// NewCompositionRoot builds the application object graph.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	paymentClient := payment.NewClient(config.PaymentBaseURL, config.PaymentAPIKey)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		orderLocks: locker.NewKeyedMutex(),
		notifier:   notify.NewSlogNotifier(logger),
		gateway:    paymentClient,
		executor:   paymentClient,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CreateOrderUoWFactory = FuncCreateOrderUoWFactory(func() commands.CreateOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.gateway, c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.CancelOrderUoWFactory = FuncCancelOrderUoWFactory(func() commands.CancelOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.notifier, c.orderLocks)
}

func (c *CompositionRoot) CreateTransitionStatusCommandHandler() commands.TransitionStatusCommandHandler {
	return commands.NewTransitionStatusCommandHandler(c.orderUoWFactory(), c.notifier, c.orderLocks)
}

func (c *CompositionRoot) CreateAssignDeliveryCommandHandler() commands.AssignDeliveryCommandHandler {
	return commands.NewAssignDeliveryCommandHandler(c.assignmentUoWFactory(), c.notifier, c.orderLocks)
}

func (c *CompositionRoot) CreateUnassignDeliveryCommandHandler() commands.UnassignDeliveryCommandHandler {
	return commands.NewUnassignDeliveryCommandHandler(c.assignmentUoWFactory(), c.orderLocks)
}

func (c *CompositionRoot) CreateIssueDeliveryOTPCommandHandler() commands.IssueDeliveryOTPCommandHandler {
	return commands.NewIssueDeliveryOTPCommandHandler(c.orderUoWFactory(), c.notifier, c.orderLocks)
}

func (c *CompositionRoot) CreateVerifyDeliveryOTPCommandHandler() commands.VerifyDeliveryOTPCommandHandler {
	return commands.NewVerifyDeliveryOTPCommandHandler(c.assignmentUoWFactory(), c.notifier, c.orderLocks)
}

func (c *CompositionRoot) CreateInitiateReturnCommandHandler() commands.InitiateReturnCommandHandler {
	return commands.NewInitiateReturnCommandHandler(c.returnUoWFactory(), c.notifier, c.orderLocks)
}

func (c *CompositionRoot) CreateReviewReturnCommandHandler() commands.ReviewReturnCommandHandler {
	return commands.NewReviewReturnCommandHandler(c.returnUoWFactory(), c.notifier, c.orderLocks)
}

func (c *CompositionRoot) CreateSchedulePickupCommandHandler() commands.SchedulePickupCommandHandler {
	return commands.NewSchedulePickupCommandHandler(c.returnUoWFactory(), c.notifier, c.orderLocks)
}

func (c *CompositionRoot) CreateAdvancePickupCommandHandler() commands.AdvancePickupCommandHandler {
	var f commands.PickupUoWFactory = FuncPickupUoWFactory(func() commands.PickupUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvancePickupCommandHandler(f, c.notifier, c.orderLocks)
}

func (c *CompositionRoot) CreateRecordQualityCheckCommandHandler() commands.RecordQualityCheckCommandHandler {
	return commands.NewRecordQualityCheckCommandHandler(c.returnUoWFactory(), c.notifier, c.orderLocks)
}

func (c *CompositionRoot) CreateSettleReturnCommandHandler() commands.SettleReturnCommandHandler {
	var f commands.SettleReturnUoWFactory = FuncSettleReturnUoWFactory(func() commands.SettleReturnUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSettleReturnCommandHandler(f, c.executor, c.notifier, c.orderLocks)
}

func (c *CompositionRoot) CreateCancelReturnCommandHandler() commands.CancelReturnCommandHandler {
	return commands.NewCancelReturnCommandHandler(c.returnUoWFactory(), c.notifier, c.orderLocks)
}

func (c *CompositionRoot) CreateResetDailyEarningsCommandHandler() commands.ResetDailyEarningsCommandHandler {
	var f commands.AgentUoWFactory = FuncAgentUoWFactory(func() commands.AgentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResetDailyEarningsCommandHandler(f)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAgentEarningsQueryHandler() queries.GetAgentEarningsQueryHandler {
	return queries.NewGetAgentEarningsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) assignmentUoWFactory() commands.AssignmentUoWFactory {
	return FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) returnUoWFactory() commands.ReturnUoWFactory {
	return FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCreateOrderUoWFactory func() commands.CreateOrderUoW

func (f FuncCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	return f()
}

type FuncCancelOrderUoWFactory func() commands.CancelOrderUoW

func (f FuncCancelOrderUoWFactory) Create() commands.CancelOrderUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncReturnUoWFactory func() commands.ReturnUoW

func (f FuncReturnUoWFactory) Create() commands.ReturnUoW {
	return f()
}

type FuncPickupUoWFactory func() commands.PickupUoW

func (f FuncPickupUoWFactory) Create() commands.PickupUoW {
	return f()
}

type FuncSettleReturnUoWFactory func() commands.SettleReturnUoW

func (f FuncSettleReturnUoWFactory) Create() commands.SettleReturnUoW {
	return f()
}

type FuncAgentUoWFactory func() commands.AgentUoW

func (f FuncAgentUoWFactory) Create() commands.AgentUoW {
	return f()
}
