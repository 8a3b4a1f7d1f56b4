package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func codCreateCommand(t *testing.T, productID kernel.UUID) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(),
		[]commands.OrderLine{{ProductID: productID, Quantity: 2}},
		kernel.MustMoneyFromFloat(40), kernel.ZeroMoney(), kernel.ZeroMoney(), kernel.ZeroMoney(),
		order.PaymentMethodCOD, "",
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	p := fixtureProduct(t)
	cmd := codCreateCommand(t, p.ID())

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	counter := new(MockCounterStore)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", mock.Anything, p.ID()).Return(p, nil).Once(),
		productRepo.On("Reserve", mock.Anything, p.ID(), 2).Return(nil).Once(),
		uow.On("CounterStore").Return(counter).Once(),
		counter.On("Next", mock.Anything, mock.MatchedBy(func(scope string) bool {
			return len(scope) == len("orders:20060102")
		})).Return(int64(42), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.Status() == order.Confirmed &&
				o.Pricing().TotalAmount.IsEqual(kernel.MustMoneyFromFloat(1040))
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, new(MockPaymentGateway), NopNotifier{})
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	counter.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_InsufficientStock(t *testing.T) {
	ctx := t.Context()
	p := fixtureProduct(t)
	cmd := codCreateCommand(t, p.ID())
	stockErr := product.NewInsufficientStockError(p.ID(), 2, 1)

	productRepo := new(MockProductRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", mock.Anything, p.ID()).Return(p, nil).Once(),
		productRepo.On("Reserve", mock.Anything, p.ID(), 2).Return(stockErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, new(MockPaymentGateway), NopNotifier{})
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, product.ErrInsufficientStock)
	uow.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_OnlinePaymentRejected(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(),
		[]commands.OrderLine{{ProductID: kernel.NewUUID(), Quantity: 1}},
		kernel.ZeroMoney(), kernel.ZeroMoney(), kernel.ZeroMoney(), kernel.ZeroMoney(),
		order.PaymentMethodOnline, "pay_ref_123",
	)
	require.NoError(t, err)

	gateway := new(MockPaymentGateway)
	gateway.On("VerifyPayment", ctx, "pay_ref_123").
		Return(errs.NewExternalFailureErrorWithCause("payment gateway", errors.New("declined"))).Once()

	// the transaction never opens when the gateway declines
	factory := new(MockCreateOrderUoWFactory)

	h := commands.NewCreateOrderCommandHandler(factory, gateway, NopNotifier{})
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrExternalFailure)
	gateway.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewCreateOrderCommandHandler(new(MockCreateOrderUoWFactory), new(MockPaymentGateway), NopNotifier{})
	err := h.Handle(t.Context(), commands.CreateOrderCommand{})
	require.Error(t, err)
}
