package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestVerifyDeliveryOTPCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o, a, code := fixtureOutForDelivery(t)
	cmd, err := commands.NewVerifyDeliveryOTPCommand(o.ID(), code)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		agentRepo.On("Get", mock.Anything, a.ID()).Return(a, nil).Once(),
		agentRepo.On("Update", mock.Anything, a).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewVerifyDeliveryOTPCommandHandler(factory, NopNotifier{}, newTestLocks())
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, o.Status())
	assert.NotNil(t, o.DeliveredAt())
	assert.Equal(t, 1, a.CompletedDeliveries())
	assert.True(t, a.TotalEarnings().IsEqual(kernel.MustMoneyFromFloat(40)))
	assert.Empty(t, a.ActiveOrders())
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	agentRepo.AssertExpectations(t)
}

func TestVerifyDeliveryOTPCommandHandler_Handle_WrongCodeStillCommits(t *testing.T) {
	ctx := t.Context()
	o, _, code := fixtureOutForDelivery(t)
	wrong := "0000"
	if wrong == code {
		wrong = "0001"
	}
	cmd, err := commands.NewVerifyDeliveryOTPCommand(o.ID(), wrong)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		// the attempt counter must survive, so the update and commit
		// happen even though verification failed
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewVerifyDeliveryOTPCommandHandler(factory, NopNotifier{}, newTestLocks())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrOTPCodeMismatch)
	assert.Equal(t, order.OutForDelivery, o.Status())
	require.NotNil(t, o.DeliveryOTP())
	assert.Equal(t, 1, o.DeliveryOTP().Attempts())
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}
