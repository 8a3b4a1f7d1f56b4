package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order placement.
//
// Placement is one transaction: every line's stock is reserved against the
// ledger (all-or-nothing), the catalog snapshot is taken, a daily sequence
// number becomes the human-facing order number, and the order is persisted
// in confirmed status. Online payments are verified against the gateway
// before the transaction opens; the customer notification goes out after
// commit.
type CreateOrderCommandHandler struct {
	uowFactory CreateOrderUoWFactory
	gateway    ports.PaymentGateway
	notifier   ports.Notifier
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory CreateOrderUoWFactory,
	gateway ports.PaymentGateway,
	notifier ports.Notifier,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		notifier:   notifier,
	}
}

// Handle processes the order placement command.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	paymentStatus := order.PaymentPending
	if cmd.PaymentMethod() == order.PaymentMethodOnline {
		if err := h.gateway.VerifyPayment(ctx, cmd.PaymentRef()); err != nil {
			return err
		}
		paymentStatus = order.PaymentPaid
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()

	items := make([]*order.Item, 0, len(cmd.Lines()))
	itemsTotal := kernel.ZeroMoney()
	for _, line := range cmd.Lines() {
		p, err := productRepo.Get(ctx, line.ProductID)
		if err != nil {
			return err
		}

		if err = productRepo.Reserve(ctx, line.ProductID, line.Quantity); err != nil {
			return err
		}

		item, err := order.NewItem(kernel.NewUUID(), p.ID(), p.Name(), p.Price(), line.Quantity)
		if err != nil {
			return err
		}

		items = append(items, item)
		itemsTotal = itemsTotal.Add(item.LineTotal())
	}

	pricing, err := buildPricing(itemsTotal, cmd)
	if err != nil {
		return err
	}

	orderNumber, err := nextOrderNumber(ctx, uow.CounterStore(), now)
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(), orderNumber, cmd.CustomerID(),
		items, pricing, cmd.PaymentMethod(), paymentStatus, now,
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.OrderStatusChanged(ctx, newOrder.CustomerID(), newOrder.OrderNumber(), newOrder.Status().String())
	return nil
}

func buildPricing(itemsTotal kernel.Money, cmd CreateOrderCommand) (order.Pricing, error) {
	total := itemsTotal.Add(cmd.DeliveryCharge()).Add(cmd.Tax())

	total, err := total.Sub(cmd.Discount())
	if err != nil {
		return order.Pricing{}, err
	}

	total, err = total.Sub(cmd.CouponDiscount())
	if err != nil {
		return order.Pricing{}, err
	}

	return order.Pricing{
		ItemsTotal:     itemsTotal,
		DeliveryCharge: cmd.DeliveryCharge(),
		Tax:            cmd.Tax(),
		Discount:       cmd.Discount(),
		CouponDiscount: cmd.CouponDiscount(),
		TotalAmount:    total,
	}, nil
}

// nextOrderNumber draws the day's next sequence number and formats the
// human-facing order number, e.g. ORD-20260314-0042.
func nextOrderNumber(ctx context.Context, counter ports.CounterStore, now time.Time) (string, error) {
	day := now.Format("20060102")

	seq, err := counter.Next(ctx, "orders:"+day)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("ORD-%s-%04d", day, seq), nil
}
