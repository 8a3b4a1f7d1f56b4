// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and payment enums are stored in their string form so the read-side
// SQL can filter on them without knowing the domain's numeric values.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber   string    `gorm:"type:varchar(32);uniqueIndex;not null"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Status        string    `gorm:"type:varchar(32);index;not null"`
	PaymentMethod string    `gorm:"type:varchar(16);not null"`
	PaymentStatus string    `gorm:"type:varchar(16);not null"`

	ItemsTotal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DeliveryCharge decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Tax            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CouponDiscount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	AgentID *uuid.UUID `gorm:"type:uuid;index"`

	AssignmentOTPCode     *string `gorm:"type:varchar(8)"`
	AssignmentOTPDigits   int
	AssignmentOTPIssuedAt *time.Time
	AssignmentOTPAttempts int

	DeliveryOTPCode     *string `gorm:"type:varchar(8)"`
	DeliveryOTPDigits   int
	DeliveryOTPIssuedAt *time.Time
	DeliveryOTPAttempts int

	DeliveredAt *time.Time

	CancellationReason *string `gorm:"type:text"`
	CancelledBy        *string `gorm:"type:varchar(64)"`
	CancelledAt        *time.Time

	CreatedAt time.Time `gorm:"not null"`

	Items   []ItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []HistoryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents the database structure for persisting order lines.
// Links to the order via foreign key; product name and unit price are the
// order-time snapshot, not a reference into the catalog.
type ItemDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity     int             `gorm:"type:int;not null"`
	ReturnStatus string          `gorm:"type:varchar(32);not null;default:''"`
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// HistoryDTO represents one persisted row of an order's status timeline.
// The serial primary key preserves insertion order for the tracking view.
type HistoryDTO struct {
	ID      int64     `gorm:"primaryKey;autoIncrement"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status  string    `gorm:"type:varchar(32);not null"`
	Note    string    `gorm:"type:text;not null"`
	At      time.Time `gorm:"not null"`
}

// TableName specifies the database table name for order history entities.
func (HistoryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including items, history, OTP artifacts and the
// cancellation record.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	items := make([]ItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemDTO{
			ID:           item.ID().Bytes(),
			OrderID:      orderID,
			ProductID:    item.ProductID().Bytes(),
			Name:         item.Name(),
			UnitPrice:    item.UnitPrice().Amount(),
			Quantity:     item.Quantity(),
			ReturnStatus: item.ReturnStatus(),
		})
	}

	history := make([]HistoryDTO, 0, len(o.History()))
	for _, entry := range o.History() {
		history = append(history, HistoryDTO{
			OrderID: orderID,
			Status:  entry.Status().String(),
			Note:    entry.Note(),
			At:      entry.At(),
		})
	}

	var agentID *uuid.UUID
	if id := o.Agent(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	pricing := o.Pricing()
	dto := OrderDTO{
		ID:            orderID,
		OrderNumber:   o.OrderNumber(),
		CustomerID:    o.CustomerID().Bytes(),
		Status:        o.Status().String(),
		PaymentMethod: o.PaymentMethod().String(),
		PaymentStatus: o.PaymentStatus().String(),

		ItemsTotal:     pricing.ItemsTotal.Amount(),
		DeliveryCharge: pricing.DeliveryCharge.Amount(),
		Tax:            pricing.Tax.Amount(),
		Discount:       pricing.Discount.Amount(),
		CouponDiscount: pricing.CouponDiscount.Amount(),
		TotalAmount:    pricing.TotalAmount.Amount(),

		AgentID:     agentID,
		DeliveredAt: o.DeliveredAt(),
		CreatedAt:   o.CreatedAt(),

		Items:   items,
		History: history,
	}

	if otp := o.AssignmentOTP(); otp != nil {
		code := otp.Code()
		issuedAt := otp.IssuedAt()
		dto.AssignmentOTPCode = &code
		dto.AssignmentOTPDigits = otp.Digits()
		dto.AssignmentOTPIssuedAt = &issuedAt
		dto.AssignmentOTPAttempts = otp.Attempts()
	}

	if otp := o.DeliveryOTP(); otp != nil {
		code := otp.Code()
		issuedAt := otp.IssuedAt()
		dto.DeliveryOTPCode = &code
		dto.DeliveryOTPDigits = otp.Digits()
		dto.DeliveryOTPIssuedAt = &issuedAt
		dto.DeliveryOTPAttempts = otp.Attempts()
	}

	if c := o.Cancellation(); c != nil {
		reason := c.Reason()
		cancelledBy := c.CancelledBy()
		at := c.At()
		dto.CancellationReason = &reason
		dto.CancelledBy = &cancelledBy
		dto.CancelledAt = &at
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including items, history and OTP
// artifacts using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	paymentMethod, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	history, err := historyToDomain(dto.History)
	if err != nil {
		return nil, err
	}

	pricing, err := pricingToDomain(dto)
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}
		agentID = &aID
	}

	assignmentOTP, err := otpToDomain(dto.AssignmentOTPCode, dto.AssignmentOTPDigits, dto.AssignmentOTPIssuedAt, dto.AssignmentOTPAttempts)
	if err != nil {
		return nil, err
	}

	deliveryOTP, err := otpToDomain(dto.DeliveryOTPCode, dto.DeliveryOTPDigits, dto.DeliveryOTPIssuedAt, dto.DeliveryOTPAttempts)
	if err != nil {
		return nil, err
	}

	var cancellation *order.Cancellation
	if dto.CancellationReason != nil && dto.CancelledBy != nil && dto.CancelledAt != nil {
		c := order.NewCancellation(*dto.CancellationReason, *dto.CancelledBy, *dto.CancelledAt)
		cancellation = &c
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:            id,
		OrderNumber:   dto.OrderNumber,
		CustomerID:    customerID,
		Items:         items,
		Pricing:       pricing,
		PaymentMethod: paymentMethod,
		PaymentStatus: paymentStatus,
		Status:        status,
		History:       history,
		AgentID:       agentID,
		AssignmentOTP: assignmentOTP,
		DeliveryOTP:   deliveryOTP,
		DeliveredAt:   dto.DeliveredAt,
		Cancellation:  cancellation,
		CreatedAt:     dto.CreatedAt,
	})
}

func itemsToDomain(dtos []ItemDTO) ([]*order.Item, error) {
	items := make([]*order.Item, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}

		productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
		if err != nil {
			return nil, err
		}

		unitPrice, err := kernel.NewMoney(dto.UnitPrice)
		if err != nil {
			return nil, err
		}

		item, err := order.RestoreItem(id, productID, dto.Name, unitPrice, dto.Quantity, dto.ReturnStatus)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func historyToDomain(dtos []HistoryDTO) ([]order.HistoryEntry, error) {
	history := make([]order.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		status, err := order.StatusFromString(dto.Status)
		if err != nil {
			return nil, err
		}
		history = append(history, order.NewHistoryEntry(status, dto.Note, dto.At))
	}

	return history, nil
}

func pricingToDomain(dto OrderDTO) (order.Pricing, error) {
	var (
		pricing order.Pricing
		err     error
	)

	if pricing.ItemsTotal, err = kernel.NewMoney(dto.ItemsTotal); err != nil {
		return order.Pricing{}, err
	}
	if pricing.DeliveryCharge, err = kernel.NewMoney(dto.DeliveryCharge); err != nil {
		return order.Pricing{}, err
	}
	if pricing.Tax, err = kernel.NewMoney(dto.Tax); err != nil {
		return order.Pricing{}, err
	}
	if pricing.Discount, err = kernel.NewMoney(dto.Discount); err != nil {
		return order.Pricing{}, err
	}
	if pricing.CouponDiscount, err = kernel.NewMoney(dto.CouponDiscount); err != nil {
		return order.Pricing{}, err
	}
	if pricing.TotalAmount, err = kernel.NewMoney(dto.TotalAmount); err != nil {
		return order.Pricing{}, err
	}

	return pricing, nil
}

func otpToDomain(code *string, digits int, issuedAt *time.Time, attempts int) (*order.OTP, error) {
	if code == nil || issuedAt == nil {
		return nil, nil
	}
	return order.RestoreOTP(*code, digits, *issuedAt, attempts)
}
