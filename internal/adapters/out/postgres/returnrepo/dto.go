// Package returnrepo provides data transfer objects and mapping functions
// for return-request persistence. The database enforces the single open
// return per order item through a partial unique index over non-terminal
// statuses; Add translates a violation into a conflict error.
package returnrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnDTO represents the database structure for persisting return requests.
// Enums are stored in their string form; pickup and exchange details are
// flattened into nullable columns keyed on their presence.
type ReturnDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderItemID uuid.UUID `gorm:"type:uuid;not null"`
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index"`

	Reason      string `gorm:"type:varchar(32);not null"`
	Description string `gorm:"type:text;not null"`
	ReturnType  string `gorm:"type:varchar(16);not null"`
	Quantity    int    `gorm:"type:int;not null"`
	Status      string `gorm:"type:varchar(32);index;not null"`

	RefundAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	RefundMethod        string          `gorm:"type:varchar(32);not null"`
	EstimatedRefundDate time.Time       `gorm:"not null"`
	RefundedAt          *time.Time

	PickupDate     *time.Time
	PickupTimeSlot *string    `gorm:"type:varchar(32)"`
	PickupAgentID  *uuid.UUID `gorm:"type:uuid"`

	ExchangeProductID *uuid.UUID `gorm:"type:uuid"`
	ExchangeSize      *string    `gorm:"type:varchar(16)"`
	ExchangeColor     *string    `gorm:"type:varchar(32)"`

	RejectionReason   string `gorm:"type:text;not null;default:''"`
	QualityCheckNotes string `gorm:"type:text;not null;default:''"`

	CreatedAt time.Time `gorm:"not null"`

	AdminNotes []AdminNoteDTO `gorm:"foreignKey:ReturnID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for return-request entities.
func (ReturnDTO) TableName() string {
	return "return_requests"
}

// AdminNoteDTO represents one persisted row of a return's audit trail.
// The serial primary key preserves insertion order.
type AdminNoteDTO struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	ReturnID uuid.UUID `gorm:"type:uuid;not null;index"`
	Note     string    `gorm:"type:text;not null"`
	Author   string    `gorm:"type:varchar(64);not null"`
	At       time.Time `gorm:"not null"`
}

// TableName specifies the database table name for admin note entities.
func (AdminNoteDTO) TableName() string {
	return "return_admin_notes"
}

// fromDomain converts a return-request domain aggregate to its database representation.
func fromDomain(r *rma.ReturnRequest) ReturnDTO {
	returnID := r.ID().Bytes()

	notes := make([]AdminNoteDTO, 0, len(r.AdminNotes()))
	for _, note := range r.AdminNotes() {
		notes = append(notes, AdminNoteDTO{
			ReturnID: returnID,
			Note:     note.Note(),
			Author:   note.By(),
			At:       note.At(),
		})
	}

	dto := ReturnDTO{
		ID:          returnID,
		OrderID:     r.OrderID().Bytes(),
		OrderItemID: r.OrderItemID().Bytes(),
		CustomerID:  r.CustomerID().Bytes(),

		Reason:      r.Reason().String(),
		Description: r.Description(),
		ReturnType:  r.ReturnType().String(),
		Quantity:    r.Quantity(),
		Status:      r.Status().String(),

		RefundAmount:        r.RefundAmount().Amount(),
		RefundMethod:        r.RefundMethod().String(),
		EstimatedRefundDate: r.EstimatedRefundDate(),
		RefundedAt:          r.RefundedAt(),

		RejectionReason:   r.RejectionReason(),
		QualityCheckNotes: r.QualityCheckNotes(),

		CreatedAt:  r.CreatedAt(),
		AdminNotes: notes,
	}

	if pickup := r.Pickup(); pickup != nil {
		date := pickup.Date()
		timeSlot := pickup.TimeSlot()
		dto.PickupDate = &date
		dto.PickupTimeSlot = &timeSlot
		if agentID := pickup.AgentID(); agentID != nil {
			raw := agentID.Bytes()
			dto.PickupAgentID = &raw
		}
	}

	if exchange := r.Exchange(); exchange != nil {
		productID := exchange.ProductID().Bytes()
		size := exchange.Size()
		color := exchange.Color()
		dto.ExchangeProductID = &productID
		dto.ExchangeSize = &size
		dto.ExchangeColor = &color
	}

	return dto
}

// toDomain converts a database DTO to a return-request domain aggregate
// using RestoreReturnRequest.
func toDomain(dto ReturnDTO) (*rma.ReturnRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	orderItemID, err := kernel.UUIDFromBytes(dto.OrderItemID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	reason, err := rma.ReasonFromString(dto.Reason)
	if err != nil {
		return nil, err
	}

	returnType, err := rma.TypeFromString(dto.ReturnType)
	if err != nil {
		return nil, err
	}

	status, err := rma.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	refundMethod, err := rma.RefundMethodFromString(dto.RefundMethod)
	if err != nil {
		return nil, err
	}

	refundAmount, err := kernel.NewMoney(dto.RefundAmount)
	if err != nil {
		return nil, err
	}

	pickup, err := pickupToDomain(dto)
	if err != nil {
		return nil, err
	}

	exchange, err := exchangeToDomain(dto)
	if err != nil {
		return nil, err
	}

	notes := make([]rma.AdminNote, 0, len(dto.AdminNotes))
	for _, note := range dto.AdminNotes {
		notes = append(notes, rma.NewAdminNote(note.Note, note.Author, note.At))
	}

	return rma.RestoreReturnRequest(rma.RestoreReturnRequestParams{
		ID:                  id,
		OrderID:             orderID,
		OrderItemID:         orderItemID,
		CustomerID:          customerID,
		Reason:              reason,
		Description:         dto.Description,
		ReturnType:          returnType,
		Quantity:            dto.Quantity,
		Status:              status,
		RefundAmount:        refundAmount,
		RefundMethod:        refundMethod,
		EstimatedRefundDate: dto.EstimatedRefundDate,
		RefundedAt:          dto.RefundedAt,
		Pickup:              pickup,
		Exchange:            exchange,
		RejectionReason:     dto.RejectionReason,
		QualityCheckNotes:   dto.QualityCheckNotes,
		AdminNotes:          notes,
		CreatedAt:           dto.CreatedAt,
	})
}

func pickupToDomain(dto ReturnDTO) (*rma.Pickup, error) {
	if dto.PickupDate == nil || dto.PickupTimeSlot == nil {
		return nil, nil
	}

	var agentID *kernel.UUID
	if dto.PickupAgentID != nil {
		aID, err := kernel.UUIDFromBytes((*dto.PickupAgentID)[:])
		if err != nil {
			return nil, err
		}
		agentID = &aID
	}

	pickup := rma.RestorePickup(*dto.PickupDate, *dto.PickupTimeSlot, agentID)
	return &pickup, nil
}

func exchangeToDomain(dto ReturnDTO) (*rma.Exchange, error) {
	if dto.ExchangeProductID == nil {
		return nil, nil
	}

	productID, err := kernel.UUIDFromBytes((*dto.ExchangeProductID)[:])
	if err != nil {
		return nil, err
	}

	var size, color string
	if dto.ExchangeSize != nil {
		size = *dto.ExchangeSize
	}
	if dto.ExchangeColor != nil {
		color = *dto.ExchangeColor
	}

	exchange, err := rma.NewExchange(productID, size, color)
	if err != nil {
		return nil, err
	}
	return &exchange, nil
}
