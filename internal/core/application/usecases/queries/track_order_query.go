// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery retrieves the customer-facing view of one order by its
// human-facing number: current status, the status timeline, and the
// assigned agent's contact details when one is on the way.
type TrackOrderQuery struct {
	orderNumber string

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery creates a query to track an order by its number.
func NewTrackOrderQuery(orderNumber string) (TrackOrderQuery, error) {
	if orderNumber == "" {
		return TrackOrderQuery{}, errs.NewValueIsRequiredError("orderNumber")
	}

	return TrackOrderQuery{
		orderNumber: orderNumber,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

// OrderNumber returns the number to track.
func (q TrackOrderQuery) OrderNumber() string {
	return q.orderNumber
}

// TimelineEntry is one row of the order's status history.
type TimelineEntry struct {
	Status string
	Note   string
	At     time.Time
}

// TrackOrderQueryResponse is the read model for order tracking.
type TrackOrderQueryResponse struct {
	OrderID     kernel.UUID
	OrderNumber string
	Status      string
	TotalAmount float64
	AgentName   string
	AgentPhone  string
	DeliveredAt *time.Time
	Timeline    []TimelineEntry
}
