package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackOrderQueryHandler retrieves the tracking view straight from the
// database. Uses direct SQL for optimal read performance in the CQRS
// pattern; the order aggregate is never materialized.
type TrackOrderQueryHandler struct {
	db *gorm.DB
}

// NewTrackOrderQueryHandler creates a handler for order tracking queries.
// Requires a GORM database connection for query execution.
func NewTrackOrderQueryHandler(db *gorm.DB) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{db: db}
}

// Handle executes the tracking query.
// Returns errs.ObjectNotFoundError when the order number is unknown.
func (h TrackOrderQueryHandler) Handle(
	ctx context.Context,
	query TrackOrderQuery,
) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	var (
		response    TrackOrderQueryResponse
		id          uuid.UUID
		agentName   sql.NullString
		agentPhone  sql.NullString
		deliveredAt sql.NullTime
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.status,
			o.total_amount,
			a.name,
			a.phone,
			o.delivered_at
		FROM orders o
		LEFT JOIN agents a ON a.id = o.agent_id
		WHERE o.order_number = ?
	`, query.OrderNumber()).Row()

	err := row.Scan(
		&id,
		&response.OrderNumber,
		&response.Status,
		&response.TotalAmount,
		&agentName,
		&agentPhone,
		&deliveredAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return TrackOrderQueryResponse{}, errs.NewObjectNotFoundError("orderNumber", query.OrderNumber())
	}
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}
	response.OrderID = orderID
	response.AgentName = agentName.String
	response.AgentPhone = agentPhone.String
	if deliveredAt.Valid {
		at := deliveredAt.Time
		response.DeliveredAt = &at
	}

	timeline, err := h.loadTimeline(ctx, id)
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}
	response.Timeline = timeline

	return response, nil
}

func (h TrackOrderQueryHandler) loadTimeline(ctx context.Context, orderID uuid.UUID) ([]TimelineEntry, error) {
	timeline := make([]TimelineEntry, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			note,
			at
		FROM order_history
		WHERE order_id = ?
		ORDER BY id
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry TimelineEntry
		var at time.Time

		if err = rows.Scan(&entry.Status, &entry.Note, &at); err != nil {
			return nil, err
		}

		entry.At = at
		timeline = append(timeline, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return timeline, nil
}
