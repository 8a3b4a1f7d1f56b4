package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database, including its items and the
// seeded status history.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
//
// Items are saved column-complete so clearing a return marker persists.
// History rows carry a serial key the domain never sees, so the timeline
// is rewritten wholesale; bulk insert preserves the aggregate's ordering.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	items := dto.Items
	history := dto.History
	dto.Items = nil
	dto.History = nil

	db := r.db.WithContext(ctx)

	result := db.Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	for i := range items {
		if err := db.Save(&items[i]).Error; err != nil {
			return err
		}
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&HistoryDTO{}).Error; err != nil {
		return err
	}
	if len(history) > 0 {
		if err := db.Create(&history).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	o, err := r.getOne(ctx, "id = ?", id.Bytes())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, err
}

// GetByOrderNumber retrieves an order by its human-facing number.
func (r *GormOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	o, err := r.getOne(ctx, "order_number = ?", orderNumber)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("orderNumber", orderNumber)
	}
	return o, err
}

// GetAllByAgent retrieves the orders currently assigned to an agent and not
// yet in a terminal status.
func (r *GormOrderRepository) GetAllByAgent(ctx context.Context, agentID kernel.UUID) ([]*order.Order, error) {
	if err := agentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("History").
		Where("agent_id = ? AND status NOT IN ?", agentID.Bytes(), terminalStatusStrings()).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) getOne(ctx context.Context, query string, arg any) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("order_history.id") }).
		First(&dto, query, arg).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

func terminalStatusStrings() []string {
	return []string{
		order.Delivered.String(),
		order.Cancelled.String(),
		order.Returned.String(),
		order.Failed.String(),
	}
}
