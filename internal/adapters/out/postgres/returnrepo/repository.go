package returnrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the SQLSTATE class raised when the partial unique index
// over open return requests rejects an insert.
const uniqueViolation = "23505"

// GormReturnRepository implements ReturnRepository using GORM.
type GormReturnRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormReturnRepository creates a new GORM return-request repository.
func NewGormReturnRepository(db *gorm.DB, tracker aggregateTracker) *GormReturnRepository {
	return &GormReturnRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new return request to the database.
// Returns errs.ConflictError when the order item already has an open return
// request; the database index is the source of truth for that rule.
func (r *GormReturnRepository) Add(ctx context.Context, aggregate *rma.ReturnRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errs.NewConflictErrorWithCause(
				"return request",
				"order item already has an open return request",
				err,
			)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing return request to the database.
//
// Admin notes carry a serial key the domain never sees, so the audit trail
// is rewritten wholesale; bulk insert preserves the aggregate's ordering.
func (r *GormReturnRepository) Update(ctx context.Context, aggregate *rma.ReturnRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	notes := dto.AdminNotes
	dto.AdminNotes = nil

	db := r.db.WithContext(ctx)

	result := db.Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := db.Where("return_id = ?", dto.ID).Delete(&AdminNoteDTO{}).Error; err != nil {
		return err
	}
	if len(notes) > 0 {
		if err := db.Create(&notes).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a return request by ID.
func (r *GormReturnRepository) Get(ctx context.Context, id kernel.UUID) (*rma.ReturnRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReturnDTO
	if err := r.db.WithContext(ctx).
		Preload("AdminNotes", func(db *gorm.DB) *gorm.DB { return db.Order("return_admin_notes.id") }).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("returnRequest", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByOrder retrieves every return request filed against an order,
// newest first.
func (r *GormReturnRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*rma.ReturnRequest, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ReturnDTO
	if err := r.db.WithContext(ctx).
		Preload("AdminNotes", func(db *gorm.DB) *gorm.DB { return db.Order("return_admin_notes.id") }).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	requests := make([]*rma.ReturnRequest, 0, len(dtos))
	for _, dto := range dtos {
		request, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, nil
}
