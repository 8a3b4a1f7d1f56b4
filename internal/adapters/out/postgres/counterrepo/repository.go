package counterrepo

import (
	"context"

	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCounterStore implements CounterStore using GORM.
type GormCounterStore struct {
	db *gorm.DB
}

// NewGormCounterStore creates a new GORM counter store.
func NewGormCounterStore(db *gorm.DB) *GormCounterStore {
	return &GormCounterStore{db: db}
}

// Next atomically increments and returns the counter for the given scope.
// The first call for a scope returns 1. Run within the caller's
// transaction, the drawn number is only consumed if the transaction commits.
func (s *GormCounterStore) Next(ctx context.Context, scope string) (int64, error) {
	if scope == "" {
		return 0, errs.NewValueIsRequiredError("scope")
	}

	var value int64
	err := s.db.WithContext(ctx).Raw(`
		INSERT INTO counters (scope, value)
		VALUES (?, 1)
		ON CONFLICT (scope) DO UPDATE SET value = counters.value + 1
		RETURNING value
	`, scope).Scan(&value).Error
	if err != nil {
		return 0, err
	}

	return value, nil
}
