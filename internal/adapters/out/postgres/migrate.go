package postgres

import (
	"fulfillment/internal/adapters/out/postgres/agentrepo"
	"fulfillment/internal/adapters/out/postgres/counterrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/productrepo"
	"fulfillment/internal/adapters/out/postgres/returnrepo"

	"gorm.io/gorm"
)

// openReturnIndex is the partial unique index enforcing at most one
// non-terminal return request per order item. Terminal statuses are listed
// here rather than derived so the predicate is immutable DDL.
const openReturnIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS return_requests_open_item_idx
	ON return_requests (order_id, order_item_id)
	WHERE status NOT IN (
		'rejected',
		'quality_check_failed',
		'refund_completed',
		'exchange_delivered',
		'cancelled'
	)`

// Migrate creates or updates the database schema for all repositories.
// AutoMigrate covers the tables; the open-return uniqueness rule needs a
// partial index GORM tags cannot express, so it is applied as raw DDL.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.HistoryDTO{},
		&agentrepo.AgentDTO{},
		&agentrepo.ActiveOrderDTO{},
		&productrepo.ProductDTO{},
		&returnrepo.ReturnDTO{},
		&returnrepo.AdminNoteDTO{},
		&counterrepo.CounterDTO{},
	); err != nil {
		return err
	}

	return db.Exec(openReturnIndex).Error
}
