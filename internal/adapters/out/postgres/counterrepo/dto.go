// Package counterrepo persists the daily sequence counters behind
// human-facing order numbers. The increment is a single upsert, so
// concurrent callers always draw distinct values.
package counterrepo

// CounterDTO represents one named counter row.
type CounterDTO struct {
	Scope string `gorm:"type:varchar(64);primaryKey"`
	Value int64  `gorm:"type:bigint;not null"`
}

// TableName specifies the database table name for counter entities.
func (CounterDTO) TableName() string {
	return "counters"
}
