package order

import (
	"time"
)

// HistoryEntry is one line of an order's status history. The history is
// strictly append-only and insertion-ordered: entries are never updated,
// reordered or removed, so it doubles as the order's audit trail.
type HistoryEntry struct {
	status Status
	note   string
	at     time.Time
}

// NewHistoryEntry creates a history line for the given status change.
func NewHistoryEntry(status Status, note string, at time.Time) HistoryEntry {
	return HistoryEntry{
		status: status,
		note:   note,
		at:     at,
	}
}

// Status returns the status the order entered.
func (h HistoryEntry) Status() Status {
	return h.status
}

// Note returns the human-readable note recorded with the change.
func (h HistoryEntry) Note() string {
	return h.note
}

// At returns when the change was recorded.
func (h HistoryEntry) At() time.Time {
	return h.at
}

// Cancellation records why, when and by whom an order was cancelled.
type Cancellation struct {
	reason      string
	cancelledBy string
	at          time.Time
}

// NewCancellation creates a cancellation record.
func NewCancellation(reason, cancelledBy string, at time.Time) Cancellation {
	return Cancellation{
		reason:      reason,
		cancelledBy: cancelledBy,
		at:          at,
	}
}

// Reason returns the stated cancellation reason.
func (c Cancellation) Reason() string {
	return c.reason
}

// CancelledBy returns who requested the cancellation.
func (c Cancellation) CancelledBy() string {
	return c.cancelledBy
}

// At returns when the order was cancelled.
func (c Cancellation) At() time.Time {
	return c.at
}
