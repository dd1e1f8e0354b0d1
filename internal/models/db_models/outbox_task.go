package db_models

import "gorm.io/datatypes"

type OutboxStatus string

const (
	OutboxPending OutboxStatus = "pending"
	OutboxRunning OutboxStatus = "running"
	OutboxDone    OutboxStatus = "done"
	OutboxFailed  OutboxStatus = "failed"
)

// OutboxTask is a side effect recorded in the same transaction as the write that
// caused it and executed later by the outbox worker.
type OutboxTask struct {
	BaseModel
	Kind      string         `gorm:"not null;index" json:"kind"`
	Payload   datatypes.JSON `gorm:"not null" json:"payload"`
	Status    OutboxStatus   `gorm:"type:varchar(10);not null;default:pending;index:idx_outbox_due" json:"status"`
	Attempts  int            `gorm:"not null;default:0" json:"attempts"`
	LastError string         `json:"last_error,omitempty"`
	NextRunAt int64          `gorm:"not null;index:idx_outbox_due" json:"next_run_at"`
}
