package emergency

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending Status = "PENDING"
	// Resolved implicitly by the approval decision on the underlying
	// transaction; kept for bookkeeping sweeps.
	StatusResolved Status = "RESOLVED"
)

// Request is an admin's bid for out-of-band expedited approval on one
// transaction. Uniqueness is best-effort: a concurrent duplicate is
// tolerated, not fenced by a unique index.
type Request struct {
	ID             uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	EmergencyID    string         `gorm:"column:emergency_id;type:char(32);not null;uniqueIndex:ux_emergencies_id_active" json:"emergency_id"`
	TransactionRef uint64         `gorm:"column:transaction_ref;not null;index;constraint:OnDelete:CASCADE" json:"-"`
	TransactionID  string         `gorm:"column:transaction_id;type:char(32);not null" json:"transaction_id"`
	AdminID        string         `gorm:"column:admin_id;type:char(32);not null;index" json:"admin_id"`
	Justification  string         `gorm:"column:justification;type:text;not null" json:"justification"`
	Status         Status         `gorm:"column:status;type:enum('PENDING','RESOLVED');default:'PENDING'" json:"status"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Request) TableName() string { return "emergency_requests" }

type Repository interface {
	Create(ctx context.Context, r *Request) error
	// GetPendingByTransaction returns the open request for a transaction,
	// or gorm.ErrRecordNotFound.
	GetPendingByTransaction(ctx context.Context, transactionID string) (*Request, error)
	ListPending(ctx context.Context) ([]Request, error)
}
