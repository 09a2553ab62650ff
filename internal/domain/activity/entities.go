package activity

import (
	"context"
	"time"
)

// Log is the immutable audit record written by every lifecycle transition.
// Append-only: no update or delete path exists.
type Log struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ActorID   string    `gorm:"column:actor_id;type:char(32);not null;index" json:"actor_id"`
	Action    string    `gorm:"column:action;size:64;not null" json:"action"`
	EntityRef string    `gorm:"column:entity_ref;size:64;not null;index" json:"entity_ref"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Log) TableName() string { return "activity_logs" }

type Repository interface {
	Create(ctx context.Context, l *Log) error
	ListByEntityRef(ctx context.Context, entityRef string) ([]Log, error)
	ListByActor(ctx context.Context, actorID string) ([]Log, error)
}
