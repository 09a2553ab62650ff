package mysql

import (
	"context"

	activityDomain "mata-finance/internal/domain/activity"

	"gorm.io/gorm"
)

type ActivityRepository struct{ db *gorm.DB }

func NewActivityRepository(db *gorm.DB) *ActivityRepository { return &ActivityRepository{db: db} }

func (r *ActivityRepository) Create(ctx context.Context, l *activityDomain.Log) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *ActivityRepository) ListByEntityRef(ctx context.Context, entityRef string) ([]activityDomain.Log, error) {
	var out []activityDomain.Log
	res := r.db.WithContext(ctx).
		Where("entity_ref = ?", entityRef).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ActivityRepository) ListByActor(ctx context.Context, actorID string) ([]activityDomain.Log, error) {
	var out []activityDomain.Log
	res := r.db.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
