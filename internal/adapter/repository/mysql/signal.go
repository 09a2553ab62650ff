package mysql

import (
	"context"

	signalDomain "mata-finance/internal/domain/signal"

	"gorm.io/gorm"
)

type SignalRepository struct{ db *gorm.DB }

func NewSignalRepository(db *gorm.DB) *SignalRepository { return &SignalRepository{db: db} }

func (r *SignalRepository) Create(ctx context.Context, s *signalDomain.Signal) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SignalRepository) ListRecent(ctx context.Context, name signalDomain.Name, limit int) ([]signalDomain.Signal, error) {
	var out []signalDomain.Signal
	res := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}
