package mysql

import (
	"context"

	emergencyDomain "mata-finance/internal/domain/emergency"

	"gorm.io/gorm"
)

type EmergencyRepository struct{ db *gorm.DB }

func NewEmergencyRepository(db *gorm.DB) *EmergencyRepository {
	return &EmergencyRepository{db: db}
}

func (r *EmergencyRepository) Create(ctx context.Context, req *emergencyDomain.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *EmergencyRepository) GetPendingByTransaction(ctx context.Context, transactionID string) (*emergencyDomain.Request, error) {
	var out emergencyDomain.Request
	res := r.db.WithContext(ctx).
		Where("transaction_id = ? AND status = ?", transactionID, emergencyDomain.StatusPending).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

func (r *EmergencyRepository) ListPending(ctx context.Context) ([]emergencyDomain.Request, error) {
	var out []emergencyDomain.Request
	res := r.db.WithContext(ctx).
		Where("status = ?", emergencyDomain.StatusPending).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
