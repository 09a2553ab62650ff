package mysql

import (
	"context"
	"time"

	noticeDomain "mata-finance/internal/domain/notice"

	"gorm.io/gorm"
)

type NoticeRepository struct{ db *gorm.DB }

func NewNoticeRepository(db *gorm.DB) *NoticeRepository { return &NoticeRepository{db: db} }

func (r *NoticeRepository) Create(ctx context.Context, n *noticeDomain.SystemNotice) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NoticeRepository) GetByNoticeID(ctx context.Context, noticeID string) (*noticeDomain.SystemNotice, error) {
	var out noticeDomain.SystemNotice
	res := r.db.WithContext(ctx).
		Where("notice_id = ?", noticeID).
		First(&out)
	return &out, res.Error
}

func (r *NoticeRepository) ListActive(ctx context.Context) ([]noticeDomain.SystemNotice, error) {
	var out []noticeDomain.SystemNotice
	res := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("priority DESC, id ASC").
		Find(&out)
	return out, res.Error
}

type ExposureRepository struct{ db *gorm.DB }

func NewExposureRepository(db *gorm.DB) *ExposureRepository { return &ExposureRepository{db: db} }

func (r *ExposureRepository) Create(ctx context.Context, e *noticeDomain.UserNoticeExposure) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ExposureRepository) ExposedNoticeIDsSince(ctx context.Context, userID string, since time.Time) ([]string, error) {
	var ids []string
	res := r.db.WithContext(ctx).
		Model(&noticeDomain.UserNoticeExposure{}).
		Where("user_id = ? AND exposed_at >= ?", userID, since).
		Distinct().
		Pluck("notice_id", &ids)
	return ids, res.Error
}

func (r *ExposureRepository) ListByUser(ctx context.Context, userID string) ([]noticeDomain.UserNoticeExposure, error) {
	var out []noticeDomain.UserNoticeExposure
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("exposed_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
