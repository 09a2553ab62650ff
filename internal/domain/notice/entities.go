package notice

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("notice not found")

type Category string

const (
	CategorySpeedDeviation       Category = "speed_deviation"
	CategoryEmergencyBias        Category = "emergency_bias"
	CategoryClarificationPattern Category = "clarification_pattern"
	CategoryBehavioralDrift      Category = "behavioral_drift"
	CategoryGeneral              Category = "general"
)

// SystemNotice is a templated, non-actionable message shown to approvers.
type SystemNotice struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	NoticeID  string         `gorm:"column:notice_id;type:char(32);not null;uniqueIndex:ux_notices_id_active" json:"notice_id"`
	Title     string         `gorm:"column:title;size:128;not null" json:"title"`
	Message   string         `gorm:"column:message;type:text;not null" json:"message"`
	Category  Category       `gorm:"column:category;type:enum('speed_deviation','emergency_bias','clarification_pattern','behavioral_drift','general');default:'general'" json:"category"`
	Priority  int            `gorm:"column:priority;default:0" json:"priority"`
	// No column default: gorm omits zero values for defaulted columns, which
	// would turn an explicit false into true on insert.
	Active    bool           `gorm:"column:active;not null" json:"active"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (SystemNotice) TableName() string { return "system_notices" }

// UserNoticeExposure is the audit trail of the exposure regulator: one row
// per time a notice was actually shown to a user.
type UserNoticeExposure struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID    string    `gorm:"column:user_id;type:char(32);not null;index:idx_exposures_user" json:"user_id"`
	NoticeRef uint64    `gorm:"column:notice_ref;not null;index;constraint:OnDelete:CASCADE" json:"-"`
	NoticeID  string    `gorm:"column:notice_id;type:char(32);not null" json:"notice_id"`
	Context   string    `gorm:"column:context;size:128" json:"context"`
	ExposedAt time.Time `gorm:"column:exposed_at;autoCreateTime" json:"exposed_at"`
}

func (UserNoticeExposure) TableName() string { return "user_notice_exposures" }

type Repository interface {
	Create(ctx context.Context, n *SystemNotice) error
	GetByNoticeID(ctx context.Context, noticeID string) (*SystemNotice, error)
	// ListActive returns active notices ordered by priority descending.
	ListActive(ctx context.Context) ([]SystemNotice, error)
}

type ExposureRepository interface {
	Create(ctx context.Context, e *UserNoticeExposure) error
	// ExposedNoticeIDsSince returns the notice ids shown to the user at or
	// after the cutoff.
	ExposedNoticeIDsSince(ctx context.Context, userID string, since time.Time) ([]string, error)
	ListByUser(ctx context.Context, userID string) ([]UserNoticeExposure, error)
}
