package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mata-finance/internal/domain/notice"
	"mata-finance/internal/domain/transaction"
)

var ErrNotFound = errors.New("user not found")

// Role is the closed role set. It is resolved from the users table on every
// request; client-held role claims are never trusted.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleApprover Role = "approver"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleApprover:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type User struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID    string         `gorm:"column:user_id;type:char(32);not null;uniqueIndex:ux_users_user_id_active" json:"user_id"`
	Name      string         `gorm:"column:name;size:128;not null" json:"name"`
	Email     string         `gorm:"column:email;size:128;not null" json:"email"`
	Role      Role           `gorm:"column:role;type:enum('admin','approver');not null" json:"role"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`

	// Deleting a user cascades to everything they own.
	Transactions []transaction.Transaction   `gorm:"foreignKey:AdminID;references:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Exposures    []notice.UserNoticeExposure `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string { return "users" }

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUserID(ctx context.Context, userID string) (*User, error)
}
