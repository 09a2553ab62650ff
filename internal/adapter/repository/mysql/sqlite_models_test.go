package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no MySQL enums) ---

type transactionSQLite struct {
	ID              uint64         `gorm:"primaryKey;column:id;autoIncrement"`
	TransactionID   string         `gorm:"size:32;uniqueIndex;column:transaction_id"`
	Code            string         `gorm:"size:32;column:code"`
	AdminID         string         `gorm:"size:32;column:admin_id"`
	Type            string         `gorm:"type:text;column:type"`
	Amount          float64        `gorm:"column:amount"`
	Currency        string         `gorm:"column:currency"`
	Status          string         `gorm:"type:text;column:status"` // ← no enum
	Description     string         `gorm:"column:description"`
	RecipientName   string         `gorm:"column:recipient_name"`
	VendorRef       string         `gorm:"column:vendor_ref"`
	CostCenter      string         `gorm:"column:cost_center"`
	RiskLevel       string         `gorm:"type:text;column:risk_level"`
	DocsComplete    bool           `gorm:"column:docs_complete"`
	OCRAmount       *float64       `gorm:"column:ocr_amount"`
	Flags           string         `gorm:"type:text;column:flags"`
	RejectReason    *string        `gorm:"column:reject_reason"`
	PredecessorID   *string        `gorm:"column:predecessor_id"`
	SuccessorID     *string        `gorm:"column:successor_id"`
	IsLatest        bool           `gorm:"column:is_latest"`
	DecidedBy       *string        `gorm:"column:decided_by"`
	DecidedAt       *time.Time     `gorm:"column:decided_at"`
	SubmittedAt     *time.Time     `gorm:"column:submitted_at"`
	StatusUpdatedAt time.Time      `gorm:"column:status_updated_at"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (transactionSQLite) TableName() string { return "transactions" }

type itemSQLite struct {
	ID             uint64    `gorm:"primaryKey;column:id;autoIncrement"`
	TransactionRef uint64    `gorm:"column:transaction_ref"`
	Label          string    `gorm:"column:label"`
	Amount         float64   `gorm:"column:amount"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (itemSQLite) TableName() string { return "transaction_items" }

type documentSQLite struct {
	ID              uint64    `gorm:"primaryKey;column:id;autoIncrement"`
	TransactionRef  uint64    `gorm:"column:transaction_ref"`
	Category        string    `gorm:"column:category"`
	FileURL         string    `gorm:"column:file_url"`
	OCRMatch        string    `gorm:"type:text;column:ocr_match"`
	ExtractedAmount *float64  `gorm:"column:extracted_amount"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (documentSQLite) TableName() string { return "transaction_documents" }

type emergencySQLite struct {
	ID             uint64         `gorm:"primaryKey;column:id;autoIncrement"`
	EmergencyID    string         `gorm:"size:32;uniqueIndex;column:emergency_id"`
	TransactionRef uint64         `gorm:"column:transaction_ref"`
	TransactionID  string         `gorm:"size:32;column:transaction_id"`
	AdminID        string         `gorm:"size:32;column:admin_id"`
	Justification  string         `gorm:"column:justification"`
	Status         string         `gorm:"type:text;column:status"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (emergencySQLite) TableName() string { return "emergency_requests" }

type noticeSQLite struct {
	ID        uint64         `gorm:"primaryKey;column:id;autoIncrement"`
	NoticeID  string         `gorm:"size:32;uniqueIndex;column:notice_id"`
	Title     string         `gorm:"column:title"`
	Message   string         `gorm:"column:message"`
	Category  string         `gorm:"type:text;column:category"`
	Priority  int            `gorm:"column:priority"`
	Active    bool           `gorm:"column:active"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (noticeSQLite) TableName() string { return "system_notices" }

type exposureSQLite struct {
	ID        uint64    `gorm:"primaryKey;column:id;autoIncrement"`
	UserID    string    `gorm:"size:32;column:user_id"`
	NoticeRef uint64    `gorm:"column:notice_ref"`
	NoticeID  string    `gorm:"size:32;column:notice_id"`
	Context   string    `gorm:"column:context"`
	ExposedAt time.Time `gorm:"column:exposed_at"`
}

func (exposureSQLite) TableName() string { return "user_notice_exposures" }

type signalSQLite struct {
	ID        uint64    `gorm:"primaryKey;column:id;autoIncrement"`
	Name      string    `gorm:"column:name"`
	Payload   string    `gorm:"column:payload"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (signalSQLite) TableName() string { return "system_signals" }

type activitySQLite struct {
	ID        uint64    `gorm:"primaryKey;column:id;autoIncrement"`
	ActorID   string    `gorm:"size:32;column:actor_id"`
	Action    string    `gorm:"column:action"`
	EntityRef string    `gorm:"column:entity_ref"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (activitySQLite) TableName() string { return "activity_logs" }

type userSQLite struct {
	ID        uint64         `gorm:"primaryKey;column:id;autoIncrement"`
	UserID    string         `gorm:"size:32;uniqueIndex;column:user_id"`
	Name      string         `gorm:"column:name"`
	Email     string         `gorm:"column:email"`
	Role      string         `gorm:"type:text;column:role"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (userSQLite) TableName() string { return "users" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas, never the domain models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&transactionSQLite{}, &itemSQLite{}, &documentSQLite{},
		&emergencySQLite{}, &noticeSQLite{}, &exposureSQLite{},
		&signalSQLite{}, &activitySQLite{}, &userSQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
