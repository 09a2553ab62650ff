package transaction

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusDraft       Status = "draft"
	StatusInProgress  Status = "in_progress"
	StatusSubmitted   Status = "submitted"
	StatusResubmitted Status = "resubmitted"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusReturned    Status = "returned_for_revision"
)

type Type string

const (
	TypePayment       Type = "payment"
	TypeReimbursement Type = "reimbursement"
	TypeProcurement   Type = "procurement"
	TypeTransfer      Type = "transfer"
)

type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// OCRMatch is the reconciliation result between an uploaded document and the
// amounts the extraction service pulled out of it.
type OCRMatch string

const (
	OCRPending  OCRMatch = "pending"
	OCRMatched  OCRMatch = "match"
	OCRConflict OCRMatch = "conflict"
)

// FlagList is a set of internal tags stored as a JSON array in a text column.
type FlagList []string

func (f FlagList) Value() (driver.Value, error) {
	if len(f) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(f)
	return string(b), err
}

func (f *FlagList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = nil
		return nil
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	}
	return fmt.Errorf("flags: cannot scan %T", src)
}

type Transaction struct {
	ID            uint64  `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	TransactionID string  `gorm:"column:transaction_id;type:char(32);not null;uniqueIndex:ux_transactions_txid_active" json:"transaction_id"`
	Code          string  `gorm:"column:code;size:32;not null;uniqueIndex:ux_transactions_code_active" json:"code"`
	AdminID       string  `gorm:"column:admin_id;type:char(32);not null;index:idx_transactions_admin" json:"admin_id"`
	Type          Type    `gorm:"column:type;type:enum('payment','reimbursement','procurement','transfer');default:'payment'" json:"type"`
	Amount        float64 `gorm:"column:amount;type:decimal(18,2)" json:"amount"`
	Currency      string  `gorm:"column:currency;size:8;default:'IDR'" json:"currency"`
	Status        Status  `gorm:"column:status;type:enum('draft','in_progress','submitted','resubmitted','approved','rejected','returned_for_revision');default:'draft';index:idx_transactions_status" json:"status"`
	Description   string  `gorm:"column:description;type:text" json:"description"`
	RecipientName string  `gorm:"column:recipient_name;size:128" json:"recipient_name"`
	VendorRef     string  `gorm:"column:vendor_ref;size:64" json:"vendor_ref"`
	CostCenter    string  `gorm:"column:cost_center;size:64" json:"cost_center"`
	RiskLevel     Risk    `gorm:"column:risk_level;type:enum('low','medium','high');default:'low'" json:"risk_level"`
	DocsComplete  bool    `gorm:"column:docs_complete" json:"docs_complete"`

	// OCRAmount is the total the extraction service derived from the attached
	// documents; nil until at least one document has been processed.
	OCRAmount    *float64 `gorm:"column:ocr_amount;type:decimal(18,2)" json:"ocr_amount,omitempty"`
	Flags        FlagList `gorm:"column:flags;type:text" json:"flags"`
	RejectReason *string  `gorm:"column:reject_reason;type:text" json:"reject_reason,omitempty"`

	// Revision chain. A rejected transaction points forward to its
	// replacement draft; the replacement points back. Exactly one member of
	// a chain carries is_latest.
	PredecessorID *string `gorm:"column:predecessor_id;type:char(32)" json:"predecessor_id,omitempty"`
	SuccessorID   *string `gorm:"column:successor_id;type:char(32)" json:"successor_id,omitempty"`
	IsLatest      bool    `gorm:"column:is_latest;default:true" json:"is_latest"`

	DecidedBy *string    `gorm:"column:decided_by;type:char(32)" json:"-"`
	DecidedAt *time.Time `gorm:"column:decided_at" json:"-"`

	SubmittedAt     *time.Time     `gorm:"column:submitted_at;index:idx_transactions_submitted" json:"submitted_at,omitempty"`
	StatusUpdatedAt time.Time      `gorm:"column:status_updated_at;autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`

	Items     []Item     `gorm:"foreignKey:TransactionRef;references:ID;constraint:OnDelete:CASCADE" json:"items"`
	Documents []Document `gorm:"foreignKey:TransactionRef;references:ID;constraint:OnDelete:CASCADE" json:"documents"`
}

func (Transaction) TableName() string { return "transactions" }

// Item is a line-level breakdown of the transaction amount.
type Item struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	TransactionRef uint64    `gorm:"column:transaction_ref;not null;index" json:"-"`
	Label          string    `gorm:"column:label;size:128;not null" json:"label"`
	Amount         float64   `gorm:"column:amount;type:decimal(18,2)" json:"amount"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Item) TableName() string { return "transaction_items" }

// Document is uploaded evidence with its OCR reconciliation result. Files are
// referenced by URL; a replacement re-references the same file.
type Document struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	TransactionRef  uint64    `gorm:"column:transaction_ref;not null;index" json:"-"`
	Category        string    `gorm:"column:category;size:64;not null" json:"category"`
	FileURL         string    `gorm:"column:file_url;type:text;not null" json:"file_url"`
	OCRMatch        OCRMatch  `gorm:"column:ocr_match;type:enum('pending','match','conflict');default:'pending'" json:"ocr_match"`
	ExtractedAmount *float64  `gorm:"column:extracted_amount;type:decimal(18,2)" json:"extracted_amount,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Document) TableName() string { return "transaction_documents" }

// RequiredDocs lists the document categories a transaction needs before it
// can be submitted.
var RequiredDocs = map[Type][]string{
	TypePayment:       {"invoice", "transfer_proof"},
	TypeReimbursement: {"receipt"},
	TypeProcurement:   {"invoice", "purchase_order"},
	TypeTransfer:      {"transfer_proof"},
}

// ItemsTotal sums the line items.
func (t *Transaction) ItemsTotal() float64 {
	var sum float64
	for _, it := range t.Items {
		sum += it.Amount
	}
	return sum
}

// DocumentsComplete reports whether every required category for the type has
// at least one attached document whose OCR result is not conflicting.
func (t *Transaction) DocumentsComplete() bool {
	for _, cat := range RequiredDocs[t.Type] {
		found := false
		for _, d := range t.Documents {
			if d.Category == cat && d.OCRMatch != OCRConflict {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

var (
	ErrNotFound          = errors.New("transaction not found")
	ErrForbidden         = errors.New("transaction does not belong to caller")
	ErrReplacementExists = errors.New("replacement already exists for this transaction")
)

// ValidationError marks malformed or out-of-policy input.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func Invalid(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// TransitionError names the current state and the attempted target. It is
// also the failure mode of a lost decision race (stale expected state).
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid state transition: %s -> %s", e.From, e.To)
}
