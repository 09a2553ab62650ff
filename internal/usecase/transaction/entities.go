package transaction

import (
	"time"

	domain "mata-finance/internal/domain/transaction"
)

type ItemInput struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type DocumentInput struct {
	Category        string   `json:"category"`
	FileURL         string   `json:"file_url"`
	OCRMatch        string   `json:"ocr_match"`
	ExtractedAmount *float64 `json:"extracted_amount"`
}

type CreateInput struct {
	Type          string          `json:"type"`
	Amount        float64         `json:"amount"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description"`
	RecipientName string          `json:"recipient_name"`
	VendorRef     string          `json:"vendor_ref"`
	CostCenter    string          `json:"cost_center"`
	RiskLevel     string          `json:"risk_level"`
	OCRAmount     *float64        `json:"ocr_amount"`
	Flags         []string        `json:"flags"`
	Items         []ItemInput     `json:"items"`
	Documents     []DocumentInput `json:"documents"`
}

type UpdateInput struct {
	Amount        *float64 `json:"amount"`
	Description   *string  `json:"description"`
	RecipientName *string  `json:"recipient_name"`
	VendorRef     *string  `json:"vendor_ref"`
	CostCenter    *string  `json:"cost_center"`
	OCRAmount     *float64 `json:"ocr_amount"`
}

type ItemDTO struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type DocumentDTO struct {
	Category string `json:"category"`
	FileURL  string `json:"file_url"`
	OCRMatch string `json:"ocr_match"`
}

type TransactionDTO struct {
	TransactionID string        `json:"transaction_id"`
	Code          string        `json:"code"`
	Type          string        `json:"type"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	Status        string        `json:"status"`
	Description   string        `json:"description"`
	RecipientName string        `json:"recipient_name"`
	VendorRef     string        `json:"vendor_ref"`
	CostCenter    string        `json:"cost_center"`
	RiskLevel     string        `json:"risk_level"`
	DocsComplete  bool          `json:"docs_complete"`
	Flags         []string      `json:"flags"`
	RejectReason  *string       `json:"reject_reason,omitempty"`
	PredecessorID *string       `json:"predecessor_id,omitempty"`
	SuccessorID   *string       `json:"successor_id,omitempty"`
	IsLatest      bool          `json:"is_latest"`
	SubmittedAt   *time.Time    `json:"submitted_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	Items         []ItemDTO     `json:"items,omitempty"`
	Documents     []DocumentDTO `json:"documents,omitempty"`

	// Draft countdown, only meaningful while the admin can still edit.
	HoursRemaining int  `json:"hours_remaining"`
	NearDeadline   bool `json:"near_deadline"`
	Expired        bool `json:"expired"`
}

func toDTO(t *domain.Transaction, now time.Time) *TransactionDTO {
	dto := &TransactionDTO{
		TransactionID: t.TransactionID,
		Code:          t.Code,
		Type:          string(t.Type),
		Amount:        t.Amount,
		Currency:      t.Currency,
		Status:        string(t.Status),
		Description:   t.Description,
		RecipientName: t.RecipientName,
		VendorRef:     t.VendorRef,
		CostCenter:    t.CostCenter,
		RiskLevel:     string(t.RiskLevel),
		DocsComplete:  t.DocsComplete,
		Flags:         t.Flags,
		RejectReason:  t.RejectReason,
		PredecessorID: t.PredecessorID,
		SuccessorID:   t.SuccessorID,
		IsLatest:      t.IsLatest,
		SubmittedAt:   t.SubmittedAt,
		CreatedAt:     t.CreatedAt,
	}
	for _, it := range t.Items {
		dto.Items = append(dto.Items, ItemDTO{Label: it.Label, Amount: it.Amount})
	}
	for _, d := range t.Documents {
		dto.Documents = append(dto.Documents, DocumentDTO{Category: d.Category, FileURL: d.FileURL, OCRMatch: string(d.OCRMatch)})
	}
	if t.Status.Editable() {
		dto.HoursRemaining = domain.HoursRemaining(t.CreatedAt, now)
		dto.NearDeadline = domain.NearDeadline(t.CreatedAt, now)
		dto.Expired = domain.Expired(t.CreatedAt, now)
	}
	return dto
}
