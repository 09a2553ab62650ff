package replacement

import (
	"context"
	"errors"
	"time"

	"mata-finance/internal/domain/activity"
	domain "mata-finance/internal/domain/transaction"
	"mata-finance/internal/domain/uow"
	"mata-finance/internal/metrics"
	"mata-finance/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(repo domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: repo, uow: tx}
}

// PendingDTO is one outstanding replacement obligation.
type PendingDTO struct {
	TransactionID string    `json:"transaction_id"`
	Code          string    `json:"code"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	RejectReason  *string   `json:"reject_reason,omitempty"`
	RejectedAt    time.Time `json:"rejected_at"`
}

type CreatedDTO struct {
	TransactionID string `json:"transaction_id"`
	Code          string `json:"code"`
	PredecessorID string `json:"predecessor_id"`
	Status        string `json:"status"`
}

// Pending lists the admin's rejected transactions with no replacement draft.
func (u *Usecase) Pending(ctx context.Context, adminID string) ([]PendingDTO, error) {
	list, err := u.repo.ListRejectedWithoutSuccessor(ctx, adminID)
	if err != nil {
		return nil, err
	}
	out := make([]PendingDTO, 0, len(list))
	for i := range list {
		t := &list[i]
		out = append(out, PendingDTO{
			TransactionID: t.TransactionID,
			Code:          t.Code,
			Amount:        t.Amount,
			Currency:      t.Currency,
			RejectReason:  t.RejectReason,
			RejectedAt:    t.StatusUpdatedAt,
		})
	}
	return out, nil
}

// UnresolvedCount backs the persistent UI indicator. An obligation stays
// counted until its replacement reaches submission, not merely exists.
func (u *Usecase) UnresolvedCount(ctx context.Context, adminID string) (int64, error) {
	return u.repo.CountUnresolvedReplacements(ctx, adminID)
}

// Create clones a rejected transaction into a fresh draft and links the two,
// atomically: either both rows end up linked or neither does.
func (u *Usecase) Create(ctx context.Context, adminID, rejectedID string) (*CreatedDTO, error) {
	var dto *CreatedDTO
	err := u.uow.WithinTransactionTx(ctx, rejectedID, func(r uow.Repos, rejected *domain.Transaction) error {
		if rejected.AdminID != adminID {
			return domain.ErrForbidden
		}
		if rejected.Status != domain.StatusRejected {
			return domain.ErrNotFound
		}
		if rejected.SuccessorID != nil {
			return domain.ErrReplacementExists
		}

		clone := &domain.Transaction{
			TransactionID:   id.NewID32(),
			Code:            id.NewCode("TRX", codeTag(rejected.Type)),
			AdminID:         rejected.AdminID,
			Type:            rejected.Type,
			Amount:          rejected.Amount,
			Currency:        rejected.Currency,
			Status:          domain.StatusDraft,
			Description:     rejected.Description,
			RecipientName:   rejected.RecipientName,
			VendorRef:       rejected.VendorRef,
			CostCenter:      rejected.CostCenter,
			RiskLevel:       rejected.RiskLevel,
			OCRAmount:       rejected.OCRAmount,
			Flags:           rejected.Flags,
			PredecessorID:   &rejected.TransactionID,
			IsLatest:        true,
			StatusUpdatedAt: time.Now().UTC(),
		}
		for _, it := range rejected.Items {
			clone.Items = append(clone.Items, domain.Item{Label: it.Label, Amount: it.Amount})
		}
		// Document files are re-referenced, not re-uploaded.
		for _, d := range rejected.Documents {
			clone.Documents = append(clone.Documents, domain.Document{
				Category: d.Category, FileURL: d.FileURL,
				OCRMatch: d.OCRMatch, ExtractedAmount: d.ExtractedAmount,
			})
		}
		if err := r.Transactions.Create(ctx, clone); err != nil {
			return err
		}

		rejected.SuccessorID = &clone.TransactionID
		rejected.IsLatest = false
		if err := r.Transactions.Save(ctx, rejected); err != nil {
			return err
		}
		if err := r.Activities.Create(ctx, &activity.Log{
			ActorID: adminID, Action: "create_replacement", EntityRef: clone.Code,
		}); err != nil {
			return err
		}

		dto = &CreatedDTO{
			TransactionID: clone.TransactionID,
			Code:          clone.Code,
			PredecessorID: rejected.TransactionID,
			Status:        string(clone.Status),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	metrics.ReplacementsCreated.Inc()
	return dto, nil
}

func codeTag(t domain.Type) string {
	switch t {
	case domain.TypeReimbursement:
		return "RBM"
	case domain.TypeProcurement:
		return "PRC"
	case domain.TypeTransfer:
		return "TRF"
	}
	return "PAY"
}
