package transaction

import (
	"context"
	"errors"
	"math"
	"time"

	"mata-finance/internal/domain/activity"
	domain "mata-finance/internal/domain/transaction"
	"mata-finance/internal/domain/uow"
	"mata-finance/internal/domain/user"
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

var codeTags = map[domain.Type]string{
	domain.TypePayment:       "PAY",
	domain.TypeReimbursement: "RBM",
	domain.TypeProcurement:   "PRC",
	domain.TypeTransfer:      "TRF",
}

func parseType(s string) (domain.Type, error) {
	if s == "" {
		return domain.TypePayment, nil
	}
	t := domain.Type(s)
	if _, ok := codeTags[t]; !ok {
		return "", domain.Invalid("unknown transaction type %q", s)
	}
	return t, nil
}

func parseRisk(s string) (domain.Risk, error) {
	switch domain.Risk(s) {
	case "":
		return domain.RiskLow, nil
	case domain.RiskLow, domain.RiskMedium, domain.RiskHigh:
		return domain.Risk(s), nil
	}
	return "", domain.Invalid("unknown risk level %q", s)
}

const itemSumEpsilon = 0.01 // decimal(18,2) granularity

func (u *Usecase) Create(ctx context.Context, adminID string, in CreateInput) (*TransactionDTO, error) {
	typ, err := parseType(in.Type)
	if err != nil {
		return nil, err
	}
	risk, err := parseRisk(in.RiskLevel)
	if err != nil {
		return nil, err
	}
	if in.Amount <= 0 {
		return nil, domain.Invalid("amount must be positive")
	}

	now := time.Now().UTC()
	t := &domain.Transaction{
		TransactionID:   id.NewID32(),
		Code:            id.NewCode("TRX", codeTags[typ]),
		AdminID:         adminID,
		Type:            typ,
		Amount:          in.Amount,
		Currency:        in.Currency,
		Status:          domain.StatusDraft,
		Description:     in.Description,
		RecipientName:   in.RecipientName,
		VendorRef:       in.VendorRef,
		CostCenter:      in.CostCenter,
		RiskLevel:       risk,
		OCRAmount:       in.OCRAmount,
		Flags:           in.Flags,
		IsLatest:        true,
		CreatedAt:       now,
		StatusUpdatedAt: now,
	}
	if t.Currency == "" {
		t.Currency = "IDR"
	}
	for _, it := range in.Items {
		if it.Amount <= 0 {
			return nil, domain.Invalid("item %q amount must be positive", it.Label)
		}
		t.Items = append(t.Items, domain.Item{Label: it.Label, Amount: it.Amount})
	}
	if len(t.Items) > 0 && math.Abs(t.ItemsTotal()-t.Amount) > itemSumEpsilon {
		return nil, domain.Invalid("amount %.2f must equal sum of items %.2f", t.Amount, t.ItemsTotal())
	}
	for _, d := range in.Documents {
		match := domain.OCRMatch(d.OCRMatch)
		if match == "" {
			match = domain.OCRPending
		}
		t.Documents = append(t.Documents, domain.Document{
			Category: d.Category, FileURL: d.FileURL, OCRMatch: match, ExtractedAmount: d.ExtractedAmount,
		})
	}
	t.DocsComplete = t.DocumentsComplete()

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Transactions.Create(ctx, t); err != nil {
			return err
		}
		return r.Activities.Create(ctx, &activity.Log{
			ActorID: adminID, Action: "create", EntityRef: t.Code,
		})
	})
	if err != nil {
		return nil, err
	}
	metrics.TransactionsCreated.Inc()
	return toDTO(t, time.Now().UTC()), nil
}

// Get enforces the detail-view scope: an admin only sees their own
// transactions; approvers may inspect anything they are asked to decide.
func (u *Usecase) Get(ctx context.Context, callerID string, callerRole user.Role, txID string) (*TransactionDTO, error) {
	t, err := u.repo.GetByTransactionID(ctx, txID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if callerRole == user.RoleAdmin && t.AdminID != callerID {
		return nil, domain.ErrForbidden
	}
	return toDTO(t, time.Now().UTC()), nil
}

func (u *Usecase) ListMine(ctx context.Context, adminID string) ([]TransactionDTO, error) {
	list, err := u.repo.ListByAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	out := make([]TransactionDTO, 0, len(list))
	for i := range list {
		out = append(out, *toDTO(&list[i], now))
	}
	return out, nil
}

// ExpiringDrafts lists the admin's editable transactions inside the
// near-deadline window, most urgent first.
func (u *Usecase) ExpiringDrafts(ctx context.Context, adminID string) ([]TransactionDTO, error) {
	now := time.Now().UTC()
	cutoff := now.Add(-(domain.DraftWindow - time.Duration(domain.NearDeadlineHours)*time.Hour))
	list, err := u.repo.ListExpiringDrafts(ctx, adminID, cutoff)
	if err != nil {
		return nil, err
	}
	out := make([]TransactionDTO, 0, len(list))
	for i := range list {
		out = append(out, *toDTO(&list[i], now))
	}
	return out, nil
}

// Update mutates an editable transaction. A plain draft moves to in_progress
// on its first edit so the UI can tell a touched draft from a fresh one.
func (u *Usecase) Update(ctx context.Context, adminID, txID string, in UpdateInput) (*TransactionDTO, error) {
	var dto *TransactionDTO
	err := u.uow.WithinTransactionTx(ctx, txID, func(r uow.Repos, t *domain.Transaction) error {
		if t.AdminID != adminID {
			return domain.ErrForbidden
		}
		if !t.Status.Editable() {
			return &domain.TransitionError{From: t.Status, To: t.Status}
		}
		if in.Amount != nil {
			if *in.Amount <= 0 {
				return domain.Invalid("amount must be positive")
			}
			t.Amount = *in.Amount
		}
		if in.Description != nil {
			t.Description = *in.Description
		}
		if in.RecipientName != nil {
			t.RecipientName = *in.RecipientName
		}
		if in.VendorRef != nil {
			t.VendorRef = *in.VendorRef
		}
		if in.CostCenter != nil {
			t.CostCenter = *in.CostCenter
		}
		if in.OCRAmount != nil {
			t.OCRAmount = in.OCRAmount
		}
		if len(t.Items) > 0 && math.Abs(t.ItemsTotal()-t.Amount) > itemSumEpsilon {
			return domain.Invalid("amount %.2f must equal sum of items %.2f", t.Amount, t.ItemsTotal())
		}
		if t.Status == domain.StatusDraft {
			t.Status = domain.StatusInProgress
			t.StatusUpdatedAt = time.Now().UTC()
		}
		if err := r.Transactions.Save(ctx, t); err != nil {
			return err
		}
		if err := r.Activities.Create(ctx, &activity.Log{
			ActorID: adminID, Action: "update", EntityRef: t.Code,
		}); err != nil {
			return err
		}
		dto = toDTO(t, time.Now().UTC())
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// Submit moves an editable transaction into the approver queue. The write is
// a conditional single-row update so a concurrent submit cannot double-apply.
func (u *Usecase) Submit(ctx context.Context, adminID, txID string) (*TransactionDTO, error) {
	var dto *TransactionDTO
	var kind string
	err := u.uow.WithinTransactionTx(ctx, txID, func(r uow.Repos, t *domain.Transaction) error {
		if t.AdminID != adminID {
			return domain.ErrForbidden
		}
		target, err := domain.SubmitTarget(t.Status)
		if err != nil {
			return err
		}
		if !t.DocumentsComplete() {
			return domain.Invalid("mandatory documents missing or conflicting for type %s", t.Type)
		}
		if len(t.Items) > 0 && math.Abs(t.ItemsTotal()-t.Amount) > itemSumEpsilon {
			return domain.Invalid("amount %.2f must equal sum of items %.2f", t.Amount, t.ItemsTotal())
		}
		if !domain.WithinOCRTolerance(t.Amount, t.OCRAmount) {
			return domain.Invalid("amount %.2f deviates more than %.0f%% from OCR amount %.2f",
				t.Amount, domain.OCRTolerance*100, *t.OCRAmount)
		}

		now := time.Now().UTC()
		// The submission clock resets on resubmit: the original submission
		// time is superseded.
		applied, err := r.Transactions.TransitionStatus(ctx, txID, t.Status, target, map[string]any{
			"submitted_at":  now,
			"docs_complete": true,
		})
		if err != nil {
			return err
		}
		if !applied {
			return &domain.TransitionError{From: t.Status, To: target}
		}
		if err := r.Activities.Create(ctx, &activity.Log{
			ActorID: adminID, Action: "submit", EntityRef: t.Code,
		}); err != nil {
			return err
		}

		kind = "first"
		if target == domain.StatusResubmitted {
			kind = "resubmit"
		}
		t.Status = target
		t.SubmittedAt = &now
		t.StatusUpdatedAt = now
		t.DocsComplete = true
		dto = toDTO(t, now)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	metrics.Submissions.WithLabelValues(kind).Inc()
	return dto, nil
}
