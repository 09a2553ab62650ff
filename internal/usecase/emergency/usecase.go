package emergency

import (
	"context"
	"errors"
	"strings"
	"time"

	"mata-finance/internal/domain/activity"
	domainEmergency "mata-finance/internal/domain/emergency"
	domainTx "mata-finance/internal/domain/transaction"
	"mata-finance/internal/domain/uow"
	"mata-finance/internal/metrics"
	"mata-finance/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	txRepo domainTx.Repository
	uow    uow.UnitOfWork
}

func NewUsecase(txRepo domainTx.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{txRepo: txRepo, uow: tx}
}

type RequestDTO struct {
	EmergencyID   string    `json:"emergency_id"`
	TransactionID string    `json:"transaction_id"`
	Justification string    `json:"justification"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Create flags a queued transaction for expedited review. Uniqueness is
// best-effort: an existing pending request is returned as-is, and a racing
// duplicate insert is tolerated rather than fenced.
func (u *Usecase) Create(ctx context.Context, adminID, txID, justification string) (*RequestDTO, error) {
	justification = strings.TrimSpace(justification)
	if justification == "" {
		return nil, domainTx.Invalid("justification is required")
	}

	var dto *RequestDTO
	err := u.uow.WithinTransactionTx(ctx, txID, func(r uow.Repos, t *domainTx.Transaction) error {
		if t.AdminID != adminID {
			return domainTx.ErrForbidden
		}
		if !t.Status.InQueue() {
			return domainTx.Invalid("transaction %s is not awaiting a decision", t.Code)
		}

		if existing, err := r.Emergencies.GetPendingByTransaction(ctx, t.TransactionID); err == nil {
			dto = toDTO(existing)
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		req := &domainEmergency.Request{
			EmergencyID:    id.NewID32(),
			TransactionRef: t.ID,
			TransactionID:  t.TransactionID,
			AdminID:        adminID,
			Justification:  justification,
			Status:         domainEmergency.StatusPending,
		}
		if err := r.Emergencies.Create(ctx, req); err != nil {
			return err
		}
		if err := r.Activities.Create(ctx, &activity.Log{
			ActorID: adminID, Action: "request_emergency", EntityRef: t.Code,
		}); err != nil {
			return err
		}
		metrics.EmergencyRequests.Inc()
		dto = toDTO(req)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainTx.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// Pending lists every open expedite request, oldest first, for approvers.
func (u *Usecase) Pending(ctx context.Context) ([]RequestDTO, error) {
	var out []RequestDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		list, err := r.Emergencies.ListPending(ctx)
		if err != nil {
			return err
		}
		out = make([]RequestDTO, 0, len(list))
		for i := range list {
			out = append(out, *toDTO(&list[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toDTO(r *domainEmergency.Request) *RequestDTO {
	return &RequestDTO{
		EmergencyID:   r.EmergencyID,
		TransactionID: r.TransactionID,
		Justification: r.Justification,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
	}
}
