package decision

import (
	"context"
	"errors"
	"strings"
	"time"

	"mata-finance/internal/domain/activity"
	domain "mata-finance/internal/domain/transaction"
	"mata-finance/internal/domain/uow"
	"mata-finance/internal/metrics"

	"gorm.io/gorm"
)

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(repo domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: repo, uow: tx}
}

type DecideInput struct {
	Outcome string `json:"outcome"`
	Reason  string `json:"reason"`
}

type DecisionDTO struct {
	TransactionID string    `json:"transaction_id"`
	Code          string    `json:"code"`
	Outcome       string    `json:"outcome"`
	Reason        *string   `json:"reason,omitempty"`
	DecidedAt     time.Time `json:"decided_at"`
}

var actionForOutcome = map[domain.Status]string{
	domain.StatusApproved: "approve",
	domain.StatusRejected: "reject",
	domain.StatusReturned: "return_for_revision",
}

// Decide applies exactly one approver outcome to a queued transaction. Two
// racing approvers resolve to one winner: the loser's conditional update
// matches zero rows and surfaces as a TransitionError.
func (u *Usecase) Decide(ctx context.Context, approverID, txID string, in DecideInput) (*DecisionDTO, error) {
	outcome := domain.Status(in.Outcome)
	if !domain.IsDecisionOutcome(outcome) {
		return nil, domain.Invalid("outcome must be one of approved, rejected, returned_for_revision")
	}
	reason := strings.TrimSpace(in.Reason)
	if outcome == domain.StatusRejected {
		if err := domain.ValidateRejectReason(reason); err != nil {
			return nil, err
		}
	}

	var dto *DecisionDTO
	err := u.uow.WithinTransactionTx(ctx, txID, func(r uow.Repos, t *domain.Transaction) error {
		if err := domain.GuardTransition(t.Status, outcome); err != nil {
			return err
		}

		now := time.Now().UTC()
		updates := map[string]any{
			"decided_by": approverID,
			"decided_at": now,
		}
		if outcome == domain.StatusRejected {
			updates["reject_reason"] = reason
		}
		applied, err := r.Transactions.TransitionStatus(ctx, txID, t.Status, outcome, updates)
		if err != nil {
			return err
		}
		if !applied {
			metrics.DecisionConflicts.Inc()
			return &domain.TransitionError{From: t.Status, To: outcome}
		}
		if err := r.Activities.Create(ctx, &activity.Log{
			ActorID: approverID, Action: actionForOutcome[outcome], EntityRef: t.Code,
		}); err != nil {
			return err
		}

		dto = &DecisionDTO{
			TransactionID: t.TransactionID,
			Code:          t.Code,
			Outcome:       string(outcome),
			DecidedAt:     now,
		}
		if outcome == domain.StatusRejected {
			dto.Reason = &reason
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	metrics.Decisions.WithLabelValues(string(outcome)).Inc()
	return dto, nil
}

// MyDecisions is deliberately redacted: no amount, no vendor identity, no
// risk category. The view exists for self-review, not for re-litigating.
func (u *Usecase) MyDecisions(ctx context.Context, approverID string) ([]DecisionDTO, error) {
	list, err := u.repo.ListDecidedBy(ctx, approverID)
	if err != nil {
		return nil, err
	}
	out := make([]DecisionDTO, 0, len(list))
	for i := range list {
		t := &list[i]
		d := DecisionDTO{
			TransactionID: t.TransactionID,
			Code:          t.Code,
			Outcome:       string(t.Status),
			Reason:        t.RejectReason,
		}
		if t.DecidedAt != nil {
			d.DecidedAt = *t.DecidedAt
		}
		out = append(out, d)
	}
	return out, nil
}
