package txmock

import (
	"context"
	"errors"
	"time"

	domain "mata-finance/internal/domain/transaction"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("txmock: method not implemented")

// Repo is a function-backed mock that satisfies transaction.Repository.
// Fill in the function fields a test needs; unfilled ones fail loudly.
type Repo struct {
	CreateFn                       func(ctx context.Context, t *domain.Transaction) error
	SaveFn                         func(ctx context.Context, t *domain.Transaction) error
	GetByTransactionIDFn           func(ctx context.Context, txID string) (*domain.Transaction, error)
	GetByTransactionIDForUpdateFn  func(ctx context.Context, txID string) (*domain.Transaction, error)
	TransitionStatusFn             func(ctx context.Context, txID string, from, to domain.Status, updates map[string]any) (bool, error)
	ListQueuedFn                   func(ctx context.Context) ([]domain.Transaction, error)
	ListRejectedWithoutSuccessorFn func(ctx context.Context, adminID string) ([]domain.Transaction, error)
	CountUnresolvedReplacementsFn  func(ctx context.Context, adminID string) (int64, error)
	ListDecidedByFn                func(ctx context.Context, approverID string) ([]domain.Transaction, error)
	ListExpiringDraftsFn           func(ctx context.Context, adminID string, createdBefore time.Time) ([]domain.Transaction, error)
	ListByAdminFn                  func(ctx context.Context, adminID string) ([]domain.Transaction, error)
}

func (m *Repo) Create(ctx context.Context, t *domain.Transaction) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, t *domain.Transaction) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, t)
	}
	return nil
}

func (m *Repo) GetByTransactionID(ctx context.Context, txID string) (*domain.Transaction, error) {
	if m.GetByTransactionIDFn != nil {
		return m.GetByTransactionIDFn(ctx, txID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByTransactionIDForUpdate(ctx context.Context, txID string) (*domain.Transaction, error) {
	if m.GetByTransactionIDForUpdateFn != nil {
		return m.GetByTransactionIDForUpdateFn(ctx, txID)
	}
	return nil, errUnimplemented
}

func (m *Repo) TransitionStatus(ctx context.Context, txID string, from, to domain.Status, updates map[string]any) (bool, error) {
	if m.TransitionStatusFn != nil {
		return m.TransitionStatusFn(ctx, txID, from, to, updates)
	}
	return true, nil
}

func (m *Repo) ListQueued(ctx context.Context) ([]domain.Transaction, error) {
	if m.ListQueuedFn != nil {
		return m.ListQueuedFn(ctx)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListRejectedWithoutSuccessor(ctx context.Context, adminID string) ([]domain.Transaction, error) {
	if m.ListRejectedWithoutSuccessorFn != nil {
		return m.ListRejectedWithoutSuccessorFn(ctx, adminID)
	}
	return nil, errUnimplemented
}

func (m *Repo) CountUnresolvedReplacements(ctx context.Context, adminID string) (int64, error) {
	if m.CountUnresolvedReplacementsFn != nil {
		return m.CountUnresolvedReplacementsFn(ctx, adminID)
	}
	return 0, errUnimplemented
}

func (m *Repo) ListDecidedBy(ctx context.Context, approverID string) ([]domain.Transaction, error) {
	if m.ListDecidedByFn != nil {
		return m.ListDecidedByFn(ctx, approverID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListExpiringDrafts(ctx context.Context, adminID string, createdBefore time.Time) ([]domain.Transaction, error) {
	if m.ListExpiringDraftsFn != nil {
		return m.ListExpiringDraftsFn(ctx, adminID, createdBefore)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByAdmin(ctx context.Context, adminID string) ([]domain.Transaction, error) {
	if m.ListByAdminFn != nil {
		return m.ListByAdminFn(ctx, adminID)
	}
	return nil, errUnimplemented
}
