package emergencymock

import (
	"context"
	"errors"

	domain "mata-finance/internal/domain/emergency"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("emergencymock: method not implemented")

type Repo struct {
	CreateFn                  func(ctx context.Context, r *domain.Request) error
	GetPendingByTransactionFn func(ctx context.Context, transactionID string) (*domain.Request, error)
	ListPendingFn             func(ctx context.Context) ([]domain.Request, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Request) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetPendingByTransaction(ctx context.Context, transactionID string) (*domain.Request, error) {
	if m.GetPendingByTransactionFn != nil {
		return m.GetPendingByTransactionFn(ctx, transactionID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListPending(ctx context.Context) ([]domain.Request, error) {
	if m.ListPendingFn != nil {
		return m.ListPendingFn(ctx)
	}
	return nil, errUnimplemented
}
