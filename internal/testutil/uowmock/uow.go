package uowmock

import (
	"context"
	"errors"

	"mata-finance/internal/domain/transaction"
	"mata-finance/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
type UoW struct {
	WithinTxFn            func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinTransactionTxFn func(ctx context.Context, txID string, fn func(r uow.Repos, t *transaction.Transaction) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough wires both methods to run the callback directly against the
// given repos, looking rows up through Transactions for the locking variant.
// No transactional semantics; unit tests only.
func Passthrough(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(uow.Repos) error) error {
			return fn(r)
		},
		WithinTransactionTxFn: func(ctx context.Context, txID string, fn func(uow.Repos, *transaction.Transaction) error) error {
			t, err := r.Transactions.GetByTransactionIDForUpdate(ctx, txID)
			if err != nil {
				return err
			}
			return fn(r, t)
		},
	}
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinTransactionTx(ctx context.Context, txID string, fn func(r uow.Repos, t *transaction.Transaction) error) error {
	if m.WithinTransactionTxFn != nil {
		return m.WithinTransactionTxFn(ctx, txID, fn)
	}
	return errUnimplemented
}
