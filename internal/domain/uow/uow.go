package uow

import (
	"context"

	"mata-finance/internal/domain/activity"
	"mata-finance/internal/domain/emergency"
	"mata-finance/internal/domain/transaction"
)

type Repos struct {
	Transactions transaction.Repository
	Emergencies  emergency.Repository
	Activities   activity.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the transaction row first, then pass it in
	WithinTransactionTx(ctx context.Context, txID string, fn func(r Repos, t *transaction.Transaction) error) error
}
