package mysql

import (
	"context"

	"mata-finance/internal/domain/transaction"
	"mata-finance/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Transactions: &TransactionRepository{db: tx},
		Emergencies:  &EmergencyRepository{db: tx},
		Activities:   &ActivityRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repos(tx))
	})
}

func (u *GormUoW) WithinTransactionTx(ctx context.Context, txID string, fn func(r uow.Repos, t *transaction.Transaction) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := repos(tx)
		// lock the transaction row up-front to prevent races
		t, err := r.Transactions.GetByTransactionIDForUpdate(ctx, txID)
		if err != nil {
			return err
		}
		return fn(r, t)
	})
}
