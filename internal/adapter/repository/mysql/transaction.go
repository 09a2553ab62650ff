package mysql

import (
	"context"
	"time"

	txDomain "mata-finance/internal/domain/transaction"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionRepository struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *txDomain.Transaction) error {
	// Items and Documents ride along as associations in the same insert.
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TransactionRepository) Save(ctx context.Context, t *txDomain.Transaction) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TransactionRepository) GetByTransactionID(ctx context.Context, txID string) (*txDomain.Transaction, error) {
	var out txDomain.Transaction
	res := r.db.WithContext(ctx).
		Preload("Items").Preload("Documents").
		Where("transaction_id = ?", txID).
		First(&out)
	return &out, res.Error
}

func (r *TransactionRepository) GetByTransactionIDForUpdate(ctx context.Context, txID string) (*txDomain.Transaction, error) {
	q := r.db.WithContext(ctx)
	// sqlite (tests) is single-writer and has no row locks
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out txDomain.Transaction
	res := q.Where("transaction_id = ?", txID).First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	// Associations load outside the locking clause.
	if err := r.db.WithContext(ctx).Model(&out).Association("Items").Find(&out.Items); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&out).Association("Documents").Find(&out.Documents); err != nil {
		return nil, err
	}
	return &out, nil
}

// TransitionStatus is the race guard: the UPDATE only lands when the row
// still holds the expected pre-state. A concurrent decision that got there
// first leaves zero rows affected.
func (r *TransactionRepository) TransitionStatus(ctx context.Context, txID string, from, to txDomain.Status, updates map[string]any) (bool, error) {
	set := map[string]any{
		"status":            to,
		"status_updated_at": time.Now().UTC(),
	}
	for k, v := range updates {
		set[k] = v
	}
	res := r.db.WithContext(ctx).
		Model(&txDomain.Transaction{}).
		Where("transaction_id = ? AND status = ?", txID, from).
		Updates(set)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *TransactionRepository) ListQueued(ctx context.Context) ([]txDomain.Transaction, error) {
	var out []txDomain.Transaction
	res := r.db.WithContext(ctx).
		Preload("Documents").
		Where("status IN ?", []txDomain.Status{txDomain.StatusSubmitted, txDomain.StatusResubmitted}).
		Order("submitted_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *TransactionRepository) ListRejectedWithoutSuccessor(ctx context.Context, adminID string) ([]txDomain.Transaction, error) {
	var out []txDomain.Transaction
	res := r.db.WithContext(ctx).
		Where("admin_id = ? AND status = ? AND successor_id IS NULL", adminID, txDomain.StatusRejected).
		Order("status_updated_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *TransactionRepository) CountUnresolvedReplacements(ctx context.Context, adminID string) (int64, error) {
	// Unresolved until the replacement reaches submission, not merely exists.
	sub := r.db.Model(&txDomain.Transaction{}).
		Select("transaction_id").
		Where("status IN ?", []txDomain.Status{
			txDomain.StatusDraft, txDomain.StatusInProgress, txDomain.StatusReturned,
		})
	var n int64
	res := r.db.WithContext(ctx).
		Model(&txDomain.Transaction{}).
		Where("admin_id = ? AND status = ?", adminID, txDomain.StatusRejected).
		Where("successor_id IS NULL OR successor_id IN (?)", sub).
		Count(&n)
	return n, res.Error
}

func (r *TransactionRepository) ListDecidedBy(ctx context.Context, approverID string) ([]txDomain.Transaction, error) {
	var out []txDomain.Transaction
	res := r.db.WithContext(ctx).
		Where("decided_by = ?", approverID).
		Order("decided_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *TransactionRepository) ListExpiringDrafts(ctx context.Context, adminID string, createdBefore time.Time) ([]txDomain.Transaction, error) {
	var out []txDomain.Transaction
	res := r.db.WithContext(ctx).
		Where("admin_id = ? AND status IN ? AND created_at < ?",
			adminID,
			[]txDomain.Status{txDomain.StatusDraft, txDomain.StatusInProgress},
			createdBefore).
		Order("created_at ASC").
		Find(&out)
	return out, res.Error
}

func (r *TransactionRepository) ListByAdmin(ctx context.Context, adminID string) ([]txDomain.Transaction, error) {
	var out []txDomain.Transaction
	res := r.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
