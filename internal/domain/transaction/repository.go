package transaction

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	Save(ctx context.Context, t *Transaction) error
	GetByTransactionID(ctx context.Context, txID string) (*Transaction, error)
	// GetByTransactionIDForUpdate locks the row for the current transaction.
	GetByTransactionIDForUpdate(ctx context.Context, txID string) (*Transaction, error)

	// TransitionStatus applies a conditional single-row update: the write
	// lands only if the row still holds the expected pre-state. Returns
	// false when the row was stale (lost race) or absent.
	TransitionStatus(ctx context.Context, txID string, from, to Status, updates map[string]any) (bool, error)

	// ListQueued returns transactions in {submitted, resubmitted} ordered by
	// submitted_at ascending, id ascending.
	ListQueued(ctx context.Context) ([]Transaction, error)

	// ListRejectedWithoutSuccessor returns an admin's rejected transactions
	// that have not had a replacement draft created yet.
	ListRejectedWithoutSuccessor(ctx context.Context, adminID string) ([]Transaction, error)

	// CountUnresolvedReplacements counts an admin's rejected transactions
	// whose replacement either does not exist or has not reached submission.
	CountUnresolvedReplacements(ctx context.Context, adminID string) (int64, error)

	// ListDecidedBy returns transactions the given approver has decided,
	// most recent decision first.
	ListDecidedBy(ctx context.Context, approverID string) ([]Transaction, error)

	// ListExpiringDrafts returns editable transactions created before the
	// given cutoff, for deadline alerting.
	ListExpiringDrafts(ctx context.Context, adminID string, createdBefore time.Time) ([]Transaction, error)

	ListByAdmin(ctx context.Context, adminID string) ([]Transaction, error)
}
