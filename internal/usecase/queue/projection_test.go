package queue

import (
	"context"
	"testing"
	"time"

	domain "mata-finance/internal/domain/transaction"
	"mata-finance/internal/testutil/txmock"
	"mata-finance/pkg/id"
)

func queued(status domain.Status, submittedAgo time.Duration, now time.Time) domain.Transaction {
	at := now.Add(-submittedAgo)
	return domain.Transaction{
		TransactionID: id.NewID32(),
		Code:          "TRX-PAY-" + id.NewID32()[:8],
		Type:          domain.TypePayment,
		Amount:        10_000_000,
		Currency:      "IDR",
		Status:        status,
		RiskLevel:     domain.RiskLow,
		SubmittedAt:   &at,
		Documents: []domain.Document{
			{Category: "invoice", OCRMatch: domain.OCRMatched},
			{Category: "transfer_proof", OCRMatch: domain.OCRMatched},
		},
	}
}

func newService(rows []domain.Transaction, now time.Time) *Service {
	repo := &txmock.Repo{
		ListQueuedFn: func(ctx context.Context) ([]domain.Transaction, error) {
			return rows, nil
		},
	}
	return NewService(repo, 24).WithClock(func() time.Time { return now })
}

func TestQueue_PositionsFollowRepoOrder(t *testing.T) {
	now := time.Now().UTC()
	rows := []domain.Transaction{
		queued(domain.StatusSubmitted, 5*time.Hour, now),
		queued(domain.StatusSubmitted, 3*time.Hour, now),
		queued(domain.StatusResubmitted, 30*time.Minute, now),
	}
	items, err := newService(rows, now).Queue(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("Queue err: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d", len(items))
	}
	for i, it := range items {
		if it.QueuePosition != i+1 {
			t.Fatalf("position[%d] = %d", i, it.QueuePosition)
		}
	}
}

func TestQueue_RelativeTimeBuckets(t *testing.T) {
	// Mid-day anchor keeps the calendar buckets unambiguous.
	now := time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Minute, "just_now"},
		{3 * time.Hour, "recent"},
		{7 * time.Hour, "today"},
		{26 * time.Hour, "yesterday"},
		{80 * time.Hour, "this_week"},
		{9 * 24 * time.Hour, "older"},
	}
	for _, c := range cases {
		rows := []domain.Transaction{queued(domain.StatusSubmitted, c.ago, now)}
		items, err := newService(rows, now).Queue(context.Background(), Filters{})
		if err != nil {
			t.Fatalf("Queue err: %v", err)
		}
		if items[0].RelativeTime != c.want {
			t.Errorf("ago=%v bucket=%s, want %s", c.ago, items[0].RelativeTime, c.want)
		}
	}
}

func TestQueue_SoftLabels(t *testing.T) {
	now := time.Now().UTC()

	revision := queued(domain.StatusResubmitted, time.Hour, now)
	revision.RiskLevel = domain.RiskHigh // Revision still wins

	stale := queued(domain.StatusSubmitted, 23*time.Hour, now) // past the 18h warn line

	risky := queued(domain.StatusSubmitted, time.Hour, now)
	risky.RiskLevel = domain.RiskHigh

	flagged := queued(domain.StatusSubmitted, time.Hour, now)
	flagged.Flags = domain.FlagList{"manual_override"}

	routine := queued(domain.StatusSubmitted, time.Hour, now)

	rows := []domain.Transaction{revision, stale, risky, flagged, routine}
	items, err := newService(rows, now).Queue(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("Queue err: %v", err)
	}

	want := []string{LabelRevision, LabelTimeSensitive, LabelExtraCare, LabelExtraCare, LabelRoutine}
	for i, w := range want {
		if items[i].SoftLabel != w {
			t.Errorf("label[%d] = %q, want %q", i, items[i].SoftLabel, w)
		}
	}
}

func TestQueue_DocumentStatus(t *testing.T) {
	now := time.Now().UTC()
	complete := queued(domain.StatusSubmitted, time.Hour, now)
	conflicted := queued(domain.StatusSubmitted, time.Hour, now)
	conflicted.Documents[0].OCRMatch = domain.OCRConflict

	items, err := newService([]domain.Transaction{complete, conflicted}, now).Queue(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("Queue err: %v", err)
	}
	if items[0].DocumentStatus != "complete" {
		t.Fatalf("complete doc set reported %q", items[0].DocumentStatus)
	}
	if items[1].DocumentStatus != "incomplete" {
		t.Fatalf("conflicting doc set reported %q", items[1].DocumentStatus)
	}
}

func TestQueue_Empty(t *testing.T) {
	now := time.Now().UTC()
	items, err := newService(nil, now).Queue(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("Queue err: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("len = %d, want 0", len(items))
	}
}

func TestQueue_Filters(t *testing.T) {
	now := time.Now().UTC()
	payment := queued(domain.StatusSubmitted, 3*time.Hour, now)
	transfer := queued(domain.StatusSubmitted, 2*time.Hour, now)
	transfer.Type = domain.TypeTransfer
	risky := queued(domain.StatusSubmitted, time.Hour, now)
	risky.RiskLevel = domain.RiskHigh

	rows := []domain.Transaction{payment, transfer, risky}

	items, err := newService(rows, now).Queue(context.Background(), Filters{Type: string(domain.TypeTransfer)})
	if err != nil {
		t.Fatalf("Queue err: %v", err)
	}
	if len(items) != 1 || items[0].TransactionID != transfer.TransactionID {
		t.Fatalf("type filter items = %+v", items)
	}
	if items[0].QueuePosition != 1 {
		t.Fatalf("position must restart inside the narrowed view, got %d", items[0].QueuePosition)
	}

	items, err = newService(rows, now).Queue(context.Background(), Filters{RiskLevel: string(domain.RiskHigh)})
	if err != nil {
		t.Fatalf("Queue err: %v", err)
	}
	if len(items) != 1 || items[0].TransactionID != risky.TransactionID {
		t.Fatalf("risk filter items = %+v", items)
	}
}
