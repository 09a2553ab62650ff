package queue

import (
	"context"
	"time"

	domain "mata-finance/internal/domain/transaction"
	"mata-finance/internal/metrics"
)

// Service computes the approver's work queue from live transaction state.
// Read-only: nothing is materialized, every call reprojects.
type Service struct {
	repo     domain.Repository
	slaHours int
	now      func() time.Time
}

func NewService(repo domain.Repository, slaHours int) *Service {
	return &Service{repo: repo, slaHours: slaHours, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock overrides the time source. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

const (
	LabelRoutine       = "Routine"
	LabelRevision      = "Revision"
	LabelTimeSensitive = "Time-sensitive"
	LabelExtraCare     = "Needs extra care"
)

// Item is the approver-facing queue row. It carries only what a single
// reviewer needs: no signal values, no exposure history, no record of what
// other approvers decided elsewhere.
type Item struct {
	TransactionID  string     `json:"transaction_id"`
	Code           string     `json:"code"`
	Type           string     `json:"type"`
	Amount         float64    `json:"amount"`
	Currency       string     `json:"currency"`
	Status         string     `json:"status"`
	Description    string     `json:"description"`
	RecipientName  string     `json:"recipient_name"`
	SubmittedAt    *time.Time `json:"submitted_at,omitempty"`
	QueuePosition  int        `json:"queue_position"`
	RelativeTime   string     `json:"relative_time"`
	SoftLabel      string     `json:"soft_label"`
	DocumentStatus string     `json:"document_status"`
}

// Filters narrows queue membership. Empty fields match everything; positions
// are assigned within the narrowed view.
type Filters struct {
	Type      string
	RiskLevel string
}

func (f Filters) match(t *domain.Transaction) bool {
	if f.Type != "" && string(t.Type) != f.Type {
		return false
	}
	if f.RiskLevel != "" && string(t.RiskLevel) != f.RiskLevel {
		return false
	}
	return true
}

// Queue projects the current queue: membership {submitted, resubmitted},
// ordered oldest submission first with id as the deterministic tiebreak.
func (s *Service) Queue(ctx context.Context, f Filters) ([]Item, error) {
	list, err := s.repo.ListQueued(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]Item, 0, len(list))
	for i := range list {
		t := &list[i]
		if !f.match(t) {
			continue
		}
		item := Item{
			TransactionID:  t.TransactionID,
			Code:           t.Code,
			Type:           string(t.Type),
			Amount:         t.Amount,
			Currency:       t.Currency,
			Status:         string(t.Status),
			Description:    t.Description,
			RecipientName:  t.RecipientName,
			SubmittedAt:    t.SubmittedAt,
			QueuePosition:  len(out) + 1,
			RelativeTime:   relativeBucket(t.SubmittedAt, now),
			SoftLabel:      s.softLabel(t, now),
			DocumentStatus: documentStatus(t),
		}
		out = append(out, item)
	}
	// The gauge tracks the full queue, not any caller's narrowed view.
	metrics.QueueDepth.Set(float64(len(list)))
	return out, nil
}

// relativeBucket coarsens submission age for display.
func relativeBucket(submittedAt *time.Time, now time.Time) string {
	if submittedAt == nil {
		return "older"
	}
	t := submittedAt.UTC()
	age := now.Sub(t)
	switch {
	case age < time.Hour:
		return "just_now"
	case age < 6*time.Hour:
		return "recent"
	}
	if sameDay(t, now) {
		return "today"
	}
	if sameDay(t, now.AddDate(0, 0, -1)) {
		return "yesterday"
	}
	if age < 7*24*time.Hour {
		return "this_week"
	}
	return "older"
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// softLabel is a non-authoritative hint; first match wins. The SLA threshold
// is a policy input, not something this projection owns.
func (s *Service) softLabel(t *domain.Transaction, now time.Time) string {
	if t.Status == domain.StatusResubmitted {
		return LabelRevision
	}
	if t.SubmittedAt != nil && s.slaHours > 0 {
		warn := time.Duration(s.slaHours-domain.NearDeadlineHours) * time.Hour
		if warn < 0 {
			warn = 0
		}
		if now.Sub(*t.SubmittedAt) >= warn {
			return LabelTimeSensitive
		}
	}
	if t.RiskLevel == domain.RiskHigh || len(t.Flags) > 0 {
		return LabelExtraCare
	}
	return LabelRoutine
}

func documentStatus(t *domain.Transaction) string {
	if t.DocumentsComplete() {
		return "complete"
	}
	return "incomplete"
}
