package signal

import (
	"context"
	"encoding/json"
	"time"

	domain "mata-finance/internal/domain/signal"
	domainTx "mata-finance/internal/domain/transaction"
	"mata-finance/internal/metrics"
)

type Usecase struct{ repo domain.Repository }

func NewUsecase(repo domain.Repository) *Usecase { return &Usecase{repo: repo} }

type SignalDTO struct {
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// Record appends one snapshot to a signal series. Payloads are validated
// against the schema for their series. Nothing here decides which notice a
// user sees; that derivation lives outside this core.
func (u *Usecase) Record(ctx context.Context, name string, payload json.RawMessage) (*SignalDTO, error) {
	n := domain.Name(name)
	if err := domain.ValidatePayload(n, payload); err != nil {
		return nil, domainTx.Invalid("signal: %v", err)
	}
	s := &domain.Signal{Name: n, Payload: string(payload)}
	if err := u.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	metrics.SignalsIngested.WithLabelValues(name).Inc()
	return &SignalDTO{Name: name, Payload: payload, CreatedAt: s.CreatedAt}, nil
}

func (u *Usecase) Recent(ctx context.Context, name string, limit int) ([]SignalDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	list, err := u.repo.ListRecent(ctx, domain.Name(name), limit)
	if err != nil {
		return nil, err
	}
	out := make([]SignalDTO, 0, len(list))
	for _, s := range list {
		out = append(out, SignalDTO{Name: string(s.Name), Payload: json.RawMessage(s.Payload), CreatedAt: s.CreatedAt})
	}
	return out, nil
}
