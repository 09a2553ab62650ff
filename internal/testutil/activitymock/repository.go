package activitymock

import (
	"context"
	"sync"

	domain "mata-finance/internal/domain/activity"
)

var _ domain.Repository = (*Repo)(nil)

// Repo records every log it is given; handy for asserting the audit
// side-effect contract of lifecycle transitions.
type Repo struct {
	mu   sync.Mutex
	Logs []domain.Log
}

func (m *Repo) Create(ctx context.Context, l *domain.Log) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, *l)
	return nil
}

func (m *Repo) ListByEntityRef(ctx context.Context, entityRef string) ([]domain.Log, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Log
	for _, l := range m.Logs {
		if l.EntityRef == entityRef {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *Repo) ListByActor(ctx context.Context, actorID string) ([]domain.Log, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Log
	for _, l := range m.Logs {
		if l.ActorID == actorID {
			out = append(out, l)
		}
	}
	return out, nil
}

// Actions returns the recorded action names in order.
func (m *Repo) Actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Logs))
	for _, l := range m.Logs {
		out = append(out, l.Action)
	}
	return out
}
