package signal

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	domain "mata-finance/internal/domain/signal"
	domainTx "mata-finance/internal/domain/transaction"
)

type stubRepo struct {
	created []domain.Signal
	recent  []domain.Signal
}

func (s *stubRepo) Create(ctx context.Context, sig *domain.Signal) error {
	s.created = append(s.created, *sig)
	return nil
}

func (s *stubRepo) ListRecent(ctx context.Context, name domain.Name, limit int) ([]domain.Signal, error) {
	if limit < len(s.recent) {
		return s.recent[:limit], nil
	}
	return s.recent, nil
}

func TestRecord_ValidPressureMetric(t *testing.T) {
	repo := &stubRepo{}
	uc := NewUsecase(repo)

	payload := json.RawMessage(`{"frequency_pattern":"burst","abuse_likelihood":0.2,"stress_calibration":0.7}`)
	dto, err := uc.Record(context.Background(), "PRESSURE_METRIC", payload)
	if err != nil {
		t.Fatalf("Record err: %v", err)
	}
	if dto.Name != "PRESSURE_METRIC" {
		t.Fatalf("dto = %+v", dto)
	}
	if len(repo.created) != 1 || repo.created[0].Name != domain.NamePressureMetric {
		t.Fatalf("created = %+v", repo.created)
	}
}

func TestRecord_RejectsUnknownFields(t *testing.T) {
	uc := NewUsecase(&stubRepo{})

	payload := json.RawMessage(`{"frequency_pattern":"burst","abuse_likelihood":0.2,"extra":1}`)
	_, err := uc.Record(context.Background(), "PRESSURE_METRIC", payload)
	var ve *domainTx.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestRecord_RejectsUnknownSeries(t *testing.T) {
	uc := NewUsecase(&stubRepo{})
	_, err := uc.Record(context.Background(), "SOMETHING_ELSE", json.RawMessage(`{}`))
	var ve *domainTx.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestRecent_ClampsLimit(t *testing.T) {
	repo := &stubRepo{recent: make([]domain.Signal, 30)}
	uc := NewUsecase(repo)

	list, err := uc.Recent(context.Background(), "PRESSURE_METRIC", -5)
	if err != nil {
		t.Fatalf("Recent err: %v", err)
	}
	if len(list) != 20 {
		t.Fatalf("len = %d, want default 20", len(list))
	}
}
