package notice

import (
	"context"
	"errors"
	"testing"
	"time"

	domainNotice "mata-finance/internal/domain/notice"
	"mata-finance/internal/testutil/noticemock"
	"mata-finance/pkg/id"

	"gorm.io/gorm"
)

func activeNotice(noticeID string, priority int) domainNotice.SystemNotice {
	return domainNotice.SystemNotice{
		ID:       uint64(priority),
		NoticeID: noticeID,
		Title:    "Pola kecepatan meninjau",
		Message:  "Beberapa keputusan terakhir lebih cepat dari kebiasaan Anda.",
		Category: domainNotice.CategorySpeedDeviation,
		Priority: priority,
		Active:   true,
	}
}

func TestActive_FiltersRecentExposures(t *testing.T) {
	seen := id.NewID32()
	fresh := id.NewID32()
	notices := &noticemock.Repo{
		ListActiveFn: func(ctx context.Context) ([]domainNotice.SystemNotice, error) {
			return []domainNotice.SystemNotice{activeNotice(seen, 5), activeNotice(fresh, 3)}, nil
		},
	}
	exposures := &noticemock.ExposureRepo{
		ExposedNoticeIDsSinceFn: func(ctx context.Context, userID string, since time.Time) ([]string, error) {
			return []string{seen}, nil
		},
	}
	uc := NewUsecase(notices, exposures, nil, 24*time.Hour)

	got, err := uc.Active(context.Background(), id.NewID32())
	if err != nil {
		t.Fatalf("Active err: %v", err)
	}
	if len(got) != 1 || got[0].NoticeID != fresh {
		t.Fatalf("got = %+v, want only the unexposed notice", got)
	}
}

func TestRecordExposure_FirstTime(t *testing.T) {
	nid := id.NewID32()
	notices := &noticemock.Repo{
		GetByNoticeIDFn: func(ctx context.Context, noticeID string) (*domainNotice.SystemNotice, error) {
			n := activeNotice(nid, 2)
			return &n, nil
		},
	}
	exposures := &noticemock.ExposureRepo{}
	uc := NewUsecase(notices, exposures, nil, 24*time.Hour)

	userID := id.NewID32()
	if err := uc.RecordExposure(context.Background(), userID, nid, "queue_view"); err != nil {
		t.Fatalf("RecordExposure err: %v", err)
	}
	if len(exposures.Created) != 1 {
		t.Fatalf("exposures created = %d", len(exposures.Created))
	}
	e := exposures.Created[0]
	if e.UserID != userID || e.NoticeID != nid || e.Context != "queue_view" {
		t.Fatalf("exposure row = %+v", e)
	}
}

func TestRecordExposure_WithinCooldownIsNoop(t *testing.T) {
	nid := id.NewID32()
	notices := &noticemock.Repo{
		GetByNoticeIDFn: func(ctx context.Context, noticeID string) (*domainNotice.SystemNotice, error) {
			n := activeNotice(nid, 2)
			return &n, nil
		},
	}
	exposures := &noticemock.ExposureRepo{
		ExposedNoticeIDsSinceFn: func(ctx context.Context, userID string, since time.Time) ([]string, error) {
			return []string{nid}, nil
		},
	}
	uc := NewUsecase(notices, exposures, nil, 24*time.Hour)

	if err := uc.RecordExposure(context.Background(), id.NewID32(), nid, "queue_view"); err != nil {
		t.Fatalf("repeat exposure must be a no-op, got %v", err)
	}
	if len(exposures.Created) != 0 {
		t.Fatalf("duplicate exposure was persisted: %+v", exposures.Created)
	}
}

func TestRecordExposure_UnknownNotice(t *testing.T) {
	notices := &noticemock.Repo{
		GetByNoticeIDFn: func(ctx context.Context, noticeID string) (*domainNotice.SystemNotice, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	uc := NewUsecase(notices, &noticemock.ExposureRepo{}, nil, 24*time.Hour)

	err := uc.RecordExposure(context.Background(), id.NewID32(), id.NewID32(), "x")
	if !errors.Is(err, domainNotice.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
