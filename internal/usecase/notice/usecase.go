package notice

import (
	"context"
	"errors"
	"log"
	"time"

	domainNotice "mata-finance/internal/domain/notice"
	"mata-finance/internal/metrics"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Usecase is the exposure regulator around system notices: a user is not
// re-shown the same notice within the cooldown window. The exposure table is
// the source of truth; redis only short-circuits obvious duplicates.
type Usecase struct {
	notices   domainNotice.Repository
	exposures domainNotice.ExposureRepository
	rdb       *redis.Client
	cooldown  time.Duration
}

func NewUsecase(notices domainNotice.Repository, exposures domainNotice.ExposureRepository, rdb *redis.Client, cooldown time.Duration) *Usecase {
	return &Usecase{notices: notices, exposures: exposures, rdb: rdb, cooldown: cooldown}
}

type NoticeDTO struct {
	NoticeID string `json:"notice_id"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Priority int    `json:"priority"`
}

// Active returns the notices the user may currently be shown: active
// templates minus anything exposed to them within the cooldown window,
// highest priority first.
func (u *Usecase) Active(ctx context.Context, userID string) ([]NoticeDTO, error) {
	all, err := u.notices.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	exposed, err := u.exposures.ExposedNoticeIDsSince(ctx, userID, time.Now().UTC().Add(-u.cooldown))
	if err != nil {
		return nil, err
	}
	recent := make(map[string]bool, len(exposed))
	for _, nid := range exposed {
		recent[nid] = true
	}

	out := make([]NoticeDTO, 0, len(all))
	for _, n := range all {
		if recent[n.NoticeID] {
			continue
		}
		out = append(out, NoticeDTO{
			NoticeID: n.NoticeID,
			Title:    n.Title,
			Message:  n.Message,
			Category: string(n.Category),
			Priority: n.Priority,
		})
	}
	return out, nil
}

// RecordExposure books that a notice was shown. A repeat within the cooldown
// is a silent no-op rather than an error: the regulator tolerates chatty
// clients.
func (u *Usecase) RecordExposure(ctx context.Context, userID, noticeID, context_ string) error {
	n, err := u.notices.GetByNoticeID(ctx, noticeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainNotice.ErrNotFound
		}
		return err
	}

	if u.rdb != nil {
		key := "notice:exposed:" + userID + ":" + noticeID
		ok, err := u.rdb.SetNX(ctx, key, 1, u.cooldown).Result()
		if err != nil {
			// redis being down never blocks the regulator; the DB check below decides
			log.Printf("notice: redis setnx failed: %v", err)
		} else if !ok {
			return nil
		}
	}

	exposed, err := u.exposures.ExposedNoticeIDsSince(ctx, userID, time.Now().UTC().Add(-u.cooldown))
	if err != nil {
		return err
	}
	for _, nid := range exposed {
		if nid == noticeID {
			return nil
		}
	}

	if err := u.exposures.Create(ctx, &domainNotice.UserNoticeExposure{
		UserID:    userID,
		NoticeRef: n.ID,
		NoticeID:  n.NoticeID,
		Context:   context_,
		ExposedAt: time.Now().UTC(),
	}); err != nil {
		return err
	}
	metrics.NoticeExposures.Inc()
	return nil
}

// History returns the user's exposure audit trail.
func (u *Usecase) History(ctx context.Context, userID string) ([]domainNotice.UserNoticeExposure, error) {
	return u.exposures.ListByUser(ctx, userID)
}
