package noticemock

import (
	"context"
	"errors"
	"time"

	domain "mata-finance/internal/domain/notice"
)

var (
	_ domain.Repository         = (*Repo)(nil)
	_ domain.ExposureRepository = (*ExposureRepo)(nil)
)

var errUnimplemented = errors.New("noticemock: method not implemented")

type Repo struct {
	CreateFn        func(ctx context.Context, n *domain.SystemNotice) error
	GetByNoticeIDFn func(ctx context.Context, noticeID string) (*domain.SystemNotice, error)
	ListActiveFn    func(ctx context.Context) ([]domain.SystemNotice, error)
}

func (m *Repo) Create(ctx context.Context, n *domain.SystemNotice) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	return nil
}

func (m *Repo) GetByNoticeID(ctx context.Context, noticeID string) (*domain.SystemNotice, error) {
	if m.GetByNoticeIDFn != nil {
		return m.GetByNoticeIDFn(ctx, noticeID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListActive(ctx context.Context) ([]domain.SystemNotice, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx)
	}
	return nil, errUnimplemented
}

type ExposureRepo struct {
	CreateFn                func(ctx context.Context, e *domain.UserNoticeExposure) error
	ExposedNoticeIDsSinceFn func(ctx context.Context, userID string, since time.Time) ([]string, error)
	ListByUserFn            func(ctx context.Context, userID string) ([]domain.UserNoticeExposure, error)

	// Created records successful inserts when CreateFn is unset.
	Created []domain.UserNoticeExposure
}

func (m *ExposureRepo) Create(ctx context.Context, e *domain.UserNoticeExposure) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	m.Created = append(m.Created, *e)
	return nil
}

func (m *ExposureRepo) ExposedNoticeIDsSince(ctx context.Context, userID string, since time.Time) ([]string, error) {
	if m.ExposedNoticeIDsSinceFn != nil {
		return m.ExposedNoticeIDsSinceFn(ctx, userID, since)
	}
	return nil, nil
}

func (m *ExposureRepo) ListByUser(ctx context.Context, userID string) ([]domain.UserNoticeExposure, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, errUnimplemented
}
