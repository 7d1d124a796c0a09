package resetmock

import (
	"context"
	"errors"
	"time"

	domain "lendtracker/internal/domain/user"
)

var _ domain.ResetTokenRepository = (*Repo)(nil)

var errUnimplemented = errors.New("resetmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.ResetTokenRepository.
type Repo struct {
	CreateFn         func(ctx context.Context, t *domain.ResetToken) error
	GetByTokenFn     func(ctx context.Context, token string) (*domain.ResetToken, error)
	SaveFn           func(ctx context.Context, t *domain.ResetToken) error
	DeleteByUserIDFn func(ctx context.Context, userID string) error
	DeleteExpiredFn  func(ctx context.Context, now time.Time) error
}

func (m *Repo) Create(ctx context.Context, t *domain.ResetToken) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) GetByToken(ctx context.Context, token string) (*domain.ResetToken, error) {
	if m.GetByTokenFn != nil {
		return m.GetByTokenFn(ctx, token)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, t *domain.ResetToken) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, t)
	}
	return nil
}

func (m *Repo) DeleteByUserID(ctx context.Context, userID string) error {
	if m.DeleteByUserIDFn != nil {
		return m.DeleteByUserIDFn(ctx, userID)
	}
	return nil
}

func (m *Repo) DeleteExpired(ctx context.Context, now time.Time) error {
	if m.DeleteExpiredFn != nil {
		return m.DeleteExpiredFn(ctx, now)
	}
	return nil
}
