package user

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUserID(ctx context.Context, userID string) (*User, error)
	Save(ctx context.Context, u *User) error
	// ListAll is the one cross-account read; only admin operations use it.
	ListAll(ctx context.Context) ([]*User, error)
}

type ResetTokenRepository interface {
	Create(ctx context.Context, t *ResetToken) error
	GetByToken(ctx context.Context, token string) (*ResetToken, error)
	Save(ctx context.Context, t *ResetToken) error
	DeleteByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}
