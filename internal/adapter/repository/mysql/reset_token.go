package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	userDomain "lendtracker/internal/domain/user"
)

type ResetTokenRepository struct{ db *gorm.DB }

func NewResetTokenRepository(db *gorm.DB) *ResetTokenRepository {
	return &ResetTokenRepository{db: db}
}

func (r *ResetTokenRepository) Create(ctx context.Context, t *userDomain.ResetToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *ResetTokenRepository) GetByToken(ctx context.Context, token string) (*userDomain.ResetToken, error) {
	var out userDomain.ResetToken
	res := r.db.WithContext(ctx).Where("token = ?", token).First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, userDomain.ErrNotFound
		}
		return nil, res.Error
	}
	return &out, nil
}

func (r *ResetTokenRepository) Save(ctx context.Context, t *userDomain.ResetToken) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *ResetTokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&userDomain.ResetToken{}).Error
}

// DeleteExpired removes tokens whose expiry has passed, spent or not.
func (r *ResetTokenRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&userDomain.ResetToken{}).Error
}
