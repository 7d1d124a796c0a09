package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is a lender account. Loans are scoped exclusively to their owner's
// UserID; nothing in the system ever shows one owner's loans to another.
type User struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	UserID string `gorm:"size:32;uniqueIndex:ux_users_user_id" json:"user_id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:255;not null;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:32" json:"phone"`

	Role   Role `gorm:"size:16;default:'USER'" json:"role"`
	Active bool `gorm:"default:true" json:"active"`

	// Email verification is optional; unverified accounts can still log in.
	EmailVerified   bool       `gorm:"default:false" json:"email_verified"`
	VerificationOTP string     `gorm:"size:8;column:verification_otp" json:"-"`
	OTPExpiresAt    *time.Time `gorm:"column:otp_expires_at" json:"-"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// ResetToken is a single-use password reset credential. A token is spendable
// exactly once and only before its expiry; requesting a new reset invalidates
// any earlier tokens for the same user.
type ResetToken struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	Token     string    `gorm:"size:64;uniqueIndex:ux_reset_tokens_token" json:"-"`
	UserID    string    `gorm:"size:32;index" json:"-"`
	ExpiresAt time.Time `json:"-"`
	Used      bool      `gorm:"default:false" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (ResetToken) TableName() string { return "password_reset_tokens" }

// Usable reports whether the token can still redeem a password reset.
func (t *ResetToken) Usable(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
