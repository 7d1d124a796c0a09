package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"lendtracker/internal/domain/user"
	"lendtracker/pkg/id"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrAlreadyVerified    = errors.New("email is already verified")
	ErrInvalidOTP         = errors.New("invalid verification code")
	ErrOTPExpired         = errors.New("verification code has expired")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

const (
	otpTTL        = 10 * time.Minute
	resetTokenTTL = time.Hour
)

// Mailer delivers a single account email. Sends are best effort: a failed or
// absent mailer never fails the operation that triggered it.
type Mailer interface {
	Send(to, subject, body string) error
}

// Service issues and verifies the bearer tokens that identify a loan owner.
// Every core operation receives the owner id this service resolves; nothing
// downstream trusts implicit session state.
type Service struct {
	users  user.Repository
	tokens user.ResetTokenRepository
	mailer Mailer
	secret []byte
	ttl    time.Duration
}

func NewService(users user.Repository, tokens user.ResetTokenRepository, mailer Mailer, secret []byte, ttl time.Duration) *Service {
	return &Service{users: users, tokens: tokens, mailer: mailer, secret: secret, ttl: ttl}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*user.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		return nil, ErrInvalidCredentials
	}
	if len(in.Password) < 8 {
		return nil, ErrWeakPassword
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, user.ErrEmailTaken
	} else if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		UserID:       id.NewID32(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         user.RoleUser,
		Active:       true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks the credentials and returns a signed token plus the user.
// A missing account and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !u.Active {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	// Last-login bookkeeping never blocks a login.
	now := time.Now().UTC()
	u.LastLoginAt = &now
	_ = s.users.Save(ctx, u)

	token, err := s.issue(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// SendVerificationOTP stores a fresh 6-digit code on the account and mails it.
func (s *Service) SendVerificationOTP(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if u.EmailVerified {
		return ErrAlreadyVerified
	}

	code, err := otp()
	if err != nil {
		return err
	}
	expiry := time.Now().UTC().Add(otpTTL)
	u.VerificationOTP = code
	u.OTPExpiresAt = &expiry
	if err := s.users.Save(ctx, u); err != nil {
		return err
	}

	s.mail(u.Email, "Verify your email",
		fmt.Sprintf("Hi %s, your verification code is %s. It expires in %d minutes.",
			u.Name, code, int(otpTTL.Minutes())))
	return nil
}

// VerifyEmail redeems the OTP and marks the account verified.
func (s *Service) VerifyEmail(ctx context.Context, email, code string) (*user.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if u.EmailVerified {
		return nil, ErrAlreadyVerified
	}
	if u.OTPExpiresAt == nil || time.Now().UTC().After(*u.OTPExpiresAt) {
		return nil, ErrOTPExpired
	}
	if u.VerificationOTP == "" || code != u.VerificationOTP {
		return nil, ErrInvalidOTP
	}

	u.EmailVerified = true
	u.VerificationOTP = ""
	u.OTPExpiresAt = nil
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// RequestPasswordReset issues a fresh single-use reset token and mails it.
// An unknown email succeeds silently so the endpoint cannot be used to
// discover which addresses have accounts.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := s.tokens.DeleteByUserID(ctx, u.UserID); err != nil {
		return err
	}
	t := &user.ResetToken{
		Token:     id.NewID32(),
		UserID:    u.UserID,
		ExpiresAt: time.Now().UTC().Add(resetTokenTTL),
	}
	if err := s.tokens.Create(ctx, t); err != nil {
		return err
	}

	s.mail(u.Email, "Reset your password",
		fmt.Sprintf("Hi %s, use this token to reset your password: %s. It expires in 1 hour.",
			u.Name, t.Token))
	return nil
}

// ValidateResetToken reports whether the token can still redeem a reset.
func (s *Service) ValidateResetToken(ctx context.Context, token string) error {
	t, err := s.tokens.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if !t.Usable(time.Now().UTC()) {
		return ErrInvalidResetToken
	}
	return nil
}

// ResetPassword spends the token and replaces the account password.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrWeakPassword
	}
	t, err := s.tokens.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if !t.Usable(time.Now().UTC()) {
		return ErrInvalidResetToken
	}

	u, err := s.users.GetByUserID(ctx, t.UserID)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	if err := s.users.Save(ctx, u); err != nil {
		return err
	}

	t.Used = true
	if err := s.tokens.Save(ctx, t); err != nil {
		return err
	}

	s.mail(u.Email, "Your password was changed",
		fmt.Sprintf("Hi %s, your password was just reset. If this wasn't you, contact support.", u.Name))
	return nil
}

func (s *Service) mail(to, subject, body string) {
	if s.mailer == nil {
		return
	}
	_ = s.mailer.Send(to, subject, body)
}

// otp returns a 6-digit code with a crypto-grade source.
func otp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func (s *Service) issue(u *user.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   u.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken returns the owner id a valid bearer token carries.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
