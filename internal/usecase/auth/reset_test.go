package auth

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lendtracker/internal/domain/user"
	"lendtracker/internal/testutil/resetmock"
)

type sentMail struct {
	to, subject, body string
}

type mailCapture struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *mailCapture) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (m *mailCapture) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func memoryTokens() (*resetmock.Repo, map[string]*user.ResetToken) {
	byToken := make(map[string]*user.ResetToken)
	repo := &resetmock.Repo{
		CreateFn: func(_ context.Context, t *user.ResetToken) error {
			byToken[t.Token] = t
			return nil
		},
		GetByTokenFn: func(_ context.Context, token string) (*user.ResetToken, error) {
			if t, ok := byToken[token]; ok {
				return t, nil
			}
			return nil, user.ErrNotFound
		},
		SaveFn: func(_ context.Context, t *user.ResetToken) error {
			byToken[t.Token] = t
			return nil
		},
		DeleteByUserIDFn: func(_ context.Context, userID string) error {
			for k, t := range byToken {
				if t.UserID == userID {
					delete(byToken, k)
				}
			}
			return nil
		},
	}
	return repo, byToken
}

func resetFixture(t *testing.T) (*Service, map[string]*user.ResetToken, *mailCapture) {
	t.Helper()
	users, _ := memoryUsers()
	tokens, byToken := memoryTokens()
	mails := &mailCapture{}
	svc := NewService(users, tokens, mails, []byte("test-secret-0123456789"), time.Hour)
	return svc, byToken, mails
}

func registerAccount(t *testing.T, s *Service) *user.User {
	t.Helper()
	u, err := s.Register(context.Background(), RegisterInput{
		Name:     "Budi Santoso",
		Email:    "budi@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return u
}

func singleToken(t *testing.T, byToken map[string]*user.ResetToken) *user.ResetToken {
	t.Helper()
	if len(byToken) != 1 {
		t.Fatalf("stored tokens = %d, want 1", len(byToken))
	}
	for _, tok := range byToken {
		return tok
	}
	return nil
}

func TestPasswordResetLifecycle(t *testing.T) {
	s, byToken, mails := resetFixture(t)
	ctx := context.Background()
	u := registerAccount(t, s)

	if err := s.RequestPasswordReset(ctx, "Budi@Example.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	tok := singleToken(t, byToken)
	if tok.UserID != u.UserID {
		t.Fatalf("token user = %s, want %s", tok.UserID, u.UserID)
	}
	if mails.count() != 1 || mails.sent[0].to != "budi@example.com" {
		t.Fatalf("reset mail not sent to the account: %+v", mails.sent)
	}

	if err := s.ValidateResetToken(ctx, tok.Token); err != nil {
		t.Fatalf("ValidateResetToken: %v", err)
	}

	if err := s.ResetPassword(ctx, tok.Token, "brand new password"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("brand new password")) != nil {
		t.Fatal("stored hash does not verify the new password")
	}
	if _, _, err := s.Login(ctx, "budi@example.com", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still logs in: %v", err)
	}
	if _, _, err := s.Login(ctx, "budi@example.com", "brand new password"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	// The token is single use.
	if err := s.ValidateResetToken(ctx, tok.Token); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("spent token validates: %v", err)
	}
	if err := s.ResetPassword(ctx, tok.Token, "yet another password"); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("spent token redeems again: %v", err)
	}
	if mails.count() != 2 {
		t.Fatalf("mails sent = %d, want reset + confirmation", mails.count())
	}
}

func TestRequestPasswordReset_UnknownEmailSilent(t *testing.T) {
	s, byToken, mails := resetFixture(t)

	if err := s.RequestPasswordReset(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("unknown email must succeed silently, got %v", err)
	}
	if len(byToken) != 0 || mails.count() != 0 {
		t.Fatalf("unknown email produced a token or a mail: %d/%d", len(byToken), mails.count())
	}
}

func TestRequestPasswordReset_ReplacesEarlierToken(t *testing.T) {
	s, byToken, _ := resetFixture(t)
	ctx := context.Background()
	registerAccount(t, s)

	if err := s.RequestPasswordReset(ctx, "budi@example.com"); err != nil {
		t.Fatalf("first request: %v", err)
	}
	first := singleToken(t, byToken).Token

	if err := s.RequestPasswordReset(ctx, "budi@example.com"); err != nil {
		t.Fatalf("second request: %v", err)
	}
	second := singleToken(t, byToken).Token
	if second == first {
		t.Fatal("second request reused the first token")
	}
	if err := s.ValidateResetToken(ctx, first); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("replaced token still validates: %v", err)
	}
}

func TestResetPassword_Rejections(t *testing.T) {
	s, byToken, _ := resetFixture(t)
	ctx := context.Background()
	u := registerAccount(t, s)

	if err := s.ResetPassword(ctx, "no-such-token", "long enough password"); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("unknown token err = %v, want ErrInvalidResetToken", err)
	}

	byToken["expired"] = &user.ResetToken{
		Token: "expired", UserID: u.UserID,
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}
	if err := s.ResetPassword(ctx, "expired", "long enough password"); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("expired token err = %v, want ErrInvalidResetToken", err)
	}
	if err := s.ValidateResetToken(ctx, "expired"); !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("expired token validates: %v", err)
	}

	byToken["fresh"] = &user.ResetToken{
		Token: "fresh", UserID: u.UserID,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	if err := s.ResetPassword(ctx, "fresh", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("short password err = %v, want ErrWeakPassword", err)
	}
}

var reOTP = regexp.MustCompile(`^\d{6}$`)

func TestEmailVerificationFlow(t *testing.T) {
	s, _, mails := resetFixture(t)
	ctx := context.Background()
	u := registerAccount(t, s)
	if u.EmailVerified {
		t.Fatal("fresh account must start unverified")
	}

	if err := s.SendVerificationOTP(ctx, "budi@example.com"); err != nil {
		t.Fatalf("SendVerificationOTP: %v", err)
	}
	if !reOTP.MatchString(u.VerificationOTP) {
		t.Fatalf("stored code %q, want 6 digits", u.VerificationOTP)
	}
	if u.OTPExpiresAt == nil || !u.OTPExpiresAt.After(time.Now()) {
		t.Fatalf("otp expiry = %v, want in the future", u.OTPExpiresAt)
	}
	if mails.count() != 1 || mails.sent[0].to != "budi@example.com" {
		t.Fatalf("otp mail not sent: %+v", mails.sent)
	}

	if _, err := s.VerifyEmail(ctx, "budi@example.com", "000000"); !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("wrong code err = %v, want ErrInvalidOTP", err)
	}

	got, err := s.VerifyEmail(ctx, "budi@example.com", u.VerificationOTP)
	if err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}
	if !got.EmailVerified || got.VerificationOTP != "" || got.OTPExpiresAt != nil {
		t.Fatalf("verification did not settle the account: %+v", got)
	}

	if err := s.SendVerificationOTP(ctx, "budi@example.com"); !errors.Is(err, ErrAlreadyVerified) {
		t.Fatalf("resend after verify err = %v, want ErrAlreadyVerified", err)
	}
	if _, err := s.VerifyEmail(ctx, "budi@example.com", "123456"); !errors.Is(err, ErrAlreadyVerified) {
		t.Fatalf("re-verify err = %v, want ErrAlreadyVerified", err)
	}
}

func TestVerifyEmail_ExpiredOTP(t *testing.T) {
	s, _, _ := resetFixture(t)
	ctx := context.Background()
	u := registerAccount(t, s)

	past := time.Now().UTC().Add(-time.Minute)
	u.VerificationOTP = "123456"
	u.OTPExpiresAt = &past

	if _, err := s.VerifyEmail(ctx, "budi@example.com", "123456"); !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("expired code err = %v, want ErrOTPExpired", err)
	}
}
