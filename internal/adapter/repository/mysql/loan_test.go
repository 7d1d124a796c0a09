package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	loanDomain "lendtracker/internal/domain/loan"
	"lendtracker/pkg/id"
)

// --- SQLite-friendly schemas only for tests (no MySQL column types) ---

type loanSQLite struct {
	ID                     uint64     `gorm:"primaryKey;column:id"`
	LoanID                 string     `gorm:"size:32;column:loan_id"`
	OwnerID                string     `gorm:"size:32;column:owner_id"`
	BorrowerName           string     `gorm:"column:borrower_name"`
	BorrowerPhone          string     `gorm:"column:borrower_phone"`
	BorrowerEmail          string     `gorm:"column:borrower_email"`
	PrincipalAmount        string     `gorm:"type:text;column:principal_amount"`
	InterestRate           float64    `gorm:"column:interest_rate"`
	LendDate               time.Time  `gorm:"column:lend_date"`
	DueDate                *time.Time `gorm:"column:due_date"`
	InterestFrequency      string     `gorm:"type:text;column:interest_frequency"`
	TotalInterestReceived  string     `gorm:"type:text;column:total_interest_received"`
	TotalPrincipalReceived string     `gorm:"type:text;column:total_principal_received"`
	Notes                  string     `gorm:"column:notes"`
	Status                 string     `gorm:"type:text;column:status"`
	CreatedAt              time.Time  `gorm:"column:created_at"`
	UpdatedAt              time.Time  `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type paymentSQLite struct {
	ID          uint64    `gorm:"primaryKey;column:id"`
	PaymentID   string    `gorm:"size:32;column:payment_id"`
	LoanID      uint64    `gorm:"column:loan_id"`
	Amount      string    `gorm:"type:text;column:amount"`
	Type        string    `gorm:"type:text;column:type"`
	PaymentDate time.Time `gorm:"column:payment_date"`
	Notes       string    `gorm:"column:notes"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (paymentSQLite) TableName() string { return "payment_history" }

type userSQLite struct {
	ID              uint64     `gorm:"primaryKey;column:id"`
	UserID          string     `gorm:"size:32;column:user_id"`
	Name            string     `gorm:"column:name"`
	Email           string     `gorm:"uniqueIndex;column:email"`
	PasswordHash    string     `gorm:"column:password_hash"`
	Phone           string     `gorm:"column:phone"`
	Role            string     `gorm:"type:text;column:role"`
	Active          bool       `gorm:"column:active"`
	EmailVerified   bool       `gorm:"column:email_verified"`
	VerificationOTP string     `gorm:"column:verification_otp"`
	OTPExpiresAt    *time.Time `gorm:"column:otp_expires_at"`
	LastLoginAt     *time.Time `gorm:"column:last_login_at"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (userSQLite) TableName() string { return "users" }

type resetTokenSQLite struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	Token     string    `gorm:"uniqueIndex;column:token"`
	UserID    string    `gorm:"size:32;column:user_id"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
	Used      bool      `gorm:"column:used"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (resetTokenSQLite) TableName() string { return "password_reset_tokens" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe
// schemas, never the domain models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&loanSQLite{}, &paymentSQLite{}, &userSQLite{}, &resetTokenSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func makeLoan(ownerID, borrowerName string) *loanDomain.Loan {
	return &loanDomain.Loan{
		LoanID:                 id.NewID32(),
		OwnerID:                ownerID,
		BorrowerName:           borrowerName,
		BorrowerPhone:          "0813999888",
		BorrowerEmail:          "b@example.com",
		PrincipalAmount:        dec("100000"),
		InterestRate:           12,
		LendDate:               time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		InterestFrequency:      loanDomain.FrequencyMonthly,
		TotalInterestReceived:  decimal.Zero,
		TotalPrincipalReceived: decimal.Zero,
		Status:                 loanDomain.StatusActive,
	}
}

const (
	ownerA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	ownerB = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func TestLoanCreateAndGet(t *testing.T) {
	repo := NewLoanRepository(openTestDB(t))
	ctx := context.Background()

	l := makeLoan(ownerA, "Budi Santoso")
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == 0 {
		t.Fatal("Create did not set the auto-increment ID")
	}

	got, err := repo.GetByLoanID(ctx, ownerA, l.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.BorrowerName != "Budi Santoso" || !got.PrincipalAmount.Equal(dec("100000")) {
		t.Errorf("unexpected loan: %+v", got)
	}
	if got.Status != loanDomain.StatusActive || got.InterestFrequency != loanDomain.FrequencyMonthly {
		t.Errorf("enum round-trip wrong: %s/%s", got.Status, got.InterestFrequency)
	}
}

func TestLoanGet_OwnerScoping(t *testing.T) {
	repo := NewLoanRepository(openTestDB(t))
	ctx := context.Background()

	l := makeLoan(ownerA, "Budi Santoso")
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Another owner asking for the same loan id gets the same answer as a
	// missing loan.
	if _, err := repo.GetByLoanID(ctx, ownerB, l.LoanID); !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("cross-owner get err = %v, want ErrNotFound", err)
	}
	if _, err := repo.GetByLoanID(ctx, ownerA, id.NewID32()); !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("missing loan err = %v, want ErrNotFound", err)
	}
	if _, err := repo.GetByLoanIDForUpdate(ctx, ownerB, l.LoanID); !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("cross-owner locked get err = %v, want ErrNotFound", err)
	}
}

func TestLoanSaveUpdatesTotals(t *testing.T) {
	repo := NewLoanRepository(openTestDB(t))
	ctx := context.Background()

	l := makeLoan(ownerA, "Budi Santoso")
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	l.TotalInterestReceived = dec("1200.50")
	l.Status = loanDomain.StatusClosed
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, ownerA, l.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if !got.TotalInterestReceived.Equal(dec("1200.50")) {
		t.Errorf("totalInterestReceived = %s, want 1200.50", got.TotalInterestReceived)
	}
	if got.Status != loanDomain.StatusClosed {
		t.Errorf("status = %s, want CLOSED", got.Status)
	}
}

func TestLoanSave_UnmodifiedRoundTripIsStable(t *testing.T) {
	repo := NewLoanRepository(openTestDB(t))
	ctx := context.Background()

	l := makeLoan(ownerA, "Budi Santoso")
	l.PrincipalAmount = dec("123456.78")
	l.TotalInterestReceived = dec("150.75")
	l.TotalPrincipalReceived = dec("99999.99")
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	before, err := repo.GetByLoanID(ctx, ownerA, l.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	// Re-saving a fetched loan without touching it must change nothing.
	if err := repo.Save(ctx, before); err != nil {
		t.Fatalf("Save: %v", err)
	}
	after, err := repo.GetByLoanID(ctx, ownerA, l.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID after save: %v", err)
	}

	if got, want := after.PrincipalAmount.String(), "123456.78"; got != want {
		t.Errorf("principal = %s, want %s byte-stable", got, want)
	}
	if got, want := after.TotalInterestReceived.String(), "150.75"; got != want {
		t.Errorf("totalInterestReceived = %s, want %s byte-stable", got, want)
	}
	if got, want := after.TotalPrincipalReceived.String(), "99999.99"; got != want {
		t.Errorf("totalPrincipalReceived = %s, want %s byte-stable", got, want)
	}
	if after.Status != before.Status || after.InterestFrequency != before.InterestFrequency {
		t.Errorf("enums drifted: %s/%s -> %s/%s",
			before.Status, before.InterestFrequency, after.Status, after.InterestFrequency)
	}
	if after.BorrowerName != before.BorrowerName || !after.LendDate.Equal(before.LendDate) {
		t.Errorf("fields drifted: %+v -> %+v", before, after)
	}
}

func TestLoanListByOwner_NewestFirstAndScoped(t *testing.T) {
	repo := NewLoanRepository(openTestDB(t))
	ctx := context.Background()

	first := makeLoan(ownerA, "First")
	second := makeLoan(ownerA, "Second")
	other := makeLoan(ownerB, "Other")
	for _, l := range []*loanDomain.Loan{first, second, other} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListByOwner(ctx, ownerA)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("loans = %d, want 2 (owner scoped)", len(got))
	}
	if got[0].BorrowerName != "Second" || got[1].BorrowerName != "First" {
		t.Errorf("order = %s, %s; want newest first", got[0].BorrowerName, got[1].BorrowerName)
	}
}

func TestLoanListAll_SpansOwners(t *testing.T) {
	repo := NewLoanRepository(openTestDB(t))
	ctx := context.Background()

	for _, l := range []*loanDomain.Loan{
		makeLoan(ownerA, "A1"), makeLoan(ownerA, "A2"), makeLoan(ownerB, "B1"),
	} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("loans = %d, want 3 across owners", len(got))
	}
	if got[0].BorrowerName != "B1" {
		t.Errorf("order = %s first, want newest first", got[0].BorrowerName)
	}
}

func TestLoanDelete(t *testing.T) {
	repo := NewLoanRepository(openTestDB(t))
	ctx := context.Background()

	l := makeLoan(ownerA, "Budi Santoso")
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, l); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByLoanID(ctx, ownerA, l.LoanID); !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("err after delete = %v, want ErrNotFound", err)
	}
}

func TestLoanCounts(t *testing.T) {
	repo := NewLoanRepository(openTestDB(t))
	ctx := context.Background()

	a1 := makeLoan(ownerA, "A1")
	a2 := makeLoan(ownerA, "A2")
	a2.Status = loanDomain.StatusClosed
	a3 := makeLoan(ownerA, "A3")
	a3.InterestFrequency = loanDomain.FrequencyWeekly
	b1 := makeLoan(ownerB, "B1")
	for _, l := range []*loanDomain.Loan{a1, a2, a3, b1} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	if n, err := repo.CountByOwnerAndStatus(ctx, ownerA, loanDomain.StatusActive); err != nil || n != 2 {
		t.Fatalf("active count = %d (%v), want 2", n, err)
	}
	if n, err := repo.CountByOwnerAndStatus(ctx, ownerA, loanDomain.StatusDefaulted); err != nil || n != 0 {
		t.Fatalf("defaulted count = %d (%v), want 0", n, err)
	}
	if n, err := repo.CountByOwnerAndFrequency(ctx, ownerA, loanDomain.FrequencyMonthly); err != nil || n != 2 {
		t.Fatalf("monthly count = %d (%v), want 2", n, err)
	}
	if n, err := repo.CountByOwnerAndFrequency(ctx, ownerB, loanDomain.FrequencyMonthly); err != nil || n != 1 {
		t.Fatalf("owner B monthly count = %d (%v), want 1", n, err)
	}
}
