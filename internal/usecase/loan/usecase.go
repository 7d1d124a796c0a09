package loan

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domain "lendtracker/internal/domain/loan"
	"lendtracker/internal/domain/notify"
	"lendtracker/internal/domain/uow"
	"lendtracker/pkg/id"
	"lendtracker/pkg/metrics"
)

type Usecase struct {
	repo     domain.Repository
	uow      uow.UnitOfWork
	notifier notify.Notifier
	metrics  *metrics.Collector
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork, n notify.Notifier, m *metrics.Collector) *Usecase {
	if n == nil {
		n = notify.Noop{}
	}
	return &Usecase{repo: r, uow: tx, notifier: n, metrics: m}
}

type CreateInput struct {
	BorrowerName      string
	BorrowerPhone     string
	BorrowerEmail     string
	PrincipalAmount   decimal.Decimal
	InterestRate      float64
	LendDate          time.Time
	DueDate           *time.Time
	InterestFrequency string
	Notes             string
}

func (in *CreateInput) validate() (domain.Frequency, error) {
	if strings.TrimSpace(in.BorrowerName) == "" {
		return "", domain.ErrBlankBorrowerName
	}
	if !in.PrincipalAmount.IsPositive() {
		return "", domain.ErrInvalidPrincipal
	}
	if in.InterestRate < 0 || in.InterestRate > 100 {
		return "", domain.ErrInvalidRate
	}
	if in.LendDate.IsZero() {
		return "", domain.ErrMissingLendDate
	}
	if strings.TrimSpace(in.InterestFrequency) == "" {
		return domain.FrequencyMonthly, nil
	}
	f, ok := domain.ParseFrequency(in.InterestFrequency)
	if !ok {
		return "", domain.ErrUnknownFrequency
	}
	return f, nil
}

func (u *Usecase) Create(ctx context.Context, ownerID string, in CreateInput) (*domain.Loan, error) {
	freq, err := in.validate()
	if err != nil {
		return nil, err
	}

	l := &domain.Loan{
		LoanID:                 id.NewID32(),
		OwnerID:                ownerID,
		BorrowerName:           strings.TrimSpace(in.BorrowerName),
		BorrowerPhone:          strings.TrimSpace(in.BorrowerPhone),
		BorrowerEmail:          strings.TrimSpace(in.BorrowerEmail),
		PrincipalAmount:        in.PrincipalAmount,
		InterestRate:           in.InterestRate,
		LendDate:               in.LendDate,
		DueDate:                in.DueDate,
		InterestFrequency:      freq,
		TotalInterestReceived:  decimal.Zero,
		TotalPrincipalReceived: decimal.Zero,
		Notes:                  in.Notes,
		Status:                 domain.StatusActive,
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	u.notifier.LoanCreated(ctx, ownerID, l)
	u.metrics.LoanCreated()
	return l, nil
}

func (u *Usecase) Get(ctx context.Context, ownerID, loanID string) (*domain.Loan, error) {
	return u.repo.GetByLoanID(ctx, ownerID, loanID)
}

// List returns the owner's loans, newest first.
func (u *Usecase) List(ctx context.Context, ownerID string) ([]*domain.Loan, error) {
	return u.repo.ListByOwner(ctx, ownerID)
}

// ListActive returns the owner's ACTIVE loans, newest first.
func (u *Usecase) ListActive(ctx context.Context, ownerID string) ([]*domain.Loan, error) {
	loans, err := u.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	active := domain.StatusActive
	return domain.ApplyFilter(loans, domain.Filter{Status: &active}), nil
}

type UpdateInput struct {
	CreateInput
	Status                 string
	TotalInterestReceived  decimal.Decimal
	TotalPrincipalReceived decimal.Decimal
}

// Update replaces every editable field wholesale, including the cumulative
// totals and the status. Setting the status by hand bypasses the automatic
// closure rule; that override is intentional, and no re-validation is done
// against the totals when reopening a CLOSED loan.
func (u *Usecase) Update(ctx context.Context, ownerID, loanID string, in UpdateInput) (*domain.Loan, error) {
	freq, err := in.validate()
	if err != nil {
		return nil, err
	}
	status, ok := domain.ParseStatus(in.Status)
	if !ok {
		return nil, domain.ErrUnknownStatus
	}

	l, err := u.repo.GetByLoanID(ctx, ownerID, loanID)
	if err != nil {
		return nil, err
	}
	prevStatus := l.Status

	l.BorrowerName = strings.TrimSpace(in.BorrowerName)
	l.BorrowerPhone = strings.TrimSpace(in.BorrowerPhone)
	l.BorrowerEmail = strings.TrimSpace(in.BorrowerEmail)
	l.PrincipalAmount = in.PrincipalAmount
	l.InterestRate = in.InterestRate
	l.LendDate = in.LendDate
	l.DueDate = in.DueDate
	l.InterestFrequency = freq
	l.TotalInterestReceived = in.TotalInterestReceived
	l.TotalPrincipalReceived = in.TotalPrincipalReceived
	l.Notes = in.Notes
	l.Status = status

	if err := u.repo.Save(ctx, l); err != nil {
		return nil, err
	}

	if prevStatus != domain.StatusClosed && l.Status == domain.StatusClosed {
		u.notifier.LoanClosed(ctx, ownerID, l)
		u.metrics.LoanClosed()
	}
	return l, nil
}

// Delete removes the loan and all of its payment history as one transaction,
// payments first so no orphan rows survive a partial failure.
func (u *Usecase) Delete(ctx context.Context, ownerID, loanID string) error {
	return u.uow.WithinLoanTx(ctx, ownerID, loanID, func(r uow.Repos, l *domain.Loan) error {
		if err := r.Payments.DeleteByLoan(ctx, l.ID); err != nil {
			return err
		}
		return r.Loans.Delete(ctx, l)
	})
}
