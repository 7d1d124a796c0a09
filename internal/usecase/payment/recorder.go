package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	loanDomain "lendtracker/internal/domain/loan"
	domain "lendtracker/internal/domain/payment"
	"lendtracker/internal/domain/notify"
	"lendtracker/internal/domain/uow"
	"lendtracker/pkg/id"
	"lendtracker/pkg/metrics"
)

// Recorder applies repayments to a loan: it bumps the matching cumulative
// total, appends an immutable payment row, and closes the loan once principal
// is fully recovered. Both writes happen inside one locked loan transaction,
// so concurrent payments against the same loan serialize at the store and a
// failed payment write never leaves a half-applied total behind.
type Recorder struct {
	loans    loanDomain.Repository
	payments domain.Repository
	uow      uow.UnitOfWork
	notifier notify.Notifier
	metrics  *metrics.Collector
}

func NewRecorder(loans loanDomain.Repository, payments domain.Repository, tx uow.UnitOfWork, n notify.Notifier, m *metrics.Collector) *Recorder {
	if n == nil {
		n = notify.Noop{}
	}
	return &Recorder{loans: loans, payments: payments, uow: tx, notifier: n, metrics: m}
}

type Input struct {
	Amount      decimal.Decimal
	PaymentDate *time.Time
	Notes       string
}

// RecordInterest adds an interest repayment. Interest never changes the loan
// status.
func (r *Recorder) RecordInterest(ctx context.Context, ownerID, loanID string, in Input) (*loanDomain.Loan, error) {
	return r.record(ctx, ownerID, loanID, domain.TypeInterest, in)
}

// RecordPrincipal adds a principal repayment and closes the loan when the
// cumulative principal received reaches the principal amount. Overpayment is
// recorded as-is, without truncation.
func (r *Recorder) RecordPrincipal(ctx context.Context, ownerID, loanID string, in Input) (*loanDomain.Loan, error) {
	return r.record(ctx, ownerID, loanID, domain.TypePrincipal, in)
}

func (r *Recorder) record(ctx context.Context, ownerID, loanID string, t domain.Type, in Input) (*loanDomain.Loan, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	paymentDate := time.Now().UTC()
	if in.PaymentDate != nil {
		paymentDate = *in.PaymentDate
	}

	var (
		updated *loanDomain.Loan
		closed  bool
	)
	err := r.uow.WithinLoanTx(ctx, ownerID, loanID, func(repos uow.Repos, l *loanDomain.Loan) error {
		p := &domain.Payment{
			PaymentID:   id.NewID32(),
			LoanID:      l.ID,
			Amount:      in.Amount,
			Type:        t,
			PaymentDate: paymentDate,
			Notes:       in.Notes,
		}
		if err := repos.Payments.Create(ctx, p); err != nil {
			return err
		}

		switch t {
		case domain.TypeInterest:
			l.TotalInterestReceived = l.TotalInterestReceived.Add(in.Amount)
		case domain.TypePrincipal:
			l.TotalPrincipalReceived = l.TotalPrincipalReceived.Add(in.Amount)
			if l.TotalPrincipalReceived.GreaterThanOrEqual(l.PrincipalAmount) {
				l.Status = loanDomain.StatusClosed
				closed = true
			}
		default:
			return domain.ErrUnknownType
		}

		if err := repos.Loans.Save(ctx, l); err != nil {
			return err
		}
		updated = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.metrics.PaymentRecorded(string(t))
	if closed {
		r.notifier.LoanClosed(ctx, ownerID, updated)
		r.metrics.LoanClosed()
	}
	return updated, nil
}
