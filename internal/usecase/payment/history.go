package payment

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	domain "lendtracker/internal/domain/payment"
)

// HistoryEntry is one repayment event enriched with the loan's public id and
// borrower, the shape the API hands out.
type HistoryEntry struct {
	PaymentID    string          `json:"payment_id"`
	LoanID       string          `json:"loan_id"`
	BorrowerName string          `json:"borrower_name"`
	Amount       decimal.Decimal `json:"amount"`
	Type         domain.Type     `json:"payment_type"`
	PaymentDate  time.Time       `json:"payment_date"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
}

// History lists one loan's payments, newest payment date first. The loan
// lookup doubles as the ownership check.
func (r *Recorder) History(ctx context.Context, ownerID, loanID string) ([]HistoryEntry, error) {
	l, err := r.loans.GetByLoanID(ctx, ownerID, loanID)
	if err != nil {
		return nil, err
	}
	payments, err := r.payments.ListByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}

	out := make([]HistoryEntry, 0, len(payments))
	for _, p := range payments {
		out = append(out, toEntry(p, l.LoanID, l.BorrowerName))
	}
	return out, nil
}

// AllHistory merges the payment history of every loan the owner holds,
// ordered by payment date descending (creation time breaks ties).
func (r *Recorder) AllHistory(ctx context.Context, ownerID string) ([]HistoryEntry, error) {
	loans, err := r.loans.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var out []HistoryEntry
	for _, l := range loans {
		payments, err := r.payments.ListByLoan(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		for _, p := range payments {
			out = append(out, toEntry(p, l.LoanID, l.BorrowerName))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PaymentDate.Equal(out[j].PaymentDate) {
			return out[i].PaymentDate.After(out[j].PaymentDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func toEntry(p *domain.Payment, loanID, borrowerName string) HistoryEntry {
	return HistoryEntry{
		PaymentID:    p.PaymentID,
		LoanID:       loanID,
		BorrowerName: borrowerName,
		Amount:       p.Amount,
		Type:         p.Type,
		PaymentDate:  p.PaymentDate,
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
	}
}
