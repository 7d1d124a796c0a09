package dashboard

import (
	"context"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	loanDomain "lendtracker/internal/domain/loan"
	"lendtracker/internal/usecase/interest"
)

// Aggregator folds an owner's loan book into the dashboard summary.
type Aggregator struct {
	repo loanDomain.Repository
}

func NewAggregator(r loanDomain.Repository) *Aggregator { return &Aggregator{repo: r} }

// Borrower is one top-borrower row: a name and the summed outstanding
// principal across that borrower's ACTIVE loans.
type Borrower struct {
	Name        string          `json:"name"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type Stats struct {
	TotalLoans  int `json:"totalLoans"`
	ActiveLoans int `json:"activeLoans"`
	ClosedLoans int `json:"closedLoans"`

	// Principal still out on ACTIVE loans.
	TotalLentOut decimal.Decimal `json:"totalLentOut"`
	// Cumulative totals over every loan, regardless of status.
	TotalInterestReceived  decimal.Decimal `json:"totalInterestReceived"`
	TotalPrincipalReceived decimal.Decimal `json:"totalPrincipalReceived"`

	// Mean rate over ACTIVE loans, two decimals; 0 when none are active.
	AverageInterestRate float64 `json:"averageInterestRate"`
	// Per-month interest expected from ACTIVE loans paying MONTHLY.
	MonthlyInterestExpected decimal.Decimal `json:"monthlyInterestExpected"`

	LoansByFrequency map[loanDomain.Frequency]int64 `json:"loansByFrequency"`
	TopBorrowers     []Borrower                     `json:"topBorrowers"`
}

func (a *Aggregator) Stats(ctx context.Context, ownerID string) (*Stats, error) {
	loans, err := a.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalLentOut:            decimal.Zero,
		TotalInterestReceived:   decimal.Zero,
		TotalPrincipalReceived:  decimal.Zero,
		MonthlyInterestExpected: decimal.Zero,
		LoansByFrequency:        make(map[loanDomain.Frequency]int64),
		TopBorrowers:            []Borrower{},
	}

	var rateSum float64
	byBorrower := make(map[string]decimal.Decimal)

	for _, l := range loans {
		stats.TotalLoans++
		stats.TotalInterestReceived = stats.TotalInterestReceived.Add(l.TotalInterestReceived)
		stats.TotalPrincipalReceived = stats.TotalPrincipalReceived.Add(l.TotalPrincipalReceived)

		switch l.Status {
		case loanDomain.StatusClosed:
			stats.ClosedLoans++
			continue
		case loanDomain.StatusActive:
			stats.ActiveLoans++
		default:
			continue
		}

		// ACTIVE loans only from here on.
		stats.TotalLentOut = stats.TotalLentOut.Add(l.PrincipalAmount)
		rateSum += l.InterestRate
		stats.LoansByFrequency[l.InterestFrequency]++
		byBorrower[l.BorrowerName] = byBorrower[l.BorrowerName].Add(l.PrincipalAmount)

		if l.InterestFrequency == loanDomain.FrequencyMonthly {
			stats.MonthlyInterestExpected = stats.MonthlyInterestExpected.Add(
				interest.PeriodicAmount(l.PrincipalAmount, l.InterestRate, l.InterestFrequency))
		}
	}

	if stats.ActiveLoans > 0 {
		avg := rateSum / float64(stats.ActiveLoans)
		stats.AverageInterestRate = math.Round(avg*100) / 100
	}
	stats.MonthlyInterestExpected = stats.MonthlyInterestExpected.Round(2)
	stats.TopBorrowers = topBorrowers(byBorrower, 5)

	return stats, nil
}

// topBorrowers ranks borrowers by summed principal descending; equal amounts
// order by name so the result is deterministic.
func topBorrowers(byBorrower map[string]decimal.Decimal, limit int) []Borrower {
	out := make([]Borrower, 0, len(byBorrower))
	for name, total := range byBorrower {
		out = append(out, Borrower{Name: name, TotalAmount: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TotalAmount.Equal(out[j].TotalAmount) {
			return out[i].TotalAmount.GreaterThan(out[j].TotalAmount)
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
