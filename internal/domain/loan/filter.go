package loan

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Filter is an optional set of predicates over a loan collection. A nil field
// imposes no constraint; every present field must match (AND). The free-text
// query matches case-insensitively as a substring against borrower name,
// email or phone (OR across the three).
type Filter struct {
	Query     string
	Status    *Status
	Frequency *Frequency
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	MinRate   *float64
	MaxRate   *float64
	FromDate  *time.Time
	ToDate    *time.Time
}

func (f Filter) Matches(l *Loan) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(l.BorrowerName), q) &&
			!strings.Contains(strings.ToLower(l.BorrowerEmail), q) &&
			!strings.Contains(strings.ToLower(l.BorrowerPhone), q) {
			return false
		}
	}
	if f.Status != nil && l.Status != *f.Status {
		return false
	}
	if f.Frequency != nil && l.InterestFrequency != *f.Frequency {
		return false
	}
	if f.MinAmount != nil && l.PrincipalAmount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && l.PrincipalAmount.GreaterThan(*f.MaxAmount) {
		return false
	}
	if f.MinRate != nil && l.InterestRate < *f.MinRate {
		return false
	}
	if f.MaxRate != nil && l.InterestRate > *f.MaxRate {
		return false
	}
	if f.FromDate != nil && l.LendDate.Before(*f.FromDate) {
		return false
	}
	if f.ToDate != nil && l.LendDate.After(*f.ToDate) {
		return false
	}
	return true
}

// ApplyFilter returns the matching subset of loans, preserving input order.
// Callers feed it owner-scoped collections already sorted by creation time
// descending.
func ApplyFilter(loans []*Loan, f Filter) []*Loan {
	out := make([]*Loan, 0, len(loans))
	for _, l := range loans {
		if f.Matches(l) {
			out = append(out, l)
		}
	}
	return out
}
