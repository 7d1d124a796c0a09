package loan

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domain "lendtracker/internal/domain/loan"
)

// SearchInput carries the optional filter fields. Empty strings and nil
// pointers impose no constraint; unknown status/frequency strings (and the
// UI's "ALL" sentinel) are silently treated as absent.
type SearchInput struct {
	Query     string
	Status    string
	Frequency string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	MinRate   *float64
	MaxRate   *float64
	FromDate  *time.Time
	ToDate    *time.Time
}

func (in SearchInput) filter() domain.Filter {
	f := domain.Filter{
		Query:     in.Query,
		MinAmount: in.MinAmount,
		MaxAmount: in.MaxAmount,
		MinRate:   in.MinRate,
		MaxRate:   in.MaxRate,
		FromDate:  in.FromDate,
		ToDate:    in.ToDate,
	}
	if s, ok := domain.ParseStatus(in.Status); ok {
		f.Status = &s
	}
	if fr, ok := domain.ParseFrequency(in.Frequency); ok {
		f.Frequency = &fr
	}
	return f
}

// Search evaluates the filter over the owner's loans. Results keep the
// store's creation-time-descending order.
func (u *Usecase) Search(ctx context.Context, ownerID string, in SearchInput) ([]*domain.Loan, error) {
	loans, err := u.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return domain.ApplyFilter(loans, in.filter()), nil
}

// FilterCounts reports how many of the owner's loans fall under each status
// and each frequency. Every enum value is present, zero counts included.
type FilterCounts struct {
	ByStatus    map[domain.Status]int64    `json:"byStatus"`
	ByFrequency map[domain.Frequency]int64 `json:"byFrequency"`
}

func (u *Usecase) FilterCounts(ctx context.Context, ownerID string) (*FilterCounts, error) {
	out := &FilterCounts{
		ByStatus:    make(map[domain.Status]int64, len(domain.Statuses())),
		ByFrequency: make(map[domain.Frequency]int64, len(domain.Frequencies())),
	}
	for _, s := range domain.Statuses() {
		n, err := u.repo.CountByOwnerAndStatus(ctx, ownerID, s)
		if err != nil {
			return nil, err
		}
		out.ByStatus[s] = n
	}
	for _, f := range domain.Frequencies() {
		n, err := u.repo.CountByOwnerAndFrequency(ctx, ownerID, f)
		if err != nil {
			return nil, err
		}
		out.ByFrequency[f] = n
	}
	return out, nil
}
