// Package admin holds the cross-account operations reserved for ADMIN users:
// user management and system-wide statistics. Everything else in the system is
// owner-scoped; this package is the deliberate exception.
package admin

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"lendtracker/internal/domain/loan"
	"lendtracker/internal/domain/user"
)

var ErrCannotDeactivateAdmin = errors.New("cannot deactivate an admin account")

type Service struct {
	users user.Repository
	loans loan.Repository
}

func NewService(users user.Repository, loans loan.Repository) *Service {
	return &Service{users: users, loans: loans}
}

// UserSummary is one row of the admin user list: the account plus its lending
// footprint.
type UserSummary struct {
	UserID        string          `json:"user_id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Role          user.Role       `json:"role"`
	Active        bool            `json:"active"`
	EmailVerified bool            `json:"email_verified"`
	CreatedAt     time.Time       `json:"created_at"`
	LastLoginAt   *time.Time      `json:"last_login_at,omitempty"`
	LoanCount     int             `json:"loan_count"`
	TotalLent     decimal.Decimal `json:"total_lent"`
}

func (s *Service) ListUsers(ctx context.Context) ([]UserSummary, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		loans, err := s.loans.ListByOwner(ctx, u.UserID)
		if err != nil {
			return nil, err
		}
		total := decimal.Zero
		for _, l := range loans {
			total = total.Add(l.PrincipalAmount)
		}
		out = append(out, UserSummary{
			UserID:        u.UserID,
			Name:          u.Name,
			Email:         u.Email,
			Phone:         u.Phone,
			Role:          u.Role,
			Active:        u.Active,
			EmailVerified: u.EmailVerified,
			CreatedAt:     u.CreatedAt,
			LastLoginAt:   u.LastLoginAt,
			LoanCount:     len(loans),
			TotalLent:     total,
		})
	}
	return out, nil
}

// ToggleActive flips the account's active flag. Admin accounts cannot be
// deactivated, so there is always at least one account that can undo a
// mistaken lockout.
func (s *Service) ToggleActive(ctx context.Context, userID string) (*user.User, error) {
	u, err := s.users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Role == user.RoleAdmin {
		return nil, ErrCannotDeactivateAdmin
	}
	u.Active = !u.Active
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) GrantAdmin(ctx context.Context, userID string) (*user.User, error) {
	return s.setRole(ctx, userID, user.RoleAdmin)
}

func (s *Service) RevokeAdmin(ctx context.Context, userID string) (*user.User, error) {
	return s.setRole(ctx, userID, user.RoleUser)
}

func (s *Service) setRole(ctx context.Context, userID string, role user.Role) (*user.User, error) {
	u, err := s.users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Role = role
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

type TopUser struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	LoanCount int    `json:"loan_count"`
}

// SystemStats aggregates over every account and every loan. Unlike the owner
// dashboard, the money totals here span all statuses.
type SystemStats struct {
	TotalUsers  int `json:"totalUsers"`
	ActiveUsers int `json:"activeUsers"`
	AdminUsers  int `json:"adminUsers"`

	TotalLoans     int `json:"totalLoans"`
	ActiveLoans    int `json:"activeLoans"`
	ClosedLoans    int `json:"closedLoans"`
	DefaultedLoans int `json:"defaultedLoans"`

	TotalLentOut           decimal.Decimal `json:"totalLentOut"`
	TotalInterestReceived  decimal.Decimal `json:"totalInterestReceived"`
	TotalPrincipalReceived decimal.Decimal `json:"totalPrincipalReceived"`
	AverageInterestRate    float64         `json:"averageInterestRate"`
	AverageLoanAmount      decimal.Decimal `json:"averageLoanAmount"`

	LoansByFrequency map[string]int `json:"loansByFrequency"`
	TopUsersByLoans  []TopUser      `json:"topUsersByLoans"`
}

func (s *Service) SystemStats(ctx context.Context) (*SystemStats, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	loans, err := s.loans.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &SystemStats{
		TotalUsers:             len(users),
		TotalLoans:             len(loans),
		TotalLentOut:           decimal.Zero,
		TotalInterestReceived:  decimal.Zero,
		TotalPrincipalReceived: decimal.Zero,
		AverageLoanAmount:      decimal.Zero,
		LoansByFrequency:       make(map[string]int),
		TopUsersByLoans:        []TopUser{},
	}

	byUserID := make(map[string]*user.User, len(users))
	for _, u := range users {
		byUserID[u.UserID] = u
		if u.Active {
			stats.ActiveUsers++
		}
		if u.Role == user.RoleAdmin {
			stats.AdminUsers++
		}
	}

	loanCounts := make(map[string]int)
	var rateSum float64
	for _, l := range loans {
		switch l.Status {
		case loan.StatusActive:
			stats.ActiveLoans++
		case loan.StatusClosed:
			stats.ClosedLoans++
		case loan.StatusDefaulted:
			stats.DefaultedLoans++
		}
		stats.TotalLentOut = stats.TotalLentOut.Add(l.PrincipalAmount)
		stats.TotalInterestReceived = stats.TotalInterestReceived.Add(l.TotalInterestReceived)
		stats.TotalPrincipalReceived = stats.TotalPrincipalReceived.Add(l.TotalPrincipalReceived)
		stats.LoansByFrequency[string(l.InterestFrequency)]++
		loanCounts[l.OwnerID]++
		rateSum += l.InterestRate
	}

	if len(loans) > 0 {
		stats.AverageInterestRate = math.Round(rateSum/float64(len(loans))*100) / 100
		stats.AverageLoanAmount = stats.TotalLentOut.
			Div(decimal.NewFromInt(int64(len(loans)))).
			Round(2)
	}

	type entry struct {
		name, email string
		count       int
	}
	entries := make([]entry, 0, len(loanCounts))
	for ownerID, n := range loanCounts {
		u, ok := byUserID[ownerID]
		if !ok {
			continue
		}
		entries = append(entries, entry{name: u.Name, email: u.Email, count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	if len(entries) > 5 {
		entries = entries[:5]
	}
	for _, e := range entries {
		stats.TopUsersByLoans = append(stats.TopUsersByLoans, TopUser{
			Name: e.name, Email: e.email, LoanCount: e.count,
		})
	}

	return stats, nil
}
