package loan

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusClosed    Status = "CLOSED"
	StatusDefaulted Status = "DEFAULTED"
)

// Statuses returns every loan status, in declaration order.
func Statuses() []Status {
	return []Status{StatusActive, StatusClosed, StatusDefaulted}
}

// ParseStatus maps a free-form string to a Status. Unknown values (including
// "ALL") report ok=false; callers treat that as "no constraint", not an error.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, true
	case StatusClosed:
		return StatusClosed, true
	case StatusDefaulted:
		return StatusDefaulted, true
	}
	return "", false
}

type Frequency string

const (
	FrequencyDaily     Frequency = "DAILY"
	FrequencyWeekly    Frequency = "WEEKLY"
	FrequencyBiweekly  Frequency = "BIWEEKLY"
	FrequencyMonthly   Frequency = "MONTHLY"
	FrequencyQuarterly Frequency = "QUARTERLY"
	FrequencyYearly    Frequency = "YEARLY"
)

// Frequencies returns every interest frequency, in declaration order.
func Frequencies() []Frequency {
	return []Frequency{
		FrequencyDaily, FrequencyWeekly, FrequencyBiweekly,
		FrequencyMonthly, FrequencyQuarterly, FrequencyYearly,
	}
}

// ParseFrequency maps a free-form string to a Frequency; unknown values report
// ok=false.
func ParseFrequency(s string) (Frequency, bool) {
	switch Frequency(strings.ToUpper(strings.TrimSpace(s))) {
	case FrequencyDaily:
		return FrequencyDaily, true
	case FrequencyWeekly:
		return FrequencyWeekly, true
	case FrequencyBiweekly:
		return FrequencyBiweekly, true
	case FrequencyMonthly:
		return FrequencyMonthly, true
	case FrequencyQuarterly:
		return FrequencyQuarterly, true
	case FrequencyYearly:
		return FrequencyYearly, true
	}
	return "", false
}

// Loan is one loan made by one owner to one borrower. Cumulative totals only
// ever increase, and only through the payment recorder; a loan flips to CLOSED
// the moment total principal received covers the principal amount.
type Loan struct {
	ID      uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID  string `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	OwnerID string `gorm:"size:32;index:idx_loans_owner" json:"-"`

	BorrowerName  string `gorm:"size:255;not null" json:"borrower_name"`
	BorrowerPhone string `gorm:"size:32" json:"borrower_phone"`
	BorrowerEmail string `gorm:"size:255" json:"borrower_email"`

	PrincipalAmount decimal.Decimal `gorm:"type:decimal(15,2)" json:"principal_amount"`
	InterestRate    float64         `gorm:"type:decimal(6,2)" json:"interest_rate"`

	LendDate time.Time  `gorm:"type:date;not null" json:"lend_date"`
	DueDate  *time.Time `gorm:"type:date" json:"due_date"`

	InterestFrequency Frequency `gorm:"size:16;default:'MONTHLY'" json:"interest_frequency"`

	TotalInterestReceived  decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"total_interest_received"`
	TotalPrincipalReceived decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"total_principal_received"`

	Notes  string `gorm:"type:text" json:"notes"`
	Status Status `gorm:"size:16;default:'ACTIVE'" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }
