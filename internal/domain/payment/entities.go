package payment

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeInterest  Type = "INTEREST"
	TypePrincipal Type = "PRINCIPAL"
)

// ParseType maps a free-form string to a payment Type; unknown values report
// ok=false.
func ParseType(s string) (Type, bool) {
	switch Type(strings.ToUpper(strings.TrimSpace(s))) {
	case TypeInterest:
		return TypeInterest, true
	case TypePrincipal:
		return TypePrincipal, true
	}
	return "", false
}

// Payment is one repayment event. Rows are immutable once created and are
// only ever deleted together with their loan.
type Payment struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"-"`
	PaymentID string `gorm:"size:32;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	// FK to loans.id (numeric)
	LoanID uint64 `gorm:"not null;index:idx_payments_loan" json:"-"`

	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Type        Type            `gorm:"size:16;not null" json:"payment_type"`
	PaymentDate time.Time       `gorm:"type:date;not null" json:"payment_date"`
	Notes       string          `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string { return "payment_history" }
