package notify

import (
	"context"

	"lendtracker/internal/domain/loan"
)

// Notifier delivers best-effort notifications about loan lifecycle events.
// Implementations must never block the caller and never surface delivery
// failures; a failed send is logged and dropped. The mutation that triggered
// the event has already committed by the time these are called.
type Notifier interface {
	LoanCreated(ctx context.Context, ownerID string, l *loan.Loan)
	LoanClosed(ctx context.Context, ownerID string, l *loan.Loan)
}

// Noop discards every event. Useful in tests and when notifications are
// disabled by config.
type Noop struct{}

func (Noop) LoanCreated(context.Context, string, *loan.Loan) {}
func (Noop) LoanClosed(context.Context, string, *loan.Loan)  {}
