package notifymock

import (
	"context"
	"sync"

	"lendtracker/internal/domain/loan"
	"lendtracker/internal/domain/notify"
)

var _ notify.Notifier = (*Notifier)(nil)

// Event is one recorded notification call.
type Event struct {
	Kind    string // "created" or "closed"
	OwnerID string
	LoanID  string
}

// Notifier records every event for later assertions. Safe for concurrent use.
type Notifier struct {
	mu     sync.Mutex
	events []Event
}

func (n *Notifier) LoanCreated(_ context.Context, ownerID string, l *loan.Loan) {
	n.append(Event{Kind: "created", OwnerID: ownerID, LoanID: l.LoanID})
}

func (n *Notifier) LoanClosed(_ context.Context, ownerID string, l *loan.Loan) {
	n.append(Event{Kind: "closed", OwnerID: ownerID, LoanID: l.LoanID})
}

func (n *Notifier) append(e Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *Notifier) Events() []Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Event, len(n.events))
	copy(out, n.events)
	return out
}
