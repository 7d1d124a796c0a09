// Package notifier delivers loan lifecycle emails in the background. The
// mutation path only ever enqueues: a full queue drops the event with a log
// line, a failed send is logged and swallowed, and neither can fail or delay
// the payment or loan write that triggered it.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"lendtracker/internal/domain/loan"
	"lendtracker/internal/domain/user"
	"lendtracker/pkg/metrics"
)

// Sender delivers one message. The default LogSender just logs it; an SMTP
// implementation can be swapped in without touching the queue.
type Sender interface {
	Send(to, subject, body string) error
}

type LogSender struct{ Logger *slog.Logger }

func (s LogSender) Send(to, subject, body string) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("notification",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body))
	return nil
}

type eventKind string

const (
	eventLoanCreated eventKind = "loan_created"
	eventLoanClosed  eventKind = "loan_closed"
)

type event struct {
	kind    eventKind
	ownerID string
	loan    loan.Loan // snapshot, not shared with the caller
}

type Service struct {
	users   user.Repository
	sender  Sender
	metrics *metrics.Collector
	logger  *slog.Logger

	queue chan event
	done  chan struct{}
	wg    sync.WaitGroup
}

func New(users user.Repository, sender Sender, workers, queueSize int, m *metrics.Collector, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 100
	}
	s := &Service{
		users:   users,
		sender:  sender,
		metrics: m,
		logger:  logger,
		queue:   make(chan event, queueSize),
		done:    make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

func (s *Service) LoanCreated(_ context.Context, ownerID string, l *loan.Loan) {
	s.enqueue(event{kind: eventLoanCreated, ownerID: ownerID, loan: *l})
}

func (s *Service) LoanClosed(_ context.Context, ownerID string, l *loan.Loan) {
	s.enqueue(event{kind: eventLoanClosed, ownerID: ownerID, loan: *l})
}

func (s *Service) enqueue(e event) {
	select {
	case s.queue <- e:
	default:
		s.logger.Warn("notification queue full, dropping event",
			slog.String("kind", string(e.kind)),
			slog.String("loan_id", e.loan.LoanID))
		s.metrics.Notification(string(e.kind), "dropped")
	}
}

// Close stops accepting events and waits for in-flight sends to finish.
func (s *Service) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Service) worker() {
	defer s.wg.Done()
	for {
		select {
		case e := <-s.queue:
			s.deliver(e)
		case <-s.done:
			// drain whatever is already queued
			for {
				select {
				case e := <-s.queue:
					s.deliver(e)
				default:
					return
				}
			}
		}
	}
}

func (s *Service) deliver(e event) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	owner, err := s.users.GetByUserID(ctx, e.ownerID)
	if err != nil {
		s.logger.Error("notification: owner lookup failed",
			slog.String("owner_id", e.ownerID), slog.Any("err", err))
		s.metrics.Notification(string(e.kind), "failed")
		return
	}

	subject, body := s.compose(e, owner)
	if err := s.sender.Send(owner.Email, subject, body); err != nil {
		s.logger.Error("notification: send failed",
			slog.String("owner_id", e.ownerID),
			slog.String("kind", string(e.kind)),
			slog.Any("err", err))
		s.metrics.Notification(string(e.kind), "failed")
		return
	}
	s.metrics.Notification(string(e.kind), "sent")
}

func (s *Service) compose(e event, owner *user.User) (subject, body string) {
	l := e.loan
	switch e.kind {
	case eventLoanCreated:
		subject = "New loan recorded"
		body = fmt.Sprintf("Hi %s, your loan of %s to %s at %.2f%% was recorded.",
			owner.Name, l.PrincipalAmount.StringFixed(2), l.BorrowerName, l.InterestRate)
	case eventLoanClosed:
		subject = "Loan fully repaid"
		body = fmt.Sprintf("Hi %s, the loan of %s to %s is fully repaid (interest received %s, principal received %s).",
			owner.Name, l.PrincipalAmount.StringFixed(2), l.BorrowerName,
			l.TotalInterestReceived.StringFixed(2), l.TotalPrincipalReceived.StringFixed(2))
	}
	return subject, body
}
