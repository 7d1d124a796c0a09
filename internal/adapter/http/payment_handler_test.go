package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	loanDomain "lendtracker/internal/domain/loan"
	paymentDomain "lendtracker/internal/domain/payment"
	"lendtracker/internal/domain/uow"
	"lendtracker/internal/testutil/loanmock"
	"lendtracker/internal/testutil/paymentmock"
	"lendtracker/internal/testutil/uowmock"
	paymentUC "lendtracker/internal/usecase/payment"
)

func paymentFixture(l *loanDomain.Loan) *PaymentHandler {
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(_ context.Context, ownerID, loanID string) (*loanDomain.Loan, error) {
			if ownerID != l.OwnerID || loanID != l.LoanID {
				return nil, loanDomain.ErrNotFound
			}
			return l, nil
		},
		GetByLoanIDForUpdateFn: func(_ context.Context, ownerID, loanID string) (*loanDomain.Loan, error) {
			if ownerID != l.OwnerID || loanID != l.LoanID {
				return nil, loanDomain.ErrNotFound
			}
			return l, nil
		},
	}
	payments := &paymentmock.Repo{}
	tx := uowmock.Passthrough(uow.Repos{Loans: loans, Payments: payments})
	return NewPaymentHandler(paymentUC.NewRecorder(loans, payments, tx, nil, nil))
}

func TestReceivePrincipal_ClosesLoan(t *testing.T) {
	l := &loanDomain.Loan{
		ID:              1,
		LoanID:          "deadbeef",
		OwnerID:         testOwner,
		PrincipalAmount: dec("1000"),
		Status:          loanDomain.StatusActive,
	}
	h := paymentFixture(l)
	e := newEcho()

	c, rec := newContext(e, http.MethodPost, "/api/loans/deadbeef/receive-principal", `{"amount": 1000}`)
	c.SetParamNames("loan_id")
	c.SetParamValues("deadbeef")

	if err := h.ReceivePrincipal(c); err != nil {
		t.Fatalf("ReceivePrincipal: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["status"] != "CLOSED" {
		t.Fatalf("response status = %v, want CLOSED", got["status"])
	}
}

func TestReceiveInterest_Validation(t *testing.T) {
	h := paymentFixture(&loanDomain.Loan{LoanID: "deadbeef", OwnerID: testOwner, PrincipalAmount: dec("1000")})
	e := newEcho()

	for name, body := range map[string]string{
		"zero amount":    `{"amount": 0}`,
		"negative":       `{"amount": -5}`,
		"three decimals": `{"amount": 10.125}`,
		"bad date":       `{"amount": 10, "payment_date": "not-a-date"}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, rec := newContext(e, http.MethodPost, "/api/loans/deadbeef/receive-interest", body)
			c.SetParamNames("loan_id")
			c.SetParamValues("deadbeef")
			if err := h.ReceiveInterest(c); err != nil {
				t.Fatalf("ReceiveInterest: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body)
			}
		})
	}
}

func TestReceiveInterest_UnknownLoan(t *testing.T) {
	h := paymentFixture(&loanDomain.Loan{LoanID: "deadbeef", OwnerID: testOwner, PrincipalAmount: dec("1000")})
	e := newEcho()

	c, rec := newContext(e, http.MethodPost, "/api/loans/feedface/receive-interest", `{"amount": 10}`)
	c.SetParamNames("loan_id")
	c.SetParamValues("feedface")

	if err := h.ReceiveInterest(c); err != nil {
		t.Fatalf("ReceiveInterest: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestPaymentHistory(t *testing.T) {
	l := &loanDomain.Loan{ID: 1, LoanID: "deadbeef", OwnerID: testOwner, BorrowerName: "Budi"}
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(context.Context, string, string) (*loanDomain.Loan, error) { return l, nil },
	}
	payments := &paymentmock.Repo{
		ListByLoanFn: func(context.Context, uint64) ([]*paymentDomain.Payment, error) {
			return []*paymentDomain.Payment{
				{PaymentID: "p1", Amount: dec("100"), Type: paymentDomain.TypeInterest},
			}, nil
		},
	}
	h := NewPaymentHandler(paymentUC.NewRecorder(loans, payments, nil, nil, nil))
	e := newEcho()

	c, rec := newContext(e, http.MethodGet, "/api/loans/deadbeef/payments", "")
	c.SetParamNames("loan_id")
	c.SetParamValues("deadbeef")

	if err := h.PaymentHistory(c); err != nil {
		t.Fatalf("PaymentHistory: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 1 || got[0]["payment_id"] != "p1" || got[0]["borrower_name"] != "Budi" {
		t.Fatalf("history = %v", got)
	}
}
