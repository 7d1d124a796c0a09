package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	loanDomain "lendtracker/internal/domain/loan"
	paymentUC "lendtracker/internal/usecase/payment"
)

type recordFunc func(ctx context.Context, ownerID, loanID string, in paymentUC.Input) (*loanDomain.Loan, error)

type PaymentHandler struct{ rec *paymentUC.Recorder }

func NewPaymentHandler(rec *paymentUC.Recorder) *PaymentHandler { return &PaymentHandler{rec: rec} }

type paymentReq struct {
	Amount      decimal.Decimal `json:"amount" validate:"gt=0,dec2"`
	PaymentDate string          `json:"payment_date"`
	Notes       string          `json:"notes"`
}

func (r *paymentReq) toInput() (paymentUC.Input, error) {
	date, err := parseDate(r.PaymentDate)
	if err != nil {
		return paymentUC.Input{}, err
	}
	return paymentUC.Input{Amount: r.Amount, PaymentDate: date, Notes: r.Notes}, nil
}

func (h *PaymentHandler) ReceiveInterest(c echo.Context) error {
	return h.receive(c, h.rec.RecordInterest)
}

func (h *PaymentHandler) ReceivePrincipal(c echo.Context) error {
	return h.receive(c, h.rec.RecordPrincipal)
}

func (h *PaymentHandler) receive(c echo.Context, record recordFunc) error {
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	in, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payment_date, want YYYY-MM-DD"})
	}
	l, err := record(c.Request().Context(), ownerID(c), c.Param("loan_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *PaymentHandler) PaymentHistory(c echo.Context) error {
	entries, err := h.rec.History(c.Request().Context(), ownerID(c), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *PaymentHandler) AllPaymentHistory(c echo.Context) error {
	entries, err := h.rec.AllHistory(c.Request().Context(), ownerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}
