package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	loanUC "lendtracker/internal/usecase/loan"
)

type LoanHandler struct{ uc *loanUC.Usecase }

func NewLoanHandler(uc *loanUC.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type loanReq struct {
	BorrowerName      string          `json:"borrower_name" validate:"required"`
	BorrowerPhone     string          `json:"borrower_phone"`
	BorrowerEmail     string          `json:"borrower_email" validate:"omitempty,email"`
	PrincipalAmount   decimal.Decimal `json:"principal_amount" validate:"gt=0,dec2"`
	InterestRate      float64         `json:"interest_rate" validate:"gte=0,lte=100"`
	LendDate          string          `json:"lend_date" validate:"required"`
	DueDate           string          `json:"due_date"`
	InterestFrequency string          `json:"interest_frequency"`
	Notes             string          `json:"notes"`
}

type updateLoanReq struct {
	loanReq
	Status                 string          `json:"status" validate:"required"`
	TotalInterestReceived  decimal.Decimal `json:"total_interest_received" validate:"gte=0,dec2"`
	TotalPrincipalReceived decimal.Decimal `json:"total_principal_received" validate:"gte=0,dec2"`
}

func (r *loanReq) toInput() (loanUC.CreateInput, error) {
	lend, err := parseDate(r.LendDate)
	if err != nil {
		return loanUC.CreateInput{}, err
	}
	due, err := parseDate(r.DueDate)
	if err != nil {
		return loanUC.CreateInput{}, err
	}
	in := loanUC.CreateInput{
		BorrowerName:      r.BorrowerName,
		BorrowerPhone:     r.BorrowerPhone,
		BorrowerEmail:     r.BorrowerEmail,
		PrincipalAmount:   r.PrincipalAmount,
		InterestRate:      r.InterestRate,
		DueDate:           due,
		InterestFrequency: r.InterestFrequency,
		Notes:             r.Notes,
	}
	if lend != nil {
		in.LendDate = *lend
	}
	return in, nil
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req loanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	in, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date, want YYYY-MM-DD"})
	}
	l, err := h.uc.Create(c.Request().Context(), ownerID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	loans, err := h.uc.List(c.Request().Context(), ownerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) ListActiveLoans(c echo.Context) error {
	loans, err := h.uc.ListActive(c.Request().Context(), ownerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	l, err := h.uc.Get(c.Request().Context(), ownerID(c), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LoanHandler) UpdateLoan(c echo.Context) error {
	var req updateLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	base, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date, want YYYY-MM-DD"})
	}
	in := loanUC.UpdateInput{
		CreateInput:            base,
		Status:                 req.Status,
		TotalInterestReceived:  req.TotalInterestReceived,
		TotalPrincipalReceived: req.TotalPrincipalReceived,
	}
	l, err := h.uc.Update(c.Request().Context(), ownerID(c), c.Param("loan_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LoanHandler) DeleteLoan(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), ownerID(c), c.Param("loan_id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LoanHandler) SearchLoans(c echo.Context) error {
	in := loanUC.SearchInput{
		Query:     c.QueryParam("q"),
		Status:    c.QueryParam("status"),
		Frequency: c.QueryParam("frequency"),
	}
	var err error
	if in.MinAmount, err = parseDecimalParam(c, "minAmount"); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid minAmount"})
	}
	if in.MaxAmount, err = parseDecimalParam(c, "maxAmount"); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid maxAmount"})
	}
	if in.MinRate, err = parseFloatParam(c, "minRate"); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid minRate"})
	}
	if in.MaxRate, err = parseFloatParam(c, "maxRate"); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid maxRate"})
	}
	if in.FromDate, err = parseDate(c.QueryParam("fromDate")); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid fromDate, want YYYY-MM-DD"})
	}
	if in.ToDate, err = parseDate(c.QueryParam("toDate")); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid toDate, want YYYY-MM-DD"})
	}

	loans, err := h.uc.Search(c.Request().Context(), ownerID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) FilterCounts(c echo.Context) error {
	counts, err := h.uc.FilterCounts(c.Request().Context(), ownerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, counts)
}

func parseDecimalParam(c echo.Context, name string) (*decimal.Decimal, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseFloatParam(c echo.Context, name string) (*float64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
