package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"lendtracker/internal/usecase/interest"
)

// CalculatorHandler backs the public interest calculator; it needs no
// authentication and touches no stored data.
type CalculatorHandler struct{}

func NewCalculatorHandler() *CalculatorHandler { return &CalculatorHandler{} }

func (h *CalculatorHandler) CalculateInterest(c echo.Context) error {
	principal, err := decimal.NewFromString(c.QueryParam("principal"))
	if err != nil || !principal.IsPositive() {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "principal must be a positive number"})
	}
	rate, err := strconv.ParseFloat(c.QueryParam("interestRate"), 64)
	if err != nil || rate < 0 || rate > 100 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "interestRate must be between 0 and 100"})
	}
	days := 0
	if v := c.QueryParam("days"); v != "" {
		if days, err = strconv.Atoi(v); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "days must be an integer"})
		}
	}

	out := interest.Project(principal, rate, c.QueryParam("frequency"), days)
	return c.JSON(http.StatusOK, out)
}
