package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	loanDomain "lendtracker/internal/domain/loan"
	paymentDomain "lendtracker/internal/domain/payment"
	userDomain "lendtracker/internal/domain/user"
	"lendtracker/internal/usecase/admin"
	"lendtracker/internal/usecase/auth"
)

const dateLayout = "2006-01-02"

// parseDate accepts YYYY-MM-DD; empty means absent.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// writeError maps domain errors onto HTTP status codes. Validation-class
// sentinels surface verbatim; anything unexpected collapses to a 500 without
// leaking internals.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, loanDomain.ErrNotFound) || errors.Is(err, userDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, loanDomain.ErrBlankBorrowerName),
		errors.Is(err, loanDomain.ErrInvalidPrincipal),
		errors.Is(err, loanDomain.ErrInvalidRate),
		errors.Is(err, loanDomain.ErrMissingLendDate),
		errors.Is(err, loanDomain.ErrUnknownFrequency),
		errors.Is(err, loanDomain.ErrUnknownStatus),
		errors.Is(err, paymentDomain.ErrInvalidAmount),
		errors.Is(err, paymentDomain.ErrUnknownType),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrInvalidOTP),
		errors.Is(err, auth.ErrOTPExpired),
		errors.Is(err, auth.ErrInvalidResetToken):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, userDomain.ErrEmailTaken),
		errors.Is(err, auth.ErrAlreadyVerified),
		errors.Is(err, admin.ErrCannotDeactivateAdmin):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
