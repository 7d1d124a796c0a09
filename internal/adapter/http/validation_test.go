package http

import (
	"testing"

	"github.com/shopspring/decimal"
)

type dec2Sample struct {
	Amount decimal.Decimal `validate:"gt=0,dec2"`
}

func TestValidator_Dec2OnDecimals(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(&dec2Sample{Amount: dec("100.25")}); err != nil {
		t.Fatalf("two decimal places rejected: %v", err)
	}
	if err := v.Validate(&dec2Sample{Amount: dec("100")}); err != nil {
		t.Fatalf("whole number rejected: %v", err)
	}
	if err := v.Validate(&dec2Sample{Amount: dec("100.125")}); err == nil {
		t.Fatal("three decimal places accepted")
	}
	if err := v.Validate(&dec2Sample{Amount: decimal.Zero}); err == nil {
		t.Fatal("zero accepted despite gt=0")
	}
}

func TestToFieldErrors_Messages(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&loanReq{
		BorrowerEmail:   "not-an-email",
		PrincipalAmount: dec("10.999"),
		InterestRate:    150,
	})
	if err == nil {
		t.Fatal("expected validation errors")
	}

	byField := map[string]string{}
	for _, fe := range ToFieldErrors(err) {
		byField[fe.Field] = fe.Message
	}
	if byField["BorrowerName"] != "is required" {
		t.Fatalf("BorrowerName message = %q", byField["BorrowerName"])
	}
	if byField["BorrowerEmail"] != "must be a valid email" {
		t.Fatalf("BorrowerEmail message = %q", byField["BorrowerEmail"])
	}
	if byField["PrincipalAmount"] != "must have at most 2 decimal places" {
		t.Fatalf("PrincipalAmount message = %q", byField["PrincipalAmount"])
	}
	if byField["InterestRate"] != "must be less than or equal to 100" {
		t.Fatalf("InterestRate message = %q", byField["InterestRate"])
	}
}
