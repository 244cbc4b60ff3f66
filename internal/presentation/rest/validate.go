package rest

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/crediflow/credit-approval/internal/application/dto"
)

var (
	minLoanAmount = decimal.NewFromInt(1000)
	maxRate       = decimal.NewFromInt(100)
)

// validateRegisterRequest enforces the registration input constraints before
// the request reaches the core.
func validateRegisterRequest(req dto.RegisterCustomerRequest) error {
	if req.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}
	if req.LastName == "" {
		return fmt.Errorf("last_name is required")
	}
	if req.Age < 18 || req.Age > 120 {
		return fmt.Errorf("age must be between 18 and 120")
	}
	if req.MonthlyIncome.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("monthly_income must be positive")
	}
	if req.PhoneNumber == "" || len(req.PhoneNumber) > 15 {
		return fmt.Errorf("phone_number must be 1-15 characters")
	}
	return nil
}

// validateLoanRequest enforces the shared input constraints of the
// eligibility-check and create-loan endpoints.
func validateLoanRequest(req dto.LoanRequest) error {
	if req.CustomerID < 1 {
		return fmt.Errorf("customer_id must be positive")
	}
	if req.LoanAmount.LessThan(minLoanAmount) {
		return fmt.Errorf("loan_amount must be at least 1000")
	}
	if req.InterestRate.IsNegative() || req.InterestRate.GreaterThan(maxRate) {
		return fmt.Errorf("interest_rate must be between 0 and 100")
	}
	if req.Tenure < 1 || req.Tenure > 360 {
		return fmt.Errorf("tenure must be between 1 and 360 months")
	}
	return nil
}
