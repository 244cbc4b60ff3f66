package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Loan is a single consumer loan. The installment is computed once at
// creation from (amount, rate, tenure) and never recomputed; external
// servicing advances EMIsPaidOnTime as payments come in.
type Loan struct {
	ID                 int64
	CustomerID         int64
	LoanAmount         decimal.Decimal
	InterestRate       decimal.Decimal
	Tenure             int
	MonthlyInstallment decimal.Decimal
	EMIsPaidOnTime     int
	StartDate          time.Time
	EndDate            time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewLoan creates a loan starting today with the installment derived from the
// amortization formula. The end date is 30 days per tenure month out.
func NewLoan(customerID int64, amount, annualRate decimal.Decimal, tenureMonths int, startDate time.Time) (Loan, error) {
	if customerID <= 0 {
		return Loan{}, errors.New("customer ID is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return Loan{}, errors.New("loan amount must be positive")
	}
	if annualRate.IsNegative() {
		return Loan{}, errors.New("interest rate must not be negative")
	}
	if tenureMonths <= 0 {
		return Loan{}, errors.New("tenure months must be positive")
	}

	return Loan{
		CustomerID:         customerID,
		LoanAmount:         amount,
		InterestRate:       annualRate,
		Tenure:             tenureMonths,
		MonthlyInstallment: MonthlyInstallment(amount, annualRate, tenureMonths),
		EMIsPaidOnTime:     0,
		StartDate:          startDate,
		EndDate:            startDate.AddDate(0, 0, 30*tenureMonths),
		CreatedAt:          startDate,
		UpdatedAt:          startDate,
	}, nil
}

// RemainingEMIs returns how many installments are still owed.
func (l Loan) RemainingEMIs() int {
	if n := l.Tenure - l.EMIsPaidOnTime; n > 0 {
		return n
	}
	return 0
}

// IsActive reports whether the loan still has payments left.
func (l Loan) IsActive() bool {
	return l.RemainingEMIs() > 0
}

// RemainingPrincipal backs the outstanding principal out of the annuity
// formula, treating the remaining EMIs as a fresh tenure paid with the
// originally fixed installment at the stored rate:
//
//	P = A * ((1+r)^n - 1) / (r * (1+r)^n)
//
// This assumes the original installment is still valid for the remaining
// term rather than replaying the amortization schedule.
// TODO: verify this formula against a schedule replay.
func (l Loan) RemainingPrincipal() decimal.Decimal {
	if !l.IsActive() {
		return decimal.Zero.Round(2)
	}

	remaining := l.RemainingEMIs()
	monthlyRate := l.InterestRate.Div(decimalTwelve).Div(decimalHundred)

	if monthlyRate.IsZero() {
		return roundCurrency(l.MonthlyInstallment.Mul(decimal.NewFromInt(int64(remaining))))
	}

	factor := decimalOne.Add(monthlyRate).Pow(decimal.NewFromInt(int64(remaining)))
	principal := l.MonthlyInstallment.Mul(factor.Sub(decimalOne)).Div(monthlyRate.Mul(factor))

	return roundCurrency(principal)
}
