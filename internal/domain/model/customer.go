package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var lakh = decimal.NewFromInt(100_000)

// Customer is a borrower. The approved limit is fixed at registration and is
// never re-derived from later salary changes.
type Customer struct {
	ID            int64
	FirstName     string
	LastName      string
	Age           int
	PhoneNumber   string
	MonthlySalary decimal.Decimal
	ApprovedLimit decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCustomer creates a customer ready for registration. The approved limit
// is derived from the monthly income; the ID is assigned by persistence.
func NewCustomer(firstName, lastName string, age int, phoneNumber string, monthlyIncome decimal.Decimal, now time.Time) (Customer, error) {
	if firstName == "" {
		return Customer{}, errors.New("first name is required")
	}
	if lastName == "" {
		return Customer{}, errors.New("last name is required")
	}
	if age < 18 || age > 120 {
		return Customer{}, fmt.Errorf("age must be between 18 and 120, got %d", age)
	}
	if phoneNumber == "" {
		return Customer{}, errors.New("phone number is required")
	}
	if monthlyIncome.LessThanOrEqual(decimal.Zero) {
		return Customer{}, errors.New("monthly income must be positive")
	}

	return Customer{
		FirstName:     firstName,
		LastName:      lastName,
		Age:           age,
		PhoneNumber:   phoneNumber,
		MonthlySalary: monthlyIncome,
		ApprovedLimit: ApprovedLimitFor(monthlyIncome),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ApprovedLimitFor computes the registration-time borrowing limit:
// 36x the monthly income, floored to the nearest 100,000 currency units.
func ApprovedLimitFor(monthlyIncome decimal.Decimal) decimal.Decimal {
	return monthlyIncome.Mul(decimal.NewFromInt(36)).Div(lakh).Floor().Mul(lakh)
}

// FullName returns the customer's display name.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
