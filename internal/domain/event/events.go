package event

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/crediflow/credit-approval/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// CustomerRegistered is raised when a new customer enters the system.
type CustomerRegistered struct {
	events.BaseEvent
	PhoneNumber   string          `json:"phone_number"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	ApprovedLimit decimal.Decimal `json:"approved_limit"`
}

func NewCustomerRegistered(customerID int64, phoneNumber string, monthlySalary, approvedLimit decimal.Decimal) CustomerRegistered {
	return CustomerRegistered{
		BaseEvent:     events.NewBaseEvent("credit.customer.registered", formatID(customerID), "Customer"),
		PhoneNumber:   phoneNumber,
		MonthlySalary: monthlySalary,
		ApprovedLimit: approvedLimit,
	}
}

// LoanCreated is raised when an approved loan is persisted.
type LoanCreated struct {
	events.BaseEvent
	CustomerID         int64           `json:"customer_id"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	TenureMonths       int             `json:"tenure_months"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	CreditScore        int             `json:"credit_score"`
}

func NewLoanCreated(loanID, customerID int64, amount, rate decimal.Decimal, tenureMonths int, installment decimal.Decimal, creditScore int) LoanCreated {
	return LoanCreated{
		BaseEvent:          events.NewBaseEvent("credit.loan.created", formatID(loanID), "Loan"),
		CustomerID:         customerID,
		LoanAmount:         amount,
		InterestRate:       rate,
		TenureMonths:       tenureMonths,
		MonthlyInstallment: installment,
		CreditScore:        creditScore,
	}
}

// LoanRejected is raised when a loan request fails the eligibility decision.
type LoanRejected struct {
	events.BaseEvent
	LoanAmount    decimal.Decimal `json:"loan_amount"`
	RequestedRate decimal.Decimal `json:"requested_rate"`
	TenureMonths  int             `json:"tenure_months"`
	CreditScore   int             `json:"credit_score"`
}

func NewLoanRejected(customerID int64, amount, requestedRate decimal.Decimal, tenureMonths, creditScore int) LoanRejected {
	return LoanRejected{
		BaseEvent:     events.NewBaseEvent("credit.loan.rejected", formatID(customerID), "Customer"),
		LoanAmount:    amount,
		RequestedRate: requestedRate,
		TenureMonths:  tenureMonths,
		CreditScore:   creditScore,
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
