package usecase

import (
	"context"
	"fmt"

	"github.com/crediflow/credit-approval/internal/application/dto"
	"github.com/crediflow/credit-approval/internal/domain/port"
)

// ListCustomerLoansUseCase retrieves all loans belonging to a customer.
type ListCustomerLoansUseCase struct {
	customers port.CustomerRepository
	loans     port.LoanRepository
}

// NewListCustomerLoansUseCase wires dependencies.
func NewListCustomerLoansUseCase(customers port.CustomerRepository, loans port.LoanRepository) *ListCustomerLoansUseCase {
	return &ListCustomerLoansUseCase{customers: customers, loans: loans}
}

// Execute lists the customer's loans, most recent first.
func (uc *ListCustomerLoansUseCase) Execute(ctx context.Context, customerID int64) ([]dto.CustomerLoanItem, error) {
	// The lookup doubles as the existence check: an unknown customer is a
	// NotFound, not an empty list.
	if _, err := uc.customers.FindByID(ctx, customerID); err != nil {
		return nil, fmt.Errorf("load customer: %w", err)
	}

	loans, err := uc.loans.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load loans: %w", err)
	}

	items := make([]dto.CustomerLoanItem, 0, len(loans))
	for _, l := range loans {
		items = append(items, dto.CustomerLoanItem{
			LoanID:             l.ID,
			LoanAmount:         l.LoanAmount,
			InterestRate:       l.InterestRate,
			MonthlyInstallment: l.MonthlyInstallment,
			RepaymentsLeft:     l.RemainingEMIs(),
		})
	}
	return items, nil
}
