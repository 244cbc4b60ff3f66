package usecase

import (
	"context"
	"fmt"

	"github.com/crediflow/credit-approval/internal/application/dto"
	"github.com/crediflow/credit-approval/internal/domain/port"
)

// GetLoanUseCase retrieves a loan with its customer summary.
type GetLoanUseCase struct {
	loans     port.LoanRepository
	customers port.CustomerRepository
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(loans port.LoanRepository, customers port.CustomerRepository) *GetLoanUseCase {
	return &GetLoanUseCase{loans: loans, customers: customers}
}

// Execute loads the loan and the owning customer.
func (uc *GetLoanUseCase) Execute(ctx context.Context, loanID int64) (dto.LoanDetailResponse, error) {
	loan, err := uc.loans.FindByID(ctx, loanID)
	if err != nil {
		return dto.LoanDetailResponse{}, fmt.Errorf("load loan: %w", err)
	}

	customer, err := uc.customers.FindByID(ctx, loan.CustomerID)
	if err != nil {
		return dto.LoanDetailResponse{}, fmt.Errorf("load customer: %w", err)
	}

	return dto.LoanDetailResponse{
		LoanID: loan.ID,
		Customer: dto.CustomerSummary{
			ID:          customer.ID,
			FirstName:   customer.FirstName,
			LastName:    customer.LastName,
			PhoneNumber: customer.PhoneNumber,
			Age:         customer.Age,
		},
		LoanAmount:         loan.LoanAmount,
		InterestRate:       loan.InterestRate,
		MonthlyInstallment: loan.MonthlyInstallment,
		Tenure:             loan.Tenure,
	}, nil
}
