package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crediflow/credit-approval/internal/application/dto"
	"github.com/crediflow/credit-approval/internal/domain/port"
	"github.com/crediflow/credit-approval/internal/domain/service"
)

// CheckEligibilityUseCase evaluates a loan request without persisting anything.
type CheckEligibilityUseCase struct {
	customers port.CustomerRepository
	loans     port.LoanRepository
	decider   *service.EligibilityDecider
	logger    *slog.Logger
}

// NewCheckEligibilityUseCase wires dependencies.
func NewCheckEligibilityUseCase(
	customers port.CustomerRepository,
	loans port.LoanRepository,
	decider *service.EligibilityDecider,
	logger *slog.Logger,
) *CheckEligibilityUseCase {
	return &CheckEligibilityUseCase{
		customers: customers,
		loans:     loans,
		decider:   decider,
		logger:    logger,
	}
}

// Execute loads the customer's loan snapshot and runs the eligibility decision.
func (uc *CheckEligibilityUseCase) Execute(
	ctx context.Context,
	req dto.LoanRequest,
) (dto.EligibilityResponse, error) {
	customer, err := uc.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return dto.EligibilityResponse{}, fmt.Errorf("load customer: %w", err)
	}

	loans, err := uc.loans.FindByCustomerID(ctx, req.CustomerID)
	if err != nil {
		return dto.EligibilityResponse{}, fmt.Errorf("load loans: %w", err)
	}

	decision := uc.decider.Decide(customer, loans, req.LoanAmount, req.InterestRate, req.Tenure, time.Now().UTC())

	uc.logger.InfoContext(ctx, "eligibility checked",
		"customer_id", customer.ID,
		"approval", decision.Approved,
		"credit_score", decision.CreditScore,
	)

	return dto.EligibilityResponse{
		CustomerID:            customer.ID,
		Approval:              decision.Approved,
		CreditScore:           decision.CreditScore,
		InterestRate:          req.InterestRate,
		CorrectedInterestRate: decision.CorrectedRate,
		Tenure:                req.Tenure,
		MonthlyInstallment:    decision.MonthlyInstallment,
	}, nil
}
