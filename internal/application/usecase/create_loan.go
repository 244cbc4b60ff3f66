package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crediflow/credit-approval/internal/application/dto"
	"github.com/crediflow/credit-approval/internal/domain/event"
	"github.com/crediflow/credit-approval/internal/domain/model"
	"github.com/crediflow/credit-approval/internal/domain/port"
	"github.com/crediflow/credit-approval/internal/domain/service"
)

// CreateLoanUseCase runs the eligibility decision and, on approval, persists
// the resulting loan. The decision and the write happen under a customer row
// lock so that concurrent requests cannot both pass the affordability check
// against the same snapshot.
type CreateLoanUseCase struct {
	uow       port.UnitOfWork
	decider   *service.EligibilityDecider
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewCreateLoanUseCase wires dependencies.
func NewCreateLoanUseCase(
	uow port.UnitOfWork,
	decider *service.EligibilityDecider,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		uow:       uow,
		decider:   decider,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute decides on the request and creates the loan when approved.
func (uc *CreateLoanUseCase) Execute(
	ctx context.Context,
	req dto.LoanRequest,
) (dto.CreateLoanResponse, error) {
	now := time.Now().UTC()

	var (
		resp dto.CreateLoanResponse
		evts []event.DomainEvent
	)

	err := uc.uow.WithCustomerLock(ctx, req.CustomerID,
		func(ctx context.Context, customer model.Customer, loans []model.Loan, writer port.LoanWriter) error {
			decision := uc.decider.Decide(customer, loans, req.LoanAmount, req.InterestRate, req.Tenure, now)

			if !decision.Approved {
				resp = dto.CreateLoanResponse{
					LoanID:             nil,
					CustomerID:         customer.ID,
					LoanApproved:       false,
					Message:            "Loan not approved based on credit criteria",
					MonthlyInstallment: decision.MonthlyInstallment,
				}
				evts = append(evts, event.NewLoanRejected(
					customer.ID, req.LoanAmount, req.InterestRate, req.Tenure, decision.CreditScore,
				))
				return nil
			}

			// The persisted rate is the corrected one, not the requested one.
			loan, err := model.NewLoan(customer.ID, req.LoanAmount, decision.CorrectedRate, req.Tenure, now)
			if err != nil {
				return fmt.Errorf("build loan: %w", err)
			}

			loan, err = writer.Create(ctx, loan)
			if err != nil {
				return fmt.Errorf("save loan: %w", err)
			}

			resp = dto.CreateLoanResponse{
				LoanID:             &loan.ID,
				CustomerID:         customer.ID,
				LoanApproved:       true,
				Message:            "Loan approved successfully",
				MonthlyInstallment: loan.MonthlyInstallment,
			}
			evts = append(evts, event.NewLoanCreated(
				loan.ID, customer.ID, loan.LoanAmount, loan.InterestRate,
				loan.Tenure, loan.MonthlyInstallment, decision.CreditScore,
			))
			return nil
		})
	if err != nil {
		return dto.CreateLoanResponse{}, err
	}

	// Events are published only after the unit of work has committed.
	if err := uc.publisher.Publish(ctx, evts...); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish loan decision events",
			"customer_id", req.CustomerID, "error", err)
	}

	uc.logger.InfoContext(ctx, "loan decision recorded",
		"customer_id", req.CustomerID,
		"approved", resp.LoanApproved,
	)

	return resp, nil
}
