package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crediflow/credit-approval/internal/application/dto"
	"github.com/crediflow/credit-approval/internal/domain/model"
	"github.com/crediflow/credit-approval/internal/domain/service"
)

func snapshotCustomer(id int64, salary int64) model.Customer {
	monthly := decimal.NewFromInt(salary)
	return model.Customer{
		ID:            id,
		FirstName:     "Ravi",
		LastName:      "Iyer",
		Age:           41,
		PhoneNumber:   "9000000001",
		MonthlySalary: monthly,
		ApprovedLimit: model.ApprovedLimitFor(monthly),
	}
}

func TestCheckEligibility_FreshCustomerApproved(t *testing.T) {
	customers := &mockCustomerRepository{
		findByIDFn: func(_ context.Context, id int64) (model.Customer, error) {
			return snapshotCustomer(id, 100_000), nil
		},
	}
	loans := &mockLoanRepository{
		findByCustomerIDFn: func(_ context.Context, _ int64) ([]model.Loan, error) {
			return nil, nil
		},
	}
	decider := service.NewEligibilityDecider(service.NewCreditScorer())
	uc := NewCheckEligibilityUseCase(customers, loans, decider, discardLogger())

	resp, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   5,
		LoanAmount:   decimal.NewFromInt(50_000),
		InterestRate: decimal.NewFromInt(13),
		Tenure:       12,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.CustomerID)
	assert.True(t, resp.Approval)
	assert.Equal(t, 50, resp.CreditScore)
	assert.True(t, resp.InterestRate.Equal(decimal.NewFromInt(13)))
	assert.True(t, resp.CorrectedInterestRate.Equal(decimal.NewFromInt(13)))
	assert.Equal(t, 12, resp.Tenure)
	assert.False(t, resp.MonthlyInstallment.IsZero())
}

func TestCheckEligibility_ReportsCorrectedRate(t *testing.T) {
	customers := &mockCustomerRepository{
		findByIDFn: func(_ context.Context, id int64) (model.Customer, error) {
			return snapshotCustomer(id, 100_000), nil
		},
	}
	loans := &mockLoanRepository{
		findByCustomerIDFn: func(_ context.Context, _ int64) ([]model.Loan, error) {
			return nil, nil
		},
	}
	decider := service.NewEligibilityDecider(service.NewCreditScorer())
	uc := NewCheckEligibilityUseCase(customers, loans, decider, discardLogger())

	resp, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   5,
		LoanAmount:   decimal.NewFromInt(50_000),
		InterestRate: decimal.NewFromInt(9),
		Tenure:       12,
	})
	require.NoError(t, err)

	// The requested rate is echoed back; the corrected one carries the floor.
	assert.True(t, resp.InterestRate.Equal(decimal.NewFromInt(9)))
	assert.True(t, resp.CorrectedInterestRate.Equal(decimal.NewFromInt(12)))
	assert.True(t, resp.Approval)
}

func TestCheckEligibility_UnknownCustomer(t *testing.T) {
	customers := &mockCustomerRepository{
		findByIDFn: func(_ context.Context, _ int64) (model.Customer, error) {
			return model.Customer{}, model.ErrCustomerNotFound
		},
	}
	decider := service.NewEligibilityDecider(service.NewCreditScorer())
	uc := NewCheckEligibilityUseCase(customers, &mockLoanRepository{}, decider, discardLogger())

	_, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   999,
		LoanAmount:   decimal.NewFromInt(50_000),
		InterestRate: decimal.NewFromInt(13),
		Tenure:       12,
	})

	assert.ErrorIs(t, err, model.ErrCustomerNotFound)
}
