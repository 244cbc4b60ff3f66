package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crediflow/credit-approval/internal/application/dto"
	"github.com/crediflow/credit-approval/internal/domain/model"
	"github.com/crediflow/credit-approval/internal/domain/service"
)

func newDecider() *service.EligibilityDecider {
	return service.NewEligibilityDecider(service.NewCreditScorer())
}

func TestCreateLoan_ApprovedPersistsCorrectedRate(t *testing.T) {
	writer := &mockLoanWriter{
		createFn: func(_ context.Context, l model.Loan) (model.Loan, error) {
			l.ID = 42
			return l, nil
		},
	}
	uow := &mockUnitOfWork{
		customer: snapshotCustomer(5, 100_000),
		writer:   writer,
	}
	publisher := &mockEventPublisher{}
	uc := NewCreateLoanUseCase(uow, newDecider(), publisher, discardLogger())

	// A fresh customer scores 50; the requested 9% is floored to 12%.
	resp, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   5,
		LoanAmount:   decimal.NewFromInt(50_000),
		InterestRate: decimal.NewFromInt(9),
		Tenure:       12,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.LoanID)
	assert.Equal(t, int64(42), *resp.LoanID)
	assert.True(t, resp.LoanApproved)
	assert.Equal(t, "Loan approved successfully", resp.Message)

	require.Len(t, writer.created, 1)
	persisted := writer.created[0]
	assert.True(t, persisted.InterestRate.Equal(decimal.NewFromInt(12)),
		"the corrected rate must be persisted, got %s", persisted.InterestRate)
	assert.True(t, persisted.MonthlyInstallment.Equal(
		model.MonthlyInstallment(decimal.NewFromInt(50_000), decimal.NewFromInt(12), 12)))
	assert.Equal(t, 0, persisted.EMIsPaidOnTime)
	assert.Equal(t, persisted.StartDate.AddDate(0, 0, 360), persisted.EndDate)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, "credit.loan.created", publisher.published[0].EventType())
}

func TestCreateLoan_RejectedWritesNothing(t *testing.T) {
	writer := &mockLoanWriter{
		createFn: func(_ context.Context, l model.Loan) (model.Loan, error) {
			return l, nil
		},
	}

	// Outstanding debt above the approved limit scores 0: rejection.
	customer := snapshotCustomer(5, 10_000)
	uow := &mockUnitOfWork{
		customer: customer,
		loans: []model.Loan{{
			CustomerID:         5,
			LoanAmount:         decimal.NewFromInt(400_000),
			InterestRate:       decimal.Zero,
			Tenure:             80,
			MonthlyInstallment: decimal.NewFromInt(5000),
			EMIsPaidOnTime:     0,
		}},
		writer: writer,
	}
	publisher := &mockEventPublisher{}
	uc := NewCreateLoanUseCase(uow, newDecider(), publisher, discardLogger())

	resp, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   5,
		LoanAmount:   decimal.NewFromInt(20_000),
		InterestRate: decimal.NewFromInt(10),
		Tenure:       12,
	})
	require.NoError(t, err, "a rejection is a normal outcome, not an error")

	assert.Nil(t, resp.LoanID)
	assert.False(t, resp.LoanApproved)
	assert.Equal(t, "Loan not approved based on credit criteria", resp.Message)
	assert.False(t, resp.MonthlyInstallment.IsZero(),
		"the quoted installment accompanies the rejection")

	assert.Empty(t, writer.created, "rejected requests must not persist a loan")
	require.Len(t, publisher.published, 1)
	assert.Equal(t, "credit.loan.rejected", publisher.published[0].EventType())
}

func TestCreateLoan_UnitOfWorkFailurePropagates(t *testing.T) {
	uow := &mockUnitOfWork{err: errors.New("deadlock detected")}
	publisher := &mockEventPublisher{}
	uc := NewCreateLoanUseCase(uow, newDecider(), publisher, discardLogger())

	_, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   5,
		LoanAmount:   decimal.NewFromInt(50_000),
		InterestRate: decimal.NewFromInt(12),
		Tenure:       12,
	})

	assert.Error(t, err)
	assert.Empty(t, publisher.published, "no events before the unit of work commits")
}

func TestCreateLoan_WriterFailurePropagates(t *testing.T) {
	writer := &mockLoanWriter{
		createFn: func(_ context.Context, _ model.Loan) (model.Loan, error) {
			return model.Loan{}, errors.New("connection reset")
		},
	}
	uow := &mockUnitOfWork{
		customer: snapshotCustomer(5, 100_000),
		writer:   writer,
	}
	publisher := &mockEventPublisher{}
	uc := NewCreateLoanUseCase(uow, newDecider(), publisher, discardLogger())

	_, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   5,
		LoanAmount:   decimal.NewFromInt(50_000),
		InterestRate: decimal.NewFromInt(13),
		Tenure:       12,
	})

	assert.Error(t, err)
	assert.Empty(t, publisher.published)
}
