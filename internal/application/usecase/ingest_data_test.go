package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crediflow/credit-approval/internal/domain/model"
)

func TestIngestCustomers_UpsertsAndSyncsSequence(t *testing.T) {
	var upserted []int64
	synced := false
	customers := &mockCustomerRepository{
		upsertFn: func(_ context.Context, c model.Customer) error {
			upserted = append(upserted, c.ID)
			return nil
		},
		syncIDSequenceFn: func(_ context.Context) error {
			synced = true
			return nil
		},
	}
	uc := NewIngestDataUseCase(customers, &mockLoanRepository{}, discardLogger())

	err := uc.IngestCustomers(context.Background(), []model.Customer{
		{ID: 1, FirstName: "Asha", LastName: "Verma", MonthlySalary: decimal.NewFromInt(50_000)},
		{ID: 2, FirstName: "Ravi", LastName: "Iyer", MonthlySalary: decimal.NewFromInt(80_000)},
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, upserted)
	assert.True(t, synced, "the identity sequence must be realigned after ingest")
}

func TestIngestCustomers_RequiresExplicitIDs(t *testing.T) {
	uc := NewIngestDataUseCase(&mockCustomerRepository{}, &mockLoanRepository{}, discardLogger())

	err := uc.IngestCustomers(context.Background(), []model.Customer{
		{FirstName: "Asha", LastName: "Verma"},
	})

	assert.Error(t, err)
}

func TestIngestLoans_UpsertsAndSyncsSequence(t *testing.T) {
	var upserted []int64
	synced := false
	loans := &mockLoanRepository{
		upsertFn: func(_ context.Context, l model.Loan) error {
			upserted = append(upserted, l.ID)
			return nil
		},
		syncIDSequenceFn: func(_ context.Context) error {
			synced = true
			return nil
		},
	}
	uc := NewIngestDataUseCase(&mockCustomerRepository{}, loans, discardLogger())

	err := uc.IngestLoans(context.Background(), []model.Loan{
		{ID: 10, CustomerID: 1, LoanAmount: decimal.NewFromInt(100_000), Tenure: 12},
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{10}, upserted)
	assert.True(t, synced)
}
