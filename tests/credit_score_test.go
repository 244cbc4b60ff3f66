package tests

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/crediflow/credit-approval/internal/domain/model"
	"github.com/crediflow/credit-approval/internal/domain/service"
)

var asOf = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

func testCustomer(salary int64) model.Customer {
	monthly := decimal.NewFromInt(salary)
	return model.Customer{
		ID:            1,
		FirstName:     "Asha",
		LastName:      "Verma",
		Age:           34,
		PhoneNumber:   "9876543210",
		MonthlySalary: monthly,
		ApprovedLimit: model.ApprovedLimitFor(monthly),
	}
}

// historyLoan builds a past loan with the installment derived the same way
// loan creation derives it.
func historyLoan(amount, rate int64, tenure, paid int, start time.Time) model.Loan {
	amt := decimal.NewFromInt(amount)
	r := decimal.NewFromInt(rate)
	return model.Loan{
		CustomerID:         1,
		LoanAmount:         amt,
		InterestRate:       r,
		Tenure:             tenure,
		MonthlyInstallment: model.MonthlyInstallment(amt, r, tenure),
		EMIsPaidOnTime:     paid,
		StartDate:          start,
		EndDate:            start.AddDate(0, 0, 30*tenure),
	}
}

func TestScore_NewCustomerBaseline(t *testing.T) {
	scorer := service.NewCreditScorer()

	score := scorer.Score(testCustomer(100_000), nil, asOf)
	assert.Equal(t, 50, score)

	score = scorer.Score(testCustomer(100_000), []model.Loan{}, asOf)
	assert.Equal(t, 50, score)
}

func TestScore_OverLimitDebtHardCap(t *testing.T) {
	scorer := service.NewCreditScorer()
	customer := testCustomer(10_000) // approved limit 300,000

	// One active zero-rate loan with 400,000 outstanding. Everything else
	// about the history is spotless; the cap still wins.
	loans := []model.Loan{
		historyLoan(400_000, 0, 80, 0, asOf.AddDate(-2, 0, 0)),
		historyLoan(50_000, 10, 12, 12, asOf.AddDate(-4, 0, 0)),
	}

	assert.Equal(t, 0, scorer.Score(customer, loans, asOf))
}

func TestScore_StrongHistory(t *testing.T) {
	scorer := service.NewCreditScorer()
	customer := testCustomer(200_000)

	// Five completed loans (+10), every EMI on time (+10), 1.5M total
	// volume (+10), none started this calendar year (0).
	var loans []model.Loan
	for i := 0; i < 5; i++ {
		loans = append(loans, historyLoan(300_000, 11, 10, 10, asOf.AddDate(-2-i, 0, 0)))
	}

	assert.Equal(t, 80, scorer.Score(customer, loans, asOf))
}

func TestScore_WeakHistory(t *testing.T) {
	scorer := service.NewCreditScorer()
	customer := testCustomer(500_000)

	// Four loans opened this year (-10), under half the EMIs paid (-10),
	// nothing completed (0), 200,000 total volume (0).
	start := time.Date(asOf.Year(), 2, 1, 0, 0, 0, 0, time.UTC)
	var loans []model.Loan
	for i := 0; i < 4; i++ {
		loans = append(loans, historyLoan(50_000, 0, 12, 2, start.AddDate(0, i, 0)))
	}

	assert.Equal(t, 30, scorer.Score(customer, loans, asOf))
}

func TestScore_ModerateRecentActivityCountsInFavor(t *testing.T) {
	scorer := service.NewCreditScorer()
	customer := testCustomer(300_000)

	// One loan this year (+5), perfect payment history so far is
	// impossible on an active loan, so keep the ratio in the neutral band.
	loans := []model.Loan{
		historyLoan(100_000, 12, 12, 7, time.Date(asOf.Year(), 1, 10, 0, 0, 0, 0, time.UTC)),
	}

	// ratio 7/12 ~ 0.58 (0), completed 0 (0), recent 1 (+5), volume 100k (0).
	assert.Equal(t, 55, scorer.Score(customer, loans, asOf))
}

func TestScore_AlwaysWithinBounds(t *testing.T) {
	scorer := service.NewCreditScorer()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		salary := int64(rng.Intn(900_000) + 10_000)
		customer := testCustomer(salary)

		var loans []model.Loan
		for j := rng.Intn(8); j > 0; j-- {
			tenure := rng.Intn(120) + 1
			loans = append(loans, historyLoan(
				int64(rng.Intn(2_000_000)+1_000),
				int64(rng.Intn(30)),
				tenure,
				rng.Intn(tenure+1),
				asOf.AddDate(-rng.Intn(5), -rng.Intn(12), 0),
			))
		}

		score := scorer.Score(customer, loans, asOf)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}
