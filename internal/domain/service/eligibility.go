package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/crediflow/credit-approval/internal/domain/model"
)

// ---------------------------------------------------------------------------
// EligibilityDecider – combines the credit score, the requested loan, and
// the customer's current obligations into an approval decision
// ---------------------------------------------------------------------------

// Risk-slab rate floors (annual percentage).
var (
	mediumRiskRateFloor = decimal.NewFromInt(12)
	highRiskRateFloor   = decimal.NewFromInt(16)
)

var half = decimal.NewFromFloat(0.5)

// Decision is the outcome of an eligibility check. A negative decision is a
// normal result, not an error; it still carries the score, the corrected
// rate, and the computed installment so the caller can explain the rejection.
type Decision struct {
	CorrectedRate      decimal.Decimal
	MonthlyInstallment decimal.Decimal
	CreditScore        int
	Approved           bool
}

// EligibilityDecider evaluates loan requests. It is stateless and safe for
// concurrent use; every call only reads the caller-supplied snapshot.
type EligibilityDecider struct {
	scorer *CreditScorer
}

// NewEligibilityDecider wires the decider to a credit scorer.
func NewEligibilityDecider(scorer *CreditScorer) *EligibilityDecider {
	return &EligibilityDecider{scorer: scorer}
}

// Decide scores the customer, applies the risk-slab policy to settle approval
// and the rate floor, and then applies the affordability cap: the customer's
// combined monthly installments, including the new loan, must not exceed half
// the monthly salary. The affordability check always runs, even when the slab
// already rejected the request.
//
//	score > 50      approved at the requested rate
//	30 < score <= 50 approved, rate floored at 12%
//	10 < score <= 30 approved, rate floored at 16%
//	score <= 10     rejected (requested rate reported unchanged)
func (d *EligibilityDecider) Decide(
	customer model.Customer,
	loans []model.Loan,
	requestedAmount, requestedRate decimal.Decimal,
	tenureMonths int,
	asOf time.Time,
) Decision {
	score := d.scorer.Score(customer, loans, asOf)

	approved := false
	finalRate := requestedRate

	switch {
	case score > 50:
		approved = true
	case score > 30:
		approved = true
		finalRate = decimal.Max(requestedRate, mediumRiskRateFloor)
	case score > 10:
		approved = true
		finalRate = decimal.Max(requestedRate, highRiskRateFloor)
	}

	currentEMITotal := decimal.Zero
	for _, l := range loans {
		if l.IsActive() {
			currentEMITotal = currentEMITotal.Add(l.MonthlyInstallment)
		}
	}

	newEMI := model.MonthlyInstallment(requestedAmount, finalRate, tenureMonths)

	if currentEMITotal.Add(newEMI).GreaterThan(half.Mul(customer.MonthlySalary)) {
		approved = false
	}

	return Decision{
		Approved:           approved,
		CreditScore:        score,
		CorrectedRate:      finalRate,
		MonthlyInstallment: newEMI,
	}
}
