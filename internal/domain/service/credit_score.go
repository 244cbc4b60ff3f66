package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/crediflow/credit-approval/internal/domain/model"
)

// ---------------------------------------------------------------------------
// CreditScorer – domain service deriving a 0-100 creditworthiness score
// from a customer's loan history
// ---------------------------------------------------------------------------

const newCustomerBaseline = 50

// scoreRule computes one signed adjustment from the customer's full loan
// history as of a reference date. Rules are independent; the scorer folds
// their deltas onto the baseline.
type scoreRule func(loans []model.Loan, asOf time.Time) int

// CreditScorer encapsulates the scoring rule chain.
type CreditScorer struct {
	rules []scoreRule
}

// NewCreditScorer returns a scorer with the standard rule chain.
func NewCreditScorer() *CreditScorer {
	return &CreditScorer{
		rules: []scoreRule{
			paymentPerformanceRule,
			completedLoansRule,
			currentYearActivityRule,
			loanVolumeRule,
		},
	}
}

// Score derives the customer's credit score from the supplied loan snapshot.
// The hard-cap guard runs before any rule: a customer whose outstanding debt
// on active loans exceeds the approved limit scores 0 regardless of history.
// A customer with no loans at all scores the new-customer baseline of 50.
// The result is clamped to [0, 100].
func (s *CreditScorer) Score(customer model.Customer, loans []model.Loan, asOf time.Time) int {
	currentDebt := decimal.Zero
	for _, l := range loans {
		if l.IsActive() {
			currentDebt = currentDebt.Add(l.RemainingPrincipal())
		}
	}
	if currentDebt.GreaterThan(customer.ApprovedLimit) {
		return 0
	}

	if len(loans) == 0 {
		return newCustomerBaseline
	}

	score := newCustomerBaseline
	for _, rule := range s.rules {
		score += rule(loans, asOf)
	}

	return clamp(score, 0, 100)
}

// paymentPerformanceRule rewards customers who paid most EMIs on schedule
// and penalizes those who paid fewer than half, across the whole history.
func paymentPerformanceRule(loans []model.Loan, _ time.Time) int {
	totalPaid := 0
	tenureSum := 0
	for _, l := range loans {
		totalPaid += l.EMIsPaidOnTime
		tenureSum += l.Tenure
	}
	if tenureSum == 0 {
		return 0
	}

	ratio := float64(totalPaid) / float64(tenureSum)
	switch {
	case ratio > 0.9:
		return 10
	case ratio > 0.7:
		return 5
	case ratio < 0.5:
		return -10
	default:
		return 0
	}
}

// completedLoansRule rewards fully serviced loans.
func completedLoansRule(loans []model.Loan, _ time.Time) int {
	completed := 0
	for _, l := range loans {
		if !l.IsActive() {
			completed++
		}
	}
	switch {
	case completed > 3:
		return 10
	case completed >= 1:
		return 5
	default:
		return 0
	}
}

// currentYearActivityRule penalizes a burst of loans taken in the current
// calendar year; a moderate amount of recent activity counts in favor.
func currentYearActivityRule(loans []model.Loan, asOf time.Time) int {
	recent := 0
	for _, l := range loans {
		if l.StartDate.Year() == asOf.Year() {
			recent++
		}
	}
	switch {
	case recent > 3:
		return -10
	case recent >= 1:
		return 5
	default:
		return 0
	}
}

// loanVolumeRule rewards a large historical borrowing volume.
func loanVolumeRule(loans []model.Loan, _ time.Time) int {
	volume := decimal.Zero
	for _, l := range loans {
		volume = volume.Add(l.LoanAmount)
	}
	switch {
	case volume.GreaterThan(decimal.NewFromInt(1_000_000)):
		return 10
	case volume.GreaterThan(decimal.NewFromInt(500_000)):
		return 5
	default:
		return 0
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
