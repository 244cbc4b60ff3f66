package model

import (
	"github.com/shopspring/decimal"
)

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalTwelve  = decimal.NewFromInt(12)
	decimalHundred = decimal.NewFromInt(100)
)

// roundCurrency rounds an amount to 2 decimal places. decimal.Round rounds
// half away from zero, which for the non-negative amounts handled here is
// round-half-up. Applied at every point a value becomes a currency amount.
func roundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// MonthlyInstallment computes the equated monthly installment for a principal
// repaid over tenureMonths at the given annual percentage rate, using the
// standard reducing-balance annuity formula:
//
//	r   = annualRate / 12 / 100
//	EMI = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero tenure yields 0.00; a zero rate degenerates to a simple even split.
// All arithmetic stays in exact decimals; the power has an integer exponent
// so it is computed by repeated multiplication, never through float64.
func MonthlyInstallment(principal, annualRate decimal.Decimal, tenureMonths int) decimal.Decimal {
	if tenureMonths == 0 {
		return decimal.Zero.Round(2)
	}

	monthlyRate := annualRate.Div(decimalTwelve).Div(decimalHundred)

	if monthlyRate.IsZero() {
		return roundCurrency(principal.Div(decimal.NewFromInt(int64(tenureMonths))))
	}

	factor := decimalOne.Add(monthlyRate).Pow(decimal.NewFromInt(int64(tenureMonths)))
	emi := principal.Mul(monthlyRate).Mul(factor).Div(factor.Sub(decimalOne))

	return roundCurrency(emi)
}
