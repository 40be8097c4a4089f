// File: finance.go
// Title: Business Calculations
// Description: Interest, valuation and margin formulas on float64.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Decimal business functions
// - 2025-10-18 v0.3.0: float64 rewrite, fractional exponents, structured errors

package mathx

import (
	"math"

	mdwerror "github.com/substance/expression/foundation/core/error"
)

// Percentage returns percent percent of v
func Percentage(v, percent float64) float64 {
	return v * percent / 100
}

// PercentageOf returns part as a percentage of whole
func PercentageOf(part, whole float64) (float64, error) {
	if whole == 0 {
		return 0, divisionByZero("mathx.PercentageOf", "whole cannot be zero")
	}
	return part / whole * 100, nil
}

// PresentValue discounts a future value: PV = FV / (1 + r)^n
func PresentValue(futureValue, rate, periods float64) (float64, error) {
	factor := math.Pow(1+rate, periods)
	if factor == 0 {
		return 0, divisionByZero("mathx.PresentValue", "discount factor is zero")
	}
	return futureValue / factor, nil
}

// FutureValue compounds a present value: FV = PV * (1 + r)^n
func FutureValue(presentValue, rate, periods float64) float64 {
	return presentValue * math.Pow(1+rate, periods)
}

// CompoundInterest returns the amount after years with frequency
// compounding periods per year: A = P(1 + r/n)^(nt)
func CompoundInterest(principal, annualRate float64, frequency int, years float64) (float64, error) {
	if frequency <= 0 {
		return 0, invalidArgument("mathx.CompoundInterest", "compounding frequency must be positive")
	}
	n := float64(frequency)
	return principal * math.Pow(1+annualRate/n, n*years), nil
}

// LoanPayment returns the monthly payment of an annuity loan:
// M = P * r(1+r)^n / ((1+r)^n - 1) with r the monthly rate. annualPercent
// is the yearly interest in percent.
func LoanPayment(principal, annualPercent float64, months int) (float64, error) {
	if months <= 0 {
		return 0, invalidArgument("mathx.LoanPayment", "number of months must be positive")
	}
	if annualPercent == 0 {
		return principal / float64(months), nil
	}

	r := annualPercent / 100 / 12
	compound := math.Pow(1+r, float64(months))
	denominator := compound - 1
	if denominator == 0 {
		return 0, divisionByZero("mathx.LoanPayment", "denominator is zero")
	}
	return principal * r * compound / denominator, nil
}

// ROI returns the return on investment in percent
func ROI(initial, current float64) (float64, error) {
	if initial == 0 {
		return 0, divisionByZero("mathx.ROI", "initial investment cannot be zero")
	}
	return (current - initial) / initial * 100, nil
}

// BreakEven returns the units needed to cover fixed costs
func BreakEven(fixedCosts, pricePerUnit, variableCostPerUnit float64) (float64, error) {
	margin := pricePerUnit - variableCostPerUnit
	if margin == 0 {
		return 0, divisionByZero("mathx.BreakEven", "contribution margin cannot be zero")
	}
	return fixedCosts / margin, nil
}

// RoundTo rounds v half away from zero to digits decimal places
func RoundTo(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(v*scale) / scale
}

func invalidArgument(op, message string) error {
	return mdwerror.New(message).
		WithCode(mdwerror.CodeInvalidArgument).
		WithOperation(op)
}

func divisionByZero(op, message string) error {
	return mdwerror.New(message).
		WithCode(mdwerror.CodeDivisionByZero).
		WithOperation(op)
}
