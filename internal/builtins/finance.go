// ============================================================================
// mini - Formula Engine Tools
// ============================================================================
//
// Package:     builtins
// Description: Financial functions backed by foundation/utils/mathx
// Author:      msto63
// Created:     2025-10-18
// License:     MIT
// ============================================================================

package builtins

import (
	"context"
	"strconv"

	"github.com/substance/expression/foundation/formula/registry"
	"github.com/substance/expression/foundation/formula/value"
	"github.com/substance/expression/foundation/utils/mathx"
)

func financeFunctions() []*registry.Function {
	return []*registry.Function{
		{
			Name:        "percent",
			Description: "percent percent of value",
			Params:      []registry.Param{registry.P("value"), registry.P("percent")},
			Call: numeric("percent", func(a []float64) (float64, error) {
				return mathx.Percentage(a[0], a[1]), nil
			}),
		},
		{
			Name:        "percentof",
			Description: "part as a percentage of whole",
			Params:      []registry.Param{registry.P("part"), registry.P("whole")},
			Call: numeric("percentof", func(a []float64) (float64, error) {
				return mathx.PercentageOf(a[0], a[1])
			}),
		},
		{
			Name:        "pv",
			Description: "Present value of a future amount",
			Params:      []registry.Param{registry.P("fv"), registry.P("rate"), registry.P("periods")},
			Call: numeric("pv", func(a []float64) (float64, error) {
				return mathx.PresentValue(a[0], a[1], a[2])
			}),
		},
		{
			Name:        "fv",
			Description: "Future value of a present amount",
			Params:      []registry.Param{registry.P("pv"), registry.P("rate"), registry.P("periods")},
			Call: numeric("fv", func(a []float64) (float64, error) {
				return mathx.FutureValue(a[0], a[1], a[2]), nil
			}),
		},
		{
			Name:        "compound",
			Description: "Amount after compound interest",
			Params: []registry.Param{
				registry.P("principal"), registry.P("rate"), registry.P("years"), registry.Opt("frequency", 1),
			},
			Call: numeric("compound", func(a []float64) (float64, error) {
				return mathx.CompoundInterest(a[0], a[1], int(a[3]), a[2])
			}),
		},
		{
			Name:        "pmt",
			Description: "Monthly annuity payment for a yearly percent rate",
			Params:      []registry.Param{registry.P("principal"), registry.P("percent"), registry.P("months")},
			Call: numeric("pmt", func(a []float64) (float64, error) {
				return mathx.LoanPayment(a[0], a[1], int(a[2]))
			}),
		},
		{
			Name:        "roi",
			Description: "Return on investment in percent",
			Params:      []registry.Param{registry.P("initial"), registry.P("current")},
			Call: numeric("roi", func(a []float64) (float64, error) {
				return mathx.ROI(a[0], a[1])
			}),
		},
		{
			Name:        "breakeven",
			Description: "Units needed to cover fixed costs",
			Params:      []registry.Param{registry.P("fixed"), registry.P("price"), registry.P("cost")},
			Call: numeric("breakeven", func(a []float64) (float64, error) {
				return mathx.BreakEven(a[0], a[1], a[2])
			}),
		},
	}
}

// numeric adapts a calculation over the declared parameters, which must
// all be numbers
func numeric(name string, calc func([]float64) (float64, error)) registry.Func {
	return func(ctx context.Context, args []value.Value) (value.Value, error) {
		nums := make([]float64, len(args))
		for i, arg := range args {
			n, ok := value.AsNumber(arg)
			if !ok {
				return nil, typeMismatch(name, "argument "+strconv.Itoa(i+1), "number", arg)
			}
			nums[i] = n
		}
		return calc(nums)
	}
}
