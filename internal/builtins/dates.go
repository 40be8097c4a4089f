// ============================================================================
// mini - Formula Engine Tools
// ============================================================================
//
// Package:     builtins
// Description: Date functions backed by foundation/utils/timex
// Author:      msto63
// Created:     2025-10-18
// License:     MIT
// ============================================================================

package builtins

import (
	"context"
	"math"
	"time"

	"github.com/substance/expression/foundation/formula/registry"
	"github.com/substance/expression/foundation/formula/value"
	"github.com/substance/expression/foundation/utils/timex"
)

func dateFunctions() []*registry.Function {
	return []*registry.Function{
		{
			Name:        "days",
			Description: "Calendar days between two dates",
			Params:      []registry.Param{registry.P("start"), registry.P("end")},
			Call:        days,
		},
		{
			Name:        "workdays",
			Description: "Business days between two dates, both inclusive",
			Params:      []registry.Param{registry.P("start"), registry.P("end")},
			Call:        workdays,
		},
		{
			Name:        "addworkdays",
			Description: "Date n business days after date",
			Params:      []registry.Param{registry.P("date"), registry.P("n")},
			Call:        addWorkdays,
		},
	}
}

func days(ctx context.Context, args []value.Value) (value.Value, error) {
	start, end, err := datePair("days", args)
	if err != nil {
		return nil, err
	}
	return float64(timex.DaysBetween(start, end)), nil
}

func workdays(ctx context.Context, args []value.Value) (value.Value, error) {
	start, end, err := datePair("workdays", args)
	if err != nil {
		return nil, err
	}
	return float64(timex.DefaultBusinessDayConfig().BusinessDaysBetween(start, end)), nil
}

func addWorkdays(ctx context.Context, args []value.Value) (value.Value, error) {
	d, err := date("addworkdays", "date", args[0])
	if err != nil {
		return nil, err
	}
	n, ok := value.AsNumber(args[1])
	if !ok {
		return nil, typeMismatch("addworkdays", "n", "number", args[1])
	}
	moved := timex.DefaultBusinessDayConfig().AddBusinessDays(d, int(math.Trunc(n)))
	return timex.FormatDate(moved), nil
}

func datePair(name string, args []value.Value) (time.Time, time.Time, error) {
	start, err := date(name, "start", args[0])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := date(name, "end", args[1])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func date(name, param string, v value.Value) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, typeMismatch(name, param, "date string", v)
	}
	return timex.ParseDate(s)
}
