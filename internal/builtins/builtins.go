// ============================================================================
// mini - Formula Engine Tools
// ============================================================================
//
// Package:     builtins
// Description: Standard function library for formula cells
// Author:      msto63
// Created:     2025-10-18
// License:     MIT
// ============================================================================

package builtins

import (
	"context"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	mdwerror "github.com/substance/expression/foundation/core/error"
	"github.com/substance/expression/foundation/formula/registry"
	"github.com/substance/expression/foundation/formula/value"
	"github.com/substance/expression/foundation/utils/mathx"
)

// Functions returns the built-in function definitions
func Functions() []*registry.Function {
	fns := []*registry.Function{
		{Name: "sum", Description: "Adds all numbers", Call: sum},
		{Name: "mean", Description: "Arithmetic mean of all numbers", Call: mean},
		{Name: "min", Description: "Smallest number", Call: minimum},
		{Name: "max", Description: "Largest number", Call: maximum},
		{Name: "count", Description: "Number of numeric values", Call: count},
		{Name: "concat", Description: "Joins values as text", Call: concat},
		{Name: "upper", Description: "Upper-cases a string", Params: []registry.Param{registry.P("text")}, Call: upper},
		{Name: "lower", Description: "Lower-cases a string", Params: []registry.Param{registry.P("text")}, Call: lower},
		{Name: "len", Description: "Length of a string or collection", Params: []registry.Param{registry.P("value")}, Call: length},
		{
			Name:        "round",
			Description: "Rounds to the given number of digits",
			Params:      []registry.Param{registry.P("x"), registry.Opt("digits", 0)},
			Call:        round,
		},
		{
			Name:        "if",
			Description: "Chooses a value by condition",
			Params:      []registry.Param{registry.P("cond"), registry.P("then"), registry.Opt("else", nil)},
			Call:        choose,
		},
		{
			Name:        "delay",
			Description: "Yields value after ms milliseconds",
			Params:      []registry.Param{registry.P("value"), registry.Opt("ms", 0)},
			Call:        delay,
		},
	}
	fns = append(fns, financeFunctions()...)
	return append(fns, dateFunctions()...)
}

// Register installs the built-in functions into reg
func Register(reg *registry.Registry) error {
	for _, fn := range Functions() {
		if err := reg.Register(fn); err != nil {
			return err
		}
	}
	return nil
}

func sum(ctx context.Context, args []value.Value) (value.Value, error) {
	nums, err := numbers("sum", args)
	if err != nil {
		return nil, err
	}
	total := 0.0
	for _, n := range nums {
		total += n
	}
	return total, nil
}

func mean(ctx context.Context, args []value.Value) (value.Value, error) {
	nums, err := numbers("mean", args)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, emptyInput("mean")
	}
	total := 0.0
	for _, n := range nums {
		total += n
	}
	return total / float64(len(nums)), nil
}

func minimum(ctx context.Context, args []value.Value) (value.Value, error) {
	return extreme("min", args, func(a, b float64) bool { return a < b })
}

func maximum(ctx context.Context, args []value.Value) (value.Value, error) {
	return extreme("max", args, func(a, b float64) bool { return a > b })
}

func extreme(name string, args []value.Value, better func(a, b float64) bool) (value.Value, error) {
	nums, err := numbers(name, args)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, emptyInput(name)
	}
	best := nums[0]
	for _, n := range nums[1:] {
		if better(n, best) {
			best = n
		}
	}
	return best, nil
}

func count(ctx context.Context, args []value.Value) (value.Value, error) {
	n := 0
	for _, v := range value.Flatten(args...) {
		if _, ok := value.AsNumber(v); ok {
			n++
		}
	}
	return float64(n), nil
}

func concat(ctx context.Context, args []value.Value) (value.Value, error) {
	var b strings.Builder
	for _, v := range value.Flatten(args...) {
		switch t := v.(type) {
		case nil:
		case string:
			b.WriteString(t)
		default:
			b.WriteString(value.Format(t))
		}
	}
	return b.String(), nil
}

func upper(ctx context.Context, args []value.Value) (value.Value, error) {
	s, err := text("upper", args[0])
	if err != nil {
		return nil, err
	}
	return strings.ToUpper(s), nil
}

func lower(ctx context.Context, args []value.Value) (value.Value, error) {
	s, err := text("lower", args[0])
	if err != nil {
		return nil, err
	}
	return strings.ToLower(s), nil
}

func length(ctx context.Context, args []value.Value) (value.Value, error) {
	switch t := args[0].(type) {
	case string:
		return float64(utf8.RuneCountInString(t)), nil
	case []value.Value:
		return float64(len(t)), nil
	case value.Matrix:
		return float64(t.Rows()), nil
	case *value.Object:
		return float64(t.Len()), nil
	default:
		return nil, typeMismatch("len", "value", "string or collection", t)
	}
}

func round(ctx context.Context, args []value.Value) (value.Value, error) {
	x, ok := value.AsNumber(args[0])
	if !ok {
		return nil, typeMismatch("round", "x", "number", args[0])
	}
	digits, ok := value.AsNumber(args[1])
	if !ok {
		return nil, typeMismatch("round", "digits", "number", args[1])
	}
	return mathx.RoundTo(x, int(math.Trunc(digits))), nil
}

func choose(ctx context.Context, args []value.Value) (value.Value, error) {
	if value.Truthy(args[0]) {
		return args[1], nil
	}
	return args[2], nil
}

func delay(ctx context.Context, args []value.Value) (value.Value, error) {
	ms, ok := value.AsNumber(args[1])
	if !ok || ms < 0 {
		return nil, mdwerror.New("delay: ms must be a non-negative number").
			WithCode(mdwerror.CodeInvalidArgument).
			WithOperation("builtins.delay")
	}
	v := args[0]
	if ms == 0 {
		return value.Resolved(v), nil
	}
	wait := time.Duration(ms * float64(time.Millisecond))

	return value.Go(ctx, func(ctx context.Context) (value.Value, error) {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-timer.C:
			return v, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}), nil
}

// numbers flattens args and requires every non-null leaf to be a number
func numbers(name string, args []value.Value) ([]float64, error) {
	leaves := value.Flatten(args...)
	out := make([]float64, 0, len(leaves))
	for _, v := range leaves {
		if v == nil {
			continue
		}
		n, ok := value.AsNumber(v)
		if !ok {
			return nil, typeMismatch(name, "values", "number", v)
		}
		out = append(out, n)
	}
	return out, nil
}

func text(name string, v value.Value) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeMismatch(name, "text", "string", v)
	}
	return s, nil
}

func typeMismatch(fn, param, want string, got value.Value) error {
	return mdwerror.Newf("%s: %s must be a %s, got %s", fn, param, want, value.TypeName(got)).
		WithCode(mdwerror.CodeTypeMismatch).
		WithOperation("builtins." + fn).
		WithDetail("parameter", param)
}

func emptyInput(fn string) error {
	return mdwerror.Newf("%s: no numbers given", fn).
		WithCode(mdwerror.CodeInvalidArgument).
		WithOperation("builtins." + fn)
}
