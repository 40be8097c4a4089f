// File: evaluator_test.go
// Title: Formula Evaluator Tests
// Description: Unit tests for arithmetic, composites, lookups, argument
//              binding, pipes, deferred values and error reporting.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package evaluator

import (
	"context"
	"errors"
	"testing"
	"time"

	mdwerror "github.com/substance/expression/foundation/core/error"
	"github.com/substance/expression/foundation/core/log"
	"github.com/substance/expression/foundation/formula/parser"
	"github.com/substance/expression/foundation/formula/registry"
	"github.com/substance/expression/foundation/formula/value"
)

func sum(ctx context.Context, args []value.Value) (value.Value, error) {
	total := 0.0
	for _, a := range args {
		n, _ := a.(float64)
		total += n
	}
	return total, nil
}

func newTestRegistry() *registry.Registry {
	reg := registry.New(registry.Options{Logger: log.Discard()})
	_ = reg.RegisterFunc("sum", sum)
	_ = reg.RegisterFunc("foo", sum, registry.Opt("x", 1), registry.Opt("y", 2), registry.Opt("z", 3))
	_ = reg.RegisterFunc("five", func(ctx context.Context, args []value.Value) (value.Value, error) {
		return 5, nil
	})
	_ = reg.RegisterFunc("double", func(ctx context.Context, args []value.Value) (value.Value, error) {
		return 2 * args[0].(float64), nil
	}, registry.P("v"))
	_ = reg.RegisterFunc("inc", func(ctx context.Context, args []value.Value) (value.Value, error) {
		return args[0].(float64) + 1, nil
	}, registry.P("v"))
	_ = reg.RegisterFunc("fail", func(ctx context.Context, args []value.Value) (value.Value, error) {
		return nil, errors.New("boom")
	})
	return reg
}

func evalSource(t *testing.T, source string, env Env, reg *registry.Registry) Result {
	t.Helper()
	expr := parser.Parse(source)
	if expr.HasError() {
		t.Fatalf("Parse(%q) failed: %v", source, expr.SyntaxError())
	}
	e := &Evaluator{Functions: reg, Env: env, Calls: NewCallMemo(), Ctx: context.Background()}
	return e.Evaluate(expr.Root())
}

func TestEvaluate_Values(t *testing.T) {
	data := value.Normalize([][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12}}).(value.Matrix)
	env := NewMapEnv(map[string]value.Value{"x": 4.0}, data)
	reg := newTestRegistry()

	tests := []struct {
		source string
		want   value.Value
	}{
		{"1", 1.0},
		{"true", true},
		{`"foo"`, "foo"},
		{"1+2", 3.0},
		{"2*3", 6.0},
		{"5-3", 2.0},
		{"6/3", 2.0},
		{"2^3", 8.0},
		{"(1+2)*(3+4)", 21.0},
		{"2^3^2", 512.0},
		{"1+x+A1", 6.0},
		{"B3", 8.0},
		{"[1,x,A1]", []value.Value{1.0, 4.0, 1.0}},
		{"A1:C4", data},
		{"B2:C3", value.Matrix{{5.0, 6.0}, {8.0, 9.0}}},
		{"sum(1,2,3)", 6.0},
		{"foo(4,z=5)", 11.0},
		{"foo()", 6.0},
		{"5 | foo(z=42)", 49.0},
		{"five() | double()", 10.0},
		{"double(inc(2))", 6.0},
		{"sum(A1:A2)", 0.0},
		{"f = function(a, b)", value.Signature{Params: []string{"a", "b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			res := evalSource(t, tt.source, env, reg)
			if !res.Ready() {
				t.Fatalf("Expected ready result, got err=%v pending=%v", res.Err, res.Pending)
			}
			if !value.Equal(res.Value, tt.want) {
				t.Errorf("Evaluate(%q) = %s, want %s", tt.source, value.Format(res.Value), value.Format(tt.want))
			}
		})
	}
}

func TestEvaluate_Object(t *testing.T) {
	env := NewMapEnv(map[string]value.Value{"x": 4.0}, value.Matrix{{10.0}})
	res := evalSource(t, "{foo: 1, bar: x, baz: A1}", env, newTestRegistry())
	if !res.Ready() {
		t.Fatalf("Expected ready, got %v", res.Err)
	}
	obj := res.Value.(*value.Object)
	if got := obj.String(); got != `{"foo": 1, "bar": 4, "baz": 10}` {
		t.Errorf("Unexpected object %s", got)
	}
}

func TestEvaluate_Definition_Binds(t *testing.T) {
	env := NewMapEnv(nil, nil)
	res := evalSource(t, "x = 42", env, nil)
	if !res.Ready() || res.Value != 42.0 {
		t.Fatalf("Expected 42, got %v (%v)", res.Value, res.Err)
	}
	if env.Vars["x"] != 42.0 {
		t.Errorf("Expected x bound to 42, got %v", env.Vars["x"])
	}
}

func TestEvaluate_Errors(t *testing.T) {
	env := NewMapEnv(map[string]value.Value{"s": "text"}, value.Matrix{{1.0, 2.0}})
	reg := newTestRegistry()

	tests := []struct {
		source string
		code   mdwerror.Code
	}{
		{"y + 1", mdwerror.CodeUndefinedSymbol},
		{"C1", mdwerror.CodeOutOfBounds},
		{"A1:A2", mdwerror.CodeOutOfBounds},
		{"B1:A1", mdwerror.CodeInvalidRange},
		{"A1:ZZ999999", mdwerror.CodeInvalidRange},
		{"nope(1)", mdwerror.CodeUnknownFunction},
		{"foo(w=1)", mdwerror.CodeInvalidArgument},
		{"foo(1, x=2)", mdwerror.CodeInvalidArgument},
		{"s * 2", mdwerror.CodeTypeMismatch},
		{"1 / 0", mdwerror.CodeDivisionByZero},
		{"fail()", mdwerror.CodeFunctionFailed},
		{"[1, y, C1]", mdwerror.CodeUndefinedSymbol},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			res := evalSource(t, tt.source, env, reg)
			if res.Err == nil {
				t.Fatalf("Expected error %s, got value %v", tt.code, res.Value)
			}
			if !mdwerror.HasCode(res.Err, tt.code) {
				t.Errorf("Expected %s, got %v (%s)", tt.code, res.Err, mdwerror.GetCode(res.Err))
			}
		})
	}
}

func TestEvaluate_ShortCircuitsPendingArguments(t *testing.T) {
	reg := newTestRegistry()
	calls := 0
	_ = reg.RegisterFunc("count", func(ctx context.Context, args []value.Value) (value.Value, error) {
		calls++
		return args[0], nil
	}, registry.P("v"))

	pending := value.NewFuture()
	env := NewMapEnv(map[string]value.Value{"later": pending}, nil)

	res := evalSource(t, "count(later)", env, reg)
	if !res.Pending {
		t.Fatalf("Expected pending, got %v (%v)", res.Value, res.Err)
	}
	if calls != 0 {
		t.Errorf("Function must not run with pending arguments, ran %d times", calls)
	}
}

func TestEvaluate_ErrorWinsOverPending(t *testing.T) {
	env := NewMapEnv(map[string]value.Value{"later": value.NewFuture()}, nil)
	res := evalSource(t, "[later, missing]", env, nil)
	if !mdwerror.HasCode(res.Err, mdwerror.CodeUndefinedSymbol) {
		t.Errorf("Expected UNDEFINED_SYMBOL, got err=%v pending=%v", res.Err, res.Pending)
	}
}

func TestEvaluate_DeferredWithMemo(t *testing.T) {
	reg := newTestRegistry()
	var issued []*value.Future
	_ = reg.RegisterFunc("bar", func(ctx context.Context, args []value.Value) (value.Value, error) {
		f := value.NewFuture()
		issued = append(issued, f)
		return f, nil
	}, registry.P("v"))

	expr := parser.Parse("double(bar(2))")
	e := &Evaluator{Functions: reg, Calls: NewCallMemo(), Ctx: context.Background()}

	first := e.Evaluate(expr.Root())
	if !first.Pending || len(first.Waiting) != 1 {
		t.Fatalf("Expected pending on one future, got %+v", first)
	}

	// evaluating again in the same cycle must not issue a second call
	second := e.Evaluate(expr.Root())
	if !second.Pending || len(issued) != 1 {
		t.Fatalf("Expected memoised pending call, issued %d", len(issued))
	}
	if len(e.Calls.Outstanding()) != 1 {
		t.Errorf("Expected one outstanding future in memo")
	}

	issued[0].Resolve(3)
	third := e.Evaluate(expr.Root())
	if !third.Ready() || third.Value != 6.0 {
		t.Fatalf("Expected 6 after settlement, got %+v", third)
	}

	e.Calls.Reset()
	if again := e.Evaluate(expr.Root()); !again.Pending || len(issued) != 2 {
		t.Errorf("Expected a new call after reset, issued %d", len(issued))
	}
}

func TestEvaluate_RejectedFuture(t *testing.T) {
	reg := newTestRegistry()
	_ = reg.RegisterFunc("broken", func(ctx context.Context, args []value.Value) (value.Value, error) {
		return value.Rejected(errors.New("remote failure")), nil
	})

	res := evalSource(t, "broken()", nil, reg)
	if !mdwerror.HasCode(res.Err, mdwerror.CodeFunctionFailed) {
		t.Errorf("Expected FUNCTION_FAILED, got %v", res.Err)
	}
}

func TestEvaluate_PanickingFunction(t *testing.T) {
	reg := newTestRegistry()
	_ = reg.RegisterFunc("explode", func(ctx context.Context, args []value.Value) (value.Value, error) {
		panic("kaboom")
	})

	res := evalSource(t, "explode()", nil, reg)
	if !mdwerror.HasCode(res.Err, mdwerror.CodeFunctionFailed) {
		t.Errorf("Expected FUNCTION_FAILED, got %v", res.Err)
	}
}

func TestEval_WaitsForFutures(t *testing.T) {
	reg := newTestRegistry()
	_ = reg.RegisterFunc("slow", func(ctx context.Context, args []value.Value) (value.Value, error) {
		v := args[0]
		return value.Go(ctx, func(ctx context.Context) (value.Value, error) {
			time.Sleep(5 * time.Millisecond)
			return v, nil
		}), nil
	}, registry.P("v"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	v, err := Eval(ctx, "slow(2) | foo()", NewMapEnv(nil, nil), reg)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if v != 7.0 {
		t.Errorf("Expected 7, got %v", v)
	}

	if _, err := Eval(ctx, "1+", nil, reg); !mdwerror.HasCode(err, mdwerror.CodeSyntax) {
		t.Errorf("Expected SYNTAX error, got %v", err)
	}
}

func TestEval_Timeout(t *testing.T) {
	reg := newTestRegistry()
	_ = reg.RegisterFunc("never", func(ctx context.Context, args []value.Value) (value.Value, error) {
		return value.NewFuture(), nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := Eval(ctx, "never()", nil, reg); !mdwerror.HasCode(err, mdwerror.CodeTimeout) {
		t.Errorf("Expected TIMEOUT, got %v", err)
	}
}
