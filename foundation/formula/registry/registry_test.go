// File: registry_test.go
// Title: Function Registry Tests
// Description: Unit tests for registration, overwrite, aliases and lookup.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package registry

import (
	"context"
	"reflect"
	"sync"
	"testing"

	mdwerror "github.com/substance/expression/foundation/core/error"
	"github.com/substance/expression/foundation/core/log"
	"github.com/substance/expression/foundation/formula/value"
)

func constant(v value.Value) Func {
	return func(ctx context.Context, args []value.Value) (value.Value, error) {
		return v, nil
	}
}

func newTestRegistry() *Registry {
	return New(Options{Logger: log.Discard()})
}

func TestRegister(t *testing.T) {
	reg := newTestRegistry()

	tests := []struct {
		name string
		fn   *Function
		code mdwerror.Code
	}{
		{"nil definition", nil, mdwerror.CodeInvalidInput},
		{"blank name", &Function{Name: " ", Call: constant(1.0)}, mdwerror.CodeInvalidInput},
		{"missing implementation", &Function{Name: "foo"}, mdwerror.CodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Register(tt.fn)
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("Expected %s, got %v", tt.code, err)
			}
		})
	}

	if err := reg.RegisterFunc("foo", constant(1.0), Opt("x", 1), P("y")); err != nil {
		t.Fatalf("RegisterFunc failed: %v", err)
	}
	fn, ok := reg.Lookup("foo")
	if !ok {
		t.Fatal("Expected foo to be registered")
	}
	if fn.ParamIndex("y") != 1 || fn.ParamIndex("z") != -1 {
		t.Errorf("Unexpected parameter indexes")
	}
	if !fn.Params[0].HasDefault || fn.Params[0].Default != 1.0 {
		t.Errorf("Expected normalised default 1.0, got %v", fn.Params[0].Default)
	}
}

func TestRegister_Overwrites(t *testing.T) {
	reg := newTestRegistry()
	_ = reg.RegisterFunc("foo", constant(1.0))
	_ = reg.RegisterFunc("foo", constant(2.0))

	fn, _ := reg.Lookup("foo")
	got, _ := fn.Call(context.Background(), nil)
	if got != 2.0 {
		t.Errorf("Expected latest binding to win, got %v", got)
	}
	if names := reg.Names(); !reflect.DeepEqual(names, []string{"foo"}) {
		t.Errorf("Expected single name, got %v", names)
	}
}

func TestAlias(t *testing.T) {
	reg := newTestRegistry()
	_ = reg.RegisterFunc("average", constant(3.0))

	if err := reg.Alias("avg", "missing"); !mdwerror.HasCode(err, mdwerror.CodeUnknownFunction) {
		t.Errorf("Expected UNKNOWN_FUNCTION, got %v", err)
	}
	if err := reg.Alias("avg", "average"); err != nil {
		t.Fatalf("Alias failed: %v", err)
	}
	if fn, ok := reg.Lookup("avg"); !ok || fn.Name != "average" {
		t.Errorf("Expected alias to resolve to average")
	}

	reg.Unregister("average")
	if reg.Has("avg") || reg.Has("average") {
		t.Error("Expected function and alias to be removed")
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	reg := newTestRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = reg.RegisterFunc("f", constant(1.0))
			reg.Has("f")
			reg.Names()
		}()
	}
	wg.Wait()

	if len(reg.Functions()) != 1 {
		t.Errorf("Expected one function, got %d", len(reg.Functions()))
	}
}
