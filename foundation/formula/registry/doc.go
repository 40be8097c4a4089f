// File: doc.go
// Title: Function Registry Package Documentation
// Description: Package documentation for the function registry.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

/*
Package registry holds the host functions callable from formulas.

Registration overwrites earlier bindings of the same name. Parameters may
declare defaults, which the evaluator applies for arguments the call leaves
out:

	reg := registry.New(registry.Options{})
	reg.RegisterFunc("foo", func(ctx context.Context, args []value.Value) (value.Value, error) {
		return args[0].(float64) + args[1].(float64) + args[2].(float64), nil
	}, registry.Opt("x", 1), registry.Opt("y", 2), registry.Opt("z", 3))

A function that returns a *value.Future produces its value asynchronously.
The registry performs no arity checks.
*/
package registry
