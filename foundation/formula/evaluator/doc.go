// File: doc.go
// Title: Formula Evaluator Package Documentation
// Description: Package documentation for the evaluator.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

/*
Package evaluator reduces formula trees to values.

An Evaluator reads symbols through an Env and calls functions from a
registry. Its Result is ready, failed, or pending. Pending means an input
is not available yet or a function returned a *value.Future that has not
settled. A function is never invoked while one of its arguments is pending
or failed.

With a CallMemo, evaluating the same tree again within one cycle reuses the
outcome of every call that already ran. The engine relies on this to resume
an expression after a future settled.

For one-shot use:

	env := evaluator.NewMapEnv(map[string]value.Value{"x": 4.0}, nil)
	v, err := evaluator.Eval(ctx, "1 + x", env, reg)
*/
package evaluator
