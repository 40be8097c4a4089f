// File: doc.go
// Title: Formula Engine Package Documentation
// Description: Package documentation for the reactive formula engine.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

/*
Package engine keeps a set of formula cells up to date.

Each expression added to an Engine becomes a Cell. Definitions ("x = 1 + y")
bind the cell to a name; other cells reference it by that name, and the
engine links them in a dependency graph. Cell and range addresses read the
data cell (named "$data" unless configured otherwise), which holds a matrix
set through SetValue.

	e, _ := engine.New(engine.Options{})
	_ = e.SetValue("$data", [][]float64{{1, 2}, {3, 4}})
	e.AddExpression("total = sum(A1:B2)")
	c := e.AddExpression("total / 2")

A cell is pending, ready or in error. Functions may return a *value.Future;
the cell stays pending until the future settles and is then re-evaluated
with the settled value, reusing the outcome of calls made earlier in the
same cycle. Every change is pushed to dependents at once. Wait blocks until
no deferred value is outstanding.

Errors never escape AddExpression: syntax and evaluation failures are stored
on the cell, and cells reading a failed cell stay pending. Cells on a
dependency cycle fail with CIRCULAR_REFERENCE.
*/
package engine
