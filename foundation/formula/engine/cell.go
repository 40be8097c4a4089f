// File: cell.go
// Title: Engine Cells
// Description: A cell is one tracked formula instance or value binding with
//              its status, value, error and graph edges. All accessors take
//              the owning engine's lock.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package engine

import (
	"github.com/substance/expression/foundation/formula/ast"
	"github.com/substance/expression/foundation/formula/deps"
	"github.com/substance/expression/foundation/formula/evaluator"
	"github.com/substance/expression/foundation/formula/value"
)

// Status is the readiness state of a cell
type Status int

const (
	// StatusPending means an input or a deferred value is outstanding
	StatusPending Status = iota

	// StatusReady means the cell holds a value
	StatusReady

	// StatusError means evaluation failed; the cell holds no value
	StatusError
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Cell is a formula instance or a named value binding
type Cell struct {
	engine *Engine
	id     string
	name   string
	expr   *ast.Expression
	deps   []deps.Symbol

	precedents []*Cell
	dependents []*Cell

	status Status
	value  value.Value
	last   value.Value
	err    error

	placeholder bool
	cyclic      bool

	generation uint64
	calls      *evaluator.CallMemo
	waiting    map[*value.Future]bool
}

func newCell(e *Engine, id, name string) *Cell {
	return &Cell{
		engine:  e,
		id:      id,
		name:    name,
		status:  StatusPending,
		calls:   evaluator.NewCallMemo(),
		waiting: make(map[*value.Future]bool),
	}
}

// newCycle invalidates outstanding futures and cached call outcomes
func (c *Cell) newCycle() {
	c.generation++
	c.calls.Reset()
	c.waiting = make(map[*value.Future]bool)
}

// ID returns the definition or binding name, or a generated handle for
// anonymous expressions
func (c *Cell) ID() string {
	return c.id
}

// Name returns the bound name ("" for anonymous expressions)
func (c *Cell) Name() string {
	return c.name
}

// Expr returns the parsed expression (nil for value bindings)
func (c *Cell) Expr() *ast.Expression {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	return c.expr
}

// Source returns the expression text ("" for value bindings)
func (c *Cell) Source() string {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	if c.expr == nil {
		return ""
	}
	return c.expr.Source()
}

// Status returns the current status
func (c *Cell) Status() Status {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	return c.status
}

// IsReady reports whether the cell holds a value
func (c *Cell) IsReady() bool {
	return c.Status() == StatusReady
}

// IsPending reports whether the cell waits for inputs or deferred values
func (c *Cell) IsPending() bool {
	return c.Status() == StatusPending
}

// IsError reports whether the last evaluation failed
func (c *Cell) IsError() bool {
	return c.Status() == StatusError
}

// Value returns the value of a ready cell, nil otherwise
func (c *Cell) Value() value.Value {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	return c.value
}

// LastValue returns the most recent ready value, also while the cell is
// pending or failed
func (c *Cell) LastValue() value.Value {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	return c.last
}

// Err returns the evaluation error of a failed cell
func (c *Cell) Err() error {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	return c.err
}

// IsPlaceholder reports whether the cell was only referenced, never defined
func (c *Cell) IsPlaceholder() bool {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	return c.placeholder
}

// Dependencies returns the symbols the expression reads
func (c *Cell) Dependencies() []deps.Symbol {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	return append([]deps.Symbol(nil), c.deps...)
}

// Dependents returns the cells reading this one, in registration order
func (c *Cell) Dependents() []*Cell {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	return append([]*Cell(nil), c.dependents...)
}

// Propagate re-evaluates the cell in a new cycle, invoking its functions
// again, and then every cell that depends on it, directly or transitively.
func (c *Cell) Propagate() {
	c.engine.propagate(c)
}

// String returns "id [status]"
func (c *Cell) String() string {
	return c.id + " [" + c.Status().String() + "]"
}
