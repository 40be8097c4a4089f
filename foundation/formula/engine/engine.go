// File: engine.go
// Title: Reactive Formula Engine
// Description: Tracks formula cells, builds the dependency graph between
//              them and keeps every cell's status and value current. Changes
//              propagate eagerly: whenever a cell changes, its dependents are
//              re-evaluated at once, and deferred values re-enter the engine
//              when they settle.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package engine

import (
	"context"
	"sync"

	"github.com/google/uuid"

	mdwerror "github.com/substance/expression/foundation/core/error"
	mdwlog "github.com/substance/expression/foundation/core/log"
	"github.com/substance/expression/foundation/formula/deps"
	"github.com/substance/expression/foundation/formula/parser"
	"github.com/substance/expression/foundation/formula/registry"
	"github.com/substance/expression/foundation/formula/value"
)

// DefaultDataSymbol names the cell holding the tabular data that cell and
// range addresses read from
const DefaultDataSymbol = "$data"

// Options configures an engine
type Options struct {
	Logger         *mdwlog.Logger
	Registry       *registry.Registry
	DataSymbol     string
	MaxInputLength int

	// MaxRangeCells bounds the cells one range may cover; larger ranges
	// fail with INVALID_RANGE
	MaxRangeCells int

	// Context is passed to every function call and cancelled by Close
	Context context.Context

	// DisableCycleDetection leaves cells on a dependency cycle pending
	// instead of failing them with CIRCULAR_REFERENCE
	DisableCycleDetection bool
}

// Engine owns a set of cells and their dependency graph. All state is
// guarded by one lock; settlement callbacks take the same lock, so cell
// updates are serialised.
type Engine struct {
	mu       sync.Mutex
	logger   *mdwlog.Logger
	registry *registry.Registry
	parser   *parser.Parser
	options  Options

	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	cells map[string]*Cell
	order []*Cell

	outstanding int
	idle        chan struct{}

	events      []Event
	subMu       sync.Mutex
	subscribers map[int]func(Event)
	nextSub     int
}

// New creates an engine with the given options
func New(opts Options) (*Engine, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.DataSymbol == "" {
		opts.DataSymbol = DefaultDataSymbol
	}
	if opts.MaxInputLength <= 0 {
		opts.MaxInputLength = parser.DefaultMaxInputLength
	}
	if opts.MaxRangeCells <= 0 {
		opts.MaxRangeCells = deps.DefaultMaxRangeCells
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Registry == nil {
		opts.Registry = registry.New(registry.Options{Logger: opts.Logger})
	}

	logger := opts.Logger.WithField("component", "formula-engine")

	ctx, cancel := context.WithCancel(opts.Context)
	e := &Engine{
		logger:   logger,
		registry: opts.Registry,
		parser: parser.New(parser.Options{
			Logger:         opts.Logger,
			MaxInputLength: opts.MaxInputLength,
		}),
		options:     opts,
		ctx:         ctx,
		cancel:      cancel,
		cells:       make(map[string]*Cell),
		subscribers: make(map[int]func(Event)),
	}

	logger.Info("Formula engine initialized", mdwlog.Fields{
		"data_symbol":      opts.DataSymbol,
		"max_input_length": opts.MaxInputLength,
		"max_range_cells":  opts.MaxRangeCells,
		"functions":        len(opts.Registry.Names()),
		"detect_cycles":    !opts.DisableCycleDetection,
	})

	return e, nil
}

// Registry returns the function registry used for calls
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// DataSymbol returns the name of the data cell
func (e *Engine) DataSymbol() string {
	return e.options.DataSymbol
}

// RegisterFunction registers a host function. Cells that already failed
// with UNKNOWN_FUNCTION are not re-evaluated; call Propagate on them.
func (e *Engine) RegisterFunction(name string, fn registry.Func, params ...registry.Param) error {
	return e.registry.RegisterFunc(name, fn, params...)
}

// Register registers a function definition
func (e *Engine) Register(fn *registry.Function) error {
	return e.registry.Register(fn)
}

// AddExpression parses source and tracks it as a cell. A definition
// ("name = expr") binds the cell to name, replacing the expression of an
// existing cell with that name. Parse and evaluation failures are stored on
// the returned cell.
func (e *Engine) AddExpression(source string) *Cell {
	expr := e.parser.Parse(source)

	e.mu.Lock()
	defer e.unlockAndNotify()

	if e.closed {
		c := newCell(e, uuid.NewString(), expr.Name())
		c.expr = expr
		c.status = StatusError
		c.err = closedError("engine.AddExpression")
		return c
	}

	var c *Cell
	if name := expr.Name(); name != "" {
		c = e.cellFor(name)
	} else {
		c = newCell(e, uuid.NewString(), "")
		e.order = append(e.order, c)
	}
	c.expr = expr
	c.placeholder = false
	c.deps = deps.ExtractExpressionLimit(expr, e.options.MaxRangeCells)
	e.linkDependencies(c)

	e.logger.Debug("Expression added", mdwlog.Fields{
		"cell":         c.id,
		"dependencies": len(c.deps),
		"syntax_error": expr.HasError(),
	})

	queue := append([]*Cell{c}, e.updateCycles()...)
	e.run(queue, nil)
	return c
}

// SetValue binds name to a host value, replacing any expression the cell
// held. A *value.Future keeps the cell pending until it settles. The data
// cell only accepts matrices.
func (e *Engine) SetValue(name string, data any) error {
	if name == "" {
		return mdwerror.New("value name cannot be empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("engine.SetValue")
	}

	v := value.Normalize(data)
	future, deferred := v.(*value.Future)
	if !deferred && name == e.options.DataSymbol {
		m, err := e.dataMatrix(v)
		if err != nil {
			return err
		}
		v = m
	}

	e.mu.Lock()
	defer e.unlockAndNotify()

	if e.closed {
		return closedError("engine.SetValue")
	}

	c := e.cellFor(name)
	relinked := len(c.precedents) > 0
	unlink(c)
	c.expr = nil
	c.deps = nil
	c.placeholder = false
	c.newCycle()

	var queue []*Cell
	if relinked {
		queue = e.updateCycles()
	}

	if deferred {
		if e.setState(c, StatusPending, nil, nil) {
			queue = append(queue, c.dependents...)
		}
		e.awaitBinding(c, future)
	} else if e.setState(c, StatusReady, v, nil) {
		queue = append(queue, c.dependents...)
	}

	e.logger.Debug("Value bound", mdwlog.Fields{"cell": name, "deferred": deferred})
	e.run(queue, nil)
	return nil
}

// Cell returns the cell bound to name
func (e *Engine) Cell(name string) (*Cell, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.cells[name]
	return c, ok
}

// Cells returns every tracked cell, placeholders included, in registration
// order
func (e *Engine) Cells() []*Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Cell(nil), e.order...)
}

// Wait blocks until no deferred value is outstanding or ctx is done. Futures
// that never settle keep Wait blocked until ctx expires.
func (e *Engine) Wait(ctx context.Context) error {
	for {
		e.mu.Lock()
		if e.outstanding == 0 || e.closed {
			e.mu.Unlock()
			return nil
		}
		if e.idle == nil {
			e.idle = make(chan struct{})
		}
		idle := e.idle
		outstanding := e.outstanding
		e.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return mdwerror.Wrap(ctx.Err(), "waiting for deferred values").
				WithCode(mdwerror.CodeTimeout).
				WithOperation("engine.Wait").
				WithDetail("outstanding", outstanding)
		}
	}
}

// Close cancels the engine context. Settlements arriving afterwards are
// ignored and further changes are rejected.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.cancel()
	if e.idle != nil {
		close(e.idle)
		e.idle = nil
	}
	cells := len(e.order)
	e.mu.Unlock()

	e.subMu.Lock()
	e.subscribers = make(map[int]func(Event))
	e.subMu.Unlock()

	e.logger.Info("Formula engine closed", mdwlog.Fields{"cells": cells})
	return nil
}

// cellFor returns the named cell, creating a placeholder when absent
func (e *Engine) cellFor(name string) *Cell {
	if c, ok := e.cells[name]; ok {
		return c
	}
	c := newCell(e, name, name)
	c.placeholder = true
	e.cells[name] = c
	e.order = append(e.order, c)
	return c
}

func (e *Engine) linkDependencies(c *Cell) {
	targets := make([]*Cell, 0, len(c.deps))
	for _, sym := range c.deps {
		switch sym.Kind {
		case deps.Var:
			targets = append(targets, e.cellFor(sym.Name))
		default:
			targets = append(targets, e.cellFor(e.options.DataSymbol))
		}
	}
	relink(c, targets)
}

// updateCycles refreshes the cycle flags and returns the cells whose flag
// changed
func (e *Engine) updateCycles() []*Cell {
	if e.options.DisableCycleDetection {
		return nil
	}

	cyclic := findCycles(e.order)
	var changed []*Cell
	for _, c := range e.order {
		if c.cyclic != cyclic[c] {
			c.cyclic = cyclic[c]
			changed = append(changed, c)
		}
	}
	if len(changed) > 0 {
		e.logger.Debug("Dependency cycles updated", mdwlog.Fields{
			"cyclic_cells": len(cyclic),
			"changed":      len(changed),
		})
	}
	return changed
}

func (e *Engine) dataMatrix(v value.Value) (value.Matrix, error) {
	switch d := v.(type) {
	case value.Matrix:
		return d, nil
	case []value.Value:
		if len(d) == 0 {
			return value.Matrix{}, nil
		}
	case nil:
		return value.Matrix{}, nil
	}
	return nil, mdwerror.Newf("data cell '%s' requires a list of rows, got %s",
		e.options.DataSymbol, value.TypeName(v)).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation("engine.SetValue")
}

func closedError(op string) error {
	return mdwerror.New("engine is closed").
		WithCode(mdwerror.CodeEngineClosed).
		WithOperation(op)
}

func syntaxError(c *Cell) error {
	se := c.expr.SyntaxError()
	return mdwerror.Wrap(se, "cannot parse expression").
		WithCode(mdwerror.CodeSyntax).
		WithOperation("engine.AddExpression").
		WithDetail("cell", c.id).
		WithDetail("position", se.Position.String())
}

func circularError(c *Cell) error {
	return mdwerror.Newf("cell '%s' is part of a dependency cycle", c.id).
		WithCode(mdwerror.CodeCircularReference).
		WithOperation("engine.evaluate").
		WithDetail("cell", c.id)
}
