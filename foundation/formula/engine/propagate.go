// File: propagate.go
// Title: Evaluation and Propagation
// Description: Evaluation cycles for single cells, the eager work-list that
//              pushes changes to dependents, and the settlement callbacks
//              through which deferred values re-enter the engine.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package engine

import (
	mdwerror "github.com/substance/expression/foundation/core/error"
	mdwlog "github.com/substance/expression/foundation/core/log"
	"github.com/substance/expression/foundation/formula/evaluator"
	"github.com/substance/expression/foundation/formula/value"
)

// run evaluates the queued cells in FIFO order, each in a fresh cycle. The
// dependents of a cell are queued when its state changed, or once when they
// are listed in force. Without cycle detection a cell evaluated more often
// than there are cells is parked as pending, which ends the loop around an
// undetected cycle.
func (e *Engine) run(queue []*Cell, force map[*Cell]bool) {
	evaluated := 0
	limit := len(e.order) + 1
	counts := make(map[*Cell]int)
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		delete(force, c)

		var changed bool
		counts[c]++
		if e.options.DisableCycleDetection && counts[c] > limit {
			changed = e.park(c)
		} else {
			changed = e.evaluate(c, true)
		}
		evaluated++
		for _, d := range c.dependents {
			if changed || force[d] {
				delete(force, d)
				queue = append(queue, d)
			}
		}
	}
	if evaluated > 1 {
		e.logger.Trace("Propagation finished", mdwlog.Fields{"evaluated": evaluated})
	}
}

// park leaves c pending in a new cycle so its outstanding futures go stale
func (e *Engine) park(c *Cell) bool {
	if c.expr == nil {
		return false
	}
	c.newCycle()
	if c.status != StatusPending {
		e.logger.Warn("Cell re-evaluated too often, assuming a dependency cycle", mdwlog.Fields{"cell": c.id})
	}
	return e.setState(c, StatusPending, nil, nil)
}

// propagate restarts c and forces its dependent subtree
func (e *Engine) propagate(c *Cell) {
	e.mu.Lock()
	defer e.unlockAndNotify()

	if e.closed {
		return
	}
	force := descendants(c)
	e.logger.Debug("Propagating", mdwlog.Fields{"cell": c.id, "subtree": len(force)})

	if c.expr == nil {
		// value bindings have nothing to recompute
		queue := make([]*Cell, 0, len(c.dependents))
		for _, d := range c.dependents {
			delete(force, d)
			queue = append(queue, d)
		}
		e.run(queue, force)
		return
	}
	e.run([]*Cell{c}, force)
}

// evaluate computes c and reports whether its state changed. A fresh
// evaluation starts a new cycle: cached call outcomes are dropped and
// outstanding futures become stale.
func (e *Engine) evaluate(c *Cell, fresh bool) bool {
	if c.expr == nil {
		return false
	}
	if fresh {
		c.newCycle()
	}

	switch {
	case c.expr.HasError():
		return e.setState(c, StatusError, nil, syntaxError(c))
	case c.cyclic:
		return e.setState(c, StatusError, nil, circularError(c))
	}

	ev := &evaluator.Evaluator{
		Functions: e.registry,
		Env:       &cellEnv{engine: e},
		Calls:     c.calls,
		Ctx:       e.ctx,

		MaxRangeCells: e.options.MaxRangeCells,
	}
	res := ev.Evaluate(c.expr.Root())

	switch {
	case res.Err != nil:
		e.logger.LogError("Cell evaluation failed", res.Err)
		return e.setState(c, StatusError, nil, res.Err)
	case res.Pending:
		e.await(c, res.Waiting)
		return e.setState(c, StatusPending, nil, nil)
	default:
		return e.setState(c, StatusReady, res.Value, nil)
	}
}

// await subscribes c to futures it has not subscribed to in this cycle
func (e *Engine) await(c *Cell, futures []*value.Future) {
	gen := c.generation
	for _, f := range futures {
		if c.waiting[f] {
			continue
		}
		c.waiting[f] = true
		e.outstanding++
		f.Then(func(_ value.Value, err error) {
			if err != nil {
				e.logger.WarnWithErr("Deferred value rejected", err, mdwlog.Fields{"cell": c.id})
			}
			e.settled(c, gen, func() bool {
				return e.evaluate(c, false)
			})
		})
	}
}

// awaitBinding keeps a value binding pending until f settles
func (e *Engine) awaitBinding(c *Cell, f *value.Future) {
	gen := c.generation
	e.outstanding++
	f.Then(func(v value.Value, err error) {
		e.settled(c, gen, func() bool {
			if err != nil {
				e.logger.WarnWithErr("Deferred value rejected", err, mdwlog.Fields{"cell": c.id})
				return e.setState(c, StatusError, nil, mdwerror.Wrap(err, "deferred value failed").
					WithCode(mdwerror.CodeFunctionFailed).
					WithOperation("engine.SetValue").
					WithDetail("cell", c.id))
			}
			v = value.Normalize(v)
			if c.name == e.options.DataSymbol {
				m, merr := e.dataMatrix(v)
				if merr != nil {
					return e.setState(c, StatusError, nil, merr)
				}
				v = m
			}
			return e.setState(c, StatusReady, v, nil)
		})
	})
}

// settled runs update for a settlement of generation gen of c, unless the
// engine closed or c moved on to a newer cycle
func (e *Engine) settled(c *Cell, gen uint64, update func() bool) {
	e.mu.Lock()
	defer e.unlockAndNotify()

	e.outstanding--
	defer e.signalIdle()

	if e.closed {
		return
	}
	if c.generation != gen {
		e.logger.Trace("Stale settlement ignored", mdwlog.Fields{
			"cell":       c.id,
			"generation": gen,
			"current":    c.generation,
		})
		return
	}

	if update() {
		e.run(append([]*Cell(nil), c.dependents...), nil)
	}
}

func (e *Engine) signalIdle() {
	if e.outstanding == 0 && e.idle != nil {
		close(e.idle)
		e.idle = nil
	}
}

// setState stores the outcome of an evaluation and records an event when
// the status, value or error changed
func (e *Engine) setState(c *Cell, status Status, v value.Value, err error) bool {
	changed := c.status != status
	switch status {
	case StatusReady:
		changed = changed || !value.Equal(c.value, v)
	case StatusError:
		changed = changed || errorText(c.err) != errorText(err)
	}

	c.status = status
	c.value = nil
	c.err = err
	if status == StatusReady {
		c.value = v
		c.last = v
	}

	if changed {
		e.logger.Debug("Cell changed", mdwlog.Fields{
			"cell":   c.id,
			"status": status.String(),
		})
		e.events = append(e.events, Event{Cell: c, Status: status, Value: c.value, Err: err})
	}
	return changed
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
