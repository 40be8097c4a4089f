// File: events.go
// Title: Cell Change Events
// Description: Subscribers receive an Event for every cell whose status,
//              value or error changed. Events are delivered after the engine
//              lock is released, so handlers may read cells.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package engine

import (
	"github.com/substance/expression/foundation/formula/value"
)

// Event describes the new state of a changed cell
type Event struct {
	Cell   *Cell
	Status Status
	Value  value.Value
	Err    error
}

// Subscribe registers fn for change events and returns a function that
// removes it. Handlers run on the goroutine that caused the change, which
// for deferred values is the settling goroutine.
func (e *Engine) Subscribe(fn func(Event)) (unsubscribe func()) {
	e.subMu.Lock()
	defer e.subMu.Unlock()

	id := e.nextSub
	e.nextSub++
	e.subscribers[id] = fn

	return func() {
		e.subMu.Lock()
		defer e.subMu.Unlock()
		delete(e.subscribers, id)
	}
}

// unlockAndNotify releases the engine lock and delivers collected events
func (e *Engine) unlockAndNotify() {
	events := e.events
	e.events = nil
	e.mu.Unlock()

	if len(events) == 0 {
		return
	}

	e.subMu.Lock()
	handlers := make([]func(Event), 0, len(e.subscribers))
	for id := 0; id < e.nextSub; id++ {
		if fn, ok := e.subscribers[id]; ok {
			handlers = append(handlers, fn)
		}
	}
	e.subMu.Unlock()

	for _, ev := range events {
		for _, fn := range handlers {
			fn(ev)
		}
	}
}
