// File: env.go
// Title: Engine Symbol Resolution
// Description: Resolves variables and addresses against engine cells. Only
//              ready cells yield values; anything else keeps the reading
//              cell pending.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package engine

import (
	"github.com/substance/expression/foundation/formula/deps"
	"github.com/substance/expression/foundation/formula/evaluator"
	"github.com/substance/expression/foundation/formula/value"
)

// cellEnv is used with the engine lock held
type cellEnv struct {
	engine *Engine
}

func (env *cellEnv) Resolve(sym deps.Symbol) (value.Value, bool, error) {
	name := sym.Name
	if sym.IsAddress() {
		name = env.engine.options.DataSymbol
	}

	c, ok := env.engine.cells[name]
	if !ok || c.status != StatusReady {
		return nil, false, nil
	}
	if !sym.IsAddress() {
		return c.value, true, nil
	}

	m, _ := c.value.(value.Matrix)
	v, err := evaluator.LookupMatrix(m, sym)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Bind is a no-op: a definition's value is stored on its own cell
func (env *cellEnv) Bind(string, value.Value) {}
