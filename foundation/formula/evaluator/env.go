// File: env.go
// Title: Evaluation Environments
// Description: Data matrix lookups shared by every environment, and MapEnv,
//              a plain map based environment for standalone evaluation.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package evaluator

import (
	mdwerror "github.com/substance/expression/foundation/core/error"
	"github.com/substance/expression/foundation/formula/deps"
	"github.com/substance/expression/foundation/formula/value"
)

// LookupMatrix resolves a cell or range symbol against m. Out-of-bounds
// addresses fail with OUT_OF_BOUNDS, reversed ranges with INVALID_RANGE.
func LookupMatrix(m value.Matrix, sym deps.Symbol) (value.Value, error) {
	switch sym.Kind {
	case deps.Cell:
		v, ok := m.At(sym.Row, sym.Col)
		if !ok {
			return nil, outOfBounds(m, sym)
		}
		return v, nil

	case deps.Range:
		if sym.EndRow < sym.Row || sym.EndCol < sym.Col {
			return nil, mdwerror.Newf("range %s ends before it starts", sym).
				WithCode(mdwerror.CodeInvalidRange).
				WithOperation("evaluator.LookupMatrix")
		}
		sub, ok := m.Slice(sym.Row, sym.Col, sym.EndRow, sym.EndCol)
		if !ok {
			return nil, outOfBounds(m, sym)
		}
		return sub, nil
	}

	return nil, mdwerror.Newf("'%s' is not an address", sym).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation("evaluator.LookupMatrix")
}

func outOfBounds(m value.Matrix, sym deps.Symbol) error {
	return mdwerror.Newf("address %s is outside the data (%dx%d)", sym, m.Rows(), m.Cols()).
		WithCode(mdwerror.CodeOutOfBounds).
		WithOperation("evaluator.LookupMatrix").
		WithDetail("address", sym.String())
}

// MapEnv resolves variables from a map and addresses from a matrix. An
// unsettled *value.Future stored as a variable reads as not ready.
type MapEnv struct {
	Vars map[string]value.Value
	Data value.Matrix
}

// NewMapEnv creates an environment over vars and data (both may be nil)
func NewMapEnv(vars map[string]value.Value, data value.Matrix) *MapEnv {
	if vars == nil {
		vars = make(map[string]value.Value)
	}
	return &MapEnv{Vars: vars, Data: data}
}

// Resolve implements Env
func (m *MapEnv) Resolve(sym deps.Symbol) (value.Value, bool, error) {
	if sym.Kind != deps.Var {
		v, err := LookupMatrix(m.Data, sym)
		return v, err == nil, err
	}

	v, ok := m.Vars[sym.Name]
	if !ok {
		return nil, false, mdwerror.Newf("undefined variable '%s'", sym.Name).
			WithCode(mdwerror.CodeUndefinedSymbol).
			WithOperation("evaluator.MapEnv")
	}
	if f, isFuture := v.(*value.Future); isFuture {
		result, settled, err := f.Poll()
		if err != nil {
			return nil, false, err
		}
		return result, settled, nil
	}
	return v, true, nil
}

// Bind implements Env
func (m *MapEnv) Bind(name string, v value.Value) {
	m.Vars[name] = v
}
