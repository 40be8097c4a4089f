// File: eval.go
// Title: Standalone Evaluation
// Description: One-shot parse and evaluate helper that waits for deferred
//              values without an engine.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package evaluator

import (
	"context"

	mdwerror "github.com/substance/expression/foundation/core/error"
	"github.com/substance/expression/foundation/formula/parser"
	"github.com/substance/expression/foundation/formula/registry"
	"github.com/substance/expression/foundation/formula/value"
)

// Eval parses source and evaluates it against env, waiting for deferred
// values until ctx is done. Functions run at most once per call site.
func Eval(ctx context.Context, source string, env Env, functions *registry.Registry) (value.Value, error) {
	expr := parser.Parse(source)
	if expr.HasError() {
		return nil, mdwerror.Wrap(expr.SyntaxError(), "cannot evaluate malformed expression").
			WithCode(mdwerror.CodeSyntax).
			WithOperation("evaluator.Eval")
	}

	e := &Evaluator{Functions: functions, Env: env, Calls: NewCallMemo(), Ctx: ctx}
	for {
		res := e.Evaluate(expr.Root())
		if res.Err != nil {
			return nil, res.Err
		}
		if !res.Pending {
			return res.Value, nil
		}
		if len(res.Waiting) == 0 {
			return nil, mdwerror.New("expression depends on values that are not available").
				WithCode(mdwerror.CodeUndefinedSymbol).
				WithOperation("evaluator.Eval")
		}
		for _, f := range res.Waiting {
			if _, err := f.Wait(ctx); err != nil && ctx.Err() != nil {
				return nil, mdwerror.Wrap(ctx.Err(), "evaluation did not finish").
					WithCode(mdwerror.CodeTimeout).
					WithOperation("evaluator.Eval")
			}
		}
	}
}
