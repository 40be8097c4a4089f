// File: evaluator.go
// Title: Formula Evaluator
// Description: Reduces a formula tree to a value. Symbols are read through
//              an Env, functions come from the registry. Evaluation yields a
//              ready value, an error, or Pending when an input is not yet
//              available or a function returned an unsettled future.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18
//
// Change History:
// - 2025-10-18 v0.1.0: Initial evaluator with call memo and pipe support

package evaluator

import (
	"context"
	"fmt"
	"math"

	mdwerror "github.com/substance/expression/foundation/core/error"
	"github.com/substance/expression/foundation/formula/ast"
	"github.com/substance/expression/foundation/formula/deps"
	"github.com/substance/expression/foundation/formula/registry"
	"github.com/substance/expression/foundation/formula/value"
)

// Env resolves symbols and receives definition bindings
type Env interface {
	// Resolve returns the value of sym. ready is false while the value is
	// not yet available; err reports symbols that cannot be resolved.
	Resolve(sym deps.Symbol) (v value.Value, ready bool, err error)

	// Bind records the value of a definition
	Bind(name string, v value.Value)
}

// Result is the outcome of evaluating a node
type Result struct {
	Value   value.Value
	Err     error
	Pending bool
	Waiting []*value.Future // unsettled futures the pending result waits on
}

// Ready reports whether the result carries a value
func (r Result) Ready() bool {
	return r.Err == nil && !r.Pending
}

func ready(v value.Value) Result {
	return Result{Value: v}
}

func failed(err error) Result {
	return Result{Err: err}
}

// Evaluator evaluates nodes against an Env and a function registry
type Evaluator struct {
	Functions *registry.Registry
	Env       Env
	Calls     *CallMemo       // optional; reuses call results within one cycle
	Ctx       context.Context // passed to functions

	// MaxRangeCells bounds the cells one range may read; zero selects
	// deps.DefaultMaxRangeCells
	MaxRangeCells int
}

// Evaluate reduces node to a Result
func (e *Evaluator) Evaluate(node ast.Node) Result {
	switch n := node.(type) {
	case nil:
		return failed(mdwerror.New("cannot evaluate empty expression").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("evaluator.Evaluate"))

	case *ast.NumberNode:
		return ready(n.Value)
	case *ast.StringNode:
		return ready(n.Value)
	case *ast.BooleanNode:
		return ready(n.Value)

	case *ast.VarNode:
		return e.resolve(deps.VarSymbol(n.Name), n)
	case *ast.CellNode:
		return e.resolve(deps.CellSymbol(n.Row, n.Col), n)
	case *ast.RangeNode:
		if n.IsReversed() {
			return failed(evalError(mdwerror.CodeInvalidRange, n,
				"range %s ends before it starts", n.String()))
		}
		if !deps.RangeWithin(n.StartRow, n.StartCol, n.EndRow, n.EndCol, e.MaxRangeCells) {
			return failed(evalError(mdwerror.CodeInvalidRange, n,
				"range %s covers more than %d cells", n.String(), e.maxRangeCells()))
		}
		return e.resolve(deps.RangeSymbol(n.StartRow, n.StartCol, n.EndRow, n.EndCol), n)

	case *ast.GroupNode:
		return e.Evaluate(n.Expr)

	case *ast.BinaryNode:
		return e.evalBinary(n)

	case *ast.ArrayNode:
		values, status := e.evalAll(n.Elements)
		if !status.Ready() {
			return status
		}
		return ready(values)

	case *ast.ObjectNode:
		nodes := make([]ast.Node, len(n.Entries))
		for i, entry := range n.Entries {
			nodes[i] = entry.Value
		}
		values, status := e.evalAll(nodes)
		if !status.Ready() {
			return status
		}
		obj := value.NewObject()
		for i, entry := range n.Entries {
			obj.Set(entry.Key, values[i])
		}
		return ready(obj)

	case *ast.DefinitionNode:
		res := e.Evaluate(n.Value)
		if res.Ready() && e.Env != nil {
			e.Env.Bind(n.Name, res.Value)
		}
		return res

	case *ast.FunctionNode:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Name
		}
		return ready(value.Signature{Params: params})

	case *ast.CallNode:
		return e.evalCall(n, nil)

	case *ast.PipeNode:
		left := e.Evaluate(n.Left)
		if !left.Ready() {
			return left
		}
		return e.evalCall(n.Right, []value.Value{left.Value})

	case *ast.NamedArgumentNode:
		return e.Evaluate(n.Value)

	case *ast.ErrorNode:
		if n.Err != nil {
			return failed(mdwerror.Wrap(n.Err, "syntax error").WithCode(mdwerror.CodeSyntax))
		}
	}

	return failed(evalError(mdwerror.CodeInternal, node, "unsupported node type %s", node.Type()))
}

func (e *Evaluator) maxRangeCells() int {
	if e.MaxRangeCells <= 0 {
		return deps.DefaultMaxRangeCells
	}
	return e.MaxRangeCells
}

func (e *Evaluator) resolve(sym deps.Symbol, node ast.Node) Result {
	if e.Env == nil {
		return failed(evalError(mdwerror.CodeUndefinedSymbol, node, "no environment to resolve '%s'", sym))
	}
	v, isReady, err := e.Env.Resolve(sym)
	if err != nil {
		return failed(err)
	}
	if !isReady {
		return Result{Pending: true}
	}
	return ready(v)
}

// evalAll evaluates every node. The returned status is ready only when all
// values are; otherwise it holds the first error, or the pending state with
// all waited-on futures.
func (e *Evaluator) evalAll(nodes []ast.Node) ([]value.Value, Result) {
	values := make([]value.Value, len(nodes))
	var status Result

	for i, node := range nodes {
		res := e.Evaluate(node)
		switch {
		case res.Err != nil:
			if status.Err == nil {
				status.Err = res.Err
			}
		case res.Pending:
			status.Pending = true
			status.Waiting = append(status.Waiting, res.Waiting...)
		default:
			values[i] = res.Value
		}
	}

	if status.Err != nil {
		return nil, Result{Err: status.Err}
	}
	return values, status
}

func (e *Evaluator) evalBinary(n *ast.BinaryNode) Result {
	operands, status := e.evalAll([]ast.Node{n.Left, n.Right})
	if !status.Ready() {
		return status
	}

	left, lok := value.AsNumber(operands[0])
	right, rok := value.AsNumber(operands[1])
	if !lok || !rok {
		return failed(evalError(mdwerror.CodeTypeMismatch, n,
			"operator '%s' expects numbers, got %s and %s",
			n.Op.Symbol(), value.TypeName(operands[0]), value.TypeName(operands[1])))
	}

	switch n.Op {
	case ast.TypePlus:
		return ready(left + right)
	case ast.TypeMinus:
		return ready(left - right)
	case ast.TypeMult:
		return ready(left * right)
	case ast.TypeDiv:
		if right == 0 {
			return failed(evalError(mdwerror.CodeDivisionByZero, n, "division by zero"))
		}
		return ready(left / right)
	case ast.TypePower:
		return ready(math.Pow(left, right))
	}
	return failed(evalError(mdwerror.CodeInternal, n, "unknown operator %s", n.Op))
}

// evalCall evaluates every argument, then invokes the function only when
// all of them are ready. prefix holds piped values placed before the
// positional arguments.
func (e *Evaluator) evalCall(n *ast.CallNode, prefix []value.Value) Result {
	fn, ok := e.lookup(n.Name)
	if !ok {
		return failed(evalError(mdwerror.CodeUnknownFunction, n, "unknown function '%s'", n.Name))
	}

	nodes := make([]ast.Node, 0, len(n.Args)+len(n.NamedArgs))
	nodes = append(nodes, n.Args...)
	for _, arg := range n.NamedArgs {
		nodes = append(nodes, arg.Value)
	}
	values, status := e.evalAll(nodes)
	if !status.Ready() {
		return status
	}

	if e.Calls != nil {
		if entry, ok := e.Calls.get(n); ok {
			return settle(n, entry)
		}
	}

	positional := make([]value.Value, 0, len(prefix)+len(n.Args))
	positional = append(positional, prefix...)
	positional = append(positional, values[:len(n.Args)]...)

	named := make([]namedValue, len(n.NamedArgs))
	for i, arg := range n.NamedArgs {
		named[i] = namedValue{name: arg.Name, value: values[len(n.Args)+i], node: arg}
	}

	args, err := bind(fn, positional, named)
	if err != nil {
		return failed(err)
	}

	entry := e.invoke(fn, n, args)
	if e.Calls != nil {
		e.Calls.put(n, entry)
	}
	return settle(n, entry)
}

func (e *Evaluator) lookup(name string) (*registry.Function, bool) {
	if e.Functions == nil {
		return nil, false
	}
	return e.Functions.Lookup(name)
}

func (e *Evaluator) invoke(fn *registry.Function, n *ast.CallNode, args []value.Value) (entry callEntry) {
	ctx := e.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	defer func() {
		if r := recover(); r != nil {
			entry = callEntry{err: evalError(mdwerror.CodeFunctionFailed, n,
				"function '%s' panicked: %v", fn.Name, r)}
		}
	}()

	result, err := fn.Call(ctx, args)
	if err != nil {
		return callEntry{err: functionError(fn.Name, n, err)}
	}
	return callEntry{value: value.Normalize(result)}
}

// settle converts a call outcome into a Result
func settle(n *ast.CallNode, entry callEntry) Result {
	if entry.err != nil {
		return failed(entry.err)
	}
	future, ok := entry.value.(*value.Future)
	if !ok {
		return ready(entry.value)
	}

	v, settled, err := future.Poll()
	switch {
	case !settled:
		return Result{Pending: true, Waiting: []*value.Future{future}}
	case err != nil:
		return failed(functionError(n.Name, n, err))
	default:
		return ready(v)
	}
}

type namedValue struct {
	name  string
	value value.Value
	node  *ast.NamedArgumentNode
}

// bind places positional arguments first, then named arguments by parameter
// name, then declared defaults. Surplus positional arguments are kept.
func bind(fn *registry.Function, positional []value.Value, named []namedValue) ([]value.Value, error) {
	size := len(fn.Params)
	if len(positional) > size {
		size = len(positional)
	}
	args := make([]value.Value, size)
	set := make([]bool, size)

	for i, v := range positional {
		args[i] = v
		set[i] = true
	}

	for _, arg := range named {
		idx := fn.ParamIndex(arg.name)
		if idx < 0 {
			return nil, evalError(mdwerror.CodeInvalidArgument, arg.node,
				"function '%s' has no parameter '%s'", fn.Name, arg.name)
		}
		if set[idx] {
			return nil, evalError(mdwerror.CodeInvalidArgument, arg.node,
				"parameter '%s' of function '%s' given more than once", arg.name, fn.Name)
		}
		args[idx] = arg.value
		set[idx] = true
	}

	for i, p := range fn.Params {
		if !set[i] && p.HasDefault {
			args[i] = p.Default
		}
	}
	return args, nil
}

// functionError keeps evaluation codes raised by functions and classifies
// everything else as FUNCTION_FAILED.
func functionError(name string, node ast.Node, err error) error {
	if mdwerror.IsEvaluationCode(mdwerror.GetCode(err)) {
		return err
	}
	return mdwerror.Wrap(err, fmt.Sprintf("function '%s' failed", name)).
		WithCode(mdwerror.CodeFunctionFailed).
		WithOperation("evaluator.call").
		WithDetail("function", name).
		WithDetail("position", node.Pos().String())
}

// evalError creates an evaluation error located at node
func evalError(code mdwerror.Code, node ast.Node, format string, args ...interface{}) error {
	err := mdwerror.Newf(format, args...).WithCode(code)
	if node != nil {
		err = err.WithOperation("evaluator."+string(node.Type())).
			WithDetail("position", node.Pos().String())
	}
	return err
}
