// File: registry.go
// Title: Function Registry
// Description: Name to callable mapping for host-registered functions.
//              Synchronous and asynchronous functions share one signature;
//              an asynchronous function returns a *value.Future.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18
//
// Change History:
// - 2025-10-18 v0.1.0: Initial registry with parameter defaults and aliases

package registry

import (
	"context"
	"sort"
	"sync"

	mdwerror "github.com/substance/expression/foundation/core/error"
	"github.com/substance/expression/foundation/core/log"
	"github.com/substance/expression/foundation/formula/value"
	mdwstringx "github.com/substance/expression/foundation/utils/stringx"
)

// Func is the host implementation of a function. Arguments arrive bound to
// the declared parameters with defaults applied; surplus positional
// arguments follow in call order.
type Func func(ctx context.Context, args []value.Value) (value.Value, error)

// Param declares one named parameter
type Param struct {
	Name       string
	Default    value.Value
	HasDefault bool
}

// P declares a parameter without default
func P(name string) Param {
	return Param{Name: name}
}

// Opt declares a parameter with a default value
func Opt(name string, def value.Value) Param {
	return Param{Name: name, Default: value.Normalize(def), HasDefault: true}
}

// Function describes a registered function
type Function struct {
	Name        string
	Params      []Param
	Description string
	Call        Func
}

// ParamIndex returns the position of the named parameter, or -1
func (f *Function) ParamIndex(name string) int {
	for i, p := range f.Params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// Options configures a registry
type Options struct {
	Logger *log.Logger
}

// Registry maps names to functions and is safe for concurrent use
type Registry struct {
	functions map[string]*Function
	aliases   map[string]string
	logger    *log.Logger
	mutex     sync.RWMutex
}

// New creates an empty registry
func New(opts Options) *Registry {
	if opts.Logger == nil {
		opts.Logger = log.GetDefault()
	}
	return &Registry{
		functions: make(map[string]*Function),
		aliases:   make(map[string]string),
		logger:    opts.Logger.WithField("component", "formula-registry"),
	}
}

// Register adds fn, replacing any prior binding of the same name
func (r *Registry) Register(fn *Function) error {
	if fn == nil {
		return mdwerror.New("function definition cannot be nil").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("registry.Register")
	}
	if mdwstringx.IsBlank(fn.Name) {
		return mdwerror.New("function name cannot be empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("registry.Register")
	}
	if fn.Call == nil {
		return mdwerror.New("function implementation cannot be nil").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("registry.Register").
			WithDetail("function", fn.Name)
	}

	r.mutex.Lock()
	_, replaced := r.functions[fn.Name]
	r.functions[fn.Name] = fn
	delete(r.aliases, fn.Name)
	r.mutex.Unlock()

	r.logger.Debug("function registered", log.Fields{
		"function": fn.Name,
		"params":   len(fn.Params),
		"replaced": replaced,
	})
	return nil
}

// RegisterFunc registers call under name with the given parameters
func (r *Registry) RegisterFunc(name string, call Func, params ...Param) error {
	return r.Register(&Function{Name: name, Params: params, Call: call})
}

// Alias makes alias resolve to the function registered as target
func (r *Registry) Alias(alias, target string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.functions[target]; !ok {
		return mdwerror.Newf("cannot alias unknown function '%s'", target).
			WithCode(mdwerror.CodeUnknownFunction).
			WithOperation("registry.Alias")
	}
	r.aliases[alias] = target
	return nil
}

// Lookup returns the function bound to name (aliases resolved)
func (r *Registry) Lookup(name string) (*Function, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if fn, ok := r.functions[name]; ok {
		return fn, true
	}
	if target, ok := r.aliases[name]; ok {
		fn, ok := r.functions[target]
		return fn, ok
	}
	return nil, false
}

// Has reports whether name is bound
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Unregister removes name and any alias pointing at it
func (r *Registry) Unregister(name string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.functions, name)
	delete(r.aliases, name)
	for alias, target := range r.aliases {
		if target == name {
			delete(r.aliases, alias)
		}
	}
}

// Names returns the registered function names, sorted
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Functions returns the registered functions sorted by name
func (r *Registry) Functions() []*Function {
	names := r.Names()

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]*Function, 0, len(names))
	for _, name := range names {
		if fn, ok := r.functions[name]; ok {
			out = append(out, fn)
		}
	}
	return out
}
