// File: memo.go
// Title: Call Memo
// Description: Per-cycle cache of function call outcomes keyed by call
//              node. Re-evaluating an expression after one of its futures
//              settled reuses earlier outcomes instead of invoking the
//              functions again.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package evaluator

import (
	"github.com/substance/expression/foundation/formula/ast"
	"github.com/substance/expression/foundation/formula/value"
)

type callEntry struct {
	value value.Value // plain value or *value.Future
	err   error
}

// CallMemo caches call outcomes for one evaluation cycle. It is not safe
// for concurrent use; the engine guards it with its own lock.
type CallMemo struct {
	entries map[*ast.CallNode]callEntry
}

// NewCallMemo creates an empty memo
func NewCallMemo() *CallMemo {
	return &CallMemo{entries: make(map[*ast.CallNode]callEntry)}
}

// Reset forgets every outcome, starting a new cycle
func (m *CallMemo) Reset() {
	m.entries = make(map[*ast.CallNode]callEntry)
}

// Len returns the number of cached calls
func (m *CallMemo) Len() int {
	return len(m.entries)
}

// Outstanding returns the cached futures that have not settled yet
func (m *CallMemo) Outstanding() []*value.Future {
	var out []*value.Future
	for _, entry := range m.entries {
		if f, ok := entry.value.(*value.Future); ok && !f.IsSettled() {
			out = append(out, f)
		}
	}
	return out
}

func (m *CallMemo) get(n *ast.CallNode) (callEntry, bool) {
	entry, ok := m.entries[n]
	return entry, ok
}

func (m *CallMemo) put(n *ast.CallNode, entry callEntry) {
	m.entries[n] = entry
}
