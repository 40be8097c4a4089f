// File: graph.go
// Title: Dependency Graph
// Description: Edge maintenance between cells and cycle detection with
//              Tarjan's strongly connected components over the precedent
//              edges.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package engine

// relink replaces the precedents of c with targets. Edges to targets c
// already read keep their place in the target's dependents, so a
// redefinition does not change notification order.
func relink(c *Cell, targets []*Cell) {
	keep := make(map[*Cell]bool, len(targets))
	for _, t := range targets {
		keep[t] = true
	}
	old := make(map[*Cell]bool, len(c.precedents))
	for _, p := range c.precedents {
		old[p] = true
		if !keep[p] {
			removeDependent(p, c)
		}
	}

	c.precedents = nil
	for _, t := range targets {
		if keep[t] {
			delete(keep, t)
			c.precedents = append(c.precedents, t)
			if !old[t] {
				t.dependents = append(t.dependents, c)
			}
		}
	}
}

func removeDependent(p, c *Cell) {
	for i, d := range p.dependents {
		if d == c {
			p.dependents = append(p.dependents[:i], p.dependents[i+1:]...)
			return
		}
	}
}

// unlink removes every precedent edge of c; dependents of c are kept
func unlink(c *Cell) {
	for _, p := range c.precedents {
		removeDependent(p, c)
	}
	c.precedents = nil
}

// descendants returns every cell that transitively depends on c
func descendants(c *Cell) map[*Cell]bool {
	seen := make(map[*Cell]bool)
	stack := append([]*Cell(nil), c.dependents...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		stack = append(stack, n.dependents...)
	}
	return seen
}

// findCycles returns the set of cells that lie on a dependency cycle
func findCycles(cells []*Cell) map[*Cell]bool {
	t := &tarjan{
		index:   make(map[*Cell]int),
		lowlink: make(map[*Cell]int),
		onStack: make(map[*Cell]bool),
		cyclic:  make(map[*Cell]bool),
	}
	for _, c := range cells {
		if _, visited := t.index[c]; !visited {
			t.strongConnect(c)
		}
	}
	return t.cyclic
}

type tarjan struct {
	next    int
	index   map[*Cell]int
	lowlink map[*Cell]int
	onStack map[*Cell]bool
	stack   []*Cell
	cyclic  map[*Cell]bool
}

func (t *tarjan) strongConnect(c *Cell) {
	t.index[c] = t.next
	t.lowlink[c] = t.next
	t.next++
	t.stack = append(t.stack, c)
	t.onStack[c] = true

	selfLoop := false
	for _, p := range c.precedents {
		if p == c {
			selfLoop = true
		}
		if _, visited := t.index[p]; !visited {
			t.strongConnect(p)
			if t.lowlink[p] < t.lowlink[c] {
				t.lowlink[c] = t.lowlink[p]
			}
		} else if t.onStack[p] && t.index[p] < t.lowlink[c] {
			t.lowlink[c] = t.index[p]
		}
	}

	if t.lowlink[c] != t.index[c] {
		return
	}

	var component []*Cell
	for {
		n := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[n] = false
		component = append(component, n)
		if n == c {
			break
		}
	}
	if len(component) > 1 || selfLoop {
		for _, n := range component {
			t.cyclic[n] = true
		}
	}
}
