// ============================================================================
// mini - Formula Engine Tools
// ============================================================================
//
// Package:     repl
// Description: Message types for engine notifications in the REPL
// Author:      msto63
// Created:     2025-10-18
// License:     MIT
// ============================================================================

package repl

import (
	tea "github.com/charmbracelet/bubbletea"
)

// cellsChangedMsg is sent when the engine reported at least one cell change
type cellsChangedMsg struct{}

// notifier turns engine events into a coalescing signal for the program
type notifier struct {
	ch chan struct{}
}

func newNotifier() *notifier {
	return &notifier{ch: make(chan struct{}, 1)}
}

// signal never blocks; pending signals are merged
func (n *notifier) signal() {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

// wait returns a command that delivers the next change signal
func (n *notifier) wait() tea.Cmd {
	return func() tea.Msg {
		<-n.ch
		return cellsChangedMsg{}
	}
}
