// Package workflow defines the status state machines of the safety workflow
// entities. Machines are stateless: they validate a requested transition
// against a fixed table and never touch persistence.
package workflow

import (
	"github.com/SscSPs/site_safety_app/internal/apperrors"
)

// Machine is a closed transition table over a status type.
type Machine[S ~string] struct {
	entity   string
	edges    map[S][]S
	terminal map[S]bool
}

// NewMachine builds a machine for entity from an edge table and its terminal states.
func NewMachine[S ~string](entity string, edges map[S][]S, terminal ...S) *Machine[S] {
	m := &Machine[S]{entity: entity, edges: edges, terminal: make(map[S]bool, len(terminal))}
	for _, t := range terminal {
		m.terminal[t] = true
	}
	return m
}

// Entity returns the entity name used in errors and metrics.
func (m *Machine[S]) Entity() string { return m.entity }

// IsTerminal reports whether s accepts no further transitions.
func (m *Machine[S]) IsTerminal(s S) bool { return m.terminal[s] }

// CanTransition reports whether from -> to is an edge of the table.
func (m *Machine[S]) CanTransition(from, to S) bool {
	for _, next := range m.edges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Targets returns the statuses reachable from s in one step.
func (m *Machine[S]) Targets(s S) []S {
	return append([]S(nil), m.edges[s]...)
}

// Check validates from -> to. A terminal source always yields TerminalState,
// whatever the target; any other non-edge yields InvalidTransition.
func (m *Machine[S]) Check(from, to S) error {
	if m.terminal[from] {
		return apperrors.NewTerminalStateError(m.entity, string(from))
	}
	if !m.CanTransition(from, to) {
		return apperrors.NewInvalidTransitionError(m.entity, string(from), string(to))
	}
	return nil
}
