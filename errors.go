// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import (
	"fmt"
	"strings"
)

// InvariantError is the value used to panic when a structural invariant of a
// diagram is broken: a node with an unknown condition index, a child that is
// not ordered below its parent, or an access to the value of an internal
// node. It always signals a bug in the caller or in the library, never bad
// numerical input.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "aadd: " + e.Msg
}

func invariantf(format string, a ...interface{}) *InvariantError {
	return &InvariantError{Msg: fmt.Sprintf(format, a...)}
}

// UnboundedError is the value used to panic when the LP problem built for a
// leaf is unbounded, which means that some noise symbol is not constrained. It
// records the path that leads to the leaf.
type UnboundedError struct {
	Indexes []int32 // condition indexes from the root to the leaf
	Ge      []bool  // direction of each condition (true for >= 0)
	Leaf    AffineForm
}

func (e *UnboundedError) Error() string {
	var sb strings.Builder
	sb.WriteString("aadd: unbounded LP problem for leaf ")
	sb.WriteString(e.Leaf.String())
	sb.WriteString(" with path [")
	for k, idx := range e.Indexes {
		if k > 0 {
			sb.WriteString(", ")
		}
		op := "<"
		if e.Ge[k] {
			op = ">="
		}
		fmt.Fprintf(&sb, "x%d %s 0", idx, op)
	}
	sb.WriteString("]")
	return sb.String()
}

// Error returns the error status of the manager. We return an empty string if
// there are no errors.
func (m *Manager) Error() string {
	if m.error == nil {
		return ""
	}
	return m.error.Error()
}

// Errored returns true if there was a recoverable problem during a
// computation, for instance a numerical failure of the LP solver. In this case
// the results are still sound, but may be less precise than expected.
func (m *Manager) Errored() bool {
	return m.error != nil
}

// ClearError resets the error status of the manager.
func (m *Manager) ClearError() {
	m.error = nil
}

func (m *Manager) seterror(format string, a ...interface{}) {
	if m.error != nil {
		format = format + "; " + m.Error()
	}
	m.error = fmt.Errorf(format, a...)
	m.log.Warn("recoverable error", "error", m.error)
}
