// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
)

// Manager is the session object used to build and combine decision diagrams.
// It owns the table of conditions referenced by the internal nodes, the
// allocator of noise symbols, and the caches used by the operations.
//
// Diagrams built with one Manager must never be mixed with diagrams from
// another Manager. Operations on a Manager are synchronous and must not be
// called concurrently.
type Manager struct {
	*configs
	id        uuid.UUID
	conds     *ConditionTable
	noise     *noiseTable
	nextid    atomic.Uint64
	ttrue     *BDD
	tfalse    *BDD
	tinfeas   *BDD
	bddcache  cache[Bool]
	aaddcache cache[AffineForm]
	log       *slog.Logger
	metrics   Recorder
	error     error
}

// New returns a new Manager with an empty condition table. The behavior of the
// Manager can be adjusted with configuration options, such as JoinThreshold or
// Logger.
func New(options ...func(*configs)) (*Manager, error) {
	c := makeconfigs()
	for _, f := range options {
		f(c)
	}
	if c.lptol >= 1 {
		return nil, fmt.Errorf("LP tolerance %g should be smaller than 1: %w", c.lptol, ErrBadConfig)
	}
	m := &Manager{
		configs: c,
		id:      uuid.New(),
		conds:   NewConditionTable(),
		noise:   newNoiseTable(),
		metrics: c.metrics,
	}
	if m.metrics == nil {
		m.metrics = noopRecorder{}
	}
	logger := c.logger
	if logger == nil {
		logger = defaultLogger()
	}
	m.log = logger.With("session", m.id.String())
	m.conds.onnew = m.registered
	m.bddcache.cacheinit(c.cachesize)
	m.aaddcache.cacheinit(c.cachesize)
	m.ttrue = newleaf(m, Bool(true), NotSolved)
	m.tfalse = newleaf(m, Bool(false), NotSolved)
	m.tinfeas = newleaf(m, Bool(false), Infeasible)
	if _DEBUG {
		m.log.Debug("new manager",
			"join_threshold", c.jointh,
			"lp_call_threshold", c.lpcallth,
			"lp_tolerance", c.lptol,
			"cache_size", len(m.bddcache.table))
	}
	return m, nil
}

// ID returns the unique identifier of the session. It is also attached to
// every log record of the Manager.
func (m *Manager) ID() uuid.UUID {
	return m.id
}

// Conditions returns the table of conditions of the Manager.
func (m *Manager) Conditions() *ConditionTable {
	return m.conds
}

// Reset empties the condition table, the noise symbols and the caches, and
// clears the error status. Diagrams built before the call must not be used
// afterwards.
func (m *Manager) Reset() {
	m.conds.Reset()
	m.noise.reset()
	m.bddcache.cachereset()
	m.aaddcache.cachereset()
	m.error = nil
	m.log.Debug("reset")
}

func (m *Manager) registered(c Condition) {
	kind := "top"
	switch {
	case c.Variable:
		kind = "variable"
	case c.Index < 0:
		kind = "bottom"
	}
	m.metrics.ConditionRegistered(kind)
	m.log.Debug("new condition", "index", c.Index, "kind", kind, "condition", c)
}

func (m *Manager) newid() uint64 {
	return m.nextid.Add(1)
}

func newleaf[V Leaf[V]](m *Manager, v V, s Status) *DD[V] {
	return &DD[V]{id: m.newid(), index: leafIndex, value: v, status: s}
}

// makenode returns the reduced node (index ? t : f). It panics if index is not
// defined in the condition table or if it is not strictly smaller than the
// index of both children. When both children are leaves, the optional join
// function can replace the node by a single leaf.
func makenode[V Leaf[V]](m *Manager, index int32, t, f *DD[V], join func(a, b V) (V, bool)) *DD[V] {
	if index >= t.index || index >= f.index {
		panic(invariantf("node with index %d above children with indexes %d and %d", index, t.index, f.index))
	}
	if !m.conds.Defined(index) {
		panic(invariantf("node with undefined condition index %d", index))
	}
	switch {
	case t.status == Infeasible, same(t, f):
		return f
	case f.status == Infeasible:
		return t
	}
	if join != nil && t.IsLeaf() && f.IsLeaf() {
		if v, ok := join(t.value, f.value); ok {
			return newleaf(m, v, NotSolved)
		}
	}
	return &DD[V]{id: m.newid(), index: index, t: t, f: f}
}

// NewBDDNode returns the BDD that branches on condition index, with high
// (true) branch t and low (false) branch f. The result is reduced, so it can
// be one of the children. It panics if the ordering of indexes is not
// respected.
func (m *Manager) NewBDDNode(index int32, t, f *BDD) *BDD {
	return makenode(m, index, t, f, nil)
}

// NewAADDNode returns the AADD that branches on condition index, with high
// (true) branch t and low (false) branch f. Similar sibling leaves are merged.
// It panics if the ordering of indexes is not respected.
func (m *Manager) NewAADDNode(index int32, t, f *AADD) *AADD {
	return makenode(m, index, t, f, m.joinleaves)
}

// Split registers the condition form >= 0 below all the existing conditions
// and returns the AADD that is t when the condition holds and f otherwise.
func (m *Manager) Split(form AffineForm, t, f *AADD) *AADD {
	return m.NewAADDNode(m.conds.RegisterBottom(form), t, f)
}

// joinleaves merges two sibling leaves when they are both NaN or when they are
// similar enough.
func (m *Manager) joinleaves(a, b AffineForm) (AffineForm, bool) {
	if a.IsNaN() && b.IsNaN() {
		return a, true
	}
	if m.jointh > 0 && a.IsSimilar(b, m.jointh) {
		m.metrics.LeavesJoined()
		return a.Join(b), true
	}
	return a, false
}
