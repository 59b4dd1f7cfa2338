// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import (
	"fmt"
	"sort"
	"sync"
)

// NoiseSymbol documents a noise symbol. All fields except ID are optional.
type NoiseSymbol struct {
	ID      int    `yaml:"id" json:"id"`
	Name    string `yaml:"name,omitempty" json:"name,omitempty"`
	Unit    string `yaml:"unit,omitempty" json:"unit,omitempty"`
	Comment string `yaml:"comment,omitempty" json:"comment,omitempty"`
}

// noiseTable allocates noise symbols and keeps their documentation. Symbol ids
// start at 1 and are never reused, even when a caller picks ids explicitly.
type noiseTable struct {
	mu    sync.Mutex
	last  int
	docs  map[int]NoiseSymbol
	names map[string]int
}

func newNoiseTable() *noiseTable {
	return &noiseTable{
		docs:  make(map[int]NoiseSymbol),
		names: make(map[string]int),
	}
}

func (n *noiseTable) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.last = 0
	n.docs = make(map[int]NoiseSymbol)
	n.names = make(map[string]int)
}

// alloc returns sym, or a fresh symbol id if sym is Fresh, and records the
// (optional) name, unit and comment of the symbol.
func (n *noiseTable) alloc(sym int, docs ...string) int {
	if len(docs) > 3 {
		panic(invariantf("at most three documentation strings (name, unit, comment) per noise symbol, got %d", len(docs)))
	}
	if sym < Fresh {
		panic(invariantf("invalid noise symbol %d", sym))
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if sym == Fresh {
		n.last++
		sym = n.last
	} else if sym > n.last {
		n.last = sym
	}
	if len(docs) > 0 {
		ns := NoiseSymbol{ID: sym}
		fields := []*string{&ns.Name, &ns.Unit, &ns.Comment}
		for k, d := range docs {
			*fields[k] = d
		}
		n.docs[sym] = ns
		if ns.Name != "" {
			n.names[ns.Name] = sym
		}
	}
	return sym
}

// named returns the symbol with the given name, allocating it if needed.
func (n *noiseTable) named(name string) int {
	n.mu.Lock()
	if sym, ok := n.names[name]; ok {
		n.mu.Unlock()
		return sym
	}
	n.mu.Unlock()
	return n.alloc(Fresh, name)
}

func (n *noiseTable) lookup(sym int) (NoiseSymbol, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if sym < 1 || sym > n.last {
		return NoiseSymbol{}, fmt.Errorf("symbol %d: %w", sym, ErrUnknownSymbol)
	}
	if ns, ok := n.docs[sym]; ok {
		return ns, nil
	}
	return NoiseSymbol{ID: sym}, nil
}

// documented returns the documentation of all the symbols, sorted by id.
func (n *noiseTable) documented() []NoiseSymbol {
	n.mu.Lock()
	defer n.mu.Unlock()
	res := make([]NoiseSymbol, 0, len(n.docs))
	for _, ns := range n.docs {
		res = append(res, ns)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}

// Symbol returns the noise symbol called name. A new symbol is allocated the
// first time a name is used.
func (m *Manager) Symbol(name string) int {
	return m.noise.named(name)
}

// FreshSymbol allocates a new noise symbol.
func (m *Manager) FreshSymbol() int {
	return m.noise.alloc(Fresh)
}

// SymbolDoc returns the documentation attached to noise symbol sym.
func (m *Manager) SymbolDoc(sym int) (NoiseSymbol, error) {
	return m.noise.lookup(sym)
}

// Interval returns the affine form with bounds [min, max] on noise symbol sym
// (use Fresh to allocate a new one). The optional docs are the name, unit and
// comment of the symbol.
func (m *Manager) Interval(min, max float64, sym int, docs ...string) AffineForm {
	if NewRange(min, max).trap != Finite {
		return NewInterval(min, max, 0)
	}
	return NewInterval(min, max, m.noise.alloc(sym, docs...))
}

// count returns the number of allocated symbols.
func (n *noiseTable) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}
