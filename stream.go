// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Stream is a trace of diagrams tagged by time, for instance the successive
// values of a variable during a simulation. Samples are kept sorted by time and
// adding a sample at an existing time replaces the previous one.
type Stream[V Leaf[V]] struct {
	Name    string
	Unit    string
	times   []float64
	samples []*DD[V]
}

// NewStream returns an empty stream.
func NewStream[V Leaf[V]](name, unit string) *Stream[V] {
	return &Stream[V]{Name: name, Unit: unit}
}

// Add records sample d at time t.
func (s *Stream[V]) Add(t float64, d *DD[V]) {
	k := sort.SearchFloat64s(s.times, t)
	if k < len(s.times) && s.times[k] == t {
		s.samples[k] = d
		return
	}
	s.times = append(s.times, 0)
	s.samples = append(s.samples, nil)
	copy(s.times[k+1:], s.times[k:])
	copy(s.samples[k+1:], s.samples[k:])
	s.times[k] = t
	s.samples[k] = d
}

// At returns the sample at time t, if any.
func (s *Stream[V]) At(t float64) (*DD[V], bool) {
	k := sort.SearchFloat64s(s.times, t)
	if k < len(s.times) && s.times[k] == t {
		return s.samples[k], true
	}
	return nil, false
}

// Len returns the number of samples.
func (s *Stream[V]) Len() int { return len(s.times) }

// Times returns the times of the samples, in increasing order.
func (s *Stream[V]) Times() []float64 {
	return append([]float64(nil), s.times...)
}

// Summary is the exported form of a stream.
type Summary struct {
	Name    string          `json:"name" yaml:"name"`
	Unit    string          `json:"unit,omitempty" yaml:"unit,omitempty"`
	Samples []SampleSummary `json:"samples" yaml:"samples"`
}

// SampleSummary describes one sample of a stream. For an AADD we give its
// bounds (Min and Max are only meaningful when Trap is Scalar or Finite) and
// number of leaves; for a BDD we give the number of paths to each constant.
// Infeasible counts the paths to an infeasible leaf.
type SampleSummary struct {
	Time       float64 `json:"time" yaml:"time"`
	Trap       string  `json:"trap,omitempty" yaml:"trap,omitempty"`
	Min        float64 `json:"min" yaml:"min"`
	Max        float64 `json:"max" yaml:"max"`
	Leaves     int     `json:"leaves" yaml:"leaves"`
	True       int     `json:"true,omitempty" yaml:"true,omitempty"`
	False      int     `json:"false,omitempty" yaml:"false,omitempty"`
	Infeasible int     `json:"infeasible,omitempty" yaml:"infeasible,omitempty"`
}

// SummarizeAADD computes the bounds of every sample in s.
func (m *Manager) SummarizeAADD(s *Stream[AffineForm]) Summary {
	res := Summary{Name: s.Name, Unit: s.Unit, Samples: make([]SampleSummary, len(s.times))}
	for k, d := range s.samples {
		r := m.Bounds(d)
		ss := SampleSummary{Time: s.times[k], Trap: r.trap.String(), Leaves: d.NumLeaves(), Infeasible: d.NumInfeasible()}
		if !r.IsTrap() {
			ss.Min, ss.Max = r.min, r.max
		}
		res.Samples[k] = ss
	}
	return res
}

// SummarizeBDD counts the true, false and infeasible paths of every sample
// in s.
func (m *Manager) SummarizeBDD(s *Stream[Bool]) Summary {
	res := Summary{Name: s.Name, Unit: s.Unit, Samples: make([]SampleSummary, len(s.times))}
	for k, d := range s.samples {
		res.Samples[k] = SampleSummary{
			Time:       s.times[k],
			Leaves:     d.NumLeaves(),
			True:       m.NumTrue(d),
			False:      m.NumFalse(d),
			Infeasible: d.NumInfeasible(),
		}
	}
	return res
}

// WriteJSON writes the summaries in JSON format.
func WriteJSON(w io.Writer, sums ...Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sums); err != nil {
		return fmt.Errorf("writing streams: %w", err)
	}
	return nil
}

// WriteYAML writes the summaries in YAML format.
func WriteYAML(w io.Writer, sums ...Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(sums); err != nil {
		return fmt.Errorf("writing streams: %w", err)
	}
	return enc.Close()
}

// ConditionDoc is the exported form of a condition.
type ConditionDoc struct {
	Index int32  `yaml:"index" json:"index"`
	Kind  string `yaml:"kind" json:"kind"`
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	Form  string `yaml:"form,omitempty" json:"form,omitempty"`
}

// Docs is the documentation of a session: noise symbols and conditions.
type Docs struct {
	Symbols    []NoiseSymbol  `yaml:"symbols" json:"symbols"`
	Conditions []ConditionDoc `yaml:"conditions" json:"conditions"`
}

// Docs returns the documentation of the noise symbols and conditions of m.
func (m *Manager) Docs() Docs {
	res := Docs{Symbols: m.noise.documented()}
	for _, c := range m.conds.Conditions() {
		cd := ConditionDoc{Index: c.Index, Name: c.Name, Kind: "constraint"}
		if c.Variable {
			cd.Kind = "bool"
		} else {
			cd.Form = c.Form.String() + " >= 0"
		}
		res.Conditions = append(res.Conditions, cd)
	}
	return res
}

// WriteDocs writes the documentation of m in YAML format.
func (m *Manager) WriteDocs(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m.Docs()); err != nil {
		return fmt.Errorf("writing documentation: %w", err)
	}
	return enc.Close()
}

// ReadDocs reads documentation in YAML format, as written by WriteDocs. Symbol
// documentation is attached to the given ids and condition names are attached
// to existing conditions. We return an error if a symbol was never allocated,
// or if a condition index is not defined in m.
func (m *Manager) ReadDocs(r io.Reader) error {
	var d Docs
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return fmt.Errorf("reading documentation: %w", err)
	}
	for _, ns := range d.Symbols {
		if _, err := m.noise.lookup(ns.ID); err != nil {
			return fmt.Errorf("reading documentation: %w", err)
		}
		m.noise.alloc(ns.ID, ns.Name, ns.Unit, ns.Comment)
	}
	for _, cd := range d.Conditions {
		if !m.conds.Defined(cd.Index) {
			return fmt.Errorf("reading documentation: undefined condition %d", cd.Index)
		}
		if cd.Name != "" {
			m.conds.Describe(cd.Index, cd.Name)
		}
	}
	return nil
}
