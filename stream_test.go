// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestStream(t *testing.T) {
	m := newManager(t)
	s := NewStream[AffineForm]("level", "m")
	s.Add(2, m.Scalar(20))
	s.Add(0, m.Scalar(0))
	s.Add(1, m.Range(9, 11, Fresh))
	s.Add(2, m.Scalar(21))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []float64{0, 1, 2}, s.Times())

	d, ok := s.At(2)
	require.True(t, ok)
	assert.Equal(t, 21.0, d.Value().Center(), "a sample at an existing time is replaced")
	_, ok = s.At(1.5)
	assert.False(t, ok)
}

func TestSummarizeAADD(t *testing.T) {
	m := newManager(t)
	s := NewStream[AffineForm]("level", "m")
	s.Add(0, m.Range(9, 11, Fresh))
	s.Add(1, m.Reals())
	sum := m.SummarizeAADD(s)
	require.Len(t, sum.Samples, 2)
	assert.Equal(t, "finite", sum.Samples[0].Trap)
	assert.InDelta(t, 9, sum.Samples[0].Min, precision)
	assert.InDelta(t, 11, sum.Samples[0].Max, precision)
	assert.Equal(t, "infinite", sum.Samples[1].Trap)
	assert.Equal(t, 0.0, sum.Samples[1].Max)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sum))
	var decoded []Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, sum, decoded[0])

	buf.Reset()
	require.NoError(t, WriteYAML(&buf, sum))
	decoded = nil
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sum, decoded[0])
	assert.Contains(t, buf.String(), "unit: m")
}

func TestSummarizeBDD(t *testing.T) {
	m := newManager(t)
	s := NewStream[Bool]("alarm", "")
	x := m.Range(1, 2, Fresh)
	s.Add(0, m.Gt(x, m.Scalar(0)))
	s.Add(1, m.Gt(x, m.Scalar(1.5)))
	s.Add(2, m.Infeasible())
	sum := m.SummarizeBDD(s)
	require.Len(t, sum.Samples, 3)
	assert.Equal(t, SampleSummary{Time: 0, Leaves: 1, True: 1}, sum.Samples[0])
	assert.Equal(t, SampleSummary{Time: 1, Leaves: 2, True: 1, False: 1}, sum.Samples[1])
	assert.Equal(t, SampleSummary{Time: 2, Leaves: 1, Infeasible: 1}, sum.Samples[2])

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sum))
	assert.Contains(t, buf.String(), `"infeasible": 1`)
}

func TestDocs(t *testing.T) {
	m := newManager(t)
	x := m.Range(0, 10, Fresh, "height", "m", "water level")
	m.Range(0, 1, Fresh)
	m.Gt(x, m.Scalar(5))
	m.Variable("pump")

	docs := m.Docs()
	require.Len(t, docs.Symbols, 1)
	assert.Equal(t, "height", docs.Symbols[0].Name)
	require.Len(t, docs.Conditions, 2)
	assert.Equal(t, "constraint", docs.Conditions[0].Kind)
	assert.True(t, strings.HasSuffix(docs.Conditions[0].Form, ">= 0"))
	assert.Equal(t, ConditionDoc{Index: 2, Kind: "bool", Name: "pump"}, docs.Conditions[1])

	var buf bytes.Buffer
	require.NoError(t, m.WriteDocs(&buf))
	assert.Contains(t, buf.String(), "symbols:")
	assert.Contains(t, buf.String(), "comment: water level")

	// read back in a manager with the same conditions but no documentation
	m2 := newManager(t)
	y := m2.Range(0, 10, Fresh)
	m2.Gt(y, m2.Scalar(5))
	m2.Variable("")
	var d Docs
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &d))
	d.Conditions[0].Name = "high"
	text, err := yaml.Marshal(d)
	require.NoError(t, err)
	require.NoError(t, m2.ReadDocs(bytes.NewReader(text)))
	ns, err := m2.SymbolDoc(1)
	require.NoError(t, err)
	assert.Equal(t, NoiseSymbol{ID: 1, Name: "height", Unit: "m", Comment: "water level"}, ns)
	assert.Equal(t, "high", m2.Conditions().Lookup(1).Name)
	assert.Equal(t, "pump", m2.Conditions().Lookup(2).Name)

	// conditions must exist
	m3 := newManager(t)
	assert.Error(t, m3.ReadDocs(strings.NewReader(buf.String())))
	assert.Error(t, m3.ReadDocs(strings.NewReader("symbols: [{id: 0}]")))
	assert.Error(t, m3.ReadDocs(strings.NewReader("symbols: {")))

	// symbols must have been allocated
	m3.Range(0, 1, Fresh, "a")
	err = m3.ReadDocs(strings.NewReader("symbols: [{id: 42, name: ghost}]"))
	assert.ErrorIs(t, err, ErrUnknownSymbol)
	_, err = m3.SymbolDoc(42)
	assert.ErrorIs(t, err, ErrUnknownSymbol)
	require.NoError(t, m3.ReadDocs(strings.NewReader("symbols: [{id: 1, name: b}]")))
	ns, err = m3.SymbolDoc(1)
	require.NoError(t, err)
	assert.Equal(t, "b", ns.Name)
}
