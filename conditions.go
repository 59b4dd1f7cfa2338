// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"
)

// Condition is an entry of the condition table. It is either a linear
// constraint, Form >= 0, or an unknown Boolean variable (Variable is true and
// Form is not used).
type Condition struct {
	Index    int32
	Form     AffineForm
	Variable bool
	Name     string
}

func (c Condition) String() string {
	if c.Variable {
		if c.Name == "" {
			return fmt.Sprintf("x%d: bool", c.Index)
		}
		return fmt.Sprintf("x%d: bool %s", c.Index, c.Name)
	}
	if c.Name == "" {
		return fmt.Sprintf("x%d: %s >= 0", c.Index, c.Form)
	}
	return fmt.Sprintf("x%d: %s >= 0 (%s)", c.Index, c.Form, c.Name)
}

// ConditionTable maps condition indexes to conditions. Indexes are issued
// from two counters: RegisterTop returns 1, 2, 3, ... and RegisterBottom
// returns -1, -2, ... so that a new bottom condition is ordered before every
// existing one. Indexes are never reused until Reset.
type ConditionTable struct {
	mu     sync.Mutex
	top    int32
	bottom int32
	table  map[int32]Condition
	onnew  func(c Condition) // called, with the lock released, after each registration
}

// NewConditionTable returns an empty table.
func NewConditionTable() *ConditionTable {
	return &ConditionTable{table: make(map[int32]Condition)}
}

func (ct *ConditionTable) register(c Condition, bottom bool) int32 {
	ct.mu.Lock()
	if bottom {
		ct.bottom--
		c.Index = ct.bottom
	} else {
		if ct.top == leafIndex-1 {
			ct.mu.Unlock()
			panic(invariantf("condition table is full"))
		}
		ct.top++
		c.Index = ct.top
	}
	ct.table[c.Index] = c
	hook := ct.onnew
	ct.mu.Unlock()
	if hook != nil {
		hook(c)
	}
	return c.Index
}

// RegisterTop adds the constraint form >= 0 with a new index larger than all
// the existing ones.
func (ct *ConditionTable) RegisterTop(form AffineForm, name ...string) int32 {
	return ct.register(Condition{Form: form, Name: firstOf(name)}, false)
}

// RegisterBottom adds the constraint form >= 0 with a new index smaller than
// all the existing ones.
func (ct *ConditionTable) RegisterBottom(form AffineForm, name ...string) int32 {
	return ct.register(Condition{Form: form, Name: firstOf(name)}, true)
}

// RegisterVariable adds an unknown Boolean variable with a new top index.
func (ct *ConditionTable) RegisterVariable(name string) int32 {
	return ct.register(Condition{Variable: true, Name: name}, false)
}

func firstOf(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// Lookup returns the condition with the given index. It panics if the index
// was never issued by the table.
func (ct *ConditionTable) Lookup(index int32) Condition {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	if index < ct.bottom || index > ct.top {
		panic(invariantf("condition index %d outside of [%d, %d]", index, ct.bottom, ct.top))
	}
	c, ok := ct.table[index]
	if !ok {
		panic(invariantf("undefined condition index %d", index))
	}
	return c
}

// Defined reports whether index has an entry in the table.
func (ct *ConditionTable) Defined(index int32) bool {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	_, ok := ct.table[index]
	return ok
}

// Top returns the last index returned by RegisterTop or RegisterVariable (0
// if none).
func (ct *ConditionTable) Top() int32 {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return ct.top
}

// Bottom returns the last index returned by RegisterBottom (0 if none).
func (ct *ConditionTable) Bottom() int32 {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return ct.bottom
}

// Len returns the number of conditions in the table.
func (ct *ConditionTable) Len() int {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return len(ct.table)
}

// Describe sets the name of an existing condition.
func (ct *ConditionTable) Describe(index int32, name string) {
	c := ct.Lookup(index)
	c.Name = name
	ct.mu.Lock()
	ct.table[index] = c
	ct.mu.Unlock()
}

// Conditions returns all the entries of the table sorted by index.
func (ct *ConditionTable) Conditions() []Condition {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	res := make([]Condition, 0, len(ct.table))
	for _, c := range ct.table {
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Index < res[j].Index })
	return res
}

// Reset removes all the conditions and restarts both counters.
func (ct *ConditionTable) Reset() {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.top = 0
	ct.bottom = 0
	ct.table = make(map[int32]Condition)
}

// Print writes the content of the table, one condition per line.
func (ct *ConditionTable) Print(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, c := range ct.Conditions() {
		kind := "constraint"
		if c.Variable {
			kind = "bool"
		}
		desc := c.Form.String() + " >= 0"
		if c.Variable {
			desc = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.Index, kind, c.Name, desc)
	}
	return tw.Flush()
}
