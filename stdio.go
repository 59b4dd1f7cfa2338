// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
)

// Stats returns information about the Manager: number of conditions and noise
// symbols, number of nodes created, and usage of the operation caches.
func (m *Manager) Stats() string {
	res := fmt.Sprintf("Session:    %s\n", m.id)
	res += fmt.Sprintf("Conditions: %d  (top %d, bottom %d)\n", m.conds.Len(), m.conds.Top(), m.conds.Bottom())
	res += fmt.Sprintf("Symbols:    %d\n", m.noise.count())
	res += fmt.Sprintf("Produced:   %d\n", m.nextid.Load())
	res += cacheStat{
		size:     len(m.bddcache.table),
		bddHit:   m.bddcache.hit,
		bddMiss:  m.bddcache.miss,
		aaddHit:  m.aaddcache.hit,
		aaddMiss: m.aaddcache.miss,
	}.String()
	if m.error != nil {
		res += fmt.Sprintf("\nError:      %s", m.error)
	}
	return res
}

// nodes returns the distinct nodes of d, sorted by id.
func (d *DD[V]) nodes() []*DD[V] {
	var res []*DD[V]
	fold(d,
		func(l *DD[V]) struct{} {
			res = append(res, l)
			return struct{}{}
		},
		func(n *DD[V], _, _ struct{}) struct{} {
			res = append(res, n)
			return struct{}{}
		})
	sort.Slice(res, func(i, j int) bool { return res[i].id < res[j].id })
	return res
}

// Print writes a textual representation of the diagram d, with one line for
// each distinct node, in the order of creation. Internal nodes are printed as
// (id [index] ? high : low).
func (d *DD[V]) Print(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, n := range d.nodes() {
		if n.IsLeaf() {
			if n.IsInfeasible() {
				fmt.Fprintf(tw, "%d\t\tinfeasible\t\n", n.id)
				continue
			}
			fmt.Fprintf(tw, "%d\t\t%s\t\n", n.id, n.value)
			continue
		}
		fmt.Fprintf(tw, "%d\t[%d]\t? %d\t: %d\n", n.id, n.index, n.t.id, n.f.id)
	}
	return tw.Flush()
}

// PrintDot writes a graph-like description of d using the DOT format. High
// (true) branches are drawn with plain arcs and low branches with dotted arcs.
func (d *DD[V]) PrintDot(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	for _, n := range d.nodes() {
		if n.IsLeaf() {
			label := n.value.String()
			if n.IsInfeasible() {
				label = "infeasible"
			}
			fmt.Fprintf(bw, "%d [shape=box, label=%q, style=filled, height=0.3];\n", n.id, label)
			continue
		}
		fmt.Fprintf(bw, "%d %s\n", n.id, dotlabel(n.id, n.index))
		fmt.Fprintf(bw, "%d -> %d [style=filled];\n", n.id, n.t.id)
		fmt.Fprintf(bw, "%d -> %d [style=dotted];\n", n.id, n.f.id)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

// FPrintDot writes the DOT description of d in file filename. We use the
// standard output if filename is "-".
func (d *DD[V]) FPrintDot(filename string) error {
	if filename == "-" {
		return d.PrintDot(os.Stdout)
	}
	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := d.PrintDot(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func dotlabel(id uint64, index int32) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">x%d</FONT>
	<FONT POINT-SIZE="10">[%d]</FONT>
>];`, index, id)
}
