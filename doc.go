// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package aadd defines Affine Arithmetic Decision Diagrams (AADD) and their
Boolean counterpart (BDD), data structures used to compute rigorous enclosures
of quantities whose value is uncertain and depends on discrete decisions, such
as the comparisons and if-then-else statements of a program.

Basics

An AffineForm represents a set of reals as x0 + x1·e1 + ... + xn·en ± r, where
each noise symbol ei ranges over [-1, 1] and is shared by all the forms that
mention it. This keeps track of correlations between values: the difference
between a form and itself is exactly zero, which is not the case with interval
arithmetic. Every operation rounds outwards, so the result is a sound
enclosure of the exact value.

An AADD is an ordered decision diagram whose internal nodes branch on a
condition, identified by an index in a table of conditions, and whose leaves are
affine forms. A condition is either a linear constraint, form >= 0, or an
unknown Boolean variable. Comparing two AADD gives a BDD, and a BDD can be used
to select between two AADD (see Manager.IteAADD).

All diagrams are built by a Manager, created with New. The Manager owns the
condition table, the allocator of noise symbols, and the caches used by the
operations. Diagrams are immutable and may share subdiagrams.

Bounds

The leaves of an AADD are only valid under the conditions found on their path
from the root. Methods Bounds and Tighten take these conditions into account by
solving, for each leaf, a linear program with the conditions on its path. This
is done with the simplex implementation of gonum. Leaves that cannot be
reached are marked as infeasible.

Use of build tags

Compile your executable with the build tag `debug` to log the operations of
every Manager, at debug level, on the standard error. Otherwise use the Logger
option.
*/
package aadd
