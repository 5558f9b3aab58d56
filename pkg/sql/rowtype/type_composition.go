// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package rowtype

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/geophile/sql-layer-sub008/pkg/sql/cat"
	"github.com/geophile/sql-layer-sub008/pkg/util/syncutil"
)

// TypeComposition records which tables have rows represented within a row
// type.
type TypeComposition struct {
	rowType RowType
	// tables is ordered by depth, then by id.
	tables []cat.Table
	ids    map[cat.StableID]struct{}
	// fingerprint identifies the set of tables; it is the sorted table ids.
	fingerprint string
}

func makeTypeComposition(rowType RowType, tableLists ...[]cat.Table) TypeComposition {
	c := TypeComposition{rowType: rowType, ids: make(map[cat.StableID]struct{})}
	for _, tables := range tableLists {
		for _, t := range tables {
			if _, ok := c.ids[t.ID()]; ok {
				continue
			}
			c.ids[t.ID()] = struct{}{}
			c.tables = append(c.tables, t)
		}
	}
	sort.Slice(c.tables, func(i, j int) bool {
		ti, tj := c.tables[i], c.tables[j]
		if ti.Depth() != tj.Depth() {
			return ti.Depth() < tj.Depth()
		}
		return ti.ID() < tj.ID()
	})
	c.fingerprint = tableSetFingerprint(c.tables)
	return c
}

func tableSetFingerprint(tables []cat.Table) string {
	ids := make([]cat.StableID, len(tables))
	for i, t := range tables {
		ids[i] = t.ID()
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return b.String()
}

func newTypeComposition(rowType RowType, tableLists ...[]cat.Table) *TypeComposition {
	c := makeTypeComposition(rowType, tableLists...)
	return &c
}

// RowType returns the row type described by the composition.
func (c *TypeComposition) RowType() RowType { return c.rowType }

// Tables returns the tables of the composition, rootmost first. The slice
// must not be modified.
func (c *TypeComposition) Tables() []cat.Table { return c.tables }

// TableCount returns the number of tables in the composition.
func (c *TypeComposition) TableCount() int { return len(c.tables) }

// Contains returns true if t is one of the composition's tables.
func (c *TypeComposition) Contains(t cat.Table) bool {
	_, ok := c.ids[t.ID()]
	return ok
}

// Intersects returns true if the two compositions have a table in common.
func (c *TypeComposition) Intersects(other *TypeComposition) bool {
	small, large := c, other
	if len(small.tables) > len(large.tables) {
		small, large = large, small
	}
	for _, t := range small.tables {
		if large.Contains(t) {
			return true
		}
	}
	return false
}

// SameTables returns true if both compositions have exactly the same tables.
func (c *TypeComposition) SameTables(other *TypeComposition) bool {
	if len(c.tables) != len(other.tables) {
		return false
	}
	for _, t := range c.tables {
		if !other.Contains(t) {
			return false
		}
	}
	return true
}

// deepestCommonTable returns the table of greatest depth present in both
// compositions, or nil if they have no table in common.
func deepestCommonTable(a, b *TypeComposition) cat.Table {
	for i := len(a.tables) - 1; i >= 0; i-- {
		if b.Contains(a.tables[i]) {
			return a.tables[i]
		}
	}
	return nil
}

func (c *TypeComposition) String() string {
	return redact.StringWithoutMarkers(c)
}

// SafeFormat implements the redact.SafeFormatter interface.
func (c *TypeComposition) SafeFormat(w redact.SafePrinter, _ rune) {
	w.SafeRune('{')
	for i, t := range c.tables {
		if i > 0 {
			w.SafeString(", ")
		}
		w.Print(t.Name().Table)
	}
	w.SafeRune('}')
}

// SingleBranchComposition is a TypeComposition whose tables all lie on a
// single branch of a group, which makes ancestry between compositions well
// defined.
type SingleBranchComposition struct {
	TypeComposition
	memo *ancestryMemo
}

func newSingleBranchComposition(rowType RowType, tableLists ...[]cat.Table) *SingleBranchComposition {
	return &SingleBranchComposition{
		TypeComposition: makeTypeComposition(rowType, tableLists...),
		memo:            &rowType.Schema().ancestry,
	}
}

// IsAncestorOf returns true if the tables of that descend from the tables of
// c: the two compositions are disjoint and some ancestor of that's rootmost
// table is in c. A composition is its own ancestor.
func (c *SingleBranchComposition) IsAncestorOf(that *SingleBranchComposition) bool {
	return c.ancestry(that).isAncestor
}

// IsParentOf returns true if c is an ancestor of that at exactly one
// generation. A composition is never its own parent.
func (c *SingleBranchComposition) IsParentOf(that *SingleBranchComposition) bool {
	if c.same(that) {
		return false
	}
	a := c.ancestry(that)
	return a.isAncestor && a.generations == 1
}

func (c *SingleBranchComposition) same(that *SingleBranchComposition) bool {
	return c == that || c.rowType.ID() == that.rowType.ID()
}

func (c *SingleBranchComposition) ancestry(that *SingleBranchComposition) ancestry {
	if c.memo != that.memo {
		panic(errors.AssertionFailedf(
			"%s and %s belong to different schemas", c.rowType, that.rowType))
	}
	if c.same(that) {
		return ancestry{isAncestor: true}
	}
	key := ancestryKey{ancestor: c.fingerprint, descendant: that.fingerprint}
	if a, ok := c.memo.m.Load(key); ok {
		return *a
	}
	a := c.computeAncestry(that)
	// Concurrent callers may compute the same value; either store wins.
	c.memo.m.Store(key, &a)
	return a
}

func (c *SingleBranchComposition) computeAncestry(that *SingleBranchComposition) ancestry {
	if c.Intersects(&that.TypeComposition) {
		return ancestry{}
	}
	root := that.rootmostTable()
	if root == nil {
		return ancestry{}
	}
	generations := 0
	for t := root.Parent(); t != nil; t = t.Parent() {
		generations++
		if c.Contains(t) {
			return ancestry{isAncestor: true, generations: generations}
		}
	}
	return ancestry{}
}

// rootmostTable walks up from the deepest table for as long as the parent is
// part of the composition.
func (c *SingleBranchComposition) rootmostTable() cat.Table {
	if len(c.tables) == 0 {
		return nil
	}
	t := c.tables[len(c.tables)-1]
	for p := t.Parent(); p != nil && c.Contains(p); p = p.Parent() {
		t = p
	}
	return t
}

// ancestryKey identifies a pair of compositions by their table sets, which
// is all that ancestry depends on. The number of keys is bounded by the
// catalog rather than by the number of derived row types.
type ancestryKey struct {
	ancestor, descendant string
}

type ancestry struct {
	isAncestor  bool
	generations int
}

// ancestryMemo caches ancestry between the single-branch compositions of one
// schema. Entries are a pure function of their key.
type ancestryMemo struct {
	m syncutil.Map[ancestryKey, ancestry]
}

// len returns the number of memoized pairs.
func (m *ancestryMemo) len() int {
	n := 0
	m.m.Range(func(ancestryKey, *ancestry) bool {
		n++
		return true
	})
	return n
}
