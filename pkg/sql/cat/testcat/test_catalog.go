// Copyright 2018 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package testcat provides an in-memory implementation of cat.Catalog whose
// contents are described in YAML. It is used by tests and diagnostic tools.
package testcat

import (
	"github.com/geophile/sql-layer-sub008/pkg/geo/geoindex"
	"github.com/geophile/sql-layer-sub008/pkg/sql/cat"
	"github.com/geophile/sql-layer-sub008/pkg/sql/types"
)

// Catalog implements the cat.Catalog interface for testing purposes.
type Catalog struct {
	tables []*Table
	groups []*Group
}

var _ cat.Catalog = &Catalog{}

// TableCount is part of the cat.Catalog interface.
func (tc *Catalog) TableCount() int { return len(tc.tables) }

// Table is part of the cat.Catalog interface.
func (tc *Catalog) Table(i int) cat.Table { return tc.tables[i] }

// GroupCount is part of the cat.Catalog interface.
func (tc *Catalog) GroupCount() int { return len(tc.groups) }

// Group is part of the cat.Catalog interface.
func (tc *Catalog) Group(i int) cat.Group { return tc.groups[i] }

// TableByName returns the table with the given unqualified name, or nil.
func (tc *Catalog) TableByName(name string) *Table {
	for _, t := range tc.tables {
		if t.TabName.Table == name {
			return t
		}
	}
	return nil
}

// GroupByName returns the group with the given name, or nil.
func (tc *Catalog) GroupByName(name string) *Group {
	for _, g := range tc.groups {
		if g.GroupName == name {
			return g
		}
	}
	return nil
}

// Table implements the cat.Table interface for testing purposes.
type Table struct {
	TabID   cat.StableID
	TabName cat.TableName
	Columns []*Column
	Indexes []*Index

	parent  *Table
	depth   int
	ordinal int
	pk      []*Column
	hkey    *cat.HKey
	group   *Group
}

var _ cat.Table = &Table{}

// ID is part of the cat.Table interface.
func (tt *Table) ID() cat.StableID { return tt.TabID }

// Name is part of the cat.Table interface.
func (tt *Table) Name() cat.TableName { return tt.TabName }

// ColumnCount is part of the cat.Table interface.
func (tt *Table) ColumnCount() int { return len(tt.Columns) }

// Column is part of the cat.Table interface.
func (tt *Table) Column(i int) cat.Column { return tt.Columns[i] }

// IndexCount is part of the cat.Table interface.
func (tt *Table) IndexCount() int { return len(tt.Indexes) }

// Index is part of the cat.Table interface.
func (tt *Table) Index(i int) cat.Index { return tt.Indexes[i] }

// Parent is part of the cat.Table interface.
func (tt *Table) Parent() cat.Table {
	if tt.parent == nil {
		// Avoid returning a typed nil.
		return nil
	}
	return tt.parent
}

// Depth is part of the cat.Table interface.
func (tt *Table) Depth() int { return tt.depth }

// HKey is part of the cat.Table interface.
func (tt *Table) HKey() *cat.HKey { return tt.hkey }

// Group is part of the cat.Table interface.
func (tt *Table) Group() cat.Group { return tt.group }

// FindOrdinal returns the ordinal of the column with the given name, or -1.
func (tt *Table) FindOrdinal(name string) int {
	for i, c := range tt.Columns {
		if c.ColName == name {
			return i
		}
	}
	return -1
}

// IndexByName returns the table-local index with the given name, or nil.
func (tt *Table) IndexByName(name string) *Index {
	for _, idx := range tt.Indexes {
		if idx.IdxName == name {
			return idx
		}
	}
	return nil
}

// Column implements the cat.Column interface for testing purposes.
type Column struct {
	ColName string
	Typ     *types.T
	Hidden  bool

	ordinal int
}

var _ cat.Column = &Column{}

// Name is part of the cat.Column interface.
func (tc *Column) Name() string { return tc.ColName }

// Ordinal is part of the cat.Column interface.
func (tc *Column) Ordinal() int { return tc.ordinal }

// DatumType is part of the cat.Column interface.
func (tc *Column) DatumType() *types.T { return tc.Typ }

// IsHidden is part of the cat.Column interface.
func (tc *Column) IsHidden() bool { return tc.Hidden }

// Index implements the cat.Index interface for testing purposes.
type Index struct {
	IdxID   cat.IndexID
	IdxName string
	Columns []cat.IndexColumn

	// table is the leafmost table of the index.
	table *Table
	// rootmost is the rootmost table of the index.
	rootmost *Table
	// group is set for group indexes only.
	group *Group
	// geoConfig is the spatial index configuration, if this is a spatial
	// index. Otherwise geoConfig is nil.
	geoConfig *geoindex.Config
}

var _ cat.Index = &Index{}

// ID is part of the cat.Index interface.
func (ti *Index) ID() cat.IndexID { return ti.IdxID }

// Name is part of the cat.Index interface.
func (ti *Index) Name() string { return ti.IdxName }

// Table is part of the cat.Index interface.
func (ti *Index) Table() cat.Table { return ti.table }

// RootmostTable is part of the cat.Index interface.
func (ti *Index) RootmostTable() cat.Table { return ti.rootmost }

// IsGroupIndex is part of the cat.Index interface.
func (ti *Index) IsGroupIndex() bool { return ti.group != nil }

// ColumnCount is part of the cat.Index interface.
func (ti *Index) ColumnCount() int { return len(ti.Columns) }

// Column is part of the cat.Index interface.
func (ti *Index) Column(i int) cat.IndexColumn { return ti.Columns[i] }

// GeoConfig is part of the cat.Index interface.
func (ti *Index) GeoConfig() *geoindex.Config { return ti.geoConfig }

// Group implements the cat.Group interface for testing purposes.
type Group struct {
	GroupName string
	Indexes   []*Index

	root   *Table
	tables int
}

var _ cat.Group = &Group{}

// Name is part of the cat.Group interface.
func (tg *Group) Name() string { return tg.GroupName }

// Root is part of the cat.Group interface.
func (tg *Group) Root() cat.Table { return tg.root }

// IndexCount is part of the cat.Group interface.
func (tg *Group) IndexCount() int { return len(tg.Indexes) }

// Index is part of the cat.Group interface.
func (tg *Group) Index(i int) cat.Index { return tg.Indexes[i] }

// IndexByName returns the group index with the given name, or nil.
func (tg *Group) IndexByName(name string) *Index {
	for _, idx := range tg.Indexes {
		if idx.IdxName == name {
			return idx
		}
	}
	return nil
}
