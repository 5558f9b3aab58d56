// Copyright 2018 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cat

import (
	"github.com/cockroachdb/redact"
	"github.com/geophile/sql-layer-sub008/pkg/sql/types"
)

// TableName is the schema-qualified name of a table.
type TableName struct {
	Schema string
	Table  string
}

func (tn TableName) String() string {
	return redact.StringWithoutMarkers(tn)
}

// SafeFormat implements the redact.SafeFormatter interface.
func (tn TableName) SafeFormat(w redact.SafePrinter, _ rune) {
	if tn.Schema != "" {
		w.Printf("%s.", tn.Schema)
	}
	w.Print(tn.Table)
}

// Table is an interface to a table in the catalog.
type Table interface {
	// ID is the unique, stable identifier for this table.
	ID() StableID

	// Name returns the schema-qualified name of the table.
	Name() TableName

	// ColumnCount returns the number of columns in the table, including
	// hidden ones.
	ColumnCount() int

	// Column returns the ith column, where i < ColumnCount.
	Column(i int) Column

	// IndexCount returns the number of table-local indexes, including the
	// internally generated primary index.
	IndexCount() int

	// Index returns the ith index, where i < IndexCount. The position of an
	// index in this list is unrelated to its IndexID.
	Index(i int) Index

	// Parent returns the table this table is grouped under, or nil if the
	// table is the root of its group.
	Parent() Table

	// Depth is the number of ancestors of the table within its group; a
	// group root has depth 0.
	Depth() int

	// HKey returns the hierarchical key definition of the table.
	HKey() *HKey

	// Group returns the group the table belongs to.
	Group() Group
}

// Column is an interface to a table column.
type Column interface {
	// Name is the column name.
	Name() string

	// Ordinal is the position of the column within its table.
	Ordinal() int

	// DatumType returns the scalar type of values stored in the column.
	DatumType() *types.T

	// IsHidden is true for columns the catalog adds for its own purposes,
	// such as an implicit row id.
	IsHidden() bool
}

// IsAncestor returns true if ancestor is a proper ancestor of t, along with
// the number of generations separating them.
func IsAncestor(ancestor, t Table) (ok bool, generations int) {
	for p := t.Parent(); p != nil; p = p.Parent() {
		generations++
		if p.ID() == ancestor.ID() {
			return true, generations
		}
	}
	return false, 0
}
