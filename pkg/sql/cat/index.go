// Copyright 2018 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cat

import "github.com/geophile/sql-layer-sub008/pkg/geo/geoindex"

// IndexID identifies an index within its table. Ids are small, positive and
// may be sparse.
type IndexID int

// PrimaryIndexID is the id of the index the catalog generates over a table's
// primary key.
const PrimaryIndexID IndexID = 1

// Index is an interface to a table-local or cross-table (group) index.
type Index interface {
	// ID is the identifier of the index within its table. Group index ids
	// are unique within the group.
	ID() IndexID

	// Name is the name of the index.
	Name() string

	// Table returns the leafmost table of the index. For a table-local index
	// this is the table it is defined on.
	Table() Table

	// RootmostTable returns the rootmost table contributing columns to the
	// index. It equals Table for table-local indexes.
	RootmostTable() Table

	// IsGroupIndex is true for indexes spanning several tables of a group.
	IsGroupIndex() bool

	// ColumnCount returns the number of declared index columns.
	ColumnCount() int

	// Column returns the ith declared column, where i < ColumnCount.
	Column(i int) IndexColumn

	// GeoConfig returns the spatial configuration of the index, or nil if the
	// index is not spatial.
	GeoConfig() *geoindex.Config
}

// IndexColumn is a column of an index together with the table it comes from.
// For table-local indexes Table is always the indexed table.
type IndexColumn struct {
	Table  Table
	Column Column
}

// IsSpatial returns true if the index packs coordinate columns into an
// ordinal.
func IsSpatial(idx Index) bool {
	return idx.GeoConfig() != nil
}
