// Copyright 2018 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cat contains interfaces that are used by the row type system to
// access the catalog of tables, indexes and groups. The catalog is built
// elsewhere; everything reachable through these interfaces is immutable for
// the lifetime of one catalog version.
package cat

// StableID is a permanent identifier for a table. It is unique within a
// catalog version and never reused.
type StableID uint64

// Catalog is the table, index and group model from which a row type schema is
// built.
type Catalog interface {
	// TableCount returns the number of tables in the catalog, including
	// internal ones.
	TableCount() int

	// Table returns the ith table, where i < TableCount.
	Table(i int) Table

	// GroupCount returns the number of table groups in the catalog.
	GroupCount() int

	// Group returns the ith group, where i < GroupCount.
	Group(i int) Group
}

// Group is a set of tables related by parent/child foreign keys whose rows are
// physically clustered together in storage.
type Group interface {
	// Name is the name of the group, which is conventionally the name of its
	// root table.
	Name() string

	// Root returns the table at depth 0 of the group.
	Root() Table

	// IndexCount returns the number of cross-table indexes defined on the
	// group.
	IndexCount() int

	// Index returns the ith group index, where i < IndexCount.
	Index(i int) Index
}
