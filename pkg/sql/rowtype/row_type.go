// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package rowtype implements the row shape descriptors shared by the planner
// and the execution engine. A RowType describes how many fields a row has,
// the scalar type of each field, the hierarchical key addressing the row
// within its group, and which tables the row draws from.
//
// Row types are minted by a Schema, which is built once per catalog version
// and is immutable afterwards. Catalog row types (tables, hierarchical keys,
// indexes) are created when the Schema is built; derived row types (flatten,
// product, project, aggregate, values) are created by Schema factory methods
// while plans are built. All row types may be shared freely between
// goroutines.
//
// Operations that detect a violated invariant, such as combining row types
// from different schemas, panic with an assertion failure. See CatchError.
package rowtype

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/geophile/sql-layer-sub008/pkg/sql/cat"
	"github.com/geophile/sql-layer-sub008/pkg/sql/types"
)

// TypeID uniquely identifies a row type within a Schema. Ids are assigned in
// increasing order and never reused.
type TypeID int64

// SafeValue implements the redact.SafeValue interface.
func (TypeID) SafeValue() {}

// Kind identifies the variant of a row type.
type Kind int8

const (
	// TableKind is the kind of *TableRowType.
	TableKind Kind = iota + 1
	// HKeyKind is the kind of *HKeyRowType.
	HKeyKind
	// IndexKind is the kind of *IndexRowType.
	IndexKind
	// FlattenedKind is the kind of *FlattenedRowType.
	FlattenedKind
	// ProductKind is the kind of *ProductRowType.
	ProductKind
	// ProjectedKind is the kind of *ProjectedRowType.
	ProjectedKind
	// AggregatedKind is the kind of *AggregatedRowType.
	AggregatedKind
	// ValuesKind is the kind of *ValuesRowType.
	ValuesKind
)

var kindNames = [...]string{
	TableKind:      "table",
	HKeyKind:       "hkey",
	IndexKind:      "index",
	FlattenedKind:  "flatten",
	ProductKind:    "product",
	ProjectedKind:  "project",
	AggregatedKind: "aggregate",
	ValuesKind:     "values",
}

func (k Kind) String() string {
	if k <= 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int8(k))
	}
	return kindNames[k]
}

// SafeValue implements the redact.SafeValue interface.
func (Kind) SafeValue() {}

// RowType describes the shape of the rows produced or consumed by an
// operator. The set of implementations is closed; switch on Kind or on the
// concrete type to handle each variant.
type RowType interface {
	fmt.Stringer
	redact.SafeFormatter

	// ID returns the identifier of the row type within its schema.
	ID() TypeID

	// Kind returns the variant of the row type.
	Kind() Kind

	// Schema returns the schema that created the row type.
	Schema() *Schema

	// FieldCount returns the number of fields in rows of this type.
	FieldCount() int

	// TypeAt returns the scalar type of the ith field, where i < FieldCount.
	TypeAt(i int) *types.T

	// HKey returns the hierarchical key addressing rows of this type within
	// their group, or nil if the rows are not addressable that way.
	HKey() *cat.HKey

	// HasTable returns true if the row type is backed by a single table.
	HasTable() bool

	// Table returns the backing table. It panics if HasTable is false.
	Table() cat.Table

	// TypeComposition returns the tables whose rows are represented in this
	// row type, or nil if the row type has no table provenance.
	TypeComposition() *TypeComposition

	// Explain returns a structural description of the row type for
	// diagnostic output.
	Explain() *Explainer

	rowType()
}

// SingleBranchRowType is a row type whose tables all lie on one branch of a
// group. Ancestry between row types is only defined for these.
type SingleBranchRowType interface {
	RowType

	// SingleBranch returns the row type's composition.
	SingleBranch() *SingleBranchComposition
}

// CompoundRowType is a row type made of two other row types, whose fields are
// the concatenation of the fields of its inputs.
type CompoundRowType interface {
	RowType

	// First returns the row type whose fields come first.
	First() RowType

	// Second returns the row type whose fields come second.
	Second() RowType
}

var (
	_ SingleBranchRowType = (*TableRowType)(nil)
	_ SingleBranchRowType = (*HKeyRowType)(nil)
	_ SingleBranchRowType = (*IndexRowType)(nil)
	_ SingleBranchRowType = (*FlattenedRowType)(nil)
	_ CompoundRowType     = (*FlattenedRowType)(nil)
	_ CompoundRowType     = (*ProductRowType)(nil)
	_ RowType             = (*ProjectedRowType)(nil)
	_ RowType             = (*AggregatedRowType)(nil)
	_ RowType             = (*ValuesRowType)(nil)
)

// rowTypeBase holds the state common to all row types.
type rowTypeBase struct {
	schema *Schema
	id     TypeID
}

// ID is part of the RowType interface.
func (b *rowTypeBase) ID() TypeID { return b.id }

// Schema is part of the RowType interface.
func (b *rowTypeBase) Schema() *Schema { return b.schema }

func (b *rowTypeBase) rowType() {}

func noTable(rt RowType) cat.Table {
	panic(errors.AssertionFailedf("%s has no backing table", rt))
}

func checkField(rt RowType, i int) {
	if i < 0 || i >= rt.FieldCount() {
		panic(errors.AssertionFailedf("field %d out of range for %s with %d fields", i, rt, rt.FieldCount()))
	}
}

// AncestorOf returns true if the tables of a are ancestors of the tables of
// b. A row type is its own ancestor.
func AncestorOf(a, b SingleBranchRowType) bool {
	return a.SingleBranch().IsAncestorOf(b.SingleBranch())
}

// ParentOf returns true if a's tables include the parent of b's rootmost
// table. A row type is never its own parent.
func ParentOf(a, b SingleBranchRowType) bool {
	return a.SingleBranch().IsParentOf(b.SingleBranch())
}

// Equal returns true if a and b describe the same rows. Compound row types
// are equal if they are of the same kind and their inputs are equal; all
// other row types are equal only to themselves.
func Equal(a, b RowType) bool {
	if a == b {
		return true
	}
	ca, ok := a.(CompoundRowType)
	if !ok {
		return false
	}
	cb, ok := b.(CompoundRowType)
	if !ok || ca.Kind() != cb.Kind() {
		return false
	}
	return Equal(ca.First(), cb.First()) && Equal(ca.Second(), cb.Second())
}

// Hash returns a hash of the row type consistent with Equal.
func Hash(rt RowType) uint64 {
	var buf [17]byte
	if c, ok := rt.(CompoundRowType); ok {
		buf[0] = byte(c.Kind())
		binary.LittleEndian.PutUint64(buf[1:], Hash(c.First()))
		binary.LittleEndian.PutUint64(buf[9:], Hash(c.Second()))
		return xxhash.Sum64(buf[:])
	}
	binary.LittleEndian.PutUint64(buf[1:], uint64(rt.ID()))
	return xxhash.Sum64(buf[:9])
}
