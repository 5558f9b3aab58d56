// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package rowtype

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/geophile/sql-layer-sub008/pkg/sql/cat"
	"github.com/geophile/sql-layer-sub008/pkg/sql/types"
)

// compoundRowType holds the inputs of a CompoundRowType.
type compoundRowType struct {
	rowTypeBase
	first, second RowType
}

// First is part of the CompoundRowType interface.
func (c *compoundRowType) First() RowType { return c.first }

// Second is part of the CompoundRowType interface.
func (c *compoundRowType) Second() RowType { return c.second }

// tables returns the union of the inputs' tables as separate lists, to be
// coalesced by the composition constructors.
func (c *compoundRowType) tables() [][]cat.Table {
	var res [][]cat.Table
	for _, in := range []RowType{c.first, c.second} {
		if tc := in.TypeComposition(); tc != nil {
			res = append(res, tc.Tables())
		}
	}
	return res
}

// FlattenedRowType is the row type of a parent row joined with one of its
// child rows. Its fields are the parent's fields followed by the child's.
type FlattenedRowType struct {
	compoundRowType
	composition *SingleBranchComposition
	nFields     int
}

func newFlattenedRowType(schema *Schema, parent, child RowType) *FlattenedRowType {
	if parent.TypeComposition() == nil || child.TypeComposition() == nil {
		panic(errors.AssertionFailedf("cannot flatten %s and %s: both need table provenance", parent, child))
	}
	if child.HKey() == nil {
		panic(errors.AssertionFailedf("cannot flatten %s: it has no hkey", child))
	}
	rt := &FlattenedRowType{
		compoundRowType: compoundRowType{
			rowTypeBase: rowTypeBase{schema: schema, id: schema.nextTypeID()},
			first:       parent,
			second:      child,
		},
		nFields: parent.FieldCount() + child.FieldCount(),
	}
	rt.composition = newSingleBranchComposition(rt, rt.tables()...)
	return rt
}

// Kind is part of the RowType interface.
func (rt *FlattenedRowType) Kind() Kind { return FlattenedKind }

// Parent returns the row type of the parent side.
func (rt *FlattenedRowType) Parent() RowType { return rt.first }

// Child returns the row type of the child side.
func (rt *FlattenedRowType) Child() RowType { return rt.second }

// FieldCount is part of the RowType interface.
func (rt *FlattenedRowType) FieldCount() int { return rt.nFields }

// TypeAt is part of the RowType interface.
func (rt *FlattenedRowType) TypeAt(i int) *types.T {
	checkField(rt, i)
	if n := rt.first.FieldCount(); i >= n {
		return rt.second.TypeAt(i - n)
	}
	return rt.first.TypeAt(i)
}

// HKey is part of the RowType interface. A child's hkey has its parent's
// hkey as a prefix, so the child's hkey addresses the flattened row.
func (rt *FlattenedRowType) HKey() *cat.HKey { return rt.second.HKey() }

// HasTable is part of the RowType interface.
func (rt *FlattenedRowType) HasTable() bool { return false }

// Table is part of the RowType interface.
func (rt *FlattenedRowType) Table() cat.Table { return noTable(rt) }

// TypeComposition is part of the RowType interface.
func (rt *FlattenedRowType) TypeComposition() *TypeComposition {
	return &rt.composition.TypeComposition
}

// SingleBranch is part of the SingleBranchRowType interface.
func (rt *FlattenedRowType) SingleBranch() *SingleBranchComposition { return rt.composition }

// Explain is part of the RowType interface.
func (rt *FlattenedRowType) Explain() *Explainer {
	e := newExplainer(FlattenedKind.String())
	e.addChild(LabelParentType, rt.first.Explain())
	e.addChild(LabelChildType, rt.second.Explain())
	return e
}

func (rt *FlattenedRowType) String() string { return redact.StringWithoutMarkers(rt) }

// SafeFormat implements the redact.SafeFormatter interface.
func (rt *FlattenedRowType) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("flatten(%s, %s)", rt.first, rt.second)
}

// ProductRowType is the row type of the combination of a left and a right row
// sharing a common branch table. The right input's fields start with the
// branch table's fields, which are already present on the left and are
// omitted: the fields are the left's fields followed by the right's fields
// after the branch's.
type ProductRowType struct {
	compoundRowType
	branch      *TableRowType
	composition *TypeComposition
	nFields     int
}

func newProductRowType(schema *Schema, left RowType, branch *TableRowType, right RowType) *ProductRowType {
	if right.FieldCount() < branch.FieldCount() {
		panic(errors.AssertionFailedf(
			"%s has fewer fields than branch %s", right, branch))
	}
	rt := &ProductRowType{
		compoundRowType: compoundRowType{
			rowTypeBase: rowTypeBase{schema: schema, id: schema.nextTypeID()},
			first:       left,
			second:      right,
		},
		branch:  branch,
		nFields: left.FieldCount() + right.FieldCount() - branch.FieldCount(),
	}
	rt.composition = newTypeComposition(rt, rt.tables()...)
	return rt
}

// Kind is part of the RowType interface.
func (rt *ProductRowType) Kind() Kind { return ProductKind }

// Left returns the row type of the left side.
func (rt *ProductRowType) Left() RowType { return rt.first }

// Right returns the row type of the right side.
func (rt *ProductRowType) Right() RowType { return rt.second }

// Branch returns the row type of the branch table shared by both sides.
func (rt *ProductRowType) Branch() *TableRowType { return rt.branch }

// FieldCount is part of the RowType interface.
func (rt *ProductRowType) FieldCount() int { return rt.nFields }

// TypeAt is part of the RowType interface.
func (rt *ProductRowType) TypeAt(i int) *types.T {
	checkField(rt, i)
	if n := rt.first.FieldCount(); i >= n {
		return rt.second.TypeAt(i - n + rt.branch.FieldCount())
	}
	return rt.first.TypeAt(i)
}

// HKey is part of the RowType interface. Product rows combine rows from two
// branches and have no hkey.
func (rt *ProductRowType) HKey() *cat.HKey { return nil }

// HasTable is part of the RowType interface.
func (rt *ProductRowType) HasTable() bool { return false }

// Table is part of the RowType interface.
func (rt *ProductRowType) Table() cat.Table { return noTable(rt) }

// TypeComposition is part of the RowType interface.
func (rt *ProductRowType) TypeComposition() *TypeComposition { return rt.composition }

// Explain is part of the RowType interface.
func (rt *ProductRowType) Explain() *Explainer {
	e := newExplainer(ProductKind.String())
	e.addChild(LabelLeftType, rt.first.Explain())
	e.addChild(LabelRightType, rt.second.Explain())
	e.addf(LabelBranchTable, "%s", rt.branch.table.Name())
	return e
}

func (rt *ProductRowType) String() string { return redact.StringWithoutMarkers(rt) }

// SafeFormat implements the redact.SafeFormatter interface.
func (rt *ProductRowType) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("product(%s, %s, %s)", rt.first, rt.branch.table.Name().Table, rt.second)
}
