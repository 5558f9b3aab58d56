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

// TableRowType is the row type of a table's rows. Its fields are the table's
// columns, including hidden ones.
type TableRowType struct {
	rowTypeBase
	table       cat.Table
	composition *SingleBranchComposition

	// indexRowTypes is indexed by cat.IndexID. Slots of ids not used by the
	// table are nil.
	indexRowTypes []*IndexRowType
}

func newTableRowType(schema *Schema, table cat.Table) *TableRowType {
	rt := &TableRowType{
		rowTypeBase: rowTypeBase{schema: schema, id: TypeID(table.ID())},
		table:       table,
	}
	rt.composition = newSingleBranchComposition(rt, []cat.Table{table})
	return rt
}

// Kind is part of the RowType interface.
func (rt *TableRowType) Kind() Kind { return TableKind }

// FieldCount is part of the RowType interface.
func (rt *TableRowType) FieldCount() int { return rt.table.ColumnCount() }

// TypeAt is part of the RowType interface.
func (rt *TableRowType) TypeAt(i int) *types.T {
	checkField(rt, i)
	return rt.table.Column(i).DatumType()
}

// HKey is part of the RowType interface.
func (rt *TableRowType) HKey() *cat.HKey { return rt.table.HKey() }

// HasTable is part of the RowType interface.
func (rt *TableRowType) HasTable() bool { return true }

// Table is part of the RowType interface.
func (rt *TableRowType) Table() cat.Table { return rt.table }

// TypeComposition is part of the RowType interface.
func (rt *TableRowType) TypeComposition() *TypeComposition { return &rt.composition.TypeComposition }

// SingleBranch is part of the SingleBranchRowType interface.
func (rt *TableRowType) SingleBranch() *SingleBranchComposition { return rt.composition }

// IndexRowType returns the row type of the table's index with the given id,
// or nil if the table has no index with that id. It panics if id lies beyond
// the largest index id of the table.
func (rt *TableRowType) IndexRowType(id cat.IndexID) *IndexRowType {
	if id < 0 || int(id) >= len(rt.indexRowTypes) {
		panic(errors.AssertionFailedf(
			"index id %d out of range for %s with %d index slots", id, rt, len(rt.indexRowTypes)))
	}
	return rt.indexRowTypes[id]
}

// IndexRowTypes returns the row types of the table's indexes in id order.
func (rt *TableRowType) IndexRowTypes() []*IndexRowType {
	res := make([]*IndexRowType, 0, len(rt.indexRowTypes))
	for _, irt := range rt.indexRowTypes {
		if irt != nil {
			res = append(res, irt)
		}
	}
	return res
}

func (rt *TableRowType) addIndexRowType(irt *IndexRowType) {
	id := irt.index.ID()
	for int(id) >= len(rt.indexRowTypes) {
		rt.indexRowTypes = append(rt.indexRowTypes, nil)
	}
	if rt.indexRowTypes[id] != nil {
		panic(errors.AssertionFailedf("duplicate index id %d on %s", id, rt))
	}
	rt.indexRowTypes[id] = irt
}

// Explain is part of the RowType interface.
func (rt *TableRowType) Explain() *Explainer {
	e := newExplainer(TableKind.String())
	e.addTable(rt.table)
	return e
}

func (rt *TableRowType) String() string { return redact.StringWithoutMarkers(rt) }

// SafeFormat implements the redact.SafeFormatter interface.
func (rt *TableRowType) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("table(%s)", rt.table.Name())
}

// HKeyRowType is the row type of a table's hierarchical key. Its fields are
// the key's columns, rootmost segment first.
type HKeyRowType struct {
	rowTypeBase
	hkey        *cat.HKey
	composition *SingleBranchComposition
}

func newHKeyRowType(schema *Schema, id TypeID, hkey *cat.HKey) *HKeyRowType {
	rt := &HKeyRowType{
		rowTypeBase: rowTypeBase{schema: schema, id: id},
		hkey:        hkey,
	}
	rt.composition = newSingleBranchComposition(rt, []cat.Table{hkey.Table()})
	return rt
}

// Kind is part of the RowType interface.
func (rt *HKeyRowType) Kind() Kind { return HKeyKind }

// FieldCount is part of the RowType interface.
func (rt *HKeyRowType) FieldCount() int { return rt.hkey.ColumnCount() }

// TypeAt is part of the RowType interface.
func (rt *HKeyRowType) TypeAt(i int) *types.T {
	checkField(rt, i)
	return rt.hkey.Column(i).DatumType()
}

// HKey is part of the RowType interface.
func (rt *HKeyRowType) HKey() *cat.HKey { return rt.hkey }

// HasTable is part of the RowType interface. A hierarchical key row type
// identifies rows of its table without carrying them.
func (rt *HKeyRowType) HasTable() bool { return false }

// Table is part of the RowType interface.
func (rt *HKeyRowType) Table() cat.Table { return noTable(rt) }

// TypeComposition is part of the RowType interface.
func (rt *HKeyRowType) TypeComposition() *TypeComposition { return &rt.composition.TypeComposition }

// SingleBranch is part of the SingleBranchRowType interface.
func (rt *HKeyRowType) SingleBranch() *SingleBranchComposition { return rt.composition }

// Explain is part of the RowType interface.
func (rt *HKeyRowType) Explain() *Explainer {
	e := newExplainer(HKeyKind.String())
	e.addTable(rt.hkey.Table())
	return e
}

func (rt *HKeyRowType) String() string { return redact.StringWithoutMarkers(rt) }

// SafeFormat implements the redact.SafeFormatter interface.
func (rt *HKeyRowType) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("hkey(%s)", rt.hkey.Table().Name())
}
