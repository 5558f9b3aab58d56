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

// IndexRowType is the row type of an index's rows, backed by the leafmost
// table of the index.
//
// An index row type built by the schema has the index's declared columns as
// its fields. When the index is spatial, the Dimensions coordinate columns
// starting at FirstArg are stored as one packed ordinal; that stored layout is
// described by a second IndexRowType returned by PhysicalRowType. The physical
// row type has one INT8 field in place of the coordinate columns. Fields
// before it map to the same declared fields, and fields after it map to
// declared fields Dimensions-1 positions further on.
type IndexRowType struct {
	rowTypeBase
	table       cat.Table
	index       cat.Index
	composition *SingleBranchComposition
	fieldTypes  []*types.T

	// physical is the stored layout of the index: the physical row type of a
	// spatial index, and the receiver itself otherwise. It is nil on a
	// physical row type.
	physical *IndexRowType
	// declared is set only on the physical row type of a spatial index and
	// points back at the row type of the declared columns.
	declared *IndexRowType
}

// SpatialOrdinalType is the type of the field holding a packed spatial
// ordinal.
var SpatialOrdinalType = types.Int

func newIndexRowType(schema *Schema, tableType *TableRowType, index cat.Index) *IndexRowType {
	if !sameTable(tableType.table, index.Table()) {
		panic(errors.AssertionFailedf(
			"index %s belongs to %s, not %s", index.Name(), index.Table().Name(), tableType.table.Name()))
	}
	rt := &IndexRowType{
		rowTypeBase: rowTypeBase{schema: schema, id: schema.nextTypeID()},
		table:       tableType.table,
		index:       index,
	}
	rt.composition = newSingleBranchComposition(rt, indexTables(index))
	rt.fieldTypes = make([]*types.T, index.ColumnCount())
	for i := range rt.fieldTypes {
		rt.fieldTypes[i] = index.Column(i).Column.DatumType()
	}
	rt.physical = rt
	if cfg := index.GeoConfig(); cfg != nil {
		if err := cfg.Validate(index.ColumnCount()); err != nil {
			panic(errors.NewAssertionErrorWithWrappedErrf(err, "spatial index %s", index.Name()))
		}
		rt.physical = newSpatialIndexRowType(schema, rt)
	}
	return rt
}

func newSpatialIndexRowType(schema *Schema, declared *IndexRowType) *IndexRowType {
	cfg := declared.index.GeoConfig()
	rt := &IndexRowType{
		rowTypeBase: rowTypeBase{schema: schema, id: schema.nextTypeID()},
		table:       declared.table,
		index:       declared.index,
		declared:    declared,
	}
	rt.composition = newSingleBranchComposition(rt, declared.composition.tables)
	n := declared.FieldCount() - cfg.Dimensions + 1
	rt.fieldTypes = make([]*types.T, n)
	for i := range rt.fieldTypes {
		switch {
		case i < cfg.FirstArg:
			rt.fieldTypes[i] = declared.TypeAt(i)
		case i == cfg.FirstArg:
			rt.fieldTypes[i] = SpatialOrdinalType
		default:
			rt.fieldTypes[i] = declared.TypeAt(i + cfg.Dimensions - 1)
		}
	}
	return rt
}

// indexTables returns the tables contributing to an index: the branch from
// its rootmost table down to its leafmost table.
func indexTables(index cat.Index) []cat.Table {
	root := index.RootmostTable()
	var tables []cat.Table
	for t := index.Table(); t != nil; t = t.Parent() {
		tables = append(tables, t)
		if sameTable(t, root) {
			return tables
		}
	}
	panic(errors.AssertionFailedf(
		"%s is not an ancestor of %s", root.Name(), index.Table().Name()))
}

func sameTable(a, b cat.Table) bool {
	return a.ID() == b.ID()
}

// Kind is part of the RowType interface.
func (rt *IndexRowType) Kind() Kind { return IndexKind }

// FieldCount is part of the RowType interface.
func (rt *IndexRowType) FieldCount() int { return len(rt.fieldTypes) }

// TypeAt is part of the RowType interface.
func (rt *IndexRowType) TypeAt(i int) *types.T {
	checkField(rt, i)
	return rt.fieldTypes[i]
}

// HKey is part of the RowType interface. It is the hierarchical key of the
// leafmost table.
func (rt *IndexRowType) HKey() *cat.HKey { return rt.table.HKey() }

// HasTable is part of the RowType interface.
func (rt *IndexRowType) HasTable() bool { return true }

// Table is part of the RowType interface. It returns the leafmost table of the
// index.
func (rt *IndexRowType) Table() cat.Table { return rt.table }

// TypeComposition is part of the RowType interface.
func (rt *IndexRowType) TypeComposition() *TypeComposition { return &rt.composition.TypeComposition }

// SingleBranch is part of the SingleBranchRowType interface.
func (rt *IndexRowType) SingleBranch() *SingleBranchComposition { return rt.composition }

// Index returns the index whose rows this row type describes.
func (rt *IndexRowType) Index() cat.Index { return rt.index }

// IsSpatial returns true if the index is spatial.
func (rt *IndexRowType) IsSpatial() bool { return cat.IsSpatial(rt.index) }

// IsPhysical returns true for the stored layout of a spatial index.
func (rt *IndexRowType) IsPhysical() bool { return rt.declared != nil }

// DeclaredFieldCount returns the number of declared index columns. For the
// physical row type of a spatial index this is FieldCount plus
// Dimensions-1.
func (rt *IndexRowType) DeclaredFieldCount() int {
	if rt.declared != nil {
		return rt.FieldCount() + rt.index.GeoConfig().Dimensions - 1
	}
	return rt.FieldCount()
}

// DeclaredRowType returns the row type of the declared index columns: the
// receiver, unless it is the physical row type of a spatial index.
func (rt *IndexRowType) DeclaredRowType() *IndexRowType {
	if rt.declared != nil {
		return rt.declared
	}
	return rt
}

// PhysicalRowType returns the row type of the index as stored. It returns the
// receiver for non-spatial indexes. It panics if called on a physical row
// type.
func (rt *IndexRowType) PhysicalRowType() *IndexRowType {
	if rt.declared != nil {
		panic(errors.AssertionFailedf("%s is already a physical row type", rt))
	}
	return rt.physical
}

// Explain is part of the RowType interface.
func (rt *IndexRowType) Explain() *Explainer {
	e := newExplainer(IndexKind.String())
	e.addTable(rt.table)
	e.addf(LabelIndexName, "%s", rt.index.Name())
	if cfg := rt.index.GeoConfig(); cfg != nil {
		e.addf(LabelSpatialDimensions, "%d", cfg.Dimensions)
		e.addf(LabelFirstSpatialArgument, "%d", cfg.FirstArg)
		if rt.declared != nil {
			e.addf(LabelLayout, "physical")
		}
	}
	return e
}

func (rt *IndexRowType) String() string { return redact.StringWithoutMarkers(rt) }

// SafeFormat implements the redact.SafeFormatter interface.
func (rt *IndexRowType) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("index(%s.%s", rt.table.Name(), rt.index.Name())
	if rt.declared != nil {
		w.SafeString(", physical")
	}
	w.SafeRune(')')
}
