// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package rowtype

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/geophile/sql-layer-sub008/pkg/sql/cat"
	"github.com/geophile/sql-layer-sub008/pkg/sql/types"
)

// Expr is a scalar expression computing one field of a projected row. Only
// its result type is relevant to the row type.
type Expr interface {
	fmt.Stringer

	// ResultType returns the type of the values the expression produces.
	ResultType() *types.T
}

// ProjectedRowType is the row type of rows computed by a list of
// expressions.
type ProjectedRowType struct {
	rowTypeBase
	exprs []Expr
}

func newProjectedRowType(schema *Schema, exprs []Expr) *ProjectedRowType {
	return &ProjectedRowType{
		rowTypeBase: rowTypeBase{schema: schema, id: schema.nextTypeID()},
		exprs:       append([]Expr(nil), exprs...),
	}
}

// Kind is part of the RowType interface.
func (rt *ProjectedRowType) Kind() Kind { return ProjectedKind }

// Expressions returns the expressions computing the fields. The slice must
// not be modified.
func (rt *ProjectedRowType) Expressions() []Expr { return rt.exprs }

// FieldCount is part of the RowType interface.
func (rt *ProjectedRowType) FieldCount() int { return len(rt.exprs) }

// TypeAt is part of the RowType interface.
func (rt *ProjectedRowType) TypeAt(i int) *types.T {
	checkField(rt, i)
	return rt.exprs[i].ResultType()
}

// HKey is part of the RowType interface.
func (rt *ProjectedRowType) HKey() *cat.HKey { return nil }

// HasTable is part of the RowType interface.
func (rt *ProjectedRowType) HasTable() bool { return false }

// Table is part of the RowType interface.
func (rt *ProjectedRowType) Table() cat.Table { return noTable(rt) }

// TypeComposition is part of the RowType interface.
func (rt *ProjectedRowType) TypeComposition() *TypeComposition { return nil }

// Explain is part of the RowType interface.
func (rt *ProjectedRowType) Explain() *Explainer {
	e := newExplainer(ProjectedKind.String())
	for _, expr := range rt.exprs {
		e.addf(LabelExpression, "%s", expr)
	}
	return e
}

func (rt *ProjectedRowType) String() string { return redact.StringWithoutMarkers(rt) }

// SafeFormat implements the redact.SafeFormatter interface.
func (rt *ProjectedRowType) SafeFormat(w redact.SafePrinter, _ rune) {
	w.SafeString("project(")
	for i, expr := range rt.exprs {
		if i > 0 {
			w.SafeString(", ")
		}
		w.Print(expr)
	}
	w.SafeRune(')')
}

// AggregatedRowType is the row type of grouped rows. The first inputsIndex
// fields of the input row type are carried through as grouping fields,
// followed by one field per aggregate.
type AggregatedRowType struct {
	rowTypeBase
	base        RowType
	inputsIndex int
	aggTypes    []*types.T
}

func newAggregatedRowType(
	schema *Schema, base RowType, inputsIndex int, aggTypes []*types.T,
) *AggregatedRowType {
	if inputsIndex < 0 || inputsIndex > base.FieldCount() {
		panic(errors.AssertionFailedf(
			"inputs index %d out of range for %s with %d fields", inputsIndex, base, base.FieldCount()))
	}
	return &AggregatedRowType{
		rowTypeBase: rowTypeBase{schema: schema, id: schema.nextTypeID()},
		base:        base,
		inputsIndex: inputsIndex,
		aggTypes:    append([]*types.T(nil), aggTypes...),
	}
}

// Kind is part of the RowType interface.
func (rt *AggregatedRowType) Kind() Kind { return AggregatedKind }

// Base returns the row type of the rows being grouped.
func (rt *AggregatedRowType) Base() RowType { return rt.base }

// InputsIndex returns the number of grouping fields.
func (rt *AggregatedRowType) InputsIndex() int { return rt.inputsIndex }

// FieldCount is part of the RowType interface.
func (rt *AggregatedRowType) FieldCount() int { return rt.inputsIndex + len(rt.aggTypes) }

// TypeAt is part of the RowType interface.
func (rt *AggregatedRowType) TypeAt(i int) *types.T {
	checkField(rt, i)
	if i < rt.inputsIndex {
		return rt.base.TypeAt(i)
	}
	return rt.aggTypes[i-rt.inputsIndex]
}

// HKey is part of the RowType interface.
func (rt *AggregatedRowType) HKey() *cat.HKey { return nil }

// HasTable is part of the RowType interface.
func (rt *AggregatedRowType) HasTable() bool { return false }

// Table is part of the RowType interface.
func (rt *AggregatedRowType) Table() cat.Table { return noTable(rt) }

// TypeComposition is part of the RowType interface.
func (rt *AggregatedRowType) TypeComposition() *TypeComposition { return nil }

// Explain is part of the RowType interface.
func (rt *AggregatedRowType) Explain() *Explainer {
	e := newExplainer(AggregatedKind.String())
	e.addChild(LabelBaseType, rt.base.Explain())
	e.addf(LabelGroupingFields, "%d", rt.inputsIndex)
	for _, t := range rt.aggTypes {
		e.addf(LabelAggregate, "%s", t)
	}
	return e
}

func (rt *AggregatedRowType) String() string { return redact.StringWithoutMarkers(rt) }

// SafeFormat implements the redact.SafeFormatter interface.
func (rt *AggregatedRowType) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("aggregate(%s, %d", rt.base, redact.Safe(rt.inputsIndex))
	for _, t := range rt.aggTypes {
		w.Printf(", %s", t)
	}
	w.SafeRune(')')
}

// ValuesRowType is the row type of literal rows.
type ValuesRowType struct {
	rowTypeBase
	fieldTypes []*types.T
}

func newValuesRowType(schema *Schema, fieldTypes []*types.T) *ValuesRowType {
	return &ValuesRowType{
		rowTypeBase: rowTypeBase{schema: schema, id: schema.nextTypeID()},
		fieldTypes:  append([]*types.T(nil), fieldTypes...),
	}
}

// Kind is part of the RowType interface.
func (rt *ValuesRowType) Kind() Kind { return ValuesKind }

// FieldCount is part of the RowType interface.
func (rt *ValuesRowType) FieldCount() int { return len(rt.fieldTypes) }

// TypeAt is part of the RowType interface.
func (rt *ValuesRowType) TypeAt(i int) *types.T {
	checkField(rt, i)
	return rt.fieldTypes[i]
}

// HKey is part of the RowType interface.
func (rt *ValuesRowType) HKey() *cat.HKey { return nil }

// HasTable is part of the RowType interface.
func (rt *ValuesRowType) HasTable() bool { return false }

// Table is part of the RowType interface.
func (rt *ValuesRowType) Table() cat.Table { return noTable(rt) }

// TypeComposition is part of the RowType interface.
func (rt *ValuesRowType) TypeComposition() *TypeComposition { return nil }

// Explain is part of the RowType interface.
func (rt *ValuesRowType) Explain() *Explainer {
	e := newExplainer(ValuesKind.String())
	for _, t := range rt.fieldTypes {
		e.addf(LabelType, "%s", t)
	}
	return e
}

func (rt *ValuesRowType) String() string { return redact.StringWithoutMarkers(rt) }

// SafeFormat implements the redact.SafeFormatter interface.
func (rt *ValuesRowType) SafeFormat(w redact.SafePrinter, _ rune) {
	w.SafeString("values(")
	for i, t := range rt.fieldTypes {
		if i > 0 {
			w.SafeString(", ")
		}
		w.Print(t)
	}
	w.SafeRune(')')
}
