// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package rowtype

import (
	"testing"

	"github.com/geophile/sql-layer-sub008/pkg/sql/types"
	"github.com/stretchr/testify/require"
)

func TestProjectedRowType(t *testing.T) {
	f := newFixture(t, coiDef)

	exprs := []Expr{
		testExpr{text: "cid", typ: types.Int},
		testExpr{text: "upper(name)", typ: types.String},
	}
	p := f.schema.NewProjectType(exprs)
	exprs[0] = testExpr{text: "changed", typ: types.Bool}

	require.Equal(t, ProjectedKind, p.Kind())
	require.Equal(t, 2, p.FieldCount())
	require.Equal(t, []*types.T{types.Int, types.String}, fieldTypes(p))
	require.Equal(t, "cid", p.Expressions()[0].String())
	require.Nil(t, p.HKey())
	require.Nil(t, p.TypeComposition())
	require.False(t, p.HasTable())
	require.Equal(t, "project(cid, upper(name))", p.String())

	empty := f.schema.NewProjectType(nil)
	require.Equal(t, 0, empty.FieldCount())
	requireAssertionPanic(t, "field 0 out of range", func() { empty.TypeAt(0) })
}

func TestAggregatedRowType(t *testing.T) {
	f := newFixture(t, coiDef)
	co := f.schema.NewFlattenType(f.customer, f.order)

	a := f.schema.NewAggregateType(co, 2, []*types.T{types.Int, types.Decimal})
	require.Equal(t, AggregatedKind, a.Kind())
	require.Same(t, co, a.Base())
	require.Equal(t, 2, a.InputsIndex())
	require.Equal(t, 4, a.FieldCount())
	require.Equal(t, []*types.T{types.Int, types.VarChar, types.Int, types.Decimal}, fieldTypes(a))
	require.Nil(t, a.HKey())
	require.Nil(t, a.TypeComposition())
	require.Equal(t,
		"aggregate(flatten(table(test.customer), table(test.order)), 2, INT8, DECIMAL)",
		a.String())

	// Grouping on nothing or on every field are both allowed.
	require.Equal(t, 1, f.schema.NewAggregateType(co, 0, []*types.T{types.Int}).FieldCount())
	require.Equal(t, 5, f.schema.NewAggregateType(co, 5, nil).FieldCount())

	requireAssertionPanic(t, "inputs index 6 out of range", func() {
		f.schema.NewAggregateType(co, 6, nil)
	})
	requireAssertionPanic(t, "inputs index -1 out of range", func() {
		f.schema.NewAggregateType(co, -1, nil)
	})
}

func TestValuesRowType(t *testing.T) {
	f := newFixture(t, coiDef)

	v := f.schema.NewValuesType(types.Int, types.String, types.Geometry)
	require.Equal(t, ValuesKind, v.Kind())
	require.Equal(t, []*types.T{types.Int, types.String, types.Geometry}, fieldTypes(v))
	require.Nil(t, v.HKey())
	require.Nil(t, v.TypeComposition())
	require.Equal(t, "values(INT8, STRING, GEOMETRY)", v.String())
	requireAssertionPanic(t, "has no backing table", func() { v.Table() })
}
