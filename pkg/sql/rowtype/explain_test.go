// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package rowtype

import (
	"testing"

	"github.com/cockroachdb/redact"
	"github.com/geophile/sql-layer-sub008/pkg/sql/types"
	"github.com/stretchr/testify/require"
)

func TestExplainFlatten(t *testing.T) {
	f := newFixture(t, coiDef)
	co := f.schema.NewFlattenType(f.customer, f.order)

	const exp = `flatten
 ├── parent type
 │    └── table
 │         ├── table schema: test
 │         └── table name: customer
 └── child type
      └── table
           ├── table schema: test
           └── table name: order
`
	require.Equal(t, exp, FormatExplain(co))

	e := co.Explain()
	require.Equal(t, "flatten", e.Name)
	parent := e.Get(LabelParentType)
	require.Len(t, parent, 1)
	require.Equal(t, "customer", parent[0].Child.Get(LabelTableName)[0].Value)
	require.Empty(t, e.Get(LabelIndexName))
}

func TestExplainProduct(t *testing.T) {
	f := newFixture(t, coiDef)
	p := f.schema.NewProductType(f.order, nil, f.order)

	const exp = `product
 ├── left type
 │    └── table
 │         ├── table schema: test
 │         └── table name: order
 ├── right type
 │    └── table
 │         ├── table schema: test
 │         └── table name: order
 └── branch table: test.order
`
	require.Equal(t, exp, FormatExplain(p))
}

func TestExplainIndex(t *testing.T) {
	f := newFixture(t, coiDef)

	const exp = `index
 ├── table schema: test
 ├── table name: place
 ├── index name: geo
 ├── spatial dimensions: 2
 ├── first spatial argument: 0
 └── layout: physical
`
	require.Equal(t, exp, FormatExplain(f.index("place", "geo").PhysicalRowType()))

	e := f.groupIndex("customer", "name_total").Explain()
	require.Equal(t, "name_total", e.Get(LabelIndexName)[0].Value)
	require.Equal(t, "order", e.Get(LabelTableName)[0].Value)
	require.Empty(t, e.Get(LabelSpatialDimensions))
}

func TestExplainDerived(t *testing.T) {
	f := newFixture(t, coiDef)

	p := f.schema.NewProjectType([]Expr{
		testExpr{text: "a + 1", typ: types.Int},
		testExpr{text: "b", typ: types.String},
	})
	require.Equal(t, `project
 ├── expression: a + 1
 └── expression: b
`, FormatExplain(p))

	a := f.schema.NewAggregateType(f.customer, 1, []*types.T{types.Int})
	require.Equal(t, `aggregate
 ├── base type
 │    └── table
 │         ├── table schema: test
 │         └── table name: customer
 ├── grouping fields: 1
 └── aggregate: INT8
`, FormatExplain(a))

	v := f.schema.NewValuesType(types.Bool)
	require.Equal(t, "values\n └── type: BOOL\n", FormatExplain(v))

	h := f.schema.HKeyRowType(f.order.Table())
	require.Equal(t, "hkey\n ├── table schema: test\n └── table name: order\n", FormatExplain(h))
}

func TestRedaction(t *testing.T) {
	f := newFixture(t, coiDef)
	co := f.schema.NewFlattenType(f.customer, f.order)

	require.Equal(t,
		redact.RedactableString("flatten(table(‹test›.‹customer›), table(‹test›.‹order›))"),
		redact.Sprint(co))
	require.Equal(t,
		redact.RedactableString("flatten(table(‹×›.‹×›), table(‹×›.‹×›))"),
		redact.Sprint(co).Redact())
	require.Equal(t, co.String(), redact.Sprint(co).StripMarkers())
}
