// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package rowtype

import (
	"testing"

	"github.com/geophile/sql-layer-sub008/pkg/sql/types"
	"github.com/google/go-cmp/cmp"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"
)

func TestFlattenedRowType(t *testing.T) {
	f := newFixture(t, coiDef)

	co := f.schema.NewFlattenType(f.customer, f.order)
	require.Equal(t, FlattenedKind, co.Kind())
	require.Equal(t, 5, co.FieldCount())
	require.Equal(t, f.customer.FieldCount()+f.order.FieldCount(), co.FieldCount())
	require.Equal(t,
		[]*types.T{types.Int, types.VarChar, types.Int, types.Int, types.Decimal},
		fieldTypes(co))
	require.Same(t, f.order.HKey(), co.HKey())
	require.Equal(t, "(customer: cid)(order: oid)", co.HKey().String())
	require.False(t, co.HasTable())
	require.Same(t, f.customer, co.Parent())
	require.Same(t, f.order, co.Child())
	require.Equal(t, "flatten(table(test.customer), table(test.order))", co.String())
	requireAssertionPanic(t, "has no backing table", func() { co.Table() })

	coi := f.schema.NewFlattenType(co, f.item)
	require.Equal(t, co.FieldCount()+f.item.FieldCount(), coi.FieldCount())
	require.Same(t, types.VarChar, coi.TypeAt(5))
	require.Same(t, f.item.HKey(), coi.HKey())
	require.Equal(t, "{customer, order, item}", coi.TypeComposition().String())

	requireAssertionPanic(t, "both need table provenance", func() {
		f.schema.NewFlattenType(f.customer, f.schema.NewValuesType(types.Int))
	})
	requireAssertionPanic(t, "has no hkey", func() {
		p := f.schema.NewProductType(co, nil, f.schema.NewFlattenType(f.customer, f.address))
		f.schema.NewFlattenType(f.customer, p)
	})
}

func TestProductRowType(t *testing.T) {
	f := newFixture(t, coiDef)
	co := f.schema.NewFlattenType(f.customer, f.order)
	ca := f.schema.NewFlattenType(f.customer, f.address)

	p := f.schema.NewProductType(co, nil, ca)
	require.Equal(t, ProductKind, p.Kind())
	require.Same(t, f.customer, p.Branch())
	require.Equal(t, co.FieldCount()+ca.FieldCount()-f.customer.FieldCount(), p.FieldCount())
	require.Equal(t, 8, p.FieldCount())
	require.Equal(t,
		[]*types.T{
			types.Int, types.VarChar, types.Int, types.Int, types.Decimal,
			types.Int, types.Int, types.VarChar,
		},
		fieldTypes(p))
	require.Nil(t, p.HKey())
	require.False(t, p.HasTable())
	require.Same(t, co, p.Left())
	require.Same(t, ca, p.Right())
	require.Equal(t,
		"product(flatten(table(test.customer), table(test.order)), customer, "+
			"flatten(table(test.customer), table(test.address)))",
		p.String())

	// An explicit branch need not be the deepest common table.
	coi := f.schema.NewFlattenType(co, f.item)
	explicit := f.schema.NewProductType(coi, f.customer, ca)
	require.Same(t, f.customer, explicit.Branch())
	inferred := f.schema.NewProductType(coi, nil, co)
	require.Same(t, f.order, inferred.Branch())
	require.Equal(t, coi.FieldCount()+co.FieldCount()-f.order.FieldCount(), inferred.FieldCount())

	requireAssertionPanic(t, "have no common branch table", func() {
		f.schema.NewProductType(f.order, nil, f.place)
	})
	requireAssertionPanic(t, "requires table provenance", func() {
		f.schema.NewProductType(f.order, nil, f.schema.NewValuesType(types.Int))
	})
	requireAssertionPanic(t, "has fewer fields than branch", func() {
		f.schema.NewProductType(f.order, f.order, f.schema.NewValuesType(types.Int))
	})
	requireAssertionPanic(t, "is not a table of", func() {
		f.schema.NewProductType(coi, f.order, ca)
	})
	requireAssertionPanic(t, "is not a table of", func() {
		f.schema.NewProductType(f.address, f.customer, ca)
	})
}

func TestEqualAndHash(t *testing.T) {
	f := newFixture(t, coiDef)
	co1 := f.schema.NewFlattenType(f.customer, f.order)
	co2 := f.schema.NewFlattenType(f.customer, f.order)
	ca := f.schema.NewFlattenType(f.customer, f.address)
	require.NotEqual(t, co1.ID(), co2.ID())

	require.True(t, Equal(co1, co2))
	require.Equal(t, Hash(co1), Hash(co2))
	require.Empty(t, pretty.Diff(co1.Explain(), co2.Explain()))
	require.NotEmpty(t, cmp.Diff(co1.Explain(), ca.Explain()))

	p1 := f.schema.NewProductType(co1, nil, ca)
	p2 := f.schema.NewProductType(co2, f.customer, ca)
	require.True(t, Equal(p1, p2))
	require.Equal(t, Hash(p1), Hash(p2))

	require.False(t, Equal(co1, ca))
	require.NotEqual(t, Hash(co1), Hash(ca))
	require.False(t, Equal(co1, f.customer))
	require.True(t, Equal(f.customer, f.customer))
	require.NotEqual(t, Hash(f.customer), Hash(f.order))

	// Compound row types of different kinds are never equal, even over the
	// same inputs.
	fp := f.schema.NewFlattenType(f.customer, f.customer)
	pp := f.schema.NewProductType(f.customer, f.customer, f.customer)
	require.False(t, Equal(fp, pp))

	// Other row types are only equal to themselves.
	v1 := f.schema.NewValuesType(types.Int)
	v2 := f.schema.NewValuesType(types.Int)
	require.False(t, Equal(v1, v2))
	require.True(t, Equal(v1, v1))
}
