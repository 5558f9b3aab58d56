// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package rowtype

import (
	"context"
	"testing"

	"github.com/geophile/sql-layer-sub008/pkg/sql/cat/testcat"
	"github.com/geophile/sql-layer-sub008/pkg/sql/types"
	"github.com/stretchr/testify/require"
)

// coiDef is a customer/order/item group, plus a customer/address branch and
// a separate group holding spatial indexes. Table ids are 10 to 14, so
// non-table row types are numbered from 15.
const coiDef = `
tables:
  - name: customer
    id: 10
    columns: [cid int, name varchar]
    primary_key: [cid]
  - name: order
    parent: customer
    columns: [oid int, cid int, total decimal]
    primary_key: [oid]
    indexes:
      - name: total_idx
        id: 4
        columns: [total]
  - name: item
    parent: order
    columns: [sku varchar, qty int]
  - name: address
    parent: customer
    columns: [aid int, cid int, city varchar]
    primary_key: [aid]
  - name: place
    columns: [lat float, lon float, label string]
    indexes:
      - name: geo
        columns: [lat, lon, label]
        spatial: {dimensions: 2, first_arg: 0}
      - name: geo2
        columns: [label, lat, lon, rowid]
        spatial: {dimensions: 2, first_arg: 1}
groups:
  - name: customer
    indexes:
      - name: name_total
        columns: [customer.name, order.total]
`

// Ids assigned by NewSchema for coiDef.
const (
	customerHKeyID     TypeID = 15
	orderTotalIdxID    TypeID = 19
	placeGeoID         TypeID = 26
	placeGeoPhysicalID TypeID = 27
	nameTotalID        TypeID = 30
	firstDerivedID     TypeID = 31
)

type fixture struct {
	catalog *testcat.Catalog
	schema  *Schema

	customer, order, item, address, place *TableRowType
}

func newFixture(t *testing.T, def string) *fixture {
	t.Helper()
	tc, err := testcat.Load(def)
	require.NoError(t, err)
	s, err := NewSchema(context.Background(), tc)
	require.NoError(t, err)
	f := &fixture{catalog: tc, schema: s}
	lookup := func(name string) *TableRowType {
		if tab := tc.TableByName(name); tab != nil {
			return s.TableRowType(tab)
		}
		return nil
	}
	f.customer = lookup("customer")
	f.order = lookup("order")
	f.item = lookup("item")
	f.address = lookup("address")
	f.place = lookup("place")
	return f
}

func (f *fixture) index(table, index string) *IndexRowType {
	return f.schema.IndexRowType(f.catalog.TableByName(table).IndexByName(index))
}

func (f *fixture) groupIndex(group, index string) *IndexRowType {
	return f.schema.IndexRowType(f.catalog.GroupByName(group).IndexByName(index))
}

// testExpr is an opaque expression of a fixed type.
type testExpr struct {
	text string
	typ  *types.T
}

func (e testExpr) String() string { return e.text }

func (e testExpr) ResultType() *types.T { return e.typ }

// fieldTypes returns the types of all fields of rt.
func fieldTypes(rt RowType) []*types.T {
	res := make([]*types.T, rt.FieldCount())
	for i := range res {
		res[i] = rt.TypeAt(i)
	}
	return res
}

// requireAssertionPanic runs fn and checks that it panics with an error
// whose message contains msg.
func requireAssertionPanic(t *testing.T, msg string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err := CatchError(r)
		require.Contains(t, err.Error(), msg)
	}()
	fn()
}
