// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package rowtype

import (
	"context"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/logtags"
	"github.com/geophile/sql-layer-sub008/pkg/sql/cat"
	"github.com/geophile/sql-layer-sub008/pkg/sql/types"
	"github.com/geophile/sql-layer-sub008/pkg/util/log"
	"github.com/geophile/sql-layer-sub008/pkg/util/syncutil"
	"github.com/google/btree"
)

// systemSchemas are the schemas whose tables are excluded from
// UserTableRowTypes.
var systemSchemas = map[string]struct{}{
	"information_schema": {},
	"security_schema":    {},
	"sys":                {},
}

// Schema mints and owns the row types of one catalog version. It holds one
// TableRowType and one HKeyRowType per table, and one IndexRowType per
// table-local or group index. A Schema is immutable once NewSchema returns,
// apart from its id counter and ancestry memo, which are safe for concurrent
// use; lookups and factory methods may be called from any goroutine.
type Schema struct {
	catalog cat.Catalog

	mu struct {
		syncutil.Mutex
		// nextID is the id of the next row type to be created. It starts
		// above the largest table id, which table row types use as their own.
		nextID TypeID
	}

	// rowTypes holds the catalog row types ordered by id. It is not modified
	// after construction, so concurrent reads are safe.
	rowTypes           *btree.BTree
	tableRowTypes      map[cat.StableID]*TableRowType
	hkeyRowTypes       map[cat.StableID]*HKeyRowType
	groupIndexRowTypes []*IndexRowType

	ancestry ancestryMemo
}

type rowTypeItem struct {
	rt RowType
}

func (i rowTypeItem) Less(than btree.Item) bool {
	return i.rt.ID() < itemID(than)
}

// idKey is a btree search key.
type idKey TypeID

func (k idKey) Less(than btree.Item) bool {
	return TypeID(k) < itemID(than)
}

func itemID(i btree.Item) TypeID {
	if k, ok := i.(idKey); ok {
		return TypeID(k)
	}
	return i.(rowTypeItem).rt.ID()
}

// NewSchema builds the row types of every table and index of the catalog.
func NewSchema(ctx context.Context, catalog cat.Catalog) (_ *Schema, err error) {
	ctx = logtags.AddTag(ctx, "schema", nil)
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrap(CatchError(r), "building schema")
		}
	}()

	s := &Schema{
		catalog:       catalog,
		rowTypes:      btree.New(8),
		tableRowTypes: make(map[cat.StableID]*TableRowType, catalog.TableCount()),
		hkeyRowTypes:  make(map[cat.StableID]*HKeyRowType, catalog.TableCount()),
	}

	// Table row types take their table's id, so the counter for every other
	// row type starts above the largest one.
	var maxTableID cat.StableID
	seen := make(map[cat.StableID]cat.Table, catalog.TableCount())
	for i := 0; i < catalog.TableCount(); i++ {
		t := catalog.Table(i)
		if prev, ok := seen[t.ID()]; ok {
			return nil, errors.Newf("tables %s and %s have the same id %d", prev.Name(), t.Name(), t.ID())
		}
		seen[t.ID()] = t
		if t.ID() > maxTableID {
			maxTableID = t.ID()
		}
	}
	if maxTableID >= math.MaxInt64 {
		return nil, errors.Newf("table id %d out of range", maxTableID)
	}
	s.mu.nextID = TypeID(maxTableID) + 1

	for i := 0; i < catalog.TableCount(); i++ {
		t := catalog.Table(i)
		trt := newTableRowType(s, t)
		s.register(trt)
		s.tableRowTypes[t.ID()] = trt

		hrt := newHKeyRowType(s, s.nextTypeID(), t.HKey())
		s.register(hrt)
		s.hkeyRowTypes[t.ID()] = hrt

		for j := 0; j < t.IndexCount(); j++ {
			irt := newIndexRowType(s, trt, t.Index(j))
			s.registerIndex(irt)
			trt.addIndexRowType(irt)
		}
		log.VEventf(ctx, 2, "table %s: table row type %d, hkey row type %d, %d index row types",
			t.Name(), trt.ID(), hrt.ID(), t.IndexCount())
	}

	for i := 0; i < catalog.GroupCount(); i++ {
		g := catalog.Group(i)
		for j := 0; j < g.IndexCount(); j++ {
			idx := g.Index(j)
			trt := s.TableRowType(idx.Table())
			if trt == nil {
				return nil, errors.Newf("group index %s: table %s is not in the catalog", idx.Name(), idx.Table().Name())
			}
			irt := newIndexRowType(s, trt, idx)
			s.registerIndex(irt)
			s.groupIndexRowTypes = append(s.groupIndexRowTypes, irt)
		}
	}
	log.VEventf(ctx, 1, "built %d row types for %d tables and %d group indexes",
		s.rowTypes.Len(), catalog.TableCount(), len(s.groupIndexRowTypes))
	return s, nil
}

func (s *Schema) nextTypeID() TypeID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.mu.nextID
	s.mu.nextID++
	return id
}

func (s *Schema) register(rt RowType) {
	if prev := s.rowTypes.ReplaceOrInsert(rowTypeItem{rt: rt}); prev != nil {
		panic(errors.AssertionFailedf("%s and %s have the same id %d", prev.(rowTypeItem).rt, rt, rt.ID()))
	}
}

func (s *Schema) registerIndex(irt *IndexRowType) {
	s.register(irt)
	if p := irt.physical; p != irt {
		s.register(p)
	}
}

// checkOwned panics unless every row type was created by s.
func (s *Schema) checkOwned(rts ...RowType) {
	for _, rt := range rts {
		if rt.Schema() != s {
			panic(errors.AssertionFailedf("%s belongs to a different schema", rt))
		}
	}
}

// Catalog returns the catalog the schema was built from.
func (s *Schema) Catalog() cat.Catalog { return s.catalog }

// RowType returns the catalog row type with the given id, or nil if there is
// none. Derived row types are not registered with the schema.
func (s *Schema) RowType(id TypeID) RowType {
	if item := s.rowTypes.Get(idKey(id)); item != nil {
		return item.(rowTypeItem).rt
	}
	return nil
}

// TableRowType returns the row type of the given table, or nil if the table
// is not part of the schema's catalog.
func (s *Schema) TableRowType(t cat.Table) *TableRowType {
	if rt, ok := s.tableRowTypes[t.ID()]; ok && rt.table == t {
		return rt
	}
	return nil
}

// TableRowTypeByID returns the row type of the table with the given id, or
// nil.
func (s *Schema) TableRowTypeByID(id cat.StableID) *TableRowType {
	return s.tableRowTypes[id]
}

// HKeyRowType returns the row type of the given table's hierarchical key, or
// nil if the table is not part of the schema's catalog.
func (s *Schema) HKeyRowType(t cat.Table) *HKeyRowType {
	if rt, ok := s.hkeyRowTypes[t.ID()]; ok && rt.hkey.Table() == t {
		return rt
	}
	return nil
}

// IndexRowType returns the row type of the given table-local or group index,
// or nil if the index is not part of the schema's catalog.
func (s *Schema) IndexRowType(idx cat.Index) *IndexRowType {
	if idx.IsGroupIndex() {
		for _, rt := range s.groupIndexRowTypes {
			if rt.index == idx {
				return rt
			}
		}
		return nil
	}
	trt := s.TableRowType(idx.Table())
	if trt == nil {
		return nil
	}
	if rt := trt.IndexRowType(idx.ID()); rt != nil && rt.index == idx {
		return rt
	}
	return nil
}

// GroupIndexRowTypes returns the row types of all group indexes. The slice
// must not be modified.
func (s *Schema) GroupIndexRowTypes() []*IndexRowType {
	return s.groupIndexRowTypes
}

// RowTypes returns the row types created with the schema, in id order. These
// are the table, hkey and index row types; derived row types are not
// included.
func (s *Schema) RowTypes() []RowType {
	res := make([]RowType, 0, s.rowTypes.Len())
	s.rowTypes.Ascend(func(i btree.Item) bool {
		res = append(res, i.(rowTypeItem).rt)
		return true
	})
	return res
}

// TableRowTypes returns the row types of all tables in id order.
func (s *Schema) TableRowTypes() []*TableRowType {
	var res []*TableRowType
	s.rowTypes.Ascend(func(i btree.Item) bool {
		if rt, ok := i.(rowTypeItem).rt.(*TableRowType); ok {
			res = append(res, rt)
		}
		return true
	})
	return res
}

// UserTableRowTypes returns the row types of all tables outside the system
// schemas, in id order.
func (s *Schema) UserTableRowTypes() []*TableRowType {
	var res []*TableRowType
	for _, rt := range s.TableRowTypes() {
		if _, ok := systemSchemas[rt.table.Name().Schema]; !ok {
			res = append(res, rt)
		}
	}
	return res
}

// NewFlattenType returns the row type of parent rows joined with their child
// rows.
func (s *Schema) NewFlattenType(parent, child RowType) *FlattenedRowType {
	s.checkOwned(parent, child)
	return newFlattenedRowType(s, parent, child)
}

// NewProductType returns the row type combining left and right rows that
// share the branch table. If branch is nil, it is the deepest table common to
// both sides; the call panics if there is none. An explicit branch must be a
// table of both sides.
func (s *Schema) NewProductType(left RowType, branch *TableRowType, right RowType) *ProductRowType {
	s.checkOwned(left, right)
	if branch == nil {
		lc, rc := left.TypeComposition(), right.TypeComposition()
		if lc == nil || rc == nil {
			panic(errors.AssertionFailedf("product of %s and %s requires table provenance", left, right))
		}
		t := deepestCommonTable(lc, rc)
		if t == nil {
			panic(errors.AssertionFailedf("%s and %s have no common branch table", left, right))
		}
		branch = s.TableRowType(t)
	} else {
		s.checkOwned(branch)
		for _, side := range [...]RowType{left, right} {
			if tc := side.TypeComposition(); tc != nil && !tc.Contains(branch.Table()) {
				panic(errors.AssertionFailedf("branch %s is not a table of %s", branch, side))
			}
		}
	}
	return newProductRowType(s, left, branch, right)
}

// NewProjectType returns the row type of rows computed by exprs.
func (s *Schema) NewProjectType(exprs []Expr) *ProjectedRowType {
	return newProjectedRowType(s, exprs)
}

// NewAggregateType returns the row type of base rows grouped on their first
// inputsIndex fields, with one additional field per aggregate type.
func (s *Schema) NewAggregateType(base RowType, inputsIndex int, aggTypes []*types.T) *AggregatedRowType {
	s.checkOwned(base)
	return newAggregatedRowType(s, base, inputsIndex, aggTypes)
}

// NewValuesType returns the row type of literal rows with the given field
// types.
func (s *Schema) NewValuesType(fieldTypes ...*types.T) *ValuesRowType {
	return newValuesRowType(s, fieldTypes)
}
