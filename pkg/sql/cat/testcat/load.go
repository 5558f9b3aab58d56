// Copyright 2018 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package testcat

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/geophile/sql-layer-sub008/pkg/geo/geoindex"
	"github.com/geophile/sql-layer-sub008/pkg/sql/cat"
	"github.com/geophile/sql-layer-sub008/pkg/sql/types"
	yaml "gopkg.in/yaml.v2"
)

const (
	// defaultSchema is the schema of tables whose definition names none.
	defaultSchema = "test"

	// rowIDColumnName is the name of the hidden column added to tables
	// declared without a primary key.
	rowIDColumnName = "rowid"

	// primaryIndexName is the name of the generated primary index.
	primaryIndexName = "primary"
)

type catalogDef struct {
	Schema string     `yaml:"schema"`
	Tables []tableDef `yaml:"tables"`
	Groups []groupDef `yaml:"groups"`
}

type tableDef struct {
	Name       string     `yaml:"name"`
	Schema     string     `yaml:"schema"`
	ID         uint64     `yaml:"id"`
	Parent     string     `yaml:"parent"`
	Columns    []string   `yaml:"columns"`
	PrimaryKey []string   `yaml:"primary_key"`
	Indexes    []indexDef `yaml:"indexes"`
}

type indexDef struct {
	Name    string           `yaml:"name"`
	ID      int              `yaml:"id"`
	Columns []string         `yaml:"columns"`
	Spatial *geoindex.Config `yaml:"spatial"`
}

type groupDef struct {
	Name    string     `yaml:"name"`
	Indexes []indexDef `yaml:"indexes"`
}

// LoadFile reads a YAML catalog definition from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading catalog %s", path)
	}
	return Load(string(data))
}

// Load builds a catalog from its YAML definition. Tables must be listed after
// their parents. Every table gets a primary index with id 1; a table without
// a declared primary key also gets a hidden rowid column.
func Load(def string) (*Catalog, error) {
	var cd catalogDef
	if err := yaml.UnmarshalStrict([]byte(def), &cd); err != nil {
		return nil, errors.Wrap(err, "parsing catalog definition")
	}
	if cd.Schema == "" {
		cd.Schema = defaultSchema
	}
	tc := &Catalog{}

	var maxID cat.StableID
	for i := range cd.Tables {
		if id := cat.StableID(cd.Tables[i].ID); id > maxID {
			maxID = id
		}
	}
	for i := range cd.Tables {
		td := &cd.Tables[i]
		if td.ID == 0 {
			maxID++
			td.ID = uint64(maxID)
		}
		if err := tc.addTable(cd.Schema, td); err != nil {
			return nil, errors.Wrapf(err, "table %s", td.Name)
		}
	}
	for i := range cd.Groups {
		gd := &cd.Groups[i]
		g := tc.GroupByName(gd.Name)
		if g == nil {
			return nil, errors.Newf("group %s does not exist", gd.Name)
		}
		for j := range gd.Indexes {
			if err := tc.addGroupIndex(g, j, &gd.Indexes[j]); err != nil {
				return nil, errors.Wrapf(err, "group index %s", gd.Indexes[j].Name)
			}
		}
	}
	return tc, nil
}

func (tc *Catalog) addTable(schema string, td *tableDef) error {
	if td.Name == "" {
		return errors.New("table name is required")
	}
	if tc.TableByName(td.Name) != nil {
		return errors.Newf("table %s already exists", td.Name)
	}
	for _, other := range tc.tables {
		if other.TabID == cat.StableID(td.ID) {
			return errors.Newf("table id %d already used by %s", td.ID, other.TabName)
		}
	}
	if td.Schema != "" {
		schema = td.Schema
	}
	tab := &Table{
		TabID:   cat.StableID(td.ID),
		TabName: cat.TableName{Schema: schema, Table: td.Name},
	}

	for _, colDef := range td.Columns {
		name, typName, ok := strings.Cut(strings.TrimSpace(colDef), " ")
		if !ok {
			return errors.Newf("column %q must be declared as \"name type\"", colDef)
		}
		typ, err := types.TypeForName(typName)
		if err != nil {
			return errors.Wrapf(err, "column %s", name)
		}
		if tab.FindOrdinal(name) != -1 {
			return errors.Newf("column %s specified more than once", name)
		}
		tab.addColumn(&Column{ColName: name, Typ: typ})
	}

	if len(td.PrimaryKey) == 0 {
		rowID := &Column{ColName: rowIDColumnName, Typ: types.Int, Hidden: true}
		tab.addColumn(rowID)
		tab.pk = []*Column{rowID}
	} else {
		for _, name := range td.PrimaryKey {
			ord := tab.FindOrdinal(name)
			if ord == -1 {
				return errors.Newf("primary key column %s does not exist", name)
			}
			tab.pk = append(tab.pk, tab.Columns[ord])
		}
	}

	if td.Parent == "" {
		g := &Group{GroupName: td.Name, root: tab}
		tc.groups = append(tc.groups, g)
		tab.group = g
	} else {
		parent := tc.TableByName(td.Parent)
		if parent == nil {
			return errors.Newf("parent table %s does not exist", td.Parent)
		}
		tab.parent = parent
		tab.depth = parent.depth + 1
		tab.group = parent.group
	}
	tab.ordinal = tab.group.tables
	tab.group.tables++

	var segments []cat.HKeySegment
	for t := tab; t != nil; t = t.parent {
		seg := cat.HKeySegment{Table: t, Ordinal: t.ordinal}
		for _, c := range t.pk {
			seg.Columns = append(seg.Columns, c)
		}
		segments = append([]cat.HKeySegment{seg}, segments...)
	}
	hkey, err := cat.NewHKey(tab, segments)
	if err != nil {
		return err
	}
	tab.hkey = hkey

	primary := &Index{IdxID: cat.PrimaryIndexID, IdxName: primaryIndexName, table: tab, rootmost: tab}
	for _, c := range tab.pk {
		primary.Columns = append(primary.Columns, cat.IndexColumn{Table: tab, Column: c})
	}
	tab.Indexes = append(tab.Indexes, primary)

	for i := range td.Indexes {
		if err := tab.addIndex(&td.Indexes[i]); err != nil {
			return errors.Wrapf(err, "index %s", td.Indexes[i].Name)
		}
	}
	tc.tables = append(tc.tables, tab)
	return nil
}

func (tt *Table) addColumn(col *Column) {
	col.ordinal = len(tt.Columns)
	tt.Columns = append(tt.Columns, col)
}

func (tt *Table) addIndex(def *indexDef) error {
	if tt.IndexByName(def.Name) != nil {
		return errors.New("index already exists")
	}
	id := cat.IndexID(def.ID)
	if id == 0 {
		for _, idx := range tt.Indexes {
			if idx.IdxID >= id {
				id = idx.IdxID + 1
			}
		}
	}
	for _, idx := range tt.Indexes {
		if idx.IdxID == id {
			return errors.Newf("index id %d already used by %s", id, idx.IdxName)
		}
	}
	idx := &Index{IdxID: id, IdxName: def.Name, table: tt, rootmost: tt}
	for _, name := range def.Columns {
		ord := tt.FindOrdinal(name)
		if ord == -1 {
			return errors.Newf("column %s does not exist", name)
		}
		idx.Columns = append(idx.Columns, cat.IndexColumn{Table: tt, Column: tt.Columns[ord]})
	}
	if err := setGeoConfig(idx, def.Spatial); err != nil {
		return err
	}
	tt.Indexes = append(tt.Indexes, idx)
	return nil
}

func (tc *Catalog) addGroupIndex(g *Group, pos int, def *indexDef) error {
	if g.IndexByName(def.Name) != nil {
		return errors.New("index already exists")
	}
	id := cat.IndexID(def.ID)
	if id == 0 {
		id = cat.IndexID(pos + 1)
	}
	idx := &Index{IdxID: id, IdxName: def.Name, group: g}
	for _, qualified := range def.Columns {
		tabName, colName, ok := strings.Cut(qualified, ".")
		if !ok {
			return errors.Newf("group index column %q must be qualified by its table", qualified)
		}
		tab := tc.TableByName(tabName)
		if tab == nil || tab.group != g {
			return errors.Newf("table %s is not in group %s", tabName, g.GroupName)
		}
		ord := tab.FindOrdinal(colName)
		if ord == -1 {
			return errors.Newf("column %s does not exist", qualified)
		}
		idx.Columns = append(idx.Columns, cat.IndexColumn{Table: tab, Column: tab.Columns[ord]})
		if idx.table == nil || tab.depth > idx.table.depth {
			idx.table = tab
		}
		if idx.rootmost == nil || tab.depth < idx.rootmost.depth {
			idx.rootmost = tab
		}
	}
	if idx.table == nil {
		return errors.New("group index must have at least one column")
	}
	// Every table of the index must lie on the branch from the rootmost to
	// the leafmost table.
	for _, ic := range idx.Columns {
		t := ic.Table.(*Table)
		if t == idx.table {
			continue
		}
		if ok, _ := cat.IsAncestor(t, idx.table); !ok {
			return errors.Newf("table %s is not an ancestor of %s", t.TabName, idx.table.TabName)
		}
	}
	if err := setGeoConfig(idx, def.Spatial); err != nil {
		return err
	}
	g.Indexes = append(g.Indexes, idx)
	return nil
}

func setGeoConfig(idx *Index, cfg *geoindex.Config) error {
	if cfg == nil {
		return nil
	}
	if cfg.S2.Level == 0 {
		cfg.S2.Level = geoindex.DefaultConfig().S2.Level
	}
	if err := cfg.Validate(len(idx.Columns)); err != nil {
		return err
	}
	idx.geoConfig = cfg
	return nil
}
