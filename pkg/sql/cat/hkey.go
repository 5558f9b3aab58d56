// Copyright 2018 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cat

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// HKeySegment is the part of a hierarchical key contributed by one table on
// the path from the group root.
type HKeySegment struct {
	// Table is the table identified by this segment.
	Table Table
	// Ordinal orders the segment's table among the tables of its group.
	Ordinal int
	// Columns are the key columns of Table.
	Columns []Column
}

// HKey is the hierarchical key of a table: one segment per table on the path
// from the group root down to the table, rootmost first. Every row of the
// table is addressed within its group by the values of these columns.
type HKey struct {
	table    Table
	segments []HKeySegment
	columns  []Column
}

// NewHKey constructs the hierarchical key of table. The last segment must be
// table's own segment.
func NewHKey(table Table, segments []HKeySegment) (*HKey, error) {
	if len(segments) == 0 || segments[len(segments)-1].Table != table {
		return nil, errors.Newf("hkey of %s must end with its own segment", table.Name())
	}
	k := &HKey{table: table, segments: segments}
	for i := range segments {
		k.columns = append(k.columns, segments[i].Columns...)
	}
	return k, nil
}

// Table returns the table addressed by the key.
func (k *HKey) Table() Table { return k.table }

// SegmentCount returns the number of segments, which is the table's depth
// plus one.
func (k *HKey) SegmentCount() int { return len(k.segments) }

// Segment returns the ith segment, rootmost first.
func (k *HKey) Segment(i int) *HKeySegment { return &k.segments[i] }

// ColumnCount returns the total number of key columns across all segments.
func (k *HKey) ColumnCount() int { return len(k.columns) }

// Column returns the ith key column.
func (k *HKey) Column(i int) Column { return k.columns[i] }

func (k *HKey) String() string {
	return redact.StringWithoutMarkers(k)
}

// SafeFormat implements the redact.SafeFormatter interface. The key renders
// as the segment tables and their columns, e.g. "(customer: cid)(order: oid)".
func (k *HKey) SafeFormat(w redact.SafePrinter, _ rune) {
	for i := range k.segments {
		s := &k.segments[i]
		w.Printf("(%s:", s.Table.Name().Table)
		for j, c := range s.Columns {
			if j > 0 {
				w.SafeRune(',')
			}
			w.Printf(" %s", c.Name())
		}
		w.SafeRune(')')
	}
}
