// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package geoindex

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/s2"
	"github.com/google/btree"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate(3))
	require.NoError(t, (&Config{Dimensions: 2, FirstArg: 1, S2: S2Config{Level: 10}}).Validate(3))
	require.EqualError(t, (&Config{Dimensions: 0}).Validate(3),
		"spatial index must have at least one dimension, found 0")
	require.EqualError(t, (&Config{Dimensions: 2, FirstArg: 2}).Validate(3),
		"spatial columns [2, 4) out of range for index with 3 columns")
	require.EqualError(t, (&Config{Dimensions: 2, S2: S2Config{Level: 31}}).Validate(2),
		"S2 level 31 out of range [0, 30]")
}

func TestOrdinal(t *testing.T) {
	cfg := DefaultConfig()
	ord, err := Ordinal(cfg, 42.36, -71.06)
	require.NoError(t, err)
	cell := OrdinalCell(ord)
	require.True(t, cell.IsValid())
	require.Equal(t, s2.CellIDFromLatLng(s2.LatLngFromDegrees(42.36, -71.06)), cell)
	require.Equal(t, MaxS2Level, cell.Level())

	coarse := &Config{Dimensions: 2, S2: S2Config{Level: 10}}
	coarseOrd, err := Ordinal(coarse, 42.36, -71.06)
	require.NoError(t, err)
	require.Equal(t, 10, OrdinalCell(coarseOrd).Level())
	require.True(t, OrdinalCell(coarseOrd).Contains(cell))

	_, err = Ordinal(cfg, 91, 0)
	require.True(t, errors.Is(err, ErrCoordinateOutOfRange))
	_, err = Ordinal(cfg, 0, -181)
	require.True(t, errors.Is(err, ErrCoordinateOutOfRange))
	_, err = Ordinal(cfg, 1)
	require.EqualError(t, err, "expected 2 coordinates, found 1")
	_, err = Ordinal(&Config{Dimensions: 3}, 1, 2, 3)
	require.EqualError(t, err, "3-dimensional spatial ordinals are not supported")
}

func TestOrdinalFaceOrder(t *testing.T) {
	cfg := DefaultConfig()
	var prev int64
	for face, p := range [][2]float64{
		{10, 10},   // face 0
		{10, 100},  // face 1
		{89, 10},   // face 2
		{10, 170},  // face 3
		{10, -100}, // face 4
		{-89, 10},  // face 5
	} {
		ord, err := Ordinal(cfg, p[0], p[1])
		require.NoError(t, err)
		cell := OrdinalCell(ord)
		require.Equal(t, face, cell.Face())
		if face > 0 {
			require.Less(t, prev, ord, "face %d", face)
		}
		prev = ord
	}
}

func TestPointOrdinal(t *testing.T) {
	cfg := DefaultConfig()
	p, err := ParsePoint("POINT (-71.06 42.36)")
	require.NoError(t, err)
	ord, err := PointOrdinal(cfg, p)
	require.NoError(t, err)
	exp, err := Ordinal(cfg, 42.36, -71.06)
	require.NoError(t, err)
	require.Equal(t, exp, ord)

	_, err = ParsePoint("LINESTRING (0 0, 1 1)")
	require.EqualError(t, err, "expected a POINT, found *geom.LineString")
	_, err = ParsePoint("POINT (1")
	require.Error(t, err)
	_, err = PointOrdinal(cfg, geom.NewPointFlat(geom.XY, []float64{0, 95}))
	require.True(t, errors.Is(err, ErrCoordinateOutOfRange))
}

type ordinalEntry struct {
	ord int64
	pk  int
}

func (e ordinalEntry) Less(than btree.Item) bool {
	o := than.(ordinalEntry)
	if e.ord == o.ord {
		return e.pk < o.pk
	}
	return e.ord < o.ord
}

// TestOrdinalClustering checks that nearby points land in the same coarse
// cell and therefore sort next to each other in an index.
func TestOrdinalClustering(t *testing.T) {
	cfg := &Config{Dimensions: 2, S2: S2Config{Level: 4}}
	points := [][2]float64{
		{42.3601, -71.0589},  // Boston
		{-33.8688, 151.2093}, // Sydney
		{42.3736, -71.1097},  // Cambridge
	}
	bt := btree.New(8)
	for pk, p := range points {
		ord, err := Ordinal(cfg, p[0], p[1])
		require.NoError(t, err)
		bt.ReplaceOrInsert(ordinalEntry{ord: ord, pk: pk})
	}
	var byOrd []ordinalEntry
	bt.Ascend(func(i btree.Item) bool {
		byOrd = append(byOrd, i.(ordinalEntry))
		return true
	})
	require.Len(t, byOrd, 3)
	boston, cambridge := -1, -1
	for i, e := range byOrd {
		switch e.pk {
		case 0:
			boston = i
		case 2:
			cambridge = i
		}
	}
	require.Equal(t, 1, abs(boston-cambridge))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
