// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package geoindex

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/s2"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// ErrCoordinateOutOfRange is returned when a coordinate lies outside the
// domain of the index space.
var ErrCoordinateOutOfRange = errors.New("coordinate out of range")

// signBit maps the unsigned cell id space onto int64 without changing its
// order: cells on faces 4 and 5 have the top bit set.
const signBit = uint64(1) << 63

// Ordinal packs the coordinates of one spatial index entry into the value
// stored in the index's synthesized ordinal column. Coordinates are given in
// declared column order, which for two dimensions is latitude then longitude
// in degrees. Ordinals sort in the same order as the S2 cells they encode.
func Ordinal(cfg *Config, coords ...float64) (int64, error) {
	if len(coords) != cfg.Dimensions {
		return 0, errors.Newf("expected %d coordinates, found %d", cfg.Dimensions, len(coords))
	}
	if cfg.Dimensions != 2 {
		return 0, errors.Newf("%d-dimensional spatial ordinals are not supported", cfg.Dimensions)
	}
	lat, lng := coords[0], coords[1]
	if lat < -90 || lat > 90 {
		return 0, errors.Wrapf(ErrCoordinateOutOfRange, "latitude %v", lat)
	}
	if lng < -180 || lng > 180 {
		return 0, errors.Wrapf(ErrCoordinateOutOfRange, "longitude %v", lng)
	}
	cell := s2.CellIDFromLatLng(s2.LatLngFromDegrees(lat, lng))
	if level := int(cfg.S2.Level); level < cell.Level() {
		cell = cell.Parent(level)
	}
	return int64(uint64(cell) ^ signBit), nil
}

// PointOrdinal is like Ordinal, but takes a point whose X is the longitude
// and whose Y is the latitude.
func PointOrdinal(cfg *Config, p *geom.Point) (int64, error) {
	c := p.FlatCoords()
	if len(c) < 2 || math.IsNaN(c[0]) || math.IsNaN(c[1]) {
		return 0, errors.New("cannot compute the ordinal of an empty point")
	}
	return Ordinal(cfg, p.Y(), p.X())
}

// ParsePoint parses a WKT POINT.
func ParsePoint(s string) (*geom.Point, error) {
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %q", s)
	}
	p, ok := g.(*geom.Point)
	if !ok {
		return nil, errors.Newf("expected a POINT, found %T", g)
	}
	return p, nil
}

// OrdinalCell returns the S2 cell encoded by an ordinal.
func OrdinalCell(ord int64) s2.CellID {
	return s2.CellID(uint64(ord) ^ signBit)
}
