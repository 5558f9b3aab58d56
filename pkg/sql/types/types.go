// Copyright 2017 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package types describes the scalar types that may occupy a field of a row.
// Only the identity of a type matters here; encoding and decoding of values
// lives elsewhere.
package types

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/lib/pq/oid"
)

// Family groups types that share a physical representation.
type Family int32

const (
	// UnknownFamily is the family of the NULL literal.
	UnknownFamily Family = iota
	BoolFamily
	IntFamily
	FloatFamily
	DecimalFamily
	DateFamily
	TimestampFamily
	StringFamily
	BytesFamily
	GeometryFamily
)

var familyNames = [...]string{
	UnknownFamily:   "unknown",
	BoolFamily:      "bool",
	IntFamily:       "int",
	FloatFamily:     "float",
	DecimalFamily:   "decimal",
	DateFamily:      "date",
	TimestampFamily: "timestamp",
	StringFamily:    "string",
	BytesFamily:     "bytes",
	GeometryFamily:  "geometry",
}

func (f Family) String() string {
	if f < 0 || int(f) >= len(familyNames) {
		return "family(" + strconv.Itoa(int(f)) + ")"
	}
	return familyNames[f]
}

// SafeValue implements the redact.SafeValue interface.
func (Family) SafeValue() {}

// T is a scalar type. Instances are immutable and are compared by pointer in
// the common case; use Identical for a structural comparison.
type T struct {
	family Family
	oid    oid.Oid
	width  int32
	name   string
}

// T_geometry is the OID assigned to the geometry type. It lies outside the
// range of OIDs reserved by Postgres.
const T_geometry = oid.Oid(90000)

var (
	// Unknown is the type of an expression that statically evaluates to NULL.
	Unknown = &T{family: UnknownFamily, oid: oid.T_unknown, name: "unknown"}
	// Bool is the type of a boolean true/false value.
	Bool = &T{family: BoolFamily, oid: oid.T_bool, name: "BOOL"}
	// Int is the type of a 64-bit signed integer. It also carries packed
	// spatial ordinals.
	Int = &T{family: IntFamily, oid: oid.T_int8, width: 64, name: "INT8"}
	// Int4 is the type of a 32-bit signed integer.
	Int4 = &T{family: IntFamily, oid: oid.T_int4, width: 32, name: "INT4"}
	// Float is the type of a 64-bit binary floating point number.
	Float = &T{family: FloatFamily, oid: oid.T_float8, width: 64, name: "FLOAT8"}
	// Decimal is the type of an arbitrary precision decimal number.
	Decimal = &T{family: DecimalFamily, oid: oid.T_numeric, name: "DECIMAL"}
	// Date is the type of a calendar date.
	Date = &T{family: DateFamily, oid: oid.T_date, name: "DATE"}
	// Timestamp is the type of a date and time without time zone.
	Timestamp = &T{family: TimestampFamily, oid: oid.T_timestamp, name: "TIMESTAMP"}
	// String is the type of an unbounded character string.
	String = &T{family: StringFamily, oid: oid.T_text, name: "STRING"}
	// VarChar is the type of a bounded character string.
	VarChar = &T{family: StringFamily, oid: oid.T_varchar, name: "VARCHAR"}
	// Bytes is the type of a byte string.
	Bytes = &T{family: BytesFamily, oid: oid.T_bytea, name: "BYTES"}
	// Geometry is the type of a planar spatial object.
	Geometry = &T{family: GeometryFamily, oid: T_geometry, name: "GEOMETRY"}
)

// Family returns the type's family.
func (t *T) Family() Family { return t.family }

// Oid returns the type's Postgres object identifier.
func (t *T) Oid() oid.Oid { return t.oid }

// Width is the size in bits of integer and float types, and zero otherwise.
func (t *T) Width() int32 { return t.width }

// SQLString returns the SQL name of the type.
func (t *T) SQLString() string { return t.name }

func (t *T) String() string { return t.name }

// SafeFormat implements the redact.SafeFormatter interface. Type names are
// never sensitive.
func (t *T) SafeFormat(w redact.SafePrinter, _ rune) {
	w.SafeString(redact.SafeString(t.name))
}

// Identical returns true if both types have the same family, OID and width.
func (t *T) Identical(other *T) bool {
	return t.family == other.family && t.oid == other.oid && t.width == other.width
}

// Equivalent returns true if values of the two types can be compared
// directly, which is the case when they share a family. Unknown is
// equivalent to every type.
func (t *T) Equivalent(other *T) bool {
	if t.family == UnknownFamily || other.family == UnknownFamily {
		return true
	}
	return t.family == other.family
}

var typesByName = map[string]*T{
	"unknown":          Unknown,
	"bool":             Bool,
	"boolean":          Bool,
	"int":              Int,
	"int8":             Int,
	"int64":            Int,
	"bigint":           Int,
	"int4":             Int4,
	"integer":          Int4,
	"float":            Float,
	"float8":           Float,
	"double":           Float,
	"double precision": Float,
	"decimal":          Decimal,
	"numeric":          Decimal,
	"date":             Date,
	"timestamp":        Timestamp,
	"string":           String,
	"text":             String,
	"varchar":          VarChar,
	"bytes":            Bytes,
	"bytea":            Bytes,
	"blob":             Bytes,
	"geometry":         Geometry,
}

// TypeForName resolves a SQL type name, case-insensitively.
func TypeForName(name string) (*T, error) {
	if t, ok := typesByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t, nil
	}
	return nil, errors.Newf("type %q does not exist", name)
}

// OidToType maps each OID to the canonical type carrying it.
var OidToType = func() map[oid.Oid]*T {
	m := make(map[oid.Oid]*T)
	for _, t := range []*T{Unknown, Bool, Int, Int4, Float, Decimal, Date, Timestamp, String, VarChar, Bytes, Geometry} {
		m[t.oid] = t
	}
	return m
}()
