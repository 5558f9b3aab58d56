// Copyright 2017 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import (
	"testing"

	"github.com/cockroachdb/redact"
	"github.com/lib/pq/oid"
	"github.com/stretchr/testify/require"
)

func TestTypeForName(t *testing.T) {
	testCases := []struct {
		name string
		exp  *T
	}{
		{"int", Int},
		{"BIGINT", Int},
		{" integer ", Int4},
		{"varchar", VarChar},
		{"text", String},
		{"Double Precision", Float},
		{"numeric", Decimal},
		{"geometry", Geometry},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			typ, err := TypeForName(tc.name)
			require.NoError(t, err)
			require.Same(t, tc.exp, typ)
		})
	}

	_, err := TypeForName("nosuchtype")
	require.EqualError(t, err, `type "nosuchtype" does not exist`)
}

func TestIdenticalAndEquivalent(t *testing.T) {
	require.True(t, Int.Identical(Int))
	require.False(t, Int.Identical(Int4))
	require.True(t, Int.Equivalent(Int4))
	require.True(t, String.Equivalent(VarChar))
	require.False(t, String.Equivalent(Bytes))
	require.True(t, Unknown.Equivalent(Geometry))
}

func TestOidToType(t *testing.T) {
	require.Same(t, Int, OidToType[oid.T_int8])
	require.Same(t, Geometry, OidToType[T_geometry])
	require.Equal(t, oid.T_varchar, VarChar.Oid())
}

func TestFormat(t *testing.T) {
	require.Equal(t, "INT8", Int.String())
	require.Equal(t, redact.RedactableString("DECIMAL"), redact.Sprint(Decimal))
	require.Equal(t, "geometry", GeometryFamily.String())
	require.Equal(t, "family(42)", Family(42).String())
}
