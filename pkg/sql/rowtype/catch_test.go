// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package rowtype

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestCatchError(t *testing.T) {
	catch := func(fn func()) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = CatchError(r)
			}
		}()
		fn()
		return nil
	}

	err := catch(func() { panic(errors.AssertionFailedf("broken %d", 1)) })
	require.EqualError(t, err, "broken 1")
	require.True(t, errors.IsAssertionFailure(err))

	err = catch(func() {
		var s []int
		_ = s[3]
	})
	require.Error(t, err)
	require.True(t, errors.IsAssertionFailure(err))

	require.Panics(t, func() {
		_ = catch(func() { panic("not an error") })
	})
}
