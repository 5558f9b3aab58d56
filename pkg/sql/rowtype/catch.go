// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package rowtype

import (
	"runtime"

	"github.com/cockroachdb/errors"
)

// CatchError converts a value recovered from a panic raised by this package
// into an error. Row type constructors report violated invariants as panics
// so that planning code does not need error checks everywhere; callers at an
// API boundary recover them with:
//
//	defer func() {
//		if r := recover(); r != nil {
//			err = rowtype.CatchError(r)
//		}
//	}()
//
// Values that are not errors are re-panicked: the go runtime throws strings
// for serious internal errors from which we cannot recover.
func CatchError(r interface{}) error {
	err, ok := r.(error)
	if !ok {
		panic(r)
	}
	if errors.HasInterface(err, (*runtime.Error)(nil)) {
		// Convert runtime errors to assertion failures, which include stacks.
		return errors.HandleAsAssertionFailure(err)
	}
	return err
}
