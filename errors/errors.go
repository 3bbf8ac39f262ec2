// Copyright (c) 2019 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors exports error predicates without unnecessary dependencies.
//
// Errors implementing the following interface are code generator defects:
//
//	interface {
//	    Fatal() bool
//	}
//
// They are raised by panicking and are not returned by any function of this
// module.  Continuing after recovering one risks emitting or patching
// incorrect executable bytes.
//
// Errors implementing the following interface indicate that generated code
// doesn't fit within a configured size limit:
//
//	interface {
//	    BufferSizeLimit() string
//	}
package errors

import (
	internal "gate.computer/emit/internal/errors"
	"golang.org/x/xerrors"
)

// ErrSizeLimit is returned when a code buffer grows beyond its configured
// maximum size.
var ErrSizeLimit error = internal.ErrSizeLimit

type fatal interface {
	error
	Fatal() bool
}

type sizeLimit interface {
	error
	BufferSizeLimit() string
}

// IsFatal reports whether err (or an error it wraps) is a code generator
// defect.  It is meant for inspecting recovered panic values.
func IsFatal(err error) bool {
	var x fatal
	return xerrors.As(err, &x) && x.Fatal()
}

// IsSizeLimit reports whether err (or an error it wraps) is a size limit
// violation.
func IsSizeLimit(err error) bool {
	var x sizeLimit
	return xerrors.As(err, &x)
}
