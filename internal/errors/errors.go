// Copyright (c) 2019 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"

	"github.com/docker/go-units"
	"github.com/pkg/errors"
)

// fatalError is a code generator defect.  It is raised with panic and never
// recovered by this module.
type fatalError struct {
	cause error
}

func Fatal(text string) error {
	return &fatalError{errors.New(text)}
}

func Fatalf(format string, args ...interface{}) error {
	return &fatalError{errors.Errorf(format, args...)}
}

func WrapFatal(cause error, text string) error {
	return &fatalError{errors.Wrap(cause, text)}
}

func (e *fatalError) Error() string { return e.cause.Error() }
func (e *fatalError) Fatal() bool   { return true }
func (e *fatalError) Unwrap() error { return e.cause }

// Format prints the stack trace of the cause with %+v.
func (e *fatalError) Format(s fmt.State, verb rune) {
	if f, ok := e.cause.(fmt.Formatter); ok {
		f.Format(s, verb)
		return
	}
	fmt.Fprint(s, e.cause.Error())
}

type sizeError string

func (s sizeError) Error() string           { return string(s) }
func (s sizeError) PublicError() string     { return string(s) }
func (s sizeError) BufferSizeLimit() string { return string(s) }

var ErrSizeLimit = sizeError("code buffer size limit exceeded")

// SizeLimit wraps ErrSizeLimit with the code size and the limit it exceeds.
func SizeLimit(size, maxSize int) error {
	return errors.Wrapf(ErrSizeLimit, "%s of code with %s limit", units.BytesSize(float64(size)), units.BytesSize(float64(maxSize)))
}
