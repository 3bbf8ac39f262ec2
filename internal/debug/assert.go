// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package debug

import (
	"gate.computer/emit/internal/errors"
)

// Assert panics with a fatal error if cond is false.  Call sites are expected
// to be guarded by Enabled so that the check disappears from release builds.
func Assert(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(errors.Fatalf(format, args...))
	}
}
