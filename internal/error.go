// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package internal

import (
	"gate.computer/emit/internal/pan"
)

// Error converts a recovered panic value into an error.  Values which were
// not panicked via the pan package are re-panicked.
func Error(x interface{}) error {
	return pan.Error(x)
}
