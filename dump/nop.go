// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !cgo || !amd64

package dump

import (
	"errors"
	"io"

	"gate.computer/emit/asm"
)

func Text(w io.Writer, text []byte, textAddr uintptr, comments []asm.Comment) error {
	return errors.New("dump.Text requires cgo on amd64")
}
