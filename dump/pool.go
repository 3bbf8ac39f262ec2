// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dump prints installed code for debugging.
package dump

import (
	"fmt"
	"io"

	"gate.computer/emit/install"
	"gate.computer/emit/pool"
)

// Pool lists the slots of an object pool with their byte offsets.
func Pool(w io.Writer, p *pool.Pool) (err error) {
	for i := 0; i < p.Len(); i++ {
		offset := pool.ElementOffset(i)

		switch t := p.TypeAt(i); t {
		case pool.TaggedObject:
			o := p.ObjectAt(i)
			_, err = fmt.Fprintf(w, "%4d [%#x] %v %v @%#x\n", i, offset, p.PatchableAt(i), o.ClassID(), o.Addr())

		default:
			_, err = fmt.Fprintf(w, "%4d [%#x] %v %v %#x\n", i, offset, p.PatchableAt(i), t, p.RawValueAt(i))
		}
		if err != nil {
			return
		}
	}
	return
}

// Code prints the object pool and the disassembled text of installed code.
func Code(w io.Writer, code *install.Code) error {
	if code.Pool.Len() > 0 {
		fmt.Fprintln(w, "pool:")
		if err := Pool(w, code.Pool); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "text:")
	return Text(w, code.Text.Bytes(), code.Text.Start(), code.Comments)
}
