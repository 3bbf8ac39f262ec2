// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buffer

import (
	"encoding/binary"

	"gate.computer/emit/internal/debug"
)

func (b *Buffer) AppendByte(x byte) {
	if debug.Enabled {
		b.checkEmit(1)
	}
	b.contents[b.cursor] = x
	b.cursor++
}

func (b *Buffer) AppendUint16(x uint16) {
	if debug.Enabled {
		b.checkEmit(2)
	}
	binary.LittleEndian.PutUint16(b.contents[b.cursor:], x)
	b.cursor += 2
}

func (b *Buffer) AppendUint32(x uint32) {
	if debug.Enabled {
		b.checkEmit(4)
	}
	binary.LittleEndian.PutUint32(b.contents[b.cursor:], x)
	b.cursor += 4
}

func (b *Buffer) AppendUint64(x uint64) {
	if debug.Enabled {
		b.checkEmit(8)
	}
	binary.LittleEndian.PutUint64(b.contents[b.cursor:], x)
	b.cursor += 8
}

// AppendWord appends a pointer-sized value.
func (b *Buffer) AppendWord(x uint64) {
	b.AppendUint64(x)
}

// AppendBytes appends a short sequence, such as a prefabricated instruction.
func (b *Buffer) AppendBytes(x []byte) {
	if debug.Enabled {
		b.checkEmit(len(x))
	}
	copy(b.contents[b.cursor:b.cursor+len(x)], x)
	b.cursor += len(x)
}
