// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memory provides views of destination memory for finalized code.
package memory

import (
	"encoding/binary"
	"unsafe"

	"gate.computer/emit/internal/errors"
)

// Region is a fixed-size view of memory, for wrapping the destination of
// finalized instructions.  Multi-byte values are little-endian.  The default
// value is an empty region.
type Region struct {
	b []byte
}

func NewRegion(b []byte) Region { return Region{b} }

func (r Region) Size() int     { return len(r.b) }
func (r Region) Bytes() []byte { return r.b }

// Start address of the region, or zero if it is empty.
func (r Region) Start() uintptr {
	if len(r.b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&r.b[0]))
}

// Contains reports whether n bytes at offset are within the region.
func (r Region) Contains(offset, n int) bool {
	return offset >= 0 && n >= 0 && offset <= len(r.b)-n
}

func (r Region) Subregion(offset, size int) Region {
	return Region{r.b[offset : offset+size : offset+size]}
}

// CopyFrom copies the whole of from into r at offset.  The destination must
// be large enough.
func (r Region) CopyFrom(offset int, from Region) {
	if !r.Contains(offset, from.Size()) {
		panic(errors.Fatalf("copying %d bytes to offset %d of %d-byte region", from.Size(), offset, len(r.b)))
	}
	copy(r.b[offset:], from.b)
}

func (r Region) Load8(offset int) uint8   { return r.b[offset] }
func (r Region) Load16(offset int) uint16 { return binary.LittleEndian.Uint16(r.b[offset:]) }
func (r Region) Load32(offset int) uint32 { return binary.LittleEndian.Uint32(r.b[offset:]) }
func (r Region) Load64(offset int) uint64 { return binary.LittleEndian.Uint64(r.b[offset:]) }

func (r Region) Store8(offset int, x uint8)   { r.b[offset] = x }
func (r Region) Store16(offset int, x uint16) { binary.LittleEndian.PutUint16(r.b[offset:], x) }
func (r Region) Store32(offset int, x uint32) { binary.LittleEndian.PutUint32(r.b[offset:], x) }
func (r Region) Store64(offset int, x uint64) { binary.LittleEndian.PutUint64(r.b[offset:], x) }
