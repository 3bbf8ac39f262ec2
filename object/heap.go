// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package object

import (
	"gate.computer/emit/internal/errors"
)

const (
	nullAddr  = 0x1000
	newBase   = 0x100000000
	oldBase   = 0x200000000
	codeBase  = 0x300000000
	alignment = 16
)

// Heap assigns identities to objects.  New-space objects move when promoted;
// old-space objects move when the heap is compacted.  Code payloads are
// allocated from a separate code space which is never compacted, so
// Code.PayloadStart stays valid for the lifetime of the Code object.
//
// Heap is not safe for concurrent use.
type Heap struct {
	newTop  uint64
	oldTop  uint64
	codeTop uint64

	newSpace []Object
	oldSpace []Object
}

func NewHeap() *Heap {
	return &Heap{
		newTop:  newBase,
		oldTop:  oldBase,
		codeTop: codeBase,
	}
}

// Allocate o in new space.
func (h *Heap) Allocate(o Object) Object {
	hdr := h.checkUnallocated(o)
	hdr.addr = bump(&h.newTop, objectSize(o))
	hdr.gen = New
	h.newSpace = append(h.newSpace, o)
	return o
}

// AllocateOld allocates o directly in old space.
func (h *Heap) AllocateOld(o Object) Object {
	hdr := h.checkUnallocated(o)
	hdr.addr = bump(&h.oldTop, objectSize(o))
	hdr.gen = Old
	h.oldSpace = append(h.oldSpace, o)
	return o
}

// NewCode allocates a Code object in old space and its instructions payload
// in code space.
func (h *Heap) NewCode(name string, insns []byte) *Code {
	c := &Code{Name: name, Instructions: insns}
	c.payload = bump(&h.codeTop, uint64(max(len(insns), 1)))
	h.AllocateOld(c)
	return c
}

// Promote moves a new-space object to old space, as a minor collection does
// for survivors.  Promoting an old object is a no-op.
func (h *Heap) Promote(o Object) {
	hdr := o.header()
	if hdr.gen == Old {
		return
	}
	if !remove(&h.newSpace, o) {
		panic(errors.Fatalf("promoting object not allocated in this heap: %v", o.ClassID()))
	}
	hdr.addr = bump(&h.oldTop, objectSize(o))
	hdr.gen = Old
	h.oldSpace = append(h.oldSpace, o)
}

// Free makes o garbage.  Its address is reclaimed by the next Compact.
func (h *Heap) Free(o Object) {
	if !remove(&h.newSpace, o) && !remove(&h.oldSpace, o) {
		panic(errors.Fatalf("freeing object not allocated in this heap: %v", o.ClassID()))
	}
	o.header().addr = 0
}

// Compact slides the live old-space objects towards the start of old space.
// Object addresses may change; code payload addresses never do.
func (h *Heap) Compact() {
	h.oldTop = oldBase
	for _, o := range h.oldSpace {
		o.header().addr = bump(&h.oldTop, objectSize(o))
	}
}

func (h *Heap) checkUnallocated(o Object) *Header {
	hdr := o.header()
	if hdr.addr != 0 {
		panic(errors.Fatalf("%v object allocated twice", o.ClassID()))
	}
	return hdr
}

func bump(top *uint64, size uint64) (addr uint64) {
	addr = *top
	*top += (size + alignment - 1) &^ (alignment - 1)
	return
}

func remove(space *[]Object, o Object) bool {
	s := *space
	for i, x := range s {
		if x == o {
			*space = append(s[:i], s[i+1:]...)
			return true
		}
	}
	return false
}

func objectSize(o Object) uint64 {
	const header = 16

	switch x := o.(type) {
	case *String:
		return header + uint64(len(x.Value))
	case *Instance:
		return header + uint64(len(x.Fields))*8
	case *Code:
		return header + 16
	default:
		return header + 8
	}
}
