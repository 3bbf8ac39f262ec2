// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pool

import (
	"gate.computer/emit/internal/errors"
	"gate.computer/emit/object"
)

const (
	// HeaderSize precedes the slots in a pool object.
	HeaderSize = 16

	WordSize = 8
)

// ElementOffset is the byte offset of a slot within a pool object.
func ElementOffset(index int) int32 {
	return int32(HeaderSize + index*WordSize)
}

// IndexFromOffset is the inverse of ElementOffset.
func IndexFromOffset(offset int32) int {
	return (int(offset) - HeaderSize) / WordSize
}

type slot struct {
	typ       Type
	patchable Patchability
	object    object.Object
	raw       uint64
}

// Pool is an immutable array of entries, indexed by the values returned by
// Builder methods.
type Pool struct {
	slots []slot
}

var empty = new(Pool)

// Empty is the canonical empty pool.  Builders without entries return it
// instead of allocating.
func Empty() *Pool { return empty }

func (p *Pool) Len() int { return len(p.slots) }

func (p *Pool) TypeAt(index int) Type              { return p.slots[index].typ }
func (p *Pool) PatchableAt(index int) Patchability { return p.slots[index].patchable }

// ObjectAt panics if the slot doesn't hold an object.
func (p *Pool) ObjectAt(index int) object.Object {
	s := &p.slots[index]
	if s.typ != TaggedObject {
		panic(errors.Fatalf("object pool slot %d is %v", index, s.typ))
	}
	return s.object
}

// RawValueAt panics if the slot holds an object.
func (p *Pool) RawValueAt(index int) uint64 {
	s := &p.slots[index]
	if s.typ == TaggedObject {
		panic(errors.Fatalf("object pool slot %d is %v", index, s.typ))
	}
	return s.raw
}

// Equal reports whether the pools have identical slots.  Objects are
// compared by identity.
func (p *Pool) Equal(other *Pool) bool {
	if len(p.slots) != len(other.slots) {
		return false
	}
	for i := range p.slots {
		if p.slots[i] != other.slots[i] {
			return false
		}
	}
	return true
}
