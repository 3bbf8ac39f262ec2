// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pool

import (
	"fmt"

	"gate.computer/emit/object"
)

type Type uint8

const (
	TaggedObject Type = iota
	Immediate
	NativeFunction
	NativeFunctionWrapper
)

func (t Type) String() string {
	switch t {
	case TaggedObject:
		return "object"
	case Immediate:
		return "immediate"
	case NativeFunction:
		return "native function"
	case NativeFunctionWrapper:
		return "native function wrapper"
	default:
		return fmt.Sprintf("pool entry type %d", uint8(t))
	}
}

// Patchability of an entry.  Patchable entries may be rewritten in place
// after the pool has been installed (e.g. inline cache targets), so they are
// never shared.
type Patchability uint8

const (
	NotPatchable Patchability = iota
	Patchable
)

func (p Patchability) String() string {
	if p == Patchable {
		return "patchable"
	}
	return "not patchable"
}

// ExternalLabel is the address of native code.
type ExternalLabel struct {
	Name    string
	Address uintptr
}

// Entry is staged in a Builder.  Object and Equivalence are used only by
// TaggedObject entries; RawValue only by the others.
type Entry struct {
	Type      Type
	Patchable Patchability

	Object *object.Handle

	// Equivalence, if set, replaces Object when entries are compared.
	// Entries with equivalent stand-ins share a slot.  It is never stored
	// in the pool.
	Equivalence *object.Handle

	RawValue uint64
}

func ObjectEntry(h *object.Handle, patchable Patchability) Entry {
	return Entry{Type: TaggedObject, Patchable: patchable, Object: h}
}

func EquivalentObjectEntry(h, equivalence *object.Handle) Entry {
	return Entry{Type: TaggedObject, Patchable: NotPatchable, Object: h, Equivalence: equivalence}
}

func RawEntry(value uint64, t Type, patchable Patchability) Entry {
	return Entry{Type: t, Patchable: patchable, RawValue: value}
}

func (e Entry) String() string {
	if e.Type == TaggedObject {
		return fmt.Sprintf("%v %v %v@%#x", e.Patchable, e.Type, e.Object.Object().ClassID(), e.Object.Addr())
	}
	return fmt.Sprintf("%v %v %#x", e.Patchable, e.Type, e.RawValue)
}
