// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pool builds the object pools which generated code loads constants
// from.  Code refers to pool slots by index, never by address.
package pool

import (
	"gate.computer/emit/internal/debug"
	"gate.computer/emit/internal/errors"
	"gate.computer/emit/object"
)

// Builder stages pool entries in the order they were added.  Entries which
// are not patchable are deduplicated by the Find methods.
//
// Producing a pool doesn't clear the staged entries.  A Builder is owned by a
// single compilation task and is not safe for concurrent use.
type Builder struct {
	zone    *object.Zone // Affinity, or nil.
	own     *object.Zone // For handles created by the builder itself.
	entries []Entry
	keys    []key // Parallel to entries; zero for patchable entries.
	index   map[uint64][]int
}

// NewBuilder creates a builder.  If zone is not nil, the object handles of
// added entries are re-homed into it.
func NewBuilder(zone *object.Zone) *Builder {
	return &Builder{
		zone:  zone,
		index: make(map[uint64][]int),
	}
}

// Len is the number of staged entries.
func (b *Builder) Len() int { return len(b.entries) }

func (b *Builder) EntryAt(index int) Entry { return b.entries[index] }

// Add an entry unconditionally.  The new index is returned.
func (b *Builder) Add(e Entry) int {
	if debug.Enabled {
		checkEntry(e)
	}

	if e.Type == TaggedObject && b.zone != nil {
		e.Object = b.rehome(e.Object)
		if e.Equivalence != nil {
			e.Equivalence = b.rehome(e.Equivalence)
		}
	}

	var k key
	if e.Patchable == NotPatchable {
		k = keyOf(e)
	}

	index := len(b.entries)
	b.entries = append(b.entries, e)
	b.keys = append(b.keys, k)

	if e.Patchable == NotPatchable {
		h := k.hash()
		b.index[h] = append(b.index[h], index)
	}

	if debug.Enabled {
		debug.Printf("object pool: %d: %v", index, e)
	}

	return index
}

func (b *Builder) AddObject(h *object.Handle, patchable Patchability) int {
	return b.Add(ObjectEntry(h, patchable))
}

func (b *Builder) AddImmediate(imm uint64) int {
	return b.Add(RawEntry(imm, Immediate, NotPatchable))
}

// Find returns the index of an equal entry if e is not patchable and such an
// entry has been staged.  Otherwise e is added.
func (b *Builder) Find(e Entry) int {
	if e.Patchable == NotPatchable {
		if index, found := b.lookup(keyOf(e)); found {
			return index
		}
	}
	return b.Add(e)
}

func (b *Builder) FindObject(h *object.Handle, patchable Patchability) int {
	return b.Find(ObjectEntry(h, patchable))
}

// FindEquivalentObject shares a slot with entries whose equivalence object
// is equal to equivalence.  The slot holds the object of the first such entry.
func (b *Builder) FindEquivalentObject(h, equivalence *object.Handle) int {
	return b.Find(EquivalentObjectEntry(h, equivalence))
}

func (b *Builder) FindImmediate(imm uint64) int {
	return b.Find(RawEntry(imm, Immediate, NotPatchable))
}

func (b *Builder) FindNativeFunction(label ExternalLabel, patchable Patchability) int {
	return b.Find(RawEntry(uint64(label.Address), NativeFunction, patchable))
}

func (b *Builder) FindNativeFunctionWrapper(label ExternalLabel, patchable Patchability) int {
	return b.Find(RawEntry(uint64(label.Address), NativeFunctionWrapper, patchable))
}

func (b *Builder) lookup(k key) (int, bool) {
	for _, index := range b.index[k.hash()] {
		if b.keys[index] == k {
			return index, true
		}
	}
	return 0, false
}

// InitializeFrom stages the entries of an existing pool, in the same slots.
// The builder must be empty.
func (b *Builder) InitializeFrom(p *Pool) {
	if len(b.entries) != 0 {
		panic(errors.Fatalf("initializing non-empty object pool builder (%d entries)", len(b.entries)))
	}

	for i := 0; i < p.Len(); i++ {
		switch t := p.TypeAt(i); t {
		case TaggedObject:
			b.Add(ObjectEntry(b.handle(p.ObjectAt(i)), p.PatchableAt(i)))

		case Immediate, NativeFunction, NativeFunctionWrapper:
			b.Add(RawEntry(p.RawValueAt(i), t, p.PatchableAt(i)))

		default:
			panic(errors.Fatalf("unreachable: %v", t))
		}
	}

	if debug.Enabled {
		debug.Assert(b.Len() == p.Len(), "object pool length mismatch after initialization")
	}
}

// Reset discards the staged entries.  Handles owned by the builder are reset
// to Null before they are dropped.  Handles passed in by the caller are left
// alone.
func (b *Builder) Reset() {
	for _, e := range b.entries {
		if e.Type == TaggedObject {
			b.release(e.Object)
			if e.Equivalence != nil {
				b.release(e.Equivalence)
			}
		}
	}

	b.entries = nil
	b.keys = nil
	clear(b.index)
}

// MakeObjectPool produces an immutable snapshot of the staged entries.
func (b *Builder) MakeObjectPool() *Pool {
	n := len(b.entries)
	if n == 0 {
		return Empty()
	}

	p := &Pool{slots: make([]slot, n)}

	for i, e := range b.entries {
		s := slot{typ: e.Type, patchable: e.Patchable}
		if e.Type == TaggedObject {
			s.object = e.Object.Object()
		} else {
			s.raw = e.RawValue
		}
		p.slots[i] = s
	}

	if debug.Enabled {
		debug.Printf("object pool: %d entries", n)
	}

	return p
}

// rehome copies h into the affinity zone.  The copy is owned by the builder
// even if h is already in the zone, so Reset never touches caller handles.
func (b *Builder) rehome(h *object.Handle) *object.Handle {
	return b.zone.Handle(h.Object())
}

func (b *Builder) handle(o object.Object) *object.Handle {
	if b.zone != nil {
		return b.zone.Handle(o)
	}
	if b.own == nil {
		b.own = object.NewZone()
	}
	return b.own.Handle(o)
}

func (b *Builder) release(h *object.Handle) {
	if z := h.Zone(); z != nil && (z == b.zone || z == b.own) {
		h.Set(object.Null)
	}
}

func checkEntry(e Entry) {
	if e.Type != TaggedObject {
		return
	}

	debug.Assert(e.Object != nil, "object pool entry without object")
	checkHandle(e.Object)
	if e.Equivalence != nil {
		checkHandle(e.Equivalence)
	}
}

func checkHandle(h *object.Handle) {
	debug.Assert(h.IsNotTemporaryScopedHandle(), "object pool entry with temporary scoped handle")
	debug.Assert(h.IsOld(), "object pool entry with new-space %v object", h.Object().ClassID())
}
