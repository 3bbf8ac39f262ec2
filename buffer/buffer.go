// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package buffer implements the code buffer which instruction encoders append
// machine code to.
//
// Before emitting an instruction, an encoder takes a capacity guard:
//
//	g := buf.EnsureCapacity()
//	buf.AppendByte(0x48)
//	buf.AppendUint32(disp)
//	g.Release()
//
// The guard extends the buffer if the cursor has reached the limit, which
// leaves at least MinimumGap bytes of room.  A single guarded instruction must
// not be longer than that.
package buffer

import (
	"github.com/docker/go-units"

	"gate.computer/emit/fixup"
	"gate.computer/emit/internal/debug"
	"gate.computer/emit/internal/errors"
	"gate.computer/emit/internal/pan"
	"gate.computer/emit/memory"
	"gate.computer/emit/object"
)

const (
	DefaultInitialCapacity = 4 * units.KiB

	// MinimumGap is the space kept between the limit and the end of the
	// buffer.  It bounds the size of a single instruction.
	MinimumGap = 32

	WordSize = fixup.WordSize

	maxIncrement = 1 * units.MiB
)

// DefaultTrapPattern is int3 (x86 breakpoint).
var DefaultTrapPattern = []byte{0xcc}

type Config struct {
	// InitialCapacity defaults to DefaultInitialCapacity.  It must be larger
	// than MinimumGap.
	InitialCapacity int

	// MaxSize limits code size if it is positive.  Growing beyond it raises
	// ErrSizeLimit.
	MaxSize int

	// CheckCodePointer enables verification of fixup positions during
	// finalization.  Instrumentation which rewrites instruction offsets (such
	// as profiling) is incompatible with it.
	CheckCodePointer bool

	// TrapPattern fills unused memory in debug builds, so that executing
	// uninitialized code faults immediately.  Defaults to DefaultTrapPattern.
	TrapPattern []byte
}

// Buffer accumulates machine code.  It is owned by a single compilation task
// and is not safe for concurrent use.
type Buffer struct {
	config   Config
	zone     *object.Zone
	contents []byte
	cursor   int
	limit    int

	fixups         fixup.Chain
	pointerOffsets fixup.PointerOffsets

	hasEnsuredCapacity bool
	finalized          bool
}

// New code buffer.  Storage is allocated from zone if it is not nil.
func New(zone *object.Zone, config Config) *Buffer {
	if config.InitialCapacity == 0 {
		config.InitialCapacity = DefaultInitialCapacity
	}
	if config.InitialCapacity <= MinimumGap {
		panic(errors.Fatalf("initial code buffer capacity %d is not larger than minimum gap", config.InitialCapacity))
	}
	if len(config.TrapPattern) == 0 {
		config.TrapPattern = DefaultTrapPattern
	}

	b := &Buffer{
		config: config,
		zone:   zone,
	}
	b.contents = b.newContents(config.InitialCapacity)
	b.limit = computeLimit(config.InitialCapacity)
	return b
}

func (b *Buffer) Size() int     { return b.cursor }
func (b *Buffer) Capacity() int { return len(b.contents) }

// Position is the offset of the next instruction.
func (b *Buffer) Position() int32 { return int32(b.cursor) }

// Bytes emitted so far.  The slice is invalidated by capacity extension.
func (b *Buffer) Bytes() []byte { return b.contents[:b.cursor] }

// Contents is a view of the bytes emitted so far, for encoders which patch
// their own instructions before finalization.  It is invalidated by capacity
// extension.
func (b *Buffer) Contents() memory.Region {
	return memory.NewRegion(b.contents[:b.cursor])
}

func (b *Buffer) HasEnsuredCapacity() bool { return b.hasEnsuredCapacity }

// Guard is returned by EnsureCapacity.  Release must be called after the
// instruction has been emitted.
type Guard struct {
	buffer *Buffer
	gap    int
}

// EnsureCapacity extends the buffer if the cursor has reached the limit.
// Guards must not be nested.
func (b *Buffer) EnsureCapacity() Guard {
	if b.cursor >= b.limit {
		b.ExtendCapacity()
	}

	g := Guard{buffer: b}

	if debug.Enabled {
		g.gap = b.computeGap()
		debug.Assert(g.gap >= MinimumGap, "code buffer gap %d is smaller than minimum", g.gap)
		debug.Assert(!b.hasEnsuredCapacity, "code buffer capacity guards nested")
		b.hasEnsuredCapacity = true
	}

	return g
}

// Release the guard.  Debug builds check that the instruction didn't exceed
// MinimumGap.
func (g Guard) Release() {
	if debug.Enabled {
		b := g.buffer
		b.hasEnsuredCapacity = false
		delta := g.gap - b.computeGap()
		debug.Assert(delta <= MinimumGap, "instruction length %d exceeds minimum gap %d", delta, MinimumGap)
	}
}

// ExtendCapacity grows the buffer geometrically, by at most 1 MiB at a time.
// Growth is clamped to what MaxSize needs, unless the capacity is already
// beyond that.  The cursor and all recorded positions are offsets, so they
// stay valid.
func (b *Buffer) ExtendCapacity() {
	oldSize := b.Size()
	oldCapacity := b.Capacity()
	newCapacity := nextCapacity(oldCapacity)

	if maxSize := b.config.MaxSize; maxSize > 0 {
		if oldSize >= maxSize {
			pan.Panic(errors.SizeLimit(oldSize, maxSize))
		}
		if limited := maxSize + MinimumGap; limited > oldCapacity {
			newCapacity = min(newCapacity, limited)
		}
	}

	if debug.Enabled {
		debug.Printf("code buffer: extending capacity from %s to %s", units.BytesSize(float64(oldCapacity)), units.BytesSize(float64(newCapacity)))
	}

	newContents := b.newContents(newCapacity)
	copy(newContents, b.contents[:oldSize])
	b.contents = newContents
	b.limit = computeLimit(newCapacity)

	if debug.Enabled {
		debug.Assert(b.Capacity() == newCapacity, "code buffer capacity mismatch after extension")
		debug.Assert(b.Size() == oldSize, "code buffer size changed during extension")
	}
}

func nextCapacity(oldCapacity int) int {
	newCapacity := min(oldCapacity*2, oldCapacity+maxIncrement)
	if newCapacity <= oldCapacity {
		panic(errors.Fatal("unexpected overflow in code buffer capacity extension"))
	}
	return newCapacity
}

func computeLimit(capacity int) int {
	return capacity - MinimumGap
}

func (b *Buffer) computeGap() int {
	return len(b.contents) - b.cursor
}

func (b *Buffer) newContents(capacity int) (contents []byte) {
	if b.zone != nil {
		contents = b.zone.Bytes(capacity)
	} else {
		contents = make([]byte, capacity)
	}

	if debug.Enabled {
		fill(contents, b.config.TrapPattern)
	}
	return
}

func fill(b, pattern []byte) {
	for i := 0; i < len(b); i += len(pattern) {
		copy(b[i:], pattern)
	}
}

func (b *Buffer) checkEmit(n int) {
	debug.Assert(!b.finalized, "emitting to finalized code buffer")
	debug.Assert(b.hasEnsuredCapacity, "emitting without capacity guard")
	debug.Assert(b.cursor+n <= len(b.contents), "emitting beyond code buffer capacity")
}
