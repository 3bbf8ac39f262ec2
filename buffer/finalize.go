// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buffer

import (
	"gate.computer/emit/fixup"
	"gate.computer/emit/internal/debug"
	"gate.computer/emit/internal/errors"
	"gate.computer/emit/internal/pan"
	"gate.computer/emit/memory"
	"gate.computer/emit/object"
)

// EmitFixup records a fixup at the current position.  It doesn't reserve any
// space.
func (b *Buffer) EmitFixup(f fixup.Fixup) {
	if debug.Enabled {
		debug.Assert(!b.finalized, "fixup emitted to finalized code buffer")
	}
	b.fixups.Add(f, int32(b.cursor))
}

// EmitObject reserves a word for the identity of the object.  The handle must
// be durable, and the object must be in old space.
func (b *Buffer) EmitObject(h *object.Handle) {
	if debug.Enabled {
		b.checkEmit(WordSize)
	}
	b.EmitFixup(fixup.NewObjectPatch(&b.pointerOffsets, h))
	b.cursor += WordSize
}

func (b *Buffer) NumFixups() int { return b.fixups.Len() }

// CountPointerOffsets can be used to size garbage collector bookkeeping before
// the fixups are processed.
func (b *Buffer) CountPointerOffsets() int {
	return b.fixups.CountPointerOffsets()
}

// PointerOffsets are the positions of object references which were patched
// during fixup processing, most recently emitted first.
func (b *Buffer) PointerOffsets() []int32 {
	return b.pointerOffsets.Offsets()
}

// ProcessFixups applies all fixups to region, which must already contain the
// code.  It may be called only once.
func (b *Buffer) ProcessFixups(region memory.Region) {
	b.fixups.Process(region)
}

// CheckSize raises ErrSizeLimit if the code is larger than MaxSize.  An
// installer can call it before allocating the destination.
func (b *Buffer) CheckSize() {
	if maxSize := b.config.MaxSize; maxSize > 0 && b.Size() > maxSize {
		pan.Panic(errors.SizeLimit(b.Size(), maxSize))
	}
}

// FinalizeInstructions copies the code to dest and processes the fixups.  The
// destination size must equal Size.  The buffer must not be used for emission
// afterwards.
func (b *Buffer) FinalizeInstructions(dest memory.Region) {
	b.CheckSize()
	size := b.Size()

	if dest.Size() != size {
		panic(errors.Fatalf("destination region size %d differs from code size %d", dest.Size(), size))
	}

	if b.config.CheckCodePointer {
		if err := b.fixups.Verify(size); err != nil {
			panic(errors.WrapFatal(err, "code pointer check"))
		}
	}

	if debug.Enabled {
		debug.Printf("code buffer: finalizing %d bytes with %d fixups", size, b.fixups.Len())
	}

	dest.CopyFrom(0, memory.NewRegion(b.contents[:size]))
	b.ProcessFixups(dest)
	b.finalized = true
}

func (b *Buffer) Finalized() bool { return b.finalized }
