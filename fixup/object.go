// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fixup

import (
	"gate.computer/emit/internal/debug"
	"gate.computer/emit/memory"
	"gate.computer/emit/object"
)

const WordSize = 8

// PointerOffsets collects the code offsets which hold object references.
type PointerOffsets struct {
	offsets []int32
}

func (po *PointerOffsets) Add(offset int32) {
	po.offsets = append(po.offsets, offset)
}

func (po *PointerOffsets) Len() int { return len(po.offsets) }

// Offsets in the order they were added.
func (po *PointerOffsets) Offsets() []int32 { return po.offsets }

// ObjectPatch stores the identity of an object into the code.
type ObjectPatch struct {
	offsets *PointerOffsets
	object  *object.Handle
}

// NewObjectPatch for a durable handle.  The position is appended to offsets
// when the patch is processed.
func NewObjectPatch(offsets *PointerOffsets, h *object.Handle) *ObjectPatch {
	if debug.Enabled {
		debug.Assert(h.IsNotTemporaryScopedHandle(), "object patch with temporary scoped handle")
		debug.Assert(h.IsOld(), "object patch with new-space object")
	}

	return &ObjectPatch{offsets, h}
}

func (p *ObjectPatch) Object() *object.Handle { return p.object }

// Process writes the object's current address.
func (p *ObjectPatch) Process(region memory.Region, position int32) {
	region.Store64(int(position), p.object.Addr())
	p.offsets.Add(position)
}

func (*ObjectPatch) IsPointerOffset() bool { return true }
func (*ObjectPatch) PatchSize() int        { return WordSize }
