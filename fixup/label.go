// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fixup

import (
	"gate.computer/emit/internal/errors"
	"gate.computer/emit/memory"
)

// Label is a code offset which may be bound after it has been referred to.
type Label struct {
	Addr  int32
	bound bool
}

// Bind the label to a code offset.
func (l *Label) Bind(addr int32) {
	if l.bound {
		panic(errors.Fatal("label bound twice"))
	}
	l.Addr = addr
	l.bound = true
}

func (l *Label) IsBound() bool { return l.bound }

// FinalAddr of a bound label.
func (l *Label) FinalAddr() int32 {
	if !l.bound {
		panic(errors.Fatal("label address undefined while updating branch or call instruction"))
	}
	return l.Addr
}

// NearBranch patches the 8-bit displacement of a short branch.  The position
// is the displacement field, which is the last byte of the instruction.
type NearBranch struct{ Label *Label }

func (b NearBranch) Process(region memory.Region, position int32) {
	disp := b.Label.FinalAddr() - (position + 1)
	if disp < -0x80 || disp >= 0x80 {
		panic(errors.Fatalf("near branch displacement out of range: %d", disp))
	}
	region.Store8(int(position), uint8(int8(disp)))
}

func (NearBranch) IsPointerOffset() bool { return false }
func (NearBranch) PatchSize() int        { return 1 }

// FarBranch patches the 32-bit displacement of a branch or call.  The
// position is the displacement field, which ends the instruction.
type FarBranch struct{ Label *Label }

func (b FarBranch) Process(region memory.Region, position int32) {
	disp := b.Label.FinalAddr() - (position + 4)
	region.Store32(int(position), uint32(disp))
}

func (FarBranch) IsPointerOffset() bool { return false }
func (FarBranch) PatchSize() int        { return 4 }

// Absolute patches the 64-bit absolute address of the label within the final
// region.  It is not an object reference.
type Absolute struct{ Label *Label }

func (a Absolute) Process(region memory.Region, position int32) {
	region.Store64(int(position), uint64(region.Start())+uint64(a.Label.FinalAddr()))
}

func (Absolute) IsPointerOffset() bool { return false }
func (Absolute) PatchSize() int        { return WordSize }
