// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package emit

import (
	"testing"

	"gate.computer/emit/asm"
	"gate.computer/emit/buffer"
	"gate.computer/emit/errors"
	"gate.computer/emit/object"
	"gate.computer/emit/pool"
)

func TestAssemble(t *testing.T) {
	heap := object.NewHeap()
	zone := object.NewZone()
	defer zone.Release()

	str := zone.Handle(heap.AllocateOld(&object.String{Value: "x"}))

	code, err := Assemble(Config{Zone: zone}, func(a *asm.Assembler) {
		for i := 0; i < 1000; i++ {
			g := a.Buffer.EnsureCapacity()
			a.Buffer.AppendByte(0x48)
			a.Buffer.AppendByte(0xb8)
			a.Buffer.EmitObject(str)
			g.Release()
		}
		a.ObjectPool.FindObject(str, pool.NotPatchable)
	})
	if err != nil {
		t.Fatal(err)
	}

	if code.Text.Size() != 1000*10 {
		t.Fatal(code.Text.Size())
	}
	if len(code.PointerOffsets) != 1000 {
		t.Fatal(len(code.PointerOffsets))
	}
	for i, offset := range code.PointerOffsets {
		if offset != int32(i*10+2) {
			t.Fatal(i, offset)
		}
		if code.Text.Load64(int(offset)) != str.Addr() {
			t.Fatal(i)
		}
	}
	if code.Pool.Len() != 1 {
		t.Error(code.Pool.Len())
	}
}

func TestAssembleSizeLimit(t *testing.T) {
	config := Config{
		Assembler: asm.Config{
			Buffer: buffer.Config{MaxSize: 4096},
		},
	}

	_, err := Assemble(config, func(a *asm.Assembler) {
		for {
			g := a.Buffer.EnsureCapacity()
			a.Buffer.AppendUint64(0)
			g.Release()
		}
	})
	if !errors.IsSizeLimit(err) {
		t.Fatal(err)
	}
}
