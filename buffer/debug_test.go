// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build debug

package buffer

import (
	"testing"

	"gate.computer/emit/object"
)

func TestNestedGuards(t *testing.T) {
	b := New(nil, Config{})
	g := b.EnsureCapacity()
	defer g.Release()

	defer expectFatal(t)
	b.EnsureCapacity()
}

func TestInstructionExceedsGap(t *testing.T) {
	b := New(nil, Config{InitialCapacity: 64})
	g := b.EnsureCapacity()
	b.AppendBytes(make([]byte, MinimumGap+1))

	defer expectFatal(t)
	g.Release()
}

func TestEmitWithoutGuard(t *testing.T) {
	b := New(nil, Config{})

	defer expectFatal(t)
	b.AppendByte(0)
}

func TestEmitAfterFinalize(t *testing.T) {
	b := New(nil, Config{})
	emit(b, func() { b.AppendByte(0xc3) })
	finalize(b)

	g := b.EnsureCapacity()
	defer g.Release()

	defer expectFatal(t)
	b.AppendByte(0)
}

func TestTrapFill(t *testing.T) {
	b := New(nil, Config{InitialCapacity: 64, TrapPattern: []byte{0xcc, 0xcd}})
	emit(b, func() { b.AppendBytes(make([]byte, 32)) })
	emit(b, func() { b.AppendByte(1) })

	if b.Capacity() != 128 {
		t.Fatal(b.Capacity())
	}

	for i := b.Size(); i < b.Capacity(); i++ {
		expect := byte(0xcc)
		if i%2 == 1 {
			expect = 0xcd
		}
		if b.contents[i] != expect {
			t.Fatalf("byte %d: %#x", i, b.contents[i])
		}
	}
}

func TestEmitObjectScopedHandle(t *testing.T) {
	heap := object.NewHeap()
	o := heap.AllocateOld(&object.String{Value: "temp"})

	b := New(nil, Config{})
	g := b.EnsureCapacity()
	defer g.Release()

	defer expectFatal(t)
	b.EmitObject(object.Scoped(o))
}

func TestEmitObjectNewSpace(t *testing.T) {
	heap := object.NewHeap()
	zone := object.NewZone()
	o := heap.Allocate(&object.String{Value: "young"})

	b := New(nil, Config{})
	g := b.EnsureCapacity()
	defer g.Release()

	defer expectFatal(t)
	b.EmitObject(zone.Handle(o))
}
