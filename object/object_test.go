// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package object

import (
	"math"
	"testing"

	"gate.computer/emit/errors"
)

func TestHeapPromote(t *testing.T) {
	h := NewHeap()

	s := h.Allocate(&String{Value: "hello"})
	if s.IsOld() {
		t.Fatal("new object is old")
	}
	addr := s.Addr()
	if addr == 0 {
		t.Fatal("no address")
	}

	h.Promote(s)
	if !s.IsOld() {
		t.Fatal("promoted object is not old")
	}
	if s.Addr() == addr {
		t.Error("promotion did not move object")
	}

	old := s.Addr()
	h.Promote(s)
	if s.Addr() != old {
		t.Error("promoting old object moved it")
	}
}

func TestHeapCompactKeepsCodePayload(t *testing.T) {
	h := NewHeap()

	garbage := h.AllocateOld(&Instance{Class: FirstInstanceCID, Fields: make([]Object, 4)})
	code := h.NewCode("stub", []byte{0xc3})
	field := h.AllocateOld(&Field{Owner: "Point", Name: "x"})

	codeAddr := code.Addr()
	fieldAddr := field.Addr()
	payload := code.PayloadStart()

	h.Free(garbage)
	h.Compact()

	if code.Addr() == codeAddr {
		t.Error("code object did not move")
	}
	if field.Addr() == fieldAddr {
		t.Error("field object did not move")
	}
	if code.PayloadStart() != payload {
		t.Error("code payload moved")
	}
	if code.Addr() >= field.Addr() {
		t.Error("compaction reordered objects")
	}
}

func TestHeapDoubleAllocation(t *testing.T) {
	h := NewHeap()
	o := h.Allocate(&Integer{Value: 1})

	defer func() {
		x := recover()
		err, _ := x.(error)
		if !errors.IsFatal(err) {
			t.Error(x)
		}
	}()

	h.AllocateOld(o)
}

func TestDoubleBitwiseEquals(t *testing.T) {
	nan := math.NaN()

	for _, c := range []struct {
		a, b  float64
		equal bool
	}{
		{1.5, 1.5, true},
		{0, math.Copysign(0, -1), false},
		{nan, nan, true},
		{1, 2, false},
	} {
		a := &Double{Value: c.a}
		b := &Double{Value: c.b}
		if a.BitwiseEquals(b) != c.equal {
			t.Error(c.a, c.b)
		}
	}
}

func TestZone(t *testing.T) {
	h := NewHeap()
	z := NewZone()

	o := h.AllocateOld(&String{Value: "x"})
	zh := z.Handle(o)
	if !zh.IsZoneHandle() || !zh.IsNotTemporaryScopedHandle() {
		t.Fatal("zone handle flags")
	}
	if zh.Addr() != o.Addr() {
		t.Fatal("handle address")
	}

	sh := Scoped(o)
	if sh.IsZoneHandle() || sh.IsNotTemporaryScopedHandle() {
		t.Fatal("scoped handle flags")
	}

	if b := z.Bytes(100); len(b) != 100 {
		t.Fatal(len(b))
	}
	if z.Allocated() != 100 {
		t.Error(z.Allocated())
	}
	if z.NumHandles() != 1 {
		t.Error(z.NumHandles())
	}

	z.Release()
	if !zh.IsNull() {
		t.Error("handle survived zone release")
	}
	if sh.IsNull() {
		t.Error("scoped handle was reset")
	}
}

func TestClassIDString(t *testing.T) {
	if s := StringCID.String(); s != "String" {
		t.Error(s)
	}
	if s := (FirstInstanceCID + 1).String(); s != "Class#9" {
		t.Error(s)
	}
}

func TestKey(t *testing.T) {
	h := NewHeap()

	if (&String{Value: "a"}).Key() != (&String{Value: "a"}).Key() {
		t.Error("string content")
	}
	if (&Integer{Value: 1}).Key() == (&Double{Value: 1}).Key() {
		t.Error("integer and double")
	}
	if (&Double{Value: 0}).Key() == (&Double{Value: math.Copysign(0, -1)}).Key() {
		t.Error("signed zeros")
	}
	if (&Field{Name: "x"}).Key() == (&Field{Name: "x"}).Key() {
		t.Error("distinct fields")
	}
	if Null.Key().Hash != nullHash {
		t.Error(Null.Key().Hash)
	}

	garbage := h.AllocateOld(&String{Value: "garbage"})
	code := h.NewCode("f", []byte{0xc3})
	key := code.Key()

	h.Free(garbage)
	h.Compact()

	if code.Key() != key {
		t.Error("code key changed during compaction")
	}
}
