// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package object models the runtime objects which generated code refers to.
//
// Only the properties needed by the code emission backend are modeled: object
// identity (the current address, which changes when the heap is compacted),
// generation, class, and the content which determines canonical equality.
package object

import (
	"fmt"
	"math"
)

type ClassID uint32

const (
	IllegalCID ClassID = iota
	NullCID
	StringCID
	IntegerCID
	DoubleCID
	CodeCID
	FunctionCID
	FieldCID
	NumPredefinedCIDs

	// Instance classes are numbered from here on.
	FirstInstanceCID = NumPredefinedCIDs
)

func (cid ClassID) String() string {
	switch cid {
	case NullCID:
		return "Null"
	case StringCID:
		return "String"
	case IntegerCID:
		return "Integer"
	case DoubleCID:
		return "Double"
	case CodeCID:
		return "Code"
	case FunctionCID:
		return "Function"
	case FieldCID:
		return "Field"
	default:
		return fmt.Sprintf("Class#%d", uint32(cid))
	}
}

type Generation uint8

const (
	New Generation = iota
	Old
)

// Header is embedded in every object.
type Header struct {
	addr uint64
	gen  Generation
}

// Addr is the current identity of the object.  It is zero until the object
// has been allocated, and it may change when the heap is compacted.
func (h *Header) Addr() uint64 { return h.addr }

func (h *Header) IsOld() bool { return h.gen == Old }

func (h *Header) header() *Header { return h }

// Object is implemented by the types of this package.  The set is closed.
type Object interface {
	ClassID() ClassID
	Addr() uint64
	IsOld() bool
	Key() Key
	header() *Header
}

type NullObject struct{ Header }

// Null is the only NullObject.  It lives in old space at a fixed address.
var Null = &NullObject{Header{addr: nullAddr, gen: Old}}

func (*NullObject) ClassID() ClassID { return NullCID }

type String struct {
	Header
	Value string
}

func (*String) ClassID() ClassID { return StringCID }

type Integer struct {
	Header
	Value int64
}

func (*Integer) ClassID() ClassID { return IntegerCID }

type Double struct {
	Header
	Value float64
}

func (*Double) ClassID() ClassID { return DoubleCID }

// BitwiseEquals compares the IEEE bit patterns, so NaNs with equal payloads
// are equal and positive and negative zero are not.
func (d *Double) BitwiseEquals(other *Double) bool {
	return math.Float64bits(d.Value) == math.Float64bits(other.Value)
}

// Code wraps an instructions payload.  The wrapper object moves under
// compaction; the payload doesn't (see Heap.Compact).
type Code struct {
	Header
	Name         string
	Instructions []byte

	payload uint64
}

func (*Code) ClassID() ClassID { return CodeCID }

// PayloadStart is the stable address of the instructions.
func (c *Code) PayloadStart() uint64 { return c.payload }

type Function struct {
	Header
	Owner     string
	Name      string
	NumParams int
}

func (*Function) ClassID() ClassID { return FunctionCID }

type Field struct {
	Header
	Owner string
	Name  string
}

func (*Field) ClassID() ClassID { return FieldCID }

// Instance of a user class.  Instances compare by identity.
type Instance struct {
	Header
	Class  ClassID
	Fields []Object
}

func (i *Instance) ClassID() ClassID { return i.Class }
