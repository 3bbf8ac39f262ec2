// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package object

import (
	"math"

	"github.com/zeebo/xxh3"
)

const nullHash = 2011

// Key determines when two objects are interchangeable as constants.  Strings
// and numbers are keyed by content, other objects by identity.  A key doesn't
// depend on the object's address, so it stays valid across compaction.
//
// Keys are comparable with ==.  Equal keys have equal hashes.
type Key struct {
	Hash  uint64
	value any
}

type (
	stringKey  string
	integerKey int64
	doubleKey  uint64
)

func (o *NullObject) Key() Key { return Key{nullHash, o} }
func (o *String) Key() Key     { return Key{xxh3.HashString(o.Value), stringKey(o.Value)} }
func (o *Integer) Key() Key    { return Key{uint64(o.Value), integerKey(o.Value)} }

// Key of a double is its bit pattern.  See BitwiseEquals.
func (o *Double) Key() Key {
	bits := math.Float64bits(o.Value)
	return Key{bits, doubleKey(bits)}
}

// Key of a code object is hashed by its payload address, which doesn't change
// when the heap is compacted.
func (o *Code) Key() Key { return Key{o.payload, o} }

// Key of a function is hashed by its signature.
func (o *Function) Key() Key {
	h := xxh3.HashString(o.Owner)
	h = h*31 + xxh3.HashString(o.Name)
	h = h*31 + uint64(o.NumParams)
	return Key{h, o}
}

func (o *Field) Key() Key    { return Key{xxh3.HashString(o.Name), o} }
func (o *Instance) Key() Key { return Key{uint64(o.Class), o} }
