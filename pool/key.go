// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pool

import (
	"gate.computer/emit/object"
)

// key of an entry which isn't patchable.  Entries with equal keys share a
// slot.
type key struct {
	typ        Type
	equivalent bool
	object     object.Key
	raw        uint64
}

func keyOf(e Entry) (k key) {
	k.typ = e.Type

	switch {
	case e.Type != TaggedObject:
		k.raw = e.RawValue

	case e.Equivalence != nil:
		k.equivalent = true
		k.object = e.Equivalence.Object().Key()

	default:
		k.object = e.Object.Object().Key()
	}

	return
}

func (k key) hash() uint64 {
	if k.typ != TaggedObject {
		return k.raw
	}
	return k.object.Hash
}
