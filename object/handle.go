// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package object

import (
	"gate.computer/emit/internal/errors"
)

// Handle is a stable reference to an object.  It stays valid when the object
// moves: dereferencing yields the object, whose Addr is its current identity.
//
// Zone handles live as long as their zone.  Scoped handles are temporary; they
// must not be stored in state which outlives the current operation, such as
// pool entries or fixups.
type Handle struct {
	obj    Object
	zone   *Zone
	scoped bool
}

// Scoped creates a temporary handle.
func Scoped(o Object) *Handle {
	return &Handle{obj: o, scoped: true}
}

func (h *Handle) Object() Object { return h.obj }

// Set replaces the referenced object.
func (h *Handle) Set(o Object) { h.obj = o }

func (h *Handle) Addr() uint64 { return h.obj.Addr() }
func (h *Handle) IsOld() bool  { return h.obj.IsOld() }
func (h *Handle) IsNull() bool { return h.obj == Null }

func (h *Handle) IsZoneHandle() bool { return h.zone != nil }

// Zone which owns the handle, or nil.
func (h *Handle) Zone() *Zone { return h.zone }

func (h *Handle) IsNotTemporaryScopedHandle() bool { return !h.scoped }

// Zone is an arena whose allocations become garbage together when the
// compilation task which owns it ends.  It is not safe for concurrent use.
type Zone struct {
	handles   []*Handle
	allocated int
	released  bool
}

func NewZone() *Zone {
	return new(Zone)
}

// Handle creates a durable handle with the lifetime of the zone.
func (z *Zone) Handle(o Object) *Handle {
	z.checkLive()
	h := &Handle{obj: o, zone: z}
	z.handles = append(z.handles, h)
	return h
}

// Bytes allocates n bytes.
func (z *Zone) Bytes(n int) []byte {
	z.checkLive()
	z.allocated += n
	return make([]byte, n)
}

// Allocated byte count.
func (z *Zone) Allocated() int { return z.allocated }

// NumHandles is the number of handles created in the zone.
func (z *Zone) NumHandles() int { return len(z.handles) }

// Release ends the zone's lifetime.  Its handles are reset to Null so that
// stale references don't keep objects reachable.
func (z *Zone) Release() {
	for _, h := range z.handles {
		h.obj = Null
	}
	z.handles = nil
	z.released = true
}

func (z *Zone) checkLive() {
	if z.released {
		panic(errors.Fatal("allocation from released zone"))
	}
}
