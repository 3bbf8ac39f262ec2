// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dump

import (
	"bytes"
	"strings"
	"testing"

	"gate.computer/emit/object"
	"gate.computer/emit/pool"
)

func TestPool(t *testing.T) {
	heap := object.NewHeap()
	zone := object.NewZone()

	b := pool.NewBuilder(zone)
	b.FindImmediate(0xCAFE)
	b.FindObject(zone.Handle(heap.AllocateOld(&object.String{Value: "s"})), pool.Patchable)

	var buf bytes.Buffer
	if err := Pool(&buf, b.MakeObjectPool()); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatal(buf.String())
	}
	if !strings.Contains(lines[0], "[0x10] not patchable immediate 0xcafe") {
		t.Error(lines[0])
	}
	if !strings.Contains(lines[1], "[0x18] patchable String @0x200000000") {
		t.Error(lines[1])
	}
}

func TestPoolEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Pool(&buf, pool.Empty()); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Error(buf.String())
	}
}
