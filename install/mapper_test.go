// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package install

import (
	"testing"

	"gate.computer/emit/asm"
	"gate.computer/emit/memory"
)

var _ Allocator = memory.Mapper{}

func TestInstallMapper(t *testing.T) {
	e := newEnv(asm.Config{})
	str, _ := e.assemble()

	var m memory.Mapper

	code, err := Install(e.asm, m)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := m.Free(code.Text); err != nil {
			t.Error(err)
		}
	}()

	if code.Text.Start() == 0 {
		t.Fatal("no text address")
	}
	if x := code.Text.Load64(2); x != str.Addr() {
		t.Errorf("%#x", x)
	}
	if x := code.Text.Load8(code.Text.Size() - 1); x != 0xc3 {
		t.Errorf("%#x", x)
	}
}
