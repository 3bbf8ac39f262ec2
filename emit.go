// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package emit provides a high-level code emission API.

See the Assemble function's source code for an example of how to use the
low-level APIs (implemented in subpackages).

# Errors

Fatal errors indicate bugs in an instruction encoder or in this module.  They
are panicked and never returned.  The errors subpackage can be used to identify
them after recovery.

ErrSizeLimit is returned when generated code doesn't fit in the configured
maximum size.  Errors returned by an Allocator are passed through.
*/
package emit

import (
	"gate.computer/emit/asm"
	"gate.computer/emit/install"
	"gate.computer/emit/internal"
	"gate.computer/emit/memory"
	"gate.computer/emit/object"
)

// Config for a single assembly.  Zero values are replaced with effective
// defaults.
type Config struct {
	Assembler asm.Config
	Allocator install.Allocator // Defaults to Go memory.
	Zone      *object.Zone      // Released by the caller.
}

// Assemble runs generate with a fresh assembler, and installs the result.
func Assemble(config Config, generate func(*asm.Assembler)) (code *install.Code, err error) {
	if internal.DontPanic() {
		defer func() {
			err = internal.Error(recover())
		}()
	}

	alloc := config.Allocator
	if alloc == nil {
		alloc = memory.Plain{}
	}

	a := asm.New(config.Zone, config.Assembler)
	generate(a)

	code, err = install.Install(a, alloc)
	return
}
