// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package install moves assembled code into its final memory.
package install

import (
	"sort"

	"gate.computer/emit/asm"
	"gate.computer/emit/internal"
	"gate.computer/emit/internal/debug"
	"gate.computer/emit/internal/errors"
	"gate.computer/emit/internal/pan"
	"gate.computer/emit/memory"
	"gate.computer/emit/pool"
)

// Allocator provides destination memory.  memory.Plain and memory.Mapper
// implement it.
type Allocator interface {
	Allocate(size int) (memory.Region, error)
	Seal(memory.Region) error
}

// Code is the result of installation.
type Code struct {
	Text memory.Region
	Pool *pool.Pool

	// PointerOffsets are the text offsets of embedded object references, in
	// ascending order.  A garbage collector visits them.
	PointerOffsets []int32

	Comments []asm.Comment
}

// Install finalizes the instructions of the assembler into memory obtained
// from alloc, and snapshots the object pool.  The assembler must not be used
// for emission afterwards.
//
// Allocator errors and size limit violations are returned.  Programming
// errors panic.
func Install(a *asm.Assembler, alloc Allocator) (code *Code, err error) {
	if internal.DontPanic() {
		defer func() {
			err = internal.Error(recover())
		}()
	}

	code = install(a, alloc)
	return
}

func install(a *asm.Assembler, alloc Allocator) *Code {
	if debug.Enabled {
		debug.Printf("install {")
		debug.Depth++
	}

	b := a.Buffer

	numPointers := b.CountPointerOffsets()
	pointers := make([]int32, 0, numPointers)

	b.CheckSize()
	text := pan.Must(alloc.Allocate(b.Size()))
	b.FinalizeInstructions(text)

	pointers = append(pointers, b.PointerOffsets()...)
	if len(pointers) != numPointers {
		panic(errors.Fatalf("%d pointer offsets recorded; %d expected", len(pointers), numPointers))
	}
	sort.Slice(pointers, func(i, j int) bool { return pointers[i] < pointers[j] })

	p := a.ObjectPool.MakeObjectPool()

	pan.Check(alloc.Seal(text))

	if debug.Enabled {
		debug.Printf("%d bytes, %d pool entries, %d pointers", text.Size(), p.Len(), len(pointers))
		debug.Depth--
		debug.Printf("}")
	}

	var comments []asm.Comment
	if a.EmittingComments() {
		comments = append(comments, a.Comments()...)
	}

	return &Code{
		Text:           text,
		Pool:           p,
		PointerOffsets: pointers,
		Comments:       comments,
	}
}
