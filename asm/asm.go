// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm contains the architecture-independent part of an assembler: the
// code buffer, the object pool builder, comments and stops.  Instruction
// encoders embed an Assembler.
package asm

import (
	"fmt"
	"sort"

	"gate.computer/emit/buffer"
	"gate.computer/emit/internal/debug"
	"gate.computer/emit/internal/errors"
	"gate.computer/emit/object"
	"gate.computer/emit/pool"
)

// MaxCommentSize is the length limit of comment text in bytes.  Longer text
// is truncated.
const MaxCommentSize = 1023

type Config struct {
	Buffer buffer.Config

	// Comments enables comment recording.
	Comments bool

	// Disassemble implies Comments.
	Disassemble bool
}

// Comment is attached to a code offset.
type Comment struct {
	Offset int32
	Text   string
}

// Assembler state of one compilation unit.  It is not safe for concurrent
// use.
type Assembler struct {
	Buffer     *buffer.Buffer
	ObjectPool *pool.Builder

	// Stop is invoked by Unimplemented, Untested and Unreachable.  An encoder
	// typically emits a breakpoint instruction with the message.  If Stop is
	// nil, those calls are fatal.
	Stop func(message string)

	config   Config
	comments []Comment
}

// New assembler.  The buffer's storage, the pool's handles and the durable
// handles of the encoder should be allocated from zone.  The zone may be
// nil.
func New(zone *object.Zone, config Config) *Assembler {
	return &Assembler{
		Buffer:     buffer.New(zone, config.Buffer),
		ObjectPool: pool.NewBuilder(zone),
		config:     config,
	}
}

func (a *Assembler) Config() Config { return a.config }

func (a *Assembler) EmittingComments() bool {
	return a.config.Comments || a.config.Disassemble
}

// Comment at the current code position.  Nothing is recorded unless
// EmittingComments.
func (a *Assembler) Comment(format string, args ...interface{}) {
	if !a.EmittingComments() {
		return
	}

	text := fmt.Sprintf(format, args...)
	if len(text) > MaxCommentSize {
		text = text[:MaxCommentSize]
	}

	a.comments = append(a.comments, Comment{a.Buffer.Position(), text})

	if debug.Enabled {
		debug.Printf("comment: %#x: %s", a.Buffer.Position(), text)
	}
}

// Comments in code offset order.  Comments at the same offset are in the order
// they were made.
func (a *Assembler) Comments() []Comment {
	return a.comments
}

// CommentsAt returns the comments of a code offset.
func (a *Assembler) CommentsAt(offset int32) []Comment {
	return CommentsAt(a.comments, offset)
}

// CommentsAt finds the comments of offset in an ordered list.
func CommentsAt(comments []Comment, offset int32) []Comment {
	i := sort.Search(len(comments), func(i int) bool {
		return comments[i].Offset >= offset
	})
	j := i
	for j < len(comments) && comments[j].Offset == offset {
		j++
	}
	return comments[i:j]
}

func (a *Assembler) Unimplemented(message string) {
	a.stop("Unimplemented", message)
}

func (a *Assembler) Untested(message string) {
	a.stop("Untested", message)
}

func (a *Assembler) Unreachable(message string) {
	a.stop("Unreachable", message)
}

func (a *Assembler) stop(kind, message string) {
	text := kind + ": " + message

	if a.Stop == nil {
		panic(errors.Fatal(text))
	}

	a.Comment("%s", text)
	a.Stop(text)
}
