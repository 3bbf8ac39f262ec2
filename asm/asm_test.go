// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strings"
	"testing"

	"gate.computer/emit/errors"
)

func expectFatal(t *testing.T) {
	t.Helper()
	x := recover()
	err, _ := x.(error)
	if !errors.IsFatal(err) {
		t.Errorf("expected fatal error, got %v", x)
	}
}

func nop(a *Assembler, n int) {
	g := a.Buffer.EnsureCapacity()
	for i := 0; i < n; i++ {
		a.Buffer.AppendByte(0x90)
	}
	g.Release()
}

func TestCommentsDisabled(t *testing.T) {
	a := New(nil, Config{})
	if a.EmittingComments() {
		t.Fatal("comments enabled")
	}

	a.Comment("ignored %d", 1)
	if len(a.Comments()) != 0 {
		t.Fatal(a.Comments())
	}
}

func TestComments(t *testing.T) {
	for _, config := range []Config{{Comments: true}, {Disassemble: true}} {
		a := New(nil, config)

		a.Comment("prologue")
		nop(a, 3)
		a.Comment("body %d", 1)
		a.Comment("body %d", 2)
		nop(a, 1)
		a.Comment("epilogue")

		expect := []Comment{
			{0, "prologue"},
			{3, "body 1"},
			{3, "body 2"},
			{4, "epilogue"},
		}

		comments := a.Comments()
		if len(comments) != len(expect) {
			t.Fatal(comments)
		}
		for i, c := range comments {
			if c != expect[i] {
				t.Errorf("comment %d: %v", i, c)
			}
		}

		if cs := a.CommentsAt(3); len(cs) != 2 || cs[0].Text != "body 1" || cs[1].Text != "body 2" {
			t.Error(cs)
		}
		if cs := a.CommentsAt(2); len(cs) != 0 {
			t.Error(cs)
		}
		if cs := a.CommentsAt(100); len(cs) != 0 {
			t.Error(cs)
		}
	}
}

func TestCommentTruncation(t *testing.T) {
	a := New(nil, Config{Comments: true})
	a.Comment("%s", strings.Repeat("x", 5000))

	if n := len(a.Comments()[0].Text); n != MaxCommentSize {
		t.Fatal(n)
	}
}

func TestStop(t *testing.T) {
	a := New(nil, Config{Comments: true})

	var messages []string
	a.Stop = func(message string) {
		messages = append(messages, message)
	}

	a.Unimplemented("float32 division")
	a.Untested("far call")
	a.Unreachable("default case")

	expect := []string{
		"Unimplemented: float32 division",
		"Untested: far call",
		"Unreachable: default case",
	}

	if len(messages) != len(expect) {
		t.Fatal(messages)
	}
	for i, s := range messages {
		if s != expect[i] {
			t.Error(s)
		}
	}

	if n := len(a.Comments()); n != 3 {
		t.Error(n)
	}
}

func TestStopWithoutHook(t *testing.T) {
	a := New(nil, Config{})

	defer expectFatal(t)
	a.Unreachable("x")
}
