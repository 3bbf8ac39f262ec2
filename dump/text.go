// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build cgo && amd64

package dump

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bnagy/gapstone"

	"gate.computer/emit/asm"
)

const (
	csArch   = gapstone.CS_ARCH_X86
	csMode   = gapstone.CS_MODE_64
	csSyntax = gapstone.CS_OPT_SYNTAX_ATT
	padInsn  = gapstone.X86_INS_INT3
)

// Text disassembles x86-64 machine code.  Comments are printed before the
// instruction at their offset.  If textAddr is zero, addresses are relative.
func Text(w io.Writer, text []byte, textAddr uintptr, comments []asm.Comment) (err error) {
	if len(text) == 0 {
		return nil
	}

	engine, err := gapstone.New(csArch, csMode)
	if err != nil {
		return
	}
	defer engine.Close()

	err = engine.SetOption(gapstone.CS_OPT_SYNTAX, csSyntax)
	if err != nil {
		return
	}

	insns, err := engine.Disasm(text, 0, 0)
	if err != nil {
		return
	}

	targets := make(map[uint]string)
	rewriteBranches(insns, targets)

	lastAddr := textAddr + uintptr(insns[len(insns)-1].Address)
	addrWidth := (len(fmt.Sprintf("%x", lastAddr)) + 7) &^ 7

	var addrFmt string
	if textAddr == 0 { // relative
		addrFmt = fmt.Sprintf("%%%dx", addrWidth)
	} else {
		addrFmt = fmt.Sprintf("%%0%dx", addrWidth)
	}

	skipPad := false

	for _, insn := range insns {
		notes := asm.CommentsAt(comments, int32(insn.Address))

		switch {
		case insn.Id == padInsn && len(notes) == 0:
			if skipPad {
				continue
			}
			skipPad = true

		default:
			skipPad = false
		}

		for _, c := range notes {
			fmt.Fprintf(w, "\t\t; %s\n", c.Text)
		}

		addr := textAddr + uintptr(insn.Address)

		if name, found := targets[insn.Address]; found {
			fmt.Fprintf(w, addrFmt+" %s:", addr, name)
		} else {
			fmt.Fprintf(w, addrFmt, addr)
		}

		fmt.Fprint(w, "\t", strings.TrimSpace(fmt.Sprintf("%s\t%s", insn.Mnemonic, insn.OpStr)), "\n")
	}

	return
}

// rewriteBranches replaces branch target addresses with local labels.
func rewriteBranches(insns []gapstone.Instruction, targets map[uint]string) {
	sequence := 0

	for i := range insns {
		insn := &insns[i]

		branch := strings.HasPrefix(insn.Mnemonic, "j") || strings.HasPrefix(insn.Mnemonic, "call")
		if !branch || !strings.HasPrefix(insn.OpStr, "0x") {
			continue
		}

		addr, err := strconv.ParseUint(insn.OpStr, 0, 64)
		if err != nil {
			continue
		}

		name, found := targets[uint(addr)]
		if !found {
			name = fmt.Sprintf(".%x", sequence%0x10000)
			sequence++
			targets[uint(addr)] = name
		}

		if uint(addr) < insn.Address {
			insn.OpStr = name + "\t\t\t; back"
		} else {
			insn.OpStr = name
		}
	}
}
