// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fixup implements deferred patches of emitted code.  A fixup is
// recorded at a code offset during emission, and applied once to the final
// memory region after the code has been copied there.
package fixup

import (
	"fmt"
	"sort"

	"gate.computer/emit/internal/debug"
	"gate.computer/emit/internal/errors"
	"gate.computer/emit/memory"
)

// Fixup writes a value into the final region at the recorded position.
type Fixup interface {
	Process(region memory.Region, position int32)

	// IsPointerOffset reports whether the patched value is an object
	// reference which the garbage collector must scan.
	IsPointerOffset() bool
}

// Sizer may be implemented by fixups which know how many bytes they patch.
// It is used for position verification.
type Sizer interface {
	PatchSize() int
}

type node struct {
	position int32
	fixup    Fixup
}

// Chain of fixups in emission order.  It is processed exactly once.
type Chain struct {
	nodes     []node
	processed bool
}

// Add a fixup.  Positions must be added in emission order.
func (c *Chain) Add(f Fixup, position int32) {
	if debug.Enabled {
		debug.Assert(!c.processed, "fixup added after processing")
		if n := len(c.nodes); n > 0 {
			debug.Assert(c.nodes[n-1].position <= position, "fixup position %d precedes %d", position, c.nodes[n-1].position)
		}
	}

	c.nodes = append(c.nodes, node{position, f})
}

func (c *Chain) Len() int { return len(c.nodes) }

// Position of the i'th fixup in emission order.
func (c *Chain) Position(i int) int32 { return c.nodes[i].position }

// Process applies the fixups from the most recent to the oldest.  The region
// must already contain the code.
func (c *Chain) Process(region memory.Region) {
	if c.processed {
		panic(errors.Fatal("fixups processed twice"))
	}
	c.processed = true

	if debug.Enabled {
		debug.Printf("processing %d fixups", len(c.nodes))
	}

	for i := len(c.nodes) - 1; i >= 0; i-- {
		n := c.nodes[i]
		n.fixup.Process(region, n.position)
	}
}

func (c *Chain) Processed() bool { return c.processed }

// CountPointerOffsets counts the fixups which patch object references.
func (c *Chain) CountPointerOffsets() (count int) {
	for _, n := range c.nodes {
		if n.fixup.IsPointerOffset() {
			count++
		}
	}
	return
}

// Verify that every fixup patches bytes within size and that no two fixups
// share a position.
func (c *Chain) Verify(size int) error {
	positions := make([]int32, 0, len(c.nodes))

	for _, n := range c.nodes {
		patchSize := 1
		if s, ok := n.fixup.(Sizer); ok {
			patchSize = s.PatchSize()
		}

		if n.position < 0 || int(n.position) > size-patchSize {
			return fmt.Errorf("fixup at %d (%d bytes) outside of code (%d bytes)", n.position, patchSize, size)
		}

		positions = append(positions, n.position)
	}

	sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })

	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1] {
			return fmt.Errorf("multiple fixups at %d", positions[i])
		}
	}

	return nil
}
