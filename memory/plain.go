// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

// Plain allocates regions from the Go heap.  They are not executable; this is
// useful for inspecting or serializing finalized code.
type Plain struct{}

func (Plain) Allocate(size int) (Region, error) {
	return Region{make([]byte, size)}, nil
}

func (Plain) Seal(Region) error { return nil }
