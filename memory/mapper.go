// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package memory

import (
	"golang.org/x/sys/unix"
)

// Mapper allocates regions from anonymous memory mappings.  A region is
// writable until it is sealed, after which it is readable and executable
// (never both writable and executable).
type Mapper struct{}

func (Mapper) Allocate(size int) (Region, error) {
	if size == 0 {
		return Region{}, nil
	}

	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return Region{}, err
	}

	return Region{b}, nil
}

// Seal makes the region read-only and executable.
func (Mapper) Seal(r Region) error {
	if len(r.b) == 0 {
		return nil
	}
	return unix.Mprotect(r.b, unix.PROT_READ|unix.PROT_EXEC)
}

// Free unmaps a region returned by Allocate.  Subregions cannot be freed.
func (Mapper) Free(r Region) error {
	if len(r.b) == 0 {
		return nil
	}
	return unix.Munmap(r.b[:cap(r.b)])
}
