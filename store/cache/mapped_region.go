// Copyright 2019 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/edsrzf/mmap-go"
)

// MappedRegion is a read-only view of a file as a contiguous byte
// range in the process's address space. All reads are bounds-checked;
// an out-of-bounds read returns ErrOutOfBounds rather than faulting.
//
// A MappedRegion is safe for concurrent reads from any number of
// goroutines: the mapping is established once at Open and never
// mutated afterward.
type MappedRegion struct {
	data   mmap.MMap
	size   int64
	closed int32
}

// OpenMappedRegion maps exactly size bytes of the file at path.
func OpenMappedRegion(path string, size int64) (*MappedRegion, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrIoError, path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %v", ErrIoError, path, err)
	}
	if size > fi.Size() {
		return nil, fmt.Errorf("%w: requested size %d exceeds file size %d for %s", ErrIoError, size, fi.Size(), path)
	}

	m, err := mmap.MapRegion(f, int(size), mmap.RDONLY, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %s: %v", ErrIoError, path, err)
	}

	return &MappedRegion{data: m, size: size}, nil
}

// Size returns the mapped length in bytes.
func (r *MappedRegion) Size() int64 { return r.size }

func (r *MappedRegion) checkBounds(off int64, width int64) error {
	if atomic.LoadInt32(&r.closed) != 0 {
		return fmt.Errorf("%w: region is unmapped", ErrOutOfBounds)
	}
	if off < 0 || width < 0 || off+width > r.size {
		return fmt.Errorf("%w: offset %d width %d exceeds region size %d", ErrOutOfBounds, off, width, r.size)
	}
	return nil
}

// GetInt reads a 4-byte little-endian unsigned integer at off.
func (r *MappedRegion) GetInt(off int64) (uint32, error) {
	if err := r.checkBounds(off, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.data[off : off+4]), nil
}

// GetLong reads an 8-byte unsigned integer at off in the machine's
// native byte order, matching the writer that produced the region
// (spec §4.1: portability across heterogeneous writer/reader pairs is
// out of scope).
func (r *MappedRegion) GetLong(off int64) (uint64, error) {
	if err := r.checkBounds(off, 8); err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint64(r.data[off : off+8]), nil
}

// GetBytes copies len(dst) bytes from the region at off into dst.
func (r *MappedRegion) GetBytes(off int64, dst []byte) error {
	if err := r.checkBounds(off, int64(len(dst))); err != nil {
		return err
	}
	copy(dst, r.data[off:off+int64(len(dst))])
	return nil
}

// Unmap releases the mapping. It is idempotent and safe to call after
// in-flight reads complete; calling it while lookups are in flight on
// another goroutine is a programming error (spec §5, Teardown).
func (r *MappedRegion) Unmap() error {
	if !atomic.CompareAndSwapInt32(&r.closed, 0, 1) {
		return nil
	}
	return r.data.Unmap()
}
