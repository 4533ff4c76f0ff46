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

import "github.com/pixelsdb/pixels-cache/store/d"

// nodeHeader is the bit-packed 4-byte node header: isKey (1 bit, MSB)
// | edgeLen (22 bits) | childCount (9 bits, LSB). It is the
// interchange format shared with the writer; the raw uint32 never
// leaves this file.
type nodeHeader uint32

const (
	childCountBits = 9
	edgeLenBits    = 22

	childCountMask = uint32(1)<<childCountBits - 1 // 0x1FF
	edgeLenMask    = uint32(1)<<edgeLenBits - 1     // 0x3FFFFF

	maxChildCount = 256 // spec §3 invariant: childCount <= 256
)

// newNodeHeader packs a node header for a writer (or a test fixture
// builder); it is never called on the lookup path, which only ever
// type-converts an already-encoded uint32 read from the mapped region.
// Passing values that don't fit the wire widths is a caller bug, not
// index corruption, so it panics rather than degrading silently.
func newNodeHeader(isKey bool, edgeLen, childCount int) nodeHeader {
	d.PanicIfFalse(edgeLen >= 0 && edgeLen <= int(edgeLenMask))
	d.PanicIfFalse(childCount >= 0 && childCount <= maxChildCount)

	var h uint32
	if isKey {
		h |= 1 << 31
	}
	h |= (uint32(edgeLen) & edgeLenMask) << childCountBits
	h |= uint32(childCount) & childCountMask
	return nodeHeader(h)
}

// IsKey reports whether a leaf payload follows the edge bytes.
func (h nodeHeader) IsKey() bool { return uint32(h)>>31&1 == 1 }

// EdgeLen is the number of incoming edge bytes for this node.
func (h nodeHeader) EdgeLen() int { return int(uint32(h) >> childCountBits & edgeLenMask) }

// ChildCount is the number of children in this node's branch table.
func (h nodeHeader) ChildCount() int { return int(uint32(h) & childCountMask) }
