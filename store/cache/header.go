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
	"fmt"

	"github.com/google/uuid"
)

// indexMagic identifies a valid index region; it is the first four
// bytes of the global header.
const indexMagic = uint32(0x50584C43) // "PXLC"

const indexVersion = uint32(1)

// Global header layout (spec §3, §6.1): readers depend only on its
// total length, a constant shared with the writer. The exact content
// is otherwise an unspecified, writer-defined artifact (spec §9, Open
// Questions); this is this module's resolution of that question.
//
//	[0:4)   magic   uint32 LE
//	[4:8)   version uint32 LE
//	[8:24)  generation uuid.UUID, raw bytes
//	[24:32) treeSize   uint64 native-endian
//
// RadixOffset is where the tree begins; it is fixed and shared with
// the writer regardless of what the header itself contains.
const (
	headerMagicOffset      = 0
	headerVersionOffset    = 4
	headerGenerationOffset = 8
	headerTreeSizeOffset   = 24
	HeaderSize             = 32

	// RadixOffset is the absolute offset of the tree's root node.
	RadixOffset = HeaderSize
)

// IndexHeader is the parsed global header. Readers use it only to
// recover the generation stamp for Reader.Generation(); the tree walk
// itself starts at RadixOffset unconditionally.
type IndexHeader struct {
	Magic      uint32
	Version    uint32
	Generation uuid.UUID
	TreeSize   uint64
}

func readIndexHeader(region *MappedRegion) (IndexHeader, error) {
	var h IndexHeader

	magic, err := region.GetInt(headerMagicOffset)
	if err != nil {
		return h, err
	}
	version, err := region.GetInt(headerVersionOffset)
	if err != nil {
		return h, err
	}

	var genBytes [16]byte
	if err := region.GetBytes(headerGenerationOffset, genBytes[:]); err != nil {
		return h, err
	}
	gen, err := uuid.FromBytes(genBytes[:])
	if err != nil {
		return h, err
	}

	treeSize, err := region.GetLong(headerTreeSizeOffset)
	if err != nil {
		return h, err
	}

	if magic != indexMagic {
		return h, fmt.Errorf("%w: bad magic %#x (want %#x)", ErrCorruptIndex, magic, indexMagic)
	}
	if version != indexVersion {
		return h, fmt.Errorf("%w: unsupported version %d (want %d)", ErrCorruptIndex, version, indexVersion)
	}

	h.Magic = magic
	h.Version = version
	h.Generation = gen
	h.TreeSize = treeSize
	return h, nil
}
