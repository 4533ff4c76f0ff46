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

	"github.com/sirupsen/logrus"
)

const childEntrySize = 8 // leader byte (high 8 bits) | offset (low 56 bits), native u64

// maxDescentNodes bounds how many node headers a single Search may read
// before giving up and reporting corruption. A well-formed tree never
// approaches this: 12 key bytes and at most 256-way fan-out per node
// bound real descents far below it. It exists only to catch a crafted
// or corrupt tree whose zero-edge nodes point back and forth without
// ever advancing matched, which would otherwise loop forever (spec §7,
// "non-terminating descent").
const maxDescentNodes = 4096

// RadixIndex interprets the index region as a global header followed
// by a tree of variable-sized nodes, keyed by 12-byte CacheKeys.
type RadixIndex struct {
	region *MappedRegion
	header IndexHeader
	log    logrus.FieldLogger
}

// NewRadixIndex parses the global header and returns a RadixIndex
// ready to search. It does not walk the tree; a malformed tree is
// only detected lazily, during Search.
func NewRadixIndex(region *MappedRegion, log logrus.FieldLogger) (*RadixIndex, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	h, err := readIndexHeader(region)
	if err != nil {
		// readIndexHeader's own errors already carry the right sentinel
		// (ErrOutOfBounds for a too-small region, ErrCorruptIndex for a
		// bad magic/version); wrap for context without discarding it.
		return nil, fmt.Errorf("reading index header: %w", err)
	}
	return &RadixIndex{region: region, header: h, log: log}, nil
}

// Generation is the publication stamp carried in the global header.
func (ri *RadixIndex) Generation() [16]byte { return [16]byte(ri.header.Generation) }

func (ri *RadixIndex) readHeader(off int64) (nodeHeader, error) {
	v, err := ri.region.GetInt(off)
	if err != nil {
		return 0, err
	}
	return nodeHeader(v), nil
}

// readChildren bulk-reads a node's childCount*8 byte branch table into
// a scratch buffer private to this call (spec §9: scratch buffers must
// not be shared across threads), then decodes each entry.
func (ri *RadixIndex) readChildren(off int64, childCount int) ([]uint64, error) {
	buf := make([]byte, childCount*childEntrySize)
	if err := ri.region.GetBytes(off, buf); err != nil {
		return nil, err
	}
	out := make([]uint64, childCount)
	for i := 0; i < childCount; i++ {
		out[i] = binary.NativeEndian.Uint64(buf[i*childEntrySize : (i+1)*childEntrySize])
	}
	return out, nil
}

func childLeader(raw uint64) byte  { return byte(raw >> 56) }
func childOffset(raw uint64) int64 { return int64(raw & 0x00FFFFFFFFFFFFFF) }

func findChild(children []uint64, b byte) (int64, bool) {
	for _, c := range children {
		if childLeader(c) == b {
			return childOffset(c), true
		}
	}
	return 0, false
}

func (ri *RadixIndex) readLeaf(off int64) (Idx, error) {
	var buf [idxPayloadSize]byte
	if err := ri.region.GetBytes(off, buf[:]); err != nil {
		return Idx{}, err
	}
	return Idx{
		Offset: binary.LittleEndian.Uint64(buf[0:8]),
		Length: binary.LittleEndian.Uint32(buf[8:12]),
	}, nil
}

func (ri *RadixIndex) corrupt(key CacheKey, nodeOff int64, reason string) {
	blockID, rgID, colID := key.Decode()
	ri.log.WithFields(logrus.Fields{
		"blockId": blockID, "rgId": rgID, "colId": colID,
		"nodeOffset": nodeOff, "reason": reason,
	}).Warn("pixels-cache: corrupt radix index, degrading to miss")
}

// Search descends the radix tree for key, implementing spec §4.3. A
// miss (key absent) and a corruption (structurally broken tree) both
// return false; corruption is additionally logged. Neither ever
// panics or returns bytes outside the data region.
func (ri *RadixIndex) Search(key CacheKey) (Idx, bool) {
	return ri.SearchWithStats(key, nil)
}

// SearchWithStats is Search, additionally accumulating node-visit and
// byte-comparison counters into stats if it is non-nil. The counters
// are a read-only side channel (spec §9); they never affect the
// returned Idx.
func (ri *RadixIndex) SearchWithStats(key CacheKey, stats *LookupStats) (Idx, bool) {
	current := int64(RadixOffset)

	h, err := ri.readHeader(current)
	if err != nil {
		ri.corrupt(key, current, "root header unreadable")
		return Idx{}, false
	}
	if stats != nil {
		stats.NodesVisited++
	}

	if h.EdgeLen() != 0 {
		// spec §9 Open Question: a corrupt root that advertises a
		// non-zero edge length must be rejected, not silently
		// consumed as edge bytes from the start of the children
		// region.
		ri.corrupt(key, current, "root node has non-empty edge")
		return Idx{}, false
	}

	if h.ChildCount() == 0 {
		// empty tree
		return Idx{}, false
	}

	matched := 0
	for visited := 1; ; visited++ {
		if visited > maxDescentNodes {
			ri.corrupt(key, current, "non-terminating descent (node visit bound exceeded)")
			return Idx{}, false
		}

		if h.ChildCount() > maxChildCount {
			ri.corrupt(key, current, "child count exceeds maximum")
			return Idx{}, false
		}

		if matched == 12 {
			if !h.IsKey() {
				return Idx{}, false
			}
			leafOff := current + 4 + int64(h.ChildCount())*childEntrySize + int64(h.EdgeLen())
			idx, err := ri.readLeaf(leafOff)
			if err != nil {
				ri.corrupt(key, current, "leaf payload unreadable")
				return Idx{}, false
			}
			return idx, true
		}

		children, err := ri.readChildren(current+4, h.ChildCount())
		if err != nil {
			ri.corrupt(key, current, "children table unreadable")
			return Idx{}, false
		}

		childOff, ok := findChild(children, key[matched])
		if !ok {
			return Idx{}, false
		}

		nh, err := ri.readHeader(childOff)
		if err != nil {
			ri.corrupt(key, childOff, "child header unreadable")
			return Idx{}, false
		}
		if stats != nil {
			stats.NodesVisited++
			stats.Depth++
		}

		edgeLen := nh.EdgeLen()
		if edgeLen > 0 {
			edgeOff := childOff + 4 + int64(nh.ChildCount())*childEntrySize
			edge := make([]byte, edgeLen)
			if err := ri.region.GetBytes(edgeOff, edge); err != nil {
				ri.corrupt(key, childOff, "edge bytes unreadable")
				return Idx{}, false
			}
			for j := 0; j < edgeLen; j++ {
				if matched+j >= CacheKeySize || edge[j] != key[matched+j] {
					return Idx{}, false
				}
				if stats != nil {
					stats.BytesCompared++
				}
			}
			matched += edgeLen
		}

		current = childOff
		h = nh
	}
}
