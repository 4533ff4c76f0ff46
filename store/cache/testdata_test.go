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
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// testChild is one entry of a testNode's branch table: the leader byte
// plus the index (into the enclosing []testNode) of the child node.
type testChild struct {
	leader byte
	node   int
}

// testNode mirrors one radix node for test construction: buildTree
// resolves testChild.node references into absolute byte offsets.
type testNode struct {
	children   []testChild
	edge       []byte
	isKey      bool
	leafOffset uint64
	leafLength uint32
}

func (n testNode) size() int64 {
	s := int64(4 + len(n.children)*childEntrySize + len(n.edge))
	if n.isKey {
		s += idxPayloadSize
	}
	return s
}

// buildTree lays nodes out in the given order starting at RadixOffset
// and returns the full index-region byte image (global header + tree).
// nodes[0] must be the root.
func buildTree(t *testing.T, nodes []testNode) []byte {
	t.Helper()

	offsets := make([]int64, len(nodes))
	cur := int64(RadixOffset)
	for i, n := range nodes {
		offsets[i] = cur
		cur += n.size()
	}

	buf := make([]byte, cur)

	// global header
	binary.LittleEndian.PutUint32(buf[headerMagicOffset:], indexMagic)
	binary.LittleEndian.PutUint32(buf[headerVersionOffset:], indexVersion)
	gen := uuid.New()
	genBytes, err := gen.MarshalBinary()
	require.NoError(t, err)
	copy(buf[headerGenerationOffset:headerGenerationOffset+16], genBytes)
	binary.NativeEndian.PutUint64(buf[headerTreeSizeOffset:], uint64(cur-RadixOffset))

	for i, n := range nodes {
		off := offsets[i]
		h := newNodeHeader(n.isKey, len(n.edge), len(n.children))
		binary.LittleEndian.PutUint32(buf[off:], uint32(h))

		p := off + 4
		for _, c := range n.children {
			raw := (uint64(c.leader) << 56) | (uint64(offsets[c.node]) & 0x00FFFFFFFFFFFFFF)
			binary.NativeEndian.PutUint64(buf[p:], raw)
			p += childEntrySize
		}

		copy(buf[p:], n.edge)
		p += int64(len(n.edge))

		if n.isKey {
			binary.LittleEndian.PutUint64(buf[p:], n.leafOffset)
			binary.LittleEndian.PutUint32(buf[p+8:], n.leafLength)
		}
	}

	return buf
}

// writeMappedFile writes bs to a fresh file under t.TempDir() and maps
// it read-only, returning the region and leaving cleanup to the test's
// temp-dir teardown.
func writeMappedFile(t *testing.T, name string, bs []byte) *MappedRegion {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, bs, 0644))
	region, err := OpenMappedRegion(path, int64(len(bs)))
	require.NoError(t, err)
	return region
}

// emptyIndexRegion returns the bytes of a valid-but-empty index: just
// the global header followed by a root header of all zero bits.
func emptyIndexRegion(t *testing.T) []byte {
	return buildTree(t, []testNode{{}})
}

// newTestReader builds a Reader over a tree and a data region, wired
// the way a caller would wire a real (index, data) publication.
func newTestReader(t *testing.T, nodes []testNode, data []byte, enabled bool) *Reader {
	t.Helper()
	indexRegion := writeMappedFile(t, "index.bin", buildTree(t, nodes))
	dataRegion := writeMappedFile(t, "data.bin", data)
	r, err := NewReader(indexRegion, dataRegion, Config{CacheEnabled: enabled})
	require.NoError(t, err)
	return r
}
