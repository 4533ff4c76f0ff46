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

import "encoding/binary"

// CacheKeySize is the fixed, big-endian-encoded width of a CacheKey.
const CacheKeySize = 12

// CacheKey identifies a single columnlet: the bytes of one column
// within one row group of one file. It is the search key descended by
// the radix index.
type CacheKey [CacheKeySize]byte

// EncodeCacheKey big-endian-encodes (blockId, rgId, colId) into the
// fixed 12-byte search key.
func EncodeCacheKey(blockID uint64, rgID, colID uint16) CacheKey {
	var k CacheKey
	binary.BigEndian.PutUint64(k[0:8], blockID)
	binary.BigEndian.PutUint16(k[8:10], rgID)
	binary.BigEndian.PutUint16(k[10:12], colID)
	return k
}

// Decode is the inverse of EncodeCacheKey, used only in diagnostics.
func (k CacheKey) Decode() (blockID uint64, rgID, colID uint16) {
	blockID = binary.BigEndian.Uint64(k[0:8])
	rgID = binary.BigEndian.Uint16(k[8:10])
	colID = binary.BigEndian.Uint16(k[10:12])
	return
}
