// Copyright 2025 Dolthub, Inc.
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
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestSizes(t *testing.T) {
	// These are the on-disk interchange widths (spec §3, §6.1); they
	// are a bit-exact contract with the writer and must not change
	// without a coordinated format bump.
	assert.Equal(t, 12, CacheKeySize)
	assert.Equal(t, 12, idxPayloadSize)
	assert.Equal(t, 8, childEntrySize)
	assert.Equal(t, int64(32), int64(HeaderSize))
	assert.Equal(t, int64(HeaderSize), int64(RadixOffset))

	assert.Equal(t, uintptr(4), unsafe.Sizeof(nodeHeader(0)))
	assert.Equal(t, uintptr(16), unsafe.Sizeof(Idx{})) // offset(8) + length(4) + padding
}
