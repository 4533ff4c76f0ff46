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

// Idx is the 12-byte leaf payload stored at radix-tree nodes marked
// isKey=1: an address into the data region. It is a pure value type —
// an address into an opaque byte region, with no meaning on its own.
type Idx struct {
	Offset uint64
	Length uint32
}

const idxPayloadSize = 12 // 8-byte offset + 4-byte length
