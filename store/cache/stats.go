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

// LookupStats carries per-lookup counters that are read-only side
// effects of a Search and must never influence what it returns (spec
// §9: dramAccessCount/radixLevel must not affect semantics). Callers
// that don't care pass nil to GetWithStats.
type LookupStats struct {
	NodesVisited  int
	Depth         int
	BytesCompared int
}
