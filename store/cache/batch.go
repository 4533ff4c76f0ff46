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

import "sort"

// byteRange is a half-open [Offset, Offset+Length) slice of the data
// region, as addressed by an Idx.
type byteRange struct {
	Offset uint64
	Length uint32
}

func (b byteRange) end() uint64 { return b.Offset + uint64(b.Length) }

// canMerge reports whether appending next onto the tail of a run
// ending at end would keep the combined span within maxGap bytes of
// slack, the same coalescing test the teacher's table reader applies
// (go/store/nbs TestCanReadAhead) before deciding whether one larger
// read can stand in for two smaller ones.
func canMerge(end uint64, next byteRange, maxGap uint64) bool {
	if next.Offset < end {
		return true // overlapping
	}
	return next.Offset-end <= maxGap
}

// mergeRanges coalesces adjacent or near-adjacent ranges (within
// maxGap bytes of each other) into the fewest spanning ranges that
// still cover every input range, preserving the ability to slice each
// original range back out of a single copied buffer. Input order is
// not preserved; callers that need per-key results index back into
// the merged ranges by offset.
func mergeRanges(ranges []byteRange, maxGap uint64) []byteRange {
	if len(ranges) == 0 {
		return nil
	}

	sorted := make([]byteRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })

	merged := make([]byteRange, 0, len(sorted))
	cur := sorted[0]
	for _, r := range sorted[1:] {
		if canMerge(cur.end(), r, maxGap) {
			if e := r.end(); e > cur.end() {
				cur.Length = uint32(e - cur.Offset)
			}
			continue
		}
		merged = append(merged, cur)
		cur = r
	}
	merged = append(merged, cur)
	return merged
}
