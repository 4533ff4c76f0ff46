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
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/pixelsdb/pixels-cache/store/d"
)

// maxBatchMergeGap bounds how far apart two data-region ranges may sit
// and still be coalesced into a single underlying read by BatchGet.
const maxBatchMergeGap = 4096

// Reader composes a RadixIndex over the index region with the data
// region, answering point lookups for columnlets. It holds no locks on
// the read path: any number of goroutines may call Get/BatchGet
// concurrently, per spec §5.
type Reader struct {
	index   *RadixIndex
	data    *MappedRegion
	enabled bool
	log     logrus.FieldLogger

	closeOnce sync.Once
}

// NewReader builds a Reader over an already-open index and data
// region pair. If cfg.CacheEnabled is false, Get short-circuits to a
// miss on every call without touching the mapped regions (spec §6.3).
func NewReader(indexRegion, dataRegion *MappedRegion, cfg Config) (*Reader, error) {
	return NewReaderWithLogger(indexRegion, dataRegion, cfg, nil)
}

// NewReaderWithLogger is NewReader with an explicit logger; a nil
// logger falls back to logrus's standard logger.
func NewReaderWithLogger(indexRegion, dataRegion *MappedRegion, cfg Config, log logrus.FieldLogger) (*Reader, error) {
	// Wiring a Reader to nil regions is a caller bug, not index
	// corruption encountered in the field: catch it at construction
	// rather than deferring to a nil-pointer fault on the first Get.
	d.PanicIfFalse(indexRegion != nil && dataRegion != nil)

	if log == nil {
		log = logrus.StandardLogger()
	}
	idx, err := NewRadixIndex(indexRegion, log)
	if err != nil {
		return nil, err
	}
	return &Reader{index: idx, data: dataRegion, enabled: cfg.CacheEnabled, log: log}, nil
}

// Generation returns the publication stamp of the currently attached
// index region.
func (r *Reader) Generation() [16]byte { return r.index.Generation() }

// Get encodes (blockId, rgId, colId) into a CacheKey, searches the
// radix index, and on a hit copies Length bytes from the data region
// at Offset. It returns (nil, false) on a miss, on disabled cache, or
// on any internal corruption — callers fall back to storage (spec
// §4.4, §7).
func (r *Reader) Get(blockID uint64, rgID, colID uint16) ([]byte, bool) {
	return r.GetWithStats(blockID, rgID, colID, nil)
}

// GetWithStats is Get, additionally populating stats (if non-nil) with
// read-only lookup counters that never affect the returned bytes.
func (r *Reader) GetWithStats(blockID uint64, rgID, colID uint16, stats *LookupStats) ([]byte, bool) {
	if !r.enabled {
		return nil, false
	}

	key := EncodeCacheKey(blockID, rgID, colID)
	idx, ok := r.index.SearchWithStats(key, stats)
	if !ok {
		return nil, false
	}

	buf := make([]byte, idx.Length)
	if err := r.data.GetBytes(int64(idx.Offset), buf); err != nil {
		r.log.WithFields(logrus.Fields{
			"blockId": blockID, "rgId": rgID, "colId": colID,
			"offset": idx.Offset, "length": idx.Length,
		}).Warn("pixels-cache: data region read out of bounds, degrading to miss")
		return nil, false
	}
	return buf, true
}

// BatchGet resolves every key in keys, merging adjacent/overlapping
// data-region ranges into as few underlying reads as possible (spec
// §4.4, §9) before slicing per-key results back out. Result ordering
// matches input ordering; a miss leaves the corresponding slot nil.
func (r *Reader) BatchGet(keys []CacheKey) [][]byte {
	results := make([][]byte, len(keys))
	if !r.enabled {
		return results
	}

	idxs := make([]Idx, len(keys))
	hits := make([]bool, len(keys))
	var ranges []byteRange

	for i, k := range keys {
		idx, ok := r.index.Search(k)
		idxs[i], hits[i] = idx, ok
		if ok {
			ranges = append(ranges, byteRange{Offset: idx.Offset, Length: idx.Length})
		}
	}

	merged := mergeRanges(ranges, maxBatchMergeGap)
	bufs := make([][]byte, len(merged))
	for i, m := range merged {
		buf := make([]byte, m.Length)
		if err := r.data.GetBytes(int64(m.Offset), buf); err != nil {
			bufs[i] = nil
			continue
		}
		bufs[i] = buf
	}

	for i := range keys {
		if !hits[i] {
			continue
		}
		idx := idxs[i]
		for j, m := range merged {
			if idx.Offset >= m.Offset && idx.Offset+uint64(idx.Length) <= m.end() && bufs[j] != nil {
				start := idx.Offset - m.Offset
				results[i] = bufs[j][start : start+uint64(idx.Length) : start+uint64(idx.Length)]
				break
			}
		}
	}
	return results
}

// Close unmaps both regions. It is idempotent.
func (r *Reader) Close() error {
	var idxErr, dataErr error
	r.closeOnce.Do(func() {
		idxErr = r.index.region.Unmap()
		dataErr = r.data.Unmap()
	})
	if idxErr != nil {
		return idxErr
	}
	return dataErr
}

// Attach builds a new Reader sharing this one's logger and enabled
// flag but pointed at a freshly published (index, data) pair. Swapping
// the active Reader at the call site is then a single pointer-width
// store (spec §9, Atomic region republication), e.g. via atomic.Pointer[Reader].
func (r *Reader) Attach(indexRegion, dataRegion *MappedRegion) (*Reader, error) {
	return NewReaderWithLogger(indexRegion, dataRegion, Config{CacheEnabled: r.enabled}, r.log)
}
