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

import "errors"

// ErrIoError is returned from OpenMappedRegion when the path is absent,
// the requested size is larger than the file, or the mapping syscall
// fails. Construction errors propagate; callers must handle them.
var ErrIoError = errors.New("cache: io error")

// ErrOutOfBounds is returned internally when a read would run past the
// mapped region. It never escapes a Reader lookup: the lookup logs it
// and returns a miss.
var ErrOutOfBounds = errors.New("cache: read out of bounds")

// ErrCorruptIndex is returned internally when the radix tree is
// structurally inconsistent (child count overflow, an offset outside
// the region, a non-terminating descent, or a root node that
// advertises a non-empty edge). It never escapes a Reader lookup.
var ErrCorruptIndex = errors.New("cache: corrupt index")
