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
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewRadixIndexRejectsBadMagic(t *testing.T) {
	bs := buildTree(t, []testNode{{}})
	binary.LittleEndian.PutUint32(bs[headerMagicOffset:], 0xDEADBEEF)
	region := writeMappedFile(t, "bad-magic.bin", bs)

	_, err := NewRadixIndex(region, logrus.StandardLogger())
	assert.ErrorIs(t, err, ErrCorruptIndex)
}

func TestNewRadixIndexRejectsBadVersion(t *testing.T) {
	bs := buildTree(t, []testNode{{}})
	binary.LittleEndian.PutUint32(bs[headerVersionOffset:], indexVersion+1)
	region := writeMappedFile(t, "bad-version.bin", bs)

	_, err := NewRadixIndex(region, logrus.StandardLogger())
	assert.ErrorIs(t, err, ErrCorruptIndex)
}
