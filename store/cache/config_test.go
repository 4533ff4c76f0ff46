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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pixels-cache.yml")
	yaml := `
cache.location: /mnt/pixels/cache.data
cache.size: 17179869184
index.location: /mnt/pixels/cache.index
index.size: 1073741824
cache.enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/mnt/pixels/cache.data", cfg.CacheLocation)
	assert.Equal(t, int64(17179869184), cfg.CacheSize)
	assert.Equal(t, "/mnt/pixels/cache.index", cfg.IndexLocation)
	assert.Equal(t, int64(1073741824), cfg.IndexSize)
	assert.True(t, cfg.CacheEnabled)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}
