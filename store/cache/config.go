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

	"gopkg.in/yaml.v2"
)

// Config binds exactly the options the cache core consumes from its
// external configuration collaborator (spec §6.3). No other option
// belongs to this core.
type Config struct {
	CacheLocation string `yaml:"cache.location"`
	CacheSize     int64  `yaml:"cache.size"`
	IndexLocation string `yaml:"index.location"`
	IndexSize     int64  `yaml:"index.size"`
	CacheEnabled  bool   `yaml:"cache.enabled"`
}

// LoadConfig reads a Config from a YAML file at path.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	bs, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
