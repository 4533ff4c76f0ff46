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

// Command pixels-cache-bench drives a handful of point lookups against
// an already-published (index, data) pair and reports hit rate and
// throughput. It is a manual smoke-test harness, not part of the
// cache's consumer-facing contract (spec §1, §6.4).
package main

import (
	"fmt"
	"os"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/pixelsdb/pixels-cache/store/cache"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to the cache config YAML")
		blockID    = flag.Uint64("block", 0, "blockId to look up")
		rgID       = flag.Uint16("rg", 0, "rowGroupId to look up")
		colID      = flag.Uint16("col", 0, "columnId to look up")
		repeat     = flag.Int("repeat", 1, "number of times to repeat the lookup")
	)
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "usage: pixels-cache-bench --config <path> [--block N --rg N --col N --repeat N]")
		os.Exit(2)
	}

	log := logrus.StandardLogger()

	cfg, err := cache.LoadConfig(*configPath)
	if err != nil {
		log.WithError(err).Fatal("loading config")
	}

	indexRegion, err := cache.OpenMappedRegion(cfg.IndexLocation, cfg.IndexSize)
	if err != nil {
		log.WithError(err).Fatal("opening index region")
	}
	dataRegion, err := cache.OpenMappedRegion(cfg.CacheLocation, cfg.CacheSize)
	if err != nil {
		log.WithError(err).Fatal("opening data region")
	}

	reader, err := cache.NewReaderWithLogger(indexRegion, dataRegion, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("building reader")
	}
	defer reader.Close()

	var hits int
	var totalBytes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		bs, ok := reader.Get(*blockID, *rgID, *colID)
		if ok {
			hits++
			totalBytes += uint64(len(bs))
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("lookups=%d hits=%d bytes=%s elapsed=%s\n",
		*repeat, hits, humanize.Bytes(totalBytes), elapsed)
}
