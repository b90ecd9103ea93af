// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/cpamm/pebble"
	"github.com/ava-labs/cpamm/utils"
)

// New opens the pebble database stored under [chainDataDir]/[namespace] and
// returns it with the registry its metrics are reported to.
func New(cfg pebble.Config, chainDataDir string, namespace string) (*pebble.Database, prometheus.Gatherer, error) {
	path, err := utils.InitSubDirectory(chainDataDir, namespace)
	if err != nil {
		return nil, nil, err
	}
	db, registry, err := pebble.New(path, cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, registry, nil
}
