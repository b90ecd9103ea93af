// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/cpamm/consts"
)

var genesisKey = []byte{genesisPrefix}

// SetGenesis records that the genesis identified by [id] was applied.
func SetGenesis(_ context.Context, db database.KeyValueWriter, id ids.ID) error {
	return db.Put(genesisKey, id[:])
}

// GetGenesis returns the ID of the applied genesis, if any.
func GetGenesis(_ context.Context, db database.KeyValueReader) (ids.ID, bool, error) {
	v, err := db.Get(genesisKey)
	if errors.Is(err, database.ErrNotFound) {
		return ids.Empty, false, nil
	}
	if err != nil {
		return ids.Empty, false, err
	}
	if len(v) != consts.IDLen {
		return ids.Empty, false, ErrCorruptRecord
	}
	return ids.ID(v), true, nil
}
