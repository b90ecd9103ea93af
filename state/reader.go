// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
)

var _ Immutable = (*Reader)(nil)

// Reader exposes a database as read-only state.
type Reader struct {
	db database.KeyValueReader
}

func NewReader(db database.KeyValueReader) *Reader {
	return &Reader{db: db}
}

func (r *Reader) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return r.db.Get(key)
}

// Fetch reads every key in [ks] from [im], skipping keys that are absent.
func Fetch(ctx context.Context, im Immutable, ks Keys) (map[string][]byte, error) {
	values := make(map[string][]byte, len(ks))
	for k := range ks {
		v, err := im.GetValue(ctx, []byte(k))
		if err == database.ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		values[k] = v
	}
	return values, nil
}
