// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	db := memdb.New()
	require.NoError(db.Put([]byte("a"), []byte{1}))

	r := NewReader(db)
	v, err := r.GetValue(ctx, []byte("a"))
	require.NoError(err)
	require.Equal([]byte{1}, v)
	_, err = r.GetValue(ctx, []byte("b"))
	require.ErrorIs(err, database.ErrNotFound)

	values, err := Fetch(ctx, r, Keys{"a": Read, "b": All})
	require.NoError(err)
	require.Len(values, 1)
	require.Equal([]byte{1}, values["a"])
}
