// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	require := require.New(t)

	c, err := New(nil)
	require.NoError(err)
	require.Equal(logging.Info, c.LogLevel)
	require.Equal(int64(60_000), c.ValidityWindow)
	require.True(c.StoreTransactions)
	require.False(c.Trace.Enabled)
	require.Equal(1_024, c.StreamMaxPendingMessages)
	require.Equal(DefaultChainID, c.ChainID)
	require.NotEqual(ids.Empty, c.ChainID)
}

func TestNewChainID(t *testing.T) {
	require := require.New(t)

	chainID := ids.GenerateTestID()
	c, err := New([]byte(`{"chainId":"` + chainID.String() + `"}`))
	require.NoError(err)
	require.Equal(chainID, c.ChainID)

	_, err = New([]byte(`{"chainId":"` + ids.Empty.String() + `"}`))
	require.ErrorIs(err, ErrEmptyChainID)
}

func TestNewOverrides(t *testing.T) {
	require := require.New(t)

	c, err := New([]byte(`{"logLevel":"debug","validityWindow":5000,"allowedOrigins":["https://example.com"]}`))
	require.NoError(err)
	require.Equal(logging.Debug, c.LogLevel)
	require.Equal(int64(5_000), c.ValidityWindow)
	require.Equal([]string{"https://example.com"}, c.AllowedOrigins)
	require.Equal(".cpamm/db", c.DatabasePath)

	_, err = New([]byte(`{"validityWindow":"soon"}`))
	require.Error(err)
}

func TestLoad(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(os.WriteFile(path, []byte(`{"databasePath":"/tmp/pools"}`), 0o600))
	c, err := Load(path)
	require.NoError(err)
	require.Equal("/tmp/pools", c.DatabasePath)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(err)
}
