// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"path"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToID(t *testing.T) {
	require := require.New(t)

	a := ToID([]byte("pool"))
	require.Equal(a, ToID([]byte("pool")))
	require.NotEqual(a, ToID([]byte("loop")))
}

func TestInitSubDirectory(t *testing.T) {
	require := require.New(t)

	root := t.TempDir()
	p, err := InitSubDirectory(root, "db")
	require.NoError(err)
	require.Equal(path.Join(root, "db"), p)
	require.DirExists(p)
}
