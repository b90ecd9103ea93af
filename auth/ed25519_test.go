// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/crypto/ed25519"
)

func TestED25519Sign(t *testing.T) {
	require := require.New(t)

	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)

	factory := NewED25519Factory(priv)

	message := []byte("Hello, world!")
	auth, err := factory.Sign(message)
	require.NoError(err)
	require.Equal(factory.Address(), auth.Actor())
	require.Equal(ED25519ID, auth.Actor().TypeID())

	ctx := context.Background()
	require.NoError(auth.Verify(ctx, message))

	wrongMessage := []byte("Avalanche")
	require.ErrorIs(auth.Verify(ctx, wrongMessage), ed25519.ErrInvalidSignature)
}

func TestED25519Marshal(t *testing.T) {
	require := require.New(t)

	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	auth, err := NewED25519Factory(priv).Sign([]byte("msg"))
	require.NoError(err)

	p := codec.NewWriter(auth.Size(), auth.Size())
	auth.Marshal(p)
	require.NoError(p.Err())
	require.Len(p.Bytes(), ED25519Size)

	parsed, err := UnmarshalED25519(codec.NewReader(p.Bytes(), ED25519Size))
	require.NoError(err)
	require.Equal(auth.Actor(), parsed.Actor())
	require.NoError(parsed.Verify(context.Background(), []byte("msg")))

	_, err = UnmarshalED25519(codec.NewReader(p.Bytes()[:10], ED25519Size))
	require.Error(err)
}

func TestPrivateKeyFactory(t *testing.T) {
	require := require.New(t)

	f := NewED25519PrivateKeyFactory()
	pk, err := f.GeneratePrivateKey()
	require.NoError(err)

	loaded, err := f.LoadPrivateKey(pk.Bytes)
	require.NoError(err)
	require.Equal(pk.Address, loaded.Address)

	_, err = f.LoadPrivateKey([]byte{1})
	require.ErrorIs(err, ErrInvalidPrivateKeySize)

	factory, err := GetFactory(pk)
	require.NoError(err)
	require.Equal(pk.Address, factory.Address())
}

func TestRegistry(t *testing.T) {
	require := require.New(t)

	registry, err := NewRegistry()
	require.NoError(err)
	_, ok := registry.Lookup(ED25519ID)
	require.True(ok)
}
