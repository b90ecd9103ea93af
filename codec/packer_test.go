// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestPackerRoundTrip(t *testing.T) {
	require := require.New(t)

	addr := CreateAddress(0, ids.GenerateTestID())
	id := ids.GenerateTestID()

	wp := NewWriter(64, 1024)
	wp.PackByte(7)
	wp.PackAddress(addr)
	wp.PackUint64(1000)
	wp.PackInt64(-5)
	wp.PackID(id)
	wp.PackBytes([]byte("sig"))
	wp.PackString("pool")
	wp.PackBool(true)
	require.NoError(wp.Err())

	rp := NewReader(wp.Bytes(), 1024)
	require.Equal(byte(7), rp.UnpackByte())
	var a Address
	rp.UnpackAddress(&a)
	require.Equal(addr, a)
	require.Equal(uint64(1000), rp.UnpackUint64(true))
	require.Equal(int64(-5), rp.UnpackInt64(true))
	var rid ids.ID
	rp.UnpackID(true, &rid)
	require.Equal(id, rid)
	var b []byte
	rp.UnpackBytes(8, true, &b)
	require.Equal([]byte("sig"), b)
	require.Equal("pool", rp.UnpackString(true))
	require.True(rp.UnpackBool())
	require.True(rp.Empty())
	require.NoError(rp.Err())
}

func TestPackerRequired(t *testing.T) {
	require := require.New(t)

	wp := NewWriter(8, 8)
	wp.PackUint64(0)
	rp := NewReader(wp.Bytes(), 8)
	require.Zero(rp.UnpackUint64(true))
	require.ErrorIs(rp.Err(), ErrFieldNotPopulated)
}

func TestPackerShortInput(t *testing.T) {
	require := require.New(t)

	rp := NewReader([]byte{1, 2}, 8)
	require.Zero(rp.UnpackUint64(false))
	require.Error(rp.Err())
}

func TestTypeParser(t *testing.T) {
	require := require.New(t)

	parser := NewTypeParser[uint64]()
	require.NoError(parser.Register(1, func(p *Packer) (uint64, error) {
		return p.UnpackUint64(true), p.Err()
	}))
	require.ErrorIs(parser.Register(1, nil), ErrDuplicateTypeID)

	wp := NewWriter(9, 9)
	wp.PackByte(1)
	wp.PackUint64(42)
	v, err := parser.Unmarshal(NewReader(wp.Bytes(), 9))
	require.NoError(err)
	require.Equal(uint64(42), v)

	wp = NewWriter(1, 1)
	wp.PackByte(2)
	_, err = parser.Unmarshal(NewReader(wp.Bytes(), 1))
	require.ErrorIs(err, ErrUnknownTypeID)
}
