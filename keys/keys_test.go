// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keys

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeChunks(t *testing.T) {
	require := require.New(t)

	k := EncodeChunks([]byte{1, 2, 3}, 3)
	require.Equal([]byte{1, 2, 3, 0, 3}, k)
	chunks, ok := MaxChunks(k)
	require.True(ok)
	require.Equal(uint16(3), chunks)

	_, ok = MaxChunks([]byte{1})
	require.False(ok)
	require.False(Valid([]byte{1}))
}

func TestVerifyValue(t *testing.T) {
	tests := []struct {
		name     string
		chunks   uint16
		valueLen int
		valid    bool
	}{
		{name: "empty value", chunks: 0, valueLen: 0, valid: true},
		{name: "single chunk", chunks: 1, valueLen: 63, valid: true},
		{name: "boundary needs two chunks", chunks: 1, valueLen: 64, valid: false},
		{name: "two chunks", chunks: 2, valueLen: 64, valid: true},
		{name: "pool record", chunks: 3, valueLen: 173, valid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := EncodeChunks([]byte{0}, tt.chunks)
			require.Equal(t, tt.valid, VerifyValue(k, bytes.Repeat([]byte{1}, tt.valueLen)))
		})
	}
}

func TestEncode(t *testing.T) {
	require := require.New(t)

	k, ok := Encode([]byte{9}, 100)
	require.True(ok)
	chunks, ok := MaxChunks(k)
	require.True(ok)
	require.Equal(uint16(2), chunks)
}
