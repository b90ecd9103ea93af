// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
)

// Note: Registry will error during initialization if a duplicate ID is assigned. We explicitly assign IDs to avoid accidental remapping.
const (
	// Auth TypeIDs
	ED25519ID uint8 = consts.ED25519ID

	ED25519Key = "ed25519"
)

// NewRegistry returns the auth types a transaction may carry.
func NewRegistry() (chain.AuthRegistry, error) {
	registry := codec.NewTypeParser[chain.Auth]()
	if err := registry.Register(ED25519ID, UnmarshalED25519); err != nil {
		return nil, err
	}
	return registry, nil
}
