// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/state"
)

type Marshaler interface {
	// Size is the number of bytes [Marshal] writes, excluding the type ID.
	Size() int
	Marshal(p *codec.Packer)
}

// Action is a single operation on state. Every key [Execute] touches must
// be declared by [StateKeys]; the processor locks and pre-fetches exactly
// those keys.
type Action interface {
	codec.Typed
	Marshaler

	// StateKeys is a full enumeration of all database keys that could be
	// touched during execution of an [Action] by [actor].
	StateKeys(actor codec.Address) state.Keys

	// Execute applies the action to [mu]. If it returns an error, every
	// change it made is discarded.
	Execute(
		ctx context.Context,
		mu state.Mutable,
		timestamp int64,
		actor codec.Address,
		actionID ids.ID,
	) (codec.Typed, error)
}

// Auth proves that [Actor] signed a transaction.
type Auth interface {
	codec.Typed
	Marshaler

	Verify(ctx context.Context, msg []byte) error
	Actor() codec.Address
}

// AuthFactory produces [Auth] for messages signed with a private key.
type AuthFactory interface {
	Sign(msg []byte) (Auth, error)
	Address() codec.Address
}

type (
	ActionRegistry = *codec.TypeParser[Action]
	AuthRegistry   = *codec.TypeParser[Auth]
)

// Recorder writes per-transaction metadata into the batch that commits the
// transaction's state changes.
type Recorder interface {
	Record(ctx context.Context, batch database.KeyValueWriter, result *Result) error
}
