// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/keys"
	"github.com/ava-labs/cpamm/state"
)

const TestActionTypeID = 0xfe

var (
	ErrTestActionExecute = errors.New("test action execution error")

	_ chain.Action = (*TestAction)(nil)
	_ codec.Typed  = (*TestOutput)(nil)
)

// TestAction writes [Value] under each of [WriteKeys] and then fails if
// [ShouldErr] is set.
type TestAction struct {
	WriteKeys [][]byte `json:"writeKeys"`
	Value     []byte   `json:"value"`
	ShouldErr bool     `json:"shouldErr"`
}

type TestOutput struct {
	Writes int `json:"writes"`
}

func (*TestOutput) GetTypeID() uint8 {
	return TestActionTypeID
}

// TestKey returns a one chunk key for [name].
func TestKey(name string) []byte {
	return keys.EncodeChunks([]byte(name), 1)
}

func (*TestAction) GetTypeID() uint8 {
	return TestActionTypeID
}

func (t *TestAction) StateKeys(codec.Address) state.Keys {
	ks := state.Keys{}
	for _, k := range t.WriteKeys {
		ks.Add(string(k), state.All)
	}
	return ks
}

func (t *TestAction) Execute(ctx context.Context, mu state.Mutable, _ int64, _ codec.Address, _ ids.ID) (codec.Typed, error) {
	for _, k := range t.WriteKeys {
		if err := mu.Insert(ctx, k, t.Value); err != nil {
			return nil, err
		}
	}
	if t.ShouldErr {
		return nil, ErrTestActionExecute
	}
	return &TestOutput{Writes: len(t.WriteKeys)}, nil
}

func (t *TestAction) Size() int {
	size := consts.Int64Len + consts.IntLen + len(t.Value) + consts.BoolLen
	for _, k := range t.WriteKeys {
		size += consts.IntLen + len(k)
	}
	return size
}

func (t *TestAction) Marshal(p *codec.Packer) {
	p.PackInt64(int64(len(t.WriteKeys)))
	for _, k := range t.WriteKeys {
		p.PackBytes(k)
	}
	p.PackBytes(t.Value)
	p.PackBool(t.ShouldErr)
}

func UnmarshalTestAction(p *codec.Packer) (chain.Action, error) {
	var t TestAction
	n := p.UnpackInt64(false)
	if n < 0 || n > 16 {
		p.AddErr(codec.ErrTooManyItems)
		return nil, p.Err()
	}
	t.WriteKeys = make([][]byte, n)
	for i := range t.WriteKeys {
		p.UnpackBytes(-1, true, &t.WriteKeys[i])
	}
	p.UnpackBytes(-1, false, &t.Value)
	t.ShouldErr = p.UnpackBool()
	return &t, p.Err()
}

// NewRegistries returns registries that only know the test types.
func NewRegistries() (chain.ActionRegistry, chain.AuthRegistry) {
	actions := codec.NewTypeParser[chain.Action]()
	auths := codec.NewTypeParser[chain.Auth]()
	_ = actions.Register(TestActionTypeID, UnmarshalTestAction)
	_ = auths.Register(TestAuthTypeID, UnmarshalTestAuth)
	return actions, auths
}
