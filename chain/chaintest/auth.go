// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"context"
	"errors"

	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/codec"
)

const TestAuthTypeID = 0xff

var (
	ErrTestAuthVerify = errors.New("test auth verification error")

	_ chain.Auth        = (*TestAuth)(nil)
	_ chain.AuthFactory = (*TestAuthFactory)(nil)
)

// TestAuth is an unsigned Auth that trusts its actor.
type TestAuth struct {
	ActorAddress codec.Address `json:"actor"`
	ShouldErr    bool          `json:"shouldErr"`
}

func (*TestAuth) GetTypeID() uint8 {
	return TestAuthTypeID
}

func (*TestAuth) Size() int {
	return codec.AddressLen + 1
}

func (t *TestAuth) Marshal(p *codec.Packer) {
	p.PackAddress(t.ActorAddress)
	p.PackBool(t.ShouldErr)
}

func UnmarshalTestAuth(p *codec.Packer) (chain.Auth, error) {
	var t TestAuth
	p.UnpackAddress(&t.ActorAddress)
	t.ShouldErr = p.UnpackBool()
	return &t, p.Err()
}

func (t *TestAuth) Actor() codec.Address {
	return t.ActorAddress
}

func (t *TestAuth) Verify(context.Context, []byte) error {
	if t.ShouldErr {
		return ErrTestAuthVerify
	}
	return nil
}

type TestAuthFactory struct {
	ActorAddress codec.Address
	ShouldErr    bool
}

func (f *TestAuthFactory) Sign([]byte) (chain.Auth, error) {
	return &TestAuth{ActorAddress: f.ActorAddress, ShouldErr: f.ShouldErr}, nil
}

func (f *TestAuthFactory) Address() codec.Address {
	return f.ActorAddress
}
