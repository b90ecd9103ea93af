// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/utils"
)

type Transaction struct {
	Base   *Base
	Action Action
	Auth   Auth

	digest []byte
	bytes  []byte
	id     ids.ID
}

func NewTx(base *Base, action Action) *Transaction {
	return &Transaction{
		Base:   base,
		Action: action,
	}
}

// Digest returns the bytes a signer commits to.
func (t *Transaction) Digest() ([]byte, error) {
	if len(t.digest) > 0 {
		return t.digest, nil
	}
	if t.Action == nil {
		return nil, ErrMissingAction
	}
	size := t.Base.Size() + consts.ByteLen + t.Action.Size()
	p := codec.NewWriter(size, consts.NetworkSize)
	t.Base.Marshal(p)
	p.PackByte(t.Action.GetTypeID())
	t.Action.Marshal(p)
	return p.Bytes(), p.Err()
}

// Sign returns a signed copy of [t].
func (t *Transaction) Sign(factory AuthFactory) (*Transaction, error) {
	msg, err := t.Digest()
	if err != nil {
		return nil, err
	}
	auth, err := factory.Sign(msg)
	if err != nil {
		return nil, err
	}
	signed := &Transaction{
		Base:   t.Base,
		Action: t.Action,
		Auth:   auth,
	}
	return signed, signed.init(msg)
}

func (t *Transaction) init(digest []byte) error {
	if t.Auth == nil {
		return ErrMissingAuth
	}
	p := codec.NewWriter(len(digest)+consts.ByteLen+t.Auth.Size(), consts.NetworkSize)
	p.PackFixedBytes(digest)
	p.PackByte(t.Auth.GetTypeID())
	t.Auth.Marshal(p)
	if err := p.Err(); err != nil {
		return err
	}
	t.digest = digest
	t.bytes = p.Bytes()
	t.id = utils.ToID(t.bytes)
	return nil
}

// Verify checks the signature of [t].
func (t *Transaction) Verify(ctx context.Context) error {
	if t.Auth == nil {
		return ErrUnsignedTx
	}
	msg, err := t.Digest()
	if err != nil {
		return err
	}
	if err := t.Auth.Verify(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	return nil
}

func (t *Transaction) Bytes() []byte { return t.bytes }

func (t *Transaction) ID() ids.ID { return t.id }

func (t *Transaction) Actor() codec.Address {
	if t.Auth == nil {
		return codec.EmptyAddress
	}
	return t.Auth.Actor()
}

// StateKeys returns the keys [t] may touch.
func (t *Transaction) StateKeys() []string {
	return t.Action.StateKeys(t.Actor()).Sorted()
}

// UnmarshalTx decodes a signed transaction.
func UnmarshalTx(
	p *codec.Packer,
	actions ActionRegistry,
	auths AuthRegistry,
) (*Transaction, error) {
	start := p.Offset()
	base, err := UnmarshalBase(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal base", err)
	}
	action, err := actions.Unmarshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal action", err)
	}
	digestEnd := p.Offset()
	auth, err := auths.Unmarshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal auth", err)
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	tx := &Transaction{
		Base:   base,
		Action: action,
		Auth:   auth,
	}
	raw := p.Bytes()
	digest := make([]byte, digestEnd-start)
	copy(digest, raw[start:digestEnd])
	if err := tx.init(digest); err != nil {
		return nil, err
	}
	return tx, nil
}

// ParseTx decodes [b], requiring it to contain exactly one transaction.
func ParseTx(b []byte, actions ActionRegistry, auths AuthRegistry) (*Transaction, error) {
	p := codec.NewReader(b, consts.NetworkSize)
	tx, err := UnmarshalTx(p, actions, auths)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, fmt.Errorf("%w: trailing bytes", ErrInvalidObject)
	}
	return tx, nil
}
