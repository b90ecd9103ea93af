// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"errors"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/cpamm/auth"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/crypto/ed25519"
)

const (
	defaultPrefix = 0x0
	keyPrefix     = 0x1

	defaultKeyKey      = "key"
	defaultEndpointKey = "endpoint"
)

func (h *Handler) StoreDefault(key string, value []byte) error {
	k := make([]byte, 1+len(key))
	k[0] = defaultPrefix
	copy(k[1:], []byte(key))
	return h.db.Put(k, value)
}

func (h *Handler) GetDefault(key string) ([]byte, error) {
	k := make([]byte, 1+len(key))
	k[0] = defaultPrefix
	copy(k[1:], []byte(key))
	v, err := h.db.Get(k)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// StoreKey saves [priv] under the address it controls.
func (h *Handler) StoreKey(priv ed25519.PrivateKey) (codec.Address, error) {
	addr := auth.NewED25519Address(priv.PublicKey())
	k := make([]byte, 1+codec.AddressLen)
	k[0] = keyPrefix
	copy(k[1:], addr[:])
	has, err := h.db.Has(k)
	if err != nil {
		return codec.EmptyAddress, err
	}
	if has {
		return codec.EmptyAddress, ErrDuplicate
	}
	return addr, h.db.Put(k, priv[:])
}

func (h *Handler) GetKey(addr codec.Address) (*auth.PrivateKey, error) {
	k := make([]byte, 1+codec.AddressLen)
	k[0] = keyPrefix
	copy(k[1:], addr[:])
	v, err := h.db.Get(k)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return auth.NewED25519PrivateKeyFactory().LoadPrivateKey(v)
}

func (h *Handler) GetKeys() ([]*auth.PrivateKey, error) {
	iter := h.db.NewIteratorWithPrefix([]byte{keyPrefix})
	defer iter.Release()

	factory := auth.NewED25519PrivateKeyFactory()
	keys := []*auth.PrivateKey{}
	for iter.Next() {
		key, err := factory.LoadPrivateKey(iter.Value())
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, iter.Error()
}

func (h *Handler) StoreDefaultKey(addr codec.Address) error {
	return h.StoreDefault(defaultKeyKey, addr[:])
}

// GetDefaultKey returns the key actions are signed with.
func (h *Handler) GetDefaultKey() (*auth.PrivateKey, error) {
	v, err := h.GetDefault(defaultKeyKey)
	if err != nil {
		return nil, err
	}
	if len(v) != codec.AddressLen {
		return nil, ErrNoKeys
	}
	return h.GetKey(codec.Address(v))
}

func (h *Handler) StoreDefaultEndpoint(uri string) error {
	return h.StoreDefault(defaultEndpointKey, []byte(uri))
}

// GetDefaultEndpoint returns the stored endpoint or [fallback].
func (h *Handler) GetDefaultEndpoint(fallback string) (string, error) {
	v, err := h.GetDefault(defaultEndpointKey)
	if err != nil {
		return "", err
	}
	if len(v) == 0 {
		return fallback, nil
	}
	return string(v), nil
}
