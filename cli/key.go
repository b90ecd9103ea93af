// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"slices"

	"github.com/mr-tron/base58"
	"golang.org/x/exp/maps"

	"github.com/ava-labs/cpamm/auth"
	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/cli/prompt"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/crypto/ed25519"
	"github.com/ava-labs/cpamm/utils"
)

// KeyInfo is the display form of a stored key.
type KeyInfo struct {
	Address codec.Address
	Bech32  string
	Base58  string
}

func newKeyInfo(addr codec.Address) (*KeyInfo, error) {
	bech32, err := codec.AddressBech32(consts.HRP, addr)
	if err != nil {
		return nil, err
	}
	return &KeyInfo{
		Address: addr,
		Bech32:  bech32,
		Base58:  base58.Encode(addr[:]),
	}, nil
}

// GenerateKey creates a key, stores it and makes it the default.
func (h *Handler) GenerateKey() (codec.Address, error) {
	priv, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return codec.EmptyAddress, err
	}
	return h.importKey(priv)
}

// ImportKey stores [hexKey], prompting for it when empty.
func (h *Handler) ImportKey(hexKey string) (codec.Address, error) {
	var (
		priv ed25519.PrivateKey
		err  error
	)
	if len(hexKey) == 0 {
		priv, err = prompt.PrivateKey("private key (hex)")
	} else {
		priv, err = ed25519.HexToKey(hexKey)
	}
	if err != nil {
		return codec.EmptyAddress, err
	}
	return h.importKey(priv)
}

func (h *Handler) importKey(priv ed25519.PrivateKey) (codec.Address, error) {
	addr, err := h.StoreKey(priv)
	if err != nil {
		return codec.EmptyAddress, err
	}
	if err := h.StoreDefaultKey(addr); err != nil {
		return codec.EmptyAddress, err
	}
	utils.Outf("{{green}}stored key:{{/}} %s\n", addr)
	return addr, nil
}

// ListKeys returns the stored keys ordered by their bech32 form.
func (h *Handler) ListKeys() ([]*KeyInfo, error) {
	keys, err := h.GetKeys()
	if err != nil {
		return nil, err
	}
	infos := make(map[string]*KeyInfo, len(keys))
	for _, key := range keys {
		info, err := newKeyInfo(key.Address)
		if err != nil {
			return nil, err
		}
		infos[info.Bech32] = info
	}
	names := maps.Keys(infos)
	slices.Sort(names)

	ordered := make([]*KeyInfo, 0, len(names))
	for _, name := range names {
		ordered = append(ordered, infos[name])
	}
	return ordered, nil
}

// SetKey asks which stored key becomes the default.
func (h *Handler) SetKey() error {
	keys, err := h.ListKeys()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		utils.Outf("{{red}}no stored keys{{/}}\n")
		return ErrNoKeys
	}
	utils.Outf("{{cyan}}stored keys:{{/}} %d\n", len(keys))
	for i, key := range keys {
		utils.Outf("%d) {{cyan}}address:{{/}} %s {{cyan}}base58:{{/}} %s\n", i, key.Bech32, key.Base58)
	}
	keyIndex, err := prompt.Choice("set default key", len(keys))
	if err != nil {
		return err
	}
	return h.StoreDefaultKey(keys[keyIndex].Address)
}

// DefaultFactory returns the signer for the default key.
func (h *Handler) DefaultFactory() (chain.AuthFactory, error) {
	key, err := h.GetDefaultKey()
	if err != nil {
		return nil, err
	}
	return auth.GetFactory(key)
}
