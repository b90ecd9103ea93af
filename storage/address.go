// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/utils"
)

// PoolAddress derives the identity of the pool trading [assetA] against
// [assetB]. The order of the assets matters: (A, B) and (B, A) are
// different pools.
func PoolAddress(assetA codec.Address, assetB codec.Address) codec.Address {
	v := make([]byte, 2*codec.AddressLen)
	copy(v, assetA[:])
	copy(v[codec.AddressLen:], assetB[:])
	return codec.CreateAddress(consts.PoolID, utils.ToID(v))
}

// CustodyAddress derives the account a pool holds [asset] in. No key
// controls it; only the pool can move funds out of it.
func CustodyAddress(pool codec.Address, asset codec.Address) codec.Address {
	v := make([]byte, 2*codec.AddressLen)
	copy(v, pool[:])
	copy(v[codec.AddressLen:], asset[:])
	return codec.CreateAddress(consts.CustodyID, utils.ToID(v))
}

// AssetAddress derives the identity of an asset from its symbol.
func AssetAddress(symbol string) codec.Address {
	return codec.CreateAddress(consts.AssetID, utils.ToID([]byte(symbol)))
}

// IsCustody reports whether [addr] is a pool custody account.
func IsCustody(addr codec.Address) bool {
	return addr.TypeID() == consts.CustodyID
}
