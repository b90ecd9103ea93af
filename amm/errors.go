// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import "errors"

// Every pool operation fails with exactly one of these. Callers wrap them
// with context and match with errors.Is.
var (
	ErrOverflow                  = errors.New("arithmetic overflow")
	ErrUnderflow                 = errors.New("arithmetic underflow")
	ErrInsufficientLiquidity     = errors.New("insufficient liquidity")
	ErrInsufficientPoolBalance   = errors.New("insufficient pool balance")
	ErrInsufficientTraderBalance = errors.New("insufficient trader balance")
	ErrPositionNotFound          = errors.New("position not found")
	ErrPoolAlreadyInitialized    = errors.New("pool already initialized")
	ErrPoolNotFound              = errors.New("pool not found")
	ErrInvalidAmount             = errors.New("invalid amount")
	ErrOutputTooSmall            = errors.New("output too small")

	ErrIdenticalAssets = errors.New("asset A and asset B are identical")
	ErrUnauthorized    = errors.New("unauthorized transfer")
)

// Kinds lists the taxonomy in a stable order.
var Kinds = []error{
	ErrOverflow,
	ErrUnderflow,
	ErrInsufficientLiquidity,
	ErrInsufficientPoolBalance,
	ErrInsufficientTraderBalance,
	ErrPositionNotFound,
	ErrPoolAlreadyInitialized,
	ErrPoolNotFound,
	ErrInvalidAmount,
	ErrOutputTooSmall,
	ErrIdenticalAssets,
	ErrUnauthorized,
}

// Kind returns the taxonomy error [err] wraps, or nil.
func Kind(err error) error {
	for _, k := range Kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// KindFromString resolves the message of a taxonomy error. Errors that cross
// the RPC boundary only carry their text.
func KindFromString(s string) error {
	for _, k := range Kinds {
		if k.Error() == s {
			return k
		}
	}
	return nil
}
