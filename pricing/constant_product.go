// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/ava-labs/cpamm/amm"
)

// ConstantProduct prices a fee-free swap against two reserves so that
// ReserveIn * ReserveOut does not decrease. Rounding always favours the pool.
type ConstantProduct struct {
	ReserveIn  uint64
	ReserveOut uint64
}

func NewConstantProduct(reserveIn, reserveOut uint64) *ConstantProduct {
	return &ConstantProduct{ReserveIn: reserveIn, ReserveOut: reserveOut}
}

// K returns ReserveIn * ReserveOut. The product of two uint64 values always
// fits in 128 bits.
func (c *ConstantProduct) K() *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(c.ReserveIn), uint256.NewInt(c.ReserveOut))
}

// AmountOut returns how much of the output reserve [in] buys.
func (c *ConstantProduct) AmountOut(in uint64) (uint64, error) {
	newOut, err := c.reserveAfter(in)
	if err != nil {
		return 0, err
	}
	if newOut > c.ReserveOut {
		return 0, fmt.Errorf("%w: reserve %d below %d", amm.ErrInsufficientPoolBalance, c.ReserveOut, newOut)
	}
	out := c.ReserveOut - newOut
	if out == 0 {
		return 0, fmt.Errorf("%w: %d in against reserves (%d, %d)", amm.ErrOutputTooSmall, in, c.ReserveIn, c.ReserveOut)
	}
	return out, nil
}

// Remainder returns k mod (ReserveIn + in): the amount floor division
// leaves in the pool's favour.
func (c *ConstantProduct) Remainder(in uint64) (uint64, error) {
	newIn, err := amm.Add(c.ReserveIn, in)
	if err != nil {
		return 0, err
	}
	if newIn == 0 {
		return 0, amm.ErrInsufficientPoolBalance
	}
	return new(uint256.Int).Mod(c.K(), uint256.NewInt(newIn)).Uint64(), nil
}

// reserveAfter returns floor(k / (ReserveIn + in)).
func (c *ConstantProduct) reserveAfter(in uint64) (uint64, error) {
	if in == 0 {
		return 0, amm.ErrInvalidAmount
	}
	if c.ReserveIn == 0 || c.ReserveOut == 0 {
		return 0, fmt.Errorf("%w: reserves (%d, %d)", amm.ErrInsufficientPoolBalance, c.ReserveIn, c.ReserveOut)
	}
	newIn, err := amm.Add(c.ReserveIn, in)
	if err != nil {
		return 0, err
	}
	newOut := new(uint256.Int).Div(c.K(), uint256.NewInt(newIn))
	if !newOut.IsUint64() {
		return 0, fmt.Errorf("%w: post-swap reserve exceeds 64 bits", amm.ErrOverflow)
	}
	return newOut.Uint64(), nil
}
