// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/ava-labs/cpamm/amm"
)

const priceDecimals = 18

// Quote describes the outcome of a swap without executing it.
type Quote struct {
	Direction     amm.Direction   `json:"direction"`
	AmountIn      uint64          `json:"amountIn"`
	AmountOut     uint64          `json:"amountOut"`
	NewReserveIn  uint64          `json:"newReserveIn"`
	NewReserveOut uint64          `json:"newReserveOut"`
	SpotPrice     decimal.Decimal `json:"spotPrice"`
	ExecPrice     decimal.Decimal `json:"execPrice"`
	PriceImpact   decimal.Decimal `json:"priceImpact"`
}

// NewQuote prices [in] against the reserves of [c].
func NewQuote(c *ConstantProduct, dir amm.Direction, in uint64) (*Quote, error) {
	out, err := c.AmountOut(in)
	if err != nil {
		return nil, err
	}
	spot := SpotPrice(c.ReserveIn, c.ReserveOut)
	exec := FromUint64(out).Div(FromUint64(in))
	impact := decimal.Zero
	if !spot.IsZero() {
		impact = decimal.NewFromInt(1).Sub(exec.DivRound(spot, priceDecimals))
	}
	return &Quote{
		Direction:     dir,
		AmountIn:      in,
		AmountOut:     out,
		NewReserveIn:  c.ReserveIn + in,
		NewReserveOut: c.ReserveOut - out,
		SpotPrice:     spot,
		ExecPrice:     exec.Round(priceDecimals),
		PriceImpact:   impact.Round(priceDecimals),
	}, nil
}

// SpotPrice returns how much of the output reserve one unit of input is
// worth at the margin. An empty input reserve has no price.
func SpotPrice(reserveIn, reserveOut uint64) decimal.Decimal {
	if reserveIn == 0 {
		return decimal.Zero
	}
	return FromUint64(reserveOut).DivRound(FromUint64(reserveIn), priceDecimals)
}

func FromUint64(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}
