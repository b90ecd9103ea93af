// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import (
	"fmt"

	"github.com/ava-labs/cpamm/codec"
)

// Position records how much of each asset a provider has contributed to a
// pool. It is not a share of the pool: withdrawals are bounded by these
// amounts alone.
type Position struct {
	Owner   codec.Address `json:"owner"`
	AmountA uint64        `json:"amountA"`
	AmountB uint64        `json:"amountB"`
}

// RecordDeposit adds to both contributed amounts. On error [p] is unchanged.
func (p *Position) RecordDeposit(a, b uint64) error {
	newA, err := Add(p.AmountA, a)
	if err != nil {
		return err
	}
	newB, err := Add(p.AmountB, b)
	if err != nil {
		return err
	}
	p.AmountA, p.AmountB = newA, newB
	return nil
}

// RecordWithdrawal subtracts from both contributed amounts. Withdrawing more
// than was contributed of either asset fails with ErrInsufficientLiquidity
// and leaves [p] unchanged.
func (p *Position) RecordWithdrawal(a, b uint64) error {
	if a > p.AmountA || b > p.AmountB {
		return fmt.Errorf(
			"%w: requested (%d, %d) contributed (%d, %d)",
			ErrInsufficientLiquidity, a, b, p.AmountA, p.AmountB,
		)
	}
	p.AmountA -= a
	p.AmountB -= b
	return nil
}

// Empty reports whether nothing remains contributed.
func (p *Position) Empty() bool {
	return p.AmountA == 0 && p.AmountB == 0
}
