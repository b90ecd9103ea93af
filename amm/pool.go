// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import "github.com/ava-labs/cpamm/codec"

// Pool is the ledger of a single asset pair. AmountA and AmountB are the
// amounts the pool believes it holds; the custody accounts hold the assets
// themselves.
type Pool struct {
	Authority codec.Address `json:"authority"`
	AssetA    codec.Address `json:"assetA"`
	AssetB    codec.Address `json:"assetB"`
	CustodyA  codec.Address `json:"custodyA"`
	CustodyB  codec.Address `json:"custodyB"`
	AmountA   uint64        `json:"amountA"`
	AmountB   uint64        `json:"amountB"`
}

func (p *Pool) Amounts() (uint64, uint64) {
	return p.AmountA, p.AmountB
}

// Deposit credits both tracked amounts. On error [p] is unchanged.
func (p *Pool) Deposit(a, b uint64) error {
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

// Withdraw debits both tracked amounts. On error [p] is unchanged.
func (p *Pool) Withdraw(a, b uint64) error {
	newA, err := Sub(p.AmountA, a)
	if err != nil {
		return err
	}
	newB, err := Sub(p.AmountB, b)
	if err != nil {
		return err
	}
	p.AmountA, p.AmountB = newA, newB
	return nil
}

// ApplySwap credits [in] to the input side and debits [out] from the
// output side. On error [p] is unchanged.
func (p *Pool) ApplySwap(dir Direction, in, out uint64) error {
	if dir == AToB {
		return p.apply(&p.AmountA, &p.AmountB, in, out)
	}
	return p.apply(&p.AmountB, &p.AmountA, in, out)
}

func (*Pool) apply(inSide, outSide *uint64, in, out uint64) error {
	newIn, err := Add(*inSide, in)
	if err != nil {
		return err
	}
	newOut, err := Sub(*outSide, out)
	if err != nil {
		return err
	}
	*inSide, *outSide = newIn, newOut
	return nil
}

// Legs returns the assets and custody accounts a swap in [dir] moves
// through.
func (p *Pool) Legs(dir Direction) (assetIn, assetOut, custodyIn, custodyOut codec.Address) {
	if dir == AToB {
		return p.AssetA, p.AssetB, p.CustodyA, p.CustodyB
	}
	return p.AssetB, p.AssetA, p.CustodyB, p.CustodyA
}

// Custody returns the custody account holding [asset] and whether [asset]
// belongs to the pool.
func (p *Pool) Custody(asset codec.Address) (codec.Address, bool) {
	switch asset {
	case p.AssetA:
		return p.CustodyA, true
	case p.AssetB:
		return p.CustodyB, true
	default:
		return codec.EmptyAddress, false
	}
}
