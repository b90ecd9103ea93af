// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/storage"

	oteltrace "go.opentelemetry.io/otel/trace"
)

var ErrEmptyAsset = errors.New("asset symbol is empty")

// Allocation credits [Balance] of the asset named [Asset] to [Address].
type Allocation struct {
	Asset   string `json:"asset"`
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

// Pool is a pool created at genesis. Its authority is [Authority].
type Pool struct {
	Authority string `json:"authority"`
	AssetA    string `json:"assetA"`
	AssetB    string `json:"assetB"`
}

type Genesis struct {
	Allocations []*Allocation `json:"allocations"`
	Pools       []*Pool       `json:"pools"`
}

func Load(b []byte) (*Genesis, error) {
	g := &Genesis{}
	if err := json.Unmarshal(b, g); err != nil {
		return nil, err
	}
	return g, nil
}

func LoadFile(path string) (*Genesis, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(b)
}

// InitializeState writes the allocations and pools of [g] into [mu]. The
// total supply of each asset must fit in 64 bits.
func (g *Genesis) InitializeState(ctx context.Context, tracer trace.Tracer, mu state.Mutable) error {
	ctx, span := tracer.Start(ctx, "Genesis.InitializeState", oteltrace.WithAttributes(
		attribute.Int("allocations", len(g.Allocations)),
		attribute.Int("pools", len(g.Pools)),
	))
	defer span.End()

	supply := map[codec.Address]uint64{}
	for _, alloc := range g.Allocations {
		asset, err := assetAddress(alloc.Asset)
		if err != nil {
			return err
		}
		addr, err := codec.ParseAnyAddress(consts.HRP, alloc.Address)
		if err != nil {
			return fmt.Errorf("%w: %s", err, alloc.Address)
		}
		supply[asset], err = amm.Add(supply[asset], alloc.Balance)
		if err != nil {
			return fmt.Errorf("%w: supply of %s", err, alloc.Asset)
		}
		if _, err := storage.AddBalance(ctx, mu, asset, addr, alloc.Balance); err != nil {
			return fmt.Errorf("%w: addr=%s, bal=%d", err, alloc.Address, alloc.Balance)
		}
	}

	for _, p := range g.Pools {
		authority, err := codec.ParseAnyAddress(consts.HRP, p.Authority)
		if err != nil {
			return fmt.Errorf("%w: %s", err, p.Authority)
		}
		assetA, err := assetAddress(p.AssetA)
		if err != nil {
			return err
		}
		assetB, err := assetAddress(p.AssetB)
		if err != nil {
			return err
		}
		if assetA == assetB {
			return fmt.Errorf("%w: %s", amm.ErrIdenticalAssets, p.AssetA)
		}
		addr, pool := storage.NewPool(authority, assetA, assetB)
		exists, err := storage.PoolExists(ctx, mu, addr)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s/%s", amm.ErrPoolAlreadyInitialized, p.AssetA, p.AssetB)
		}
		if err := storage.SetPool(ctx, mu, addr, pool); err != nil {
			return err
		}
	}
	return nil
}

// StateKeys returns every key InitializeState writes.
func (g *Genesis) StateKeys() (state.Keys, error) {
	keys := state.Keys{}
	for _, alloc := range g.Allocations {
		asset, err := assetAddress(alloc.Asset)
		if err != nil {
			return nil, err
		}
		addr, err := codec.ParseAnyAddress(consts.HRP, alloc.Address)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, alloc.Address)
		}
		keys.Add(string(storage.BalanceKey(asset, addr)), state.All)
	}
	for _, p := range g.Pools {
		assetA, err := assetAddress(p.AssetA)
		if err != nil {
			return nil, err
		}
		assetB, err := assetAddress(p.AssetB)
		if err != nil {
			return nil, err
		}
		keys.Add(string(storage.PoolKey(storage.PoolAddress(assetA, assetB))), state.All)
	}
	return keys, nil
}

func assetAddress(symbol string) (codec.Address, error) {
	if symbol == "" {
		return codec.EmptyAddress, ErrEmptyAsset
	}
	return storage.AssetAddress(symbol), nil
}
