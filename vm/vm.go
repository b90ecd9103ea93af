// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/cpamm/actions"
	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/auth"
	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/config"
	"github.com/ava-labs/cpamm/event"
	"github.com/ava-labs/cpamm/genesis"
	"github.com/ava-labs/cpamm/lockmap"
	"github.com/ava-labs/cpamm/pricing"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/storage"
	"github.com/ava-labs/cpamm/tstate"
	"github.com/ava-labs/cpamm/utils"
)

// VM admits signed transactions, executes them against the ledger and
// serves reads of the committed state.
type VM struct {
	config *config.Config
	log    logging.Logger
	tracer trace.Tracer
	db     state.Database
	clock  mockable.Clock

	actionRegistry chain.ActionRegistry
	authRegistry   chain.AuthRegistry

	processor *chain.Processor
	txLocks   *lockmap.Lockmap
	metrics   *Metrics
	subs      []event.Subscription[*chain.Result]
}

// PoolState is a pool ledger together with the live balances of its custody
// accounts.
type PoolState struct {
	Address codec.Address `json:"address"`
	Pool    *amm.Pool     `json:"pool"`
	LiveA   uint64        `json:"liveA"`
	LiveB   uint64        `json:"liveB"`
}

func New(
	ctx context.Context,
	cfg *config.Config,
	log logging.Logger,
	tracer trace.Tracer,
	db state.Database,
	registerer prometheus.Registerer,
	gen *genesis.Genesis,
	subs ...event.Subscription[*chain.Result],
) (*VM, error) {
	actionRegistry, err := actions.NewRegistry()
	if err != nil {
		return nil, err
	}
	authRegistry, err := auth.NewRegistry()
	if err != nil {
		return nil, err
	}
	metrics, err := newMetrics(registerer)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to create metrics", err)
	}
	vm := &VM{
		config:         cfg,
		log:            log,
		tracer:         tracer,
		db:             db,
		actionRegistry: actionRegistry,
		authRegistry:   authRegistry,
		txLocks:        lockmap.New(64),
		metrics:        metrics,
		subs:           subs,
	}

	var recorder chain.Recorder
	if cfg.StoreTransactions {
		recorder = txRecorder{}
	}
	processorSubs := append([]event.Subscription[*chain.Result]{metrics}, subs...)
	vm.processor, err = chain.NewProcessor(log, tracer, db, registerer, recorder, processorSubs...)
	if err != nil {
		return nil, err
	}

	if gen != nil {
		if err := vm.applyGenesis(ctx, gen); err != nil {
			return nil, err
		}
	}
	log.Info("vm initialized",
		zap.Stringer("chainID", cfg.ChainID),
		zap.Int64("validityWindow", cfg.ValidityWindow),
		zap.Bool("storeTransactions", cfg.StoreTransactions),
	)
	return vm, nil
}

// applyGenesis writes [gen] into an empty database. A database that already
// holds a genesis must hold the same one.
func (vm *VM) applyGenesis(ctx context.Context, gen *genesis.Genesis) error {
	ctx, span := vm.tracer.Start(ctx, "VM.applyGenesis")
	defer span.End()

	b, err := json.Marshal(gen)
	if err != nil {
		return err
	}
	genesisID := utils.ToID(b)
	stored, found, err := storage.GetGenesis(ctx, vm.db)
	if err != nil {
		return err
	}
	if found {
		if stored != genesisID {
			return fmt.Errorf("%w: stored=%s, provided=%s", ErrGenesisMismatch, stored, genesisID)
		}
		vm.log.Info("genesis already applied", zap.Stringer("genesisID", genesisID))
		return nil
	}

	scope, err := gen.StateKeys()
	if err != nil {
		return err
	}
	ts := tstate.New(len(scope))
	view, err := ts.NewViewFromDB(ctx, scope, state.NewReader(vm.db))
	if err != nil {
		return err
	}
	if err := gen.InitializeState(ctx, vm.tracer, view); err != nil {
		return fmt.Errorf("%w: unable to apply genesis", err)
	}
	view.Commit()

	batch := vm.db.NewBatch()
	if err := ts.WriteChanges(ctx, batch, vm.tracer); err != nil {
		return err
	}
	if err := storage.SetGenesis(ctx, batch, genesisID); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	vm.log.Info("genesis applied",
		zap.Stringer("genesisID", genesisID),
		zap.Int("allocations", len(gen.Allocations)),
		zap.Int("pools", len(gen.Pools)),
	)
	return nil
}

func (vm *VM) ChainID() ids.ID {
	return vm.config.ChainID
}

func (vm *VM) ValidityWindow() int64 {
	return vm.config.ValidityWindow
}

func (vm *VM) Registries() (chain.ActionRegistry, chain.AuthRegistry) {
	return vm.actionRegistry, vm.authRegistry
}

// Now returns the unix millisecond time transactions are checked against.
func (vm *VM) Now() int64 {
	return vm.clock.Time().UnixMilli()
}

// SubmitBytes parses and submits a signed transaction.
func (vm *VM) SubmitBytes(ctx context.Context, b []byte) (*chain.Result, error) {
	tx, err := chain.ParseTx(b, vm.actionRegistry, vm.authRegistry)
	if err != nil {
		vm.metrics.txsRejected.WithLabelValues("malformed").Inc()
		return nil, err
	}
	return vm.Submit(ctx, tx)
}

// Submit checks that [tx] is admissible and executes it. A returned error
// means [tx] was not executed; a failed action is reported in the result.
func (vm *VM) Submit(ctx context.Context, tx *chain.Transaction) (*chain.Result, error) {
	ctx, span := vm.tracer.Start(ctx, "VM.Submit")
	defer span.End()

	start := time.Now()
	defer func() {
		vm.metrics.submit.Observe(float64(time.Since(start)))
	}()
	vm.metrics.txsSubmitted.Inc()

	now := vm.Now()
	if err := tx.Base.Execute(vm.config.ChainID, vm.config.ValidityWindow, now); err != nil {
		return nil, vm.reject(tx, "base", err)
	}
	if err := tx.Verify(ctx); err != nil {
		return nil, vm.reject(tx, "signature", err)
	}

	txID := tx.ID()
	lock := string(txID[:])
	vm.txLocks.Lock(lock)
	defer vm.txLocks.Unlock(lock)

	if vm.config.StoreTransactions {
		found, _, _, err := storage.GetTransaction(ctx, vm.db, txID)
		if err != nil {
			return nil, err
		}
		if found {
			return nil, vm.reject(tx, "duplicate", chain.ErrDuplicateTx)
		}
	}
	return vm.processor.Execute(ctx, tx, now)
}

func (vm *VM) reject(tx *chain.Transaction, reason string, err error) error {
	vm.metrics.txsRejected.WithLabelValues(reason).Inc()
	vm.log.Debug("transaction rejected",
		zap.Stringer("txID", tx.ID()),
		zap.String("reason", reason),
		zap.Error(err),
	)
	return err
}

// Pool returns the pool of ([assetA], [assetB]).
func (vm *VM) Pool(ctx context.Context, assetA codec.Address, assetB codec.Address) (*PoolState, error) {
	im := state.NewReader(vm.db)
	addr := storage.PoolAddress(assetA, assetB)
	pool, err := storage.GetPool(ctx, im, addr)
	if err != nil {
		return nil, err
	}
	liveA, liveB, err := storage.CurrentBalances(ctx, im, pool)
	if err != nil {
		return nil, err
	}
	return &PoolState{Address: addr, Pool: pool, LiveA: liveA, LiveB: liveB}, nil
}

// Position returns the position of [owner] in the pool of ([assetA], [assetB]).
func (vm *VM) Position(
	ctx context.Context,
	assetA codec.Address,
	assetB codec.Address,
	owner codec.Address,
) (*amm.Position, error) {
	im := state.NewReader(vm.db)
	addr := storage.PoolAddress(assetA, assetB)
	if _, err := storage.GetPool(ctx, im, addr); err != nil {
		return nil, err
	}
	return storage.GetPosition(ctx, im, addr, owner)
}

func (vm *VM) Balance(ctx context.Context, asset codec.Address, account codec.Address) (uint64, error) {
	return storage.GetBalance(ctx, state.NewReader(vm.db), asset, account)
}

func (vm *VM) Quote(
	ctx context.Context,
	assetA codec.Address,
	assetB codec.Address,
	dir amm.Direction,
	in uint64,
) (*pricing.Quote, error) {
	return actions.Quote(ctx, state.NewReader(vm.db), assetA, assetB, dir, in)
}

// Transaction reports whether [txID] was executed, when, and whether it
// succeeded.
func (vm *VM) Transaction(ctx context.Context, txID ids.ID) (bool, int64, bool, error) {
	return storage.GetTransaction(ctx, vm.db, txID)
}

// Close releases the subscriptions passed to [New]. The database and tracer
// are owned by the caller.
func (vm *VM) Close() error {
	return event.CloseAll(vm.subs...)
}
