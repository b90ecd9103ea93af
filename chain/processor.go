// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/event"
	"github.com/ava-labs/cpamm/lockmap"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/tstate"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// Processor executes transactions against a database. Transactions that
// share a state key (every operation on a pool shares the pool key) are
// serialized; each transaction either commits all of its changes in one
// batch or none of them.
type Processor struct {
	log      logging.Logger
	tracer   trace.Tracer
	db       state.Database
	locks    *lockmap.Lockmap
	metrics  *chainMetrics
	recorder Recorder
	subs     []event.Subscription[*Result]
}

func NewProcessor(
	log logging.Logger,
	tracer trace.Tracer,
	db state.Database,
	registerer prometheus.Registerer,
	recorder Recorder,
	subs ...event.Subscription[*Result],
) (*Processor, error) {
	metrics, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	return &Processor{
		log:      log,
		tracer:   tracer,
		db:       db,
		locks:    lockmap.New(64),
		metrics:  metrics,
		recorder: recorder,
		subs:     subs,
	}, nil
}

// Execute runs [tx] at [timestamp].
func (p *Processor) Execute(ctx context.Context, tx *Transaction, timestamp int64) (*Result, error) {
	results, err := p.ExecuteBatch(ctx, []*Transaction{tx}, timestamp)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// ExecuteBatch runs [txs] in order and writes the changes of the successful
// ones in a single database batch. A failed transaction is rolled back
// without affecting the others. The returned error is only set when the
// batch could not be executed or written at all.
func (p *Processor) ExecuteBatch(ctx context.Context, txs []*Transaction, timestamp int64) ([]*Result, error) {
	ctx, span := p.tracer.Start(ctx, "Processor.ExecuteBatch", oteltrace.WithAttributes(
		attribute.Int("txs", len(txs)),
	))
	defer span.End()

	scope := state.Keys{}
	for _, tx := range txs {
		for k, perm := range tx.Action.StateKeys(tx.Actor()) {
			scope.Add(k, perm)
		}
	}
	sorted := scope.Sorted()
	p.locks.LockAll(sorted)
	p.metrics.locksHeld.Add(float64(len(sorted)))
	defer func() {
		p.locks.UnlockAll(sorted)
		p.metrics.locksHeld.Sub(float64(len(sorted)))
	}()

	storage, err := state.Fetch(ctx, state.NewReader(p.db), scope)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read state", err)
	}

	start := time.Now()
	ts := tstate.New(len(scope))
	results := make([]*Result, len(txs))
	for i, tx := range txs {
		results[i] = p.execute(ctx, ts, tx, storage, timestamp)
	}
	p.metrics.executeTime.Observe(float64(time.Since(start)))

	if err := p.commit(ctx, ts, results); err != nil {
		return nil, err
	}
	for _, result := range results {
		if err := event.NotifyAll(ctx, result, p.subs...); err != nil {
			p.log.Warn("subscriber rejected result",
				zap.Stringer("txID", result.TxID),
				zap.Error(err),
			)
		}
	}
	return results, nil
}

func (p *Processor) execute(
	ctx context.Context,
	ts *tstate.TState,
	tx *Transaction,
	storage map[string][]byte,
	timestamp int64,
) *Result {
	ctx, span := p.tracer.Start(ctx, "Processor.execute")
	defer span.End()

	actor := tx.Actor()
	action := tx.Action
	view := ts.NewView(action.StateKeys(actor), storage)
	restore := view.OpIndex()
	result := &Result{
		TxID:       tx.ID(),
		Actor:      actor,
		ActionType: action.GetTypeID(),
		Timestamp:  timestamp,
	}
	output, err := action.Execute(ctx, view, timestamp, actor, tx.ID())
	label := actionLabel(action.GetTypeID())
	if err != nil {
		view.Rollback(ctx, restore)
		result.err = err
		result.Error = err.Error()
		kind := "other"
		if k := amm.Kind(err); k != nil {
			kind = k.Error()
		}
		p.metrics.txsFailed.WithLabelValues(label, kind).Inc()
		p.log.Debug("transaction failed",
			zap.Stringer("txID", tx.ID()),
			zap.Uint8("action", action.GetTypeID()),
			zap.Stringer("actor", actor),
			zap.Error(err),
		)
		return result
	}
	p.metrics.stateOperations.Add(float64(view.OpIndex()))
	view.Commit()
	result.Success = true
	result.Output = output
	p.metrics.txsExecuted.WithLabelValues(label).Inc()
	p.log.Debug("transaction executed",
		zap.Stringer("txID", tx.ID()),
		zap.Uint8("action", action.GetTypeID()),
		zap.Stringer("actor", actor),
	)
	return result
}

func (p *Processor) commit(ctx context.Context, ts *tstate.TState, results []*Result) error {
	ctx, span := p.tracer.Start(ctx, "Processor.commit")
	defer span.End()

	start := time.Now()
	batch := p.db.NewBatch()
	if err := ts.WriteChanges(ctx, batch, p.tracer); err != nil {
		return err
	}
	if p.recorder != nil {
		for _, result := range results {
			if err := p.recorder.Record(ctx, batch, result); err != nil {
				return err
			}
		}
	}
	if err := batch.Write(); err != nil {
		return err
	}
	p.metrics.stateChanges.Add(float64(ts.PendingChanges()))
	p.metrics.commitTime.Observe(float64(time.Since(start)))
	return nil
}
