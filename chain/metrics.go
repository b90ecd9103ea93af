// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"strconv"

	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type chainMetrics struct {
	txsExecuted *prometheus.CounterVec
	txsFailed   *prometheus.CounterVec

	stateChanges    prometheus.Counter
	stateOperations prometheus.Counter
	locksHeld       prometheus.Gauge

	executeTime metric.Averager
	commitTime  metric.Averager
}

func newMetrics(r prometheus.Registerer) (*chainMetrics, error) {
	executeTime, err := metric.NewAverager(
		"chain_execute_time",
		"time spent executing transactions",
		r,
	)
	if err != nil {
		return nil, err
	}
	commitTime, err := metric.NewAverager(
		"chain_commit_time",
		"time spent writing executed transactions to disk",
		r,
	)
	if err != nil {
		return nil, err
	}

	m := &chainMetrics{
		txsExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_executed",
			Help:      "number of transactions executed successfully",
		}, []string{"action"}),
		txsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_failed",
			Help:      "number of transactions whose action failed",
		}, []string{"action", "error"}),
		stateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "state_changes",
			Help:      "number of state keys written to disk",
		}),
		stateOperations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "state_operations",
			Help:      "number of state operations performed by committed transactions",
		}),
		locksHeld: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "chain",
			Name:      "locks_held",
			Help:      "number of state keys currently locked",
		}),
		executeTime: executeTime,
		commitTime:  commitTime,
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.txsExecuted),
		r.Register(m.txsFailed),
		r.Register(m.stateChanges),
		r.Register(m.stateOperations),
		r.Register(m.locksHeld),
	)
	return m, errs.Err
}

func actionLabel(typeID uint8) string {
	return strconv.Itoa(int(typeID))
}
