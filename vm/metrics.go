// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"

	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/cpamm/actions"
	"github.com/ava-labs/cpamm/chain"
)

type Metrics struct {
	txsSubmitted prometheus.Counter
	txsRejected  *prometheus.CounterVec
	swaps        *prometheus.CounterVec
	swapVolume   *prometheus.CounterVec
	submit       metric.Averager
}

func newMetrics(r prometheus.Registerer) (*Metrics, error) {
	submit, err := metric.NewAverager(
		"vm_submit",
		"time spent admitting and executing a submitted transaction",
		r,
	)
	if err != nil {
		return nil, err
	}
	m := &Metrics{
		txsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "txs_submitted",
			Help:      "number of transactions submitted",
		}),
		txsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "txs_rejected",
			Help:      "number of transactions rejected before execution",
		}, []string{"reason"}),
		swaps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "swaps",
			Help:      "number of successful swaps",
		}, []string{"direction"}),
		swapVolume: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "swap_volume_in",
			Help:      "sum of input amounts of successful swaps",
		}, []string{"direction"}),
		submit: submit,
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.txsSubmitted),
		r.Register(m.txsRejected),
		r.Register(m.swaps),
		r.Register(m.swapVolume),
	)
	return m, errs.Err
}

// Accept records the volume of successful swaps.
func (m *Metrics) Accept(_ context.Context, result *chain.Result) error {
	if !result.Success {
		return nil
	}
	swap, ok := result.Output.(*actions.SwapResult)
	if !ok {
		return nil
	}
	label := swap.Direction.String()
	m.swaps.WithLabelValues(label).Inc()
	m.swapVolume.WithLabelValues(label).Add(float64(swap.AmountIn))
	return nil
}

func (*Metrics) Close() error {
	return nil
}
