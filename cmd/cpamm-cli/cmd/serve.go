// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"net"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/cpamm/genesis"
	"github.com/ava-labs/cpamm/rpc"
	"github.com/ava-labs/cpamm/server"
	"github.com/ava-labs/cpamm/storage"
	"github.com/ava-labs/cpamm/trace"
	"github.com/ava-labs/cpamm/vm"
)

const (
	metricsBase     = "ext"
	metricsEndpoint = "/metrics"
)

func newServeCmd(r *root) *cobra.Command {
	var genesisPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON-RPC API over the local database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var gen *genesis.Genesis
			if genesisPath != "" {
				var err error
				gen, err = genesis.LoadFile(genesisPath)
				if err != nil {
					return err
				}
			}
			return r.serve(ctx, gen)
		},
	}
	cmd.Flags().StringVar(&genesisPath, "genesis", "", "genesis file applied on first start")
	return cmd
}

func (r *root) serve(ctx context.Context, gen *genesis.Genesis) (rerr error) {
	cfg, err := r.config()
	if err != nil {
		return err
	}
	log, err := r.logger()
	if err != nil {
		return err
	}

	tracer, err := trace.New(&cfg.Trace)
	if err != nil {
		return err
	}
	defer func() {
		rerr = errors.Join(rerr, tracer.Close())
	}()

	db, dbMetrics, err := storage.New(cfg.Pebble, cfg.DatabasePath, "state")
	if err != nil {
		return err
	}
	defer func() {
		rerr = errors.Join(rerr, db.Close())
	}()

	registry := prometheus.NewRegistry()
	stream := rpc.NewWebSocketServer(log, cfg.StreamMaxPendingMessages)
	v, err := vm.New(ctx, cfg, log, tracer, db, registry, gen, stream)
	if err != nil {
		return err
	}
	defer func() {
		rerr = errors.Join(rerr, v.Close())
	}()

	listener, err := net.Listen("tcp", cfg.HTTPAddress)
	if err != nil {
		return err
	}
	srv := server.New("", log, listener, cfg.HTTP, cfg.AllowedOrigins, cfg.ShutdownTimeout)

	handler, err := rpc.NewHandler(rpc.NewJSONRPCServer(v, log, tracer))
	if err != nil {
		return err
	}
	if err := srv.AddRoute(handler, rpc.JSONRPCEndpoint[1:], ""); err != nil {
		return err
	}
	if err := srv.AddRoute(stream, rpc.WebSocketEndpoint[1:], ""); err != nil {
		return err
	}
	if cfg.MetricsEnabled {
		gatherer := prometheus.Gatherers{registry, dbMetrics}
		if err := srv.AddRoute(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}), metricsBase, metricsEndpoint); err != nil {
			return err
		}
	}

	log.Info("serving",
		zap.Stringer("addr", srv.Addr()),
		zap.Stringer("chainID", cfg.ChainID),
		zap.Bool("metrics", cfg.MetricsEnabled),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Dispatch)
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		return srv.Shutdown()
	})
	return g.Wait()
}
