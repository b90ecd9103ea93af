// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/config"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/genesis"
	"github.com/ava-labs/cpamm/rpc"
	"github.com/ava-labs/cpamm/trace"
	"github.com/ava-labs/cpamm/vm"
)

func newTestNode(t *testing.T, gen *genesis.Genesis) (string, *rpc.WebSocketServer) {
	require := require.New(t)

	cfg, err := config.New(nil)
	require.NoError(err)
	cfg.ChainID = ids.GenerateTestID()
	stream := rpc.NewWebSocketServer(logging.NoLog{}, 8)
	v, err := vm.New(context.Background(), cfg, logging.NoLog{}, trace.Noop(), memdb.New(), prometheus.NewRegistry(), gen, stream)
	require.NoError(err)

	handler, err := rpc.NewHandler(rpc.NewJSONRPCServer(v, logging.NoLog{}, trace.Noop()))
	require.NoError(err)
	mux := http.NewServeMux()
	mux.Handle(rpc.JSONRPCEndpoint, handler)
	mux.Handle(rpc.WebSocketEndpoint, stream)
	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		require.NoError(v.Close())
		server.Close()
	})
	return server.URL, stream
}

func TestCLIRemoteFlow(t *testing.T) {
	require := require.New(t)
	env := newCLIEnv(t)

	env.mustRun("key", "generate")
	var keys []keyOutput
	require.NoError(json.Unmarshal([]byte(env.mustRun("key", "list", "-o", "json")), &keys))
	addr := keys[0].Address

	uri, stream := newTestNode(t, &genesis.Genesis{
		Allocations: []*genesis.Allocation{
			{Asset: "AAA", Address: addr, Balance: 1_000},
			{Asset: "BBB", Address: addr, Balance: 2_000},
		},
	})

	type watchResult struct {
		out string
		err error
	}
	watched := make(chan watchResult, 1)
	go func() {
		out, err := env.run("--endpoint", uri, "watch", "--count", "3", "-o", "json")
		watched <- watchResult{out: out, err: err}
	}()
	require.Eventually(func() bool {
		return stream.Connections() == 1
	}, 5*time.Second, 10*time.Millisecond)

	env.mustRun("--endpoint", uri, "pool", "init", "AAA", "BBB")
	env.mustRun("--endpoint", uri, "pool", "add", "AAA", "BBB", "1000", "2000")
	_, err := env.run("--endpoint", uri, "pool", "remove", "AAA", "BBB", "1001", "0")
	require.ErrorIs(err, amm.ErrInsufficientLiquidity)

	var state struct {
		Pool amm.Pool `json:"pool"`
	}
	require.NoError(json.Unmarshal([]byte(env.mustRun("--endpoint", uri, "query", "pool", "AAA", "BBB", "-o", "json")), &state))
	require.Equal(uint64(1_000), state.Pool.AmountA)
	require.Equal(uint64(2_000), state.Pool.AmountB)

	_, err = env.run("--endpoint", uri, "query", "position", "BBB", "AAA", "me")
	require.ErrorIs(err, amm.ErrPoolNotFound)

	res := <-watched
	require.NoError(res.err)
	dec := json.NewDecoder(strings.NewReader(res.out))
	expected := []struct {
		actionType uint8
		success    bool
	}{
		{consts.InitializeID, true},
		{consts.AddLiquidityID, true},
		{consts.RemoveLiquidityID, false},
	}
	for _, e := range expected {
		var result rpc.ResultMessage
		require.NoError(dec.Decode(&result))
		require.Equal(e.actionType, result.ActionType)
		require.Equal(e.success, result.Success)
	}
}

func TestCLIWatchNeedsEndpoint(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("watch")
	require.ErrorIs(t, err, ErrNoEndpoint)
}
