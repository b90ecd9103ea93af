// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/cpamm/actions"
	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/codec/codectest"
	"github.com/ava-labs/cpamm/config"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/storage"
	"github.com/ava-labs/cpamm/trace"
	"github.com/ava-labs/cpamm/vm"
)

func TestWebSocketStreamsResults(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	lp := newFactory(t)

	ws := NewWebSocketServer(logging.NoLog{}, 8)
	cfg, err := config.New(nil)
	require.NoError(err)
	cfg.ChainID = ids.GenerateTestID()
	v, err := vm.New(ctx, cfg, logging.NoLog{}, trace.Noop(), memdb.New(), prometheus.NewRegistry(), nil, ws)
	require.NoError(err)

	handler, err := NewHandler(NewJSONRPCServer(v, logging.NoLog{}, trace.Noop()))
	require.NoError(err)
	mux := http.NewServeMux()
	mux.Handle(JSONRPCEndpoint, handler)
	mux.Handle(WebSocketEndpoint, ws)
	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		require.NoError(v.Close())
		server.Close()
	})

	listener, err := NewWebSocketClient(server.URL)
	require.NoError(err)
	t.Cleanup(func() {
		require.NoError(listener.Close())
	})
	require.Eventually(func() bool {
		return ws.Connections() == 1
	}, 5*time.Second, 10*time.Millisecond)

	cli := NewJSONRPCClient(server.URL)
	reply, err := cli.SubmitAction(ctx, &actions.Initialize{AssetA: assetA, AssetB: assetB}, lp)
	require.NoError(err)

	result, err := listener.ListenForResult()
	require.NoError(err)
	require.Equal(reply.TxID, result.TxID)
	require.Equal(lp.Address(), result.Actor)
	require.Equal(consts.InitializeID, result.ActionType)
	require.True(result.Success)

	var output actions.InitializeResult
	require.NoError(json.Unmarshal(result.Output, &output))
	require.Equal(storage.PoolAddress(assetA, assetB), output.Pool)

	// Failed actions are streamed too.
	_, err = cli.SubmitAction(ctx, &actions.SwapAToB{AssetA: assetA, AssetB: assetB, AmountIn: 1}, lp)
	require.ErrorIs(err, amm.ErrInsufficientPoolBalance)

	result, err = listener.ListenForResult()
	require.NoError(err)
	require.False(result.Success)
	require.Contains(result.Error, amm.ErrInsufficientPoolBalance.Error())
}

func TestWebSocketServerDropsWhenFull(t *testing.T) {
	require := require.New(t)

	ws := NewWebSocketServer(logging.NoLog{}, 1)
	c := &connection{send: make(chan []byte, 1)}
	ws.conns[c] = struct{}{}

	result := &chain.Result{TxID: ids.GenerateTestID(), Actor: codectest.NewRandomAddress(), Success: true}
	require.NoError(ws.Accept(context.Background(), result))
	require.NoError(ws.Accept(context.Background(), result))
	require.Len(c.send, 1)

	require.NoError(ws.Close())
	require.Zero(ws.Connections())
	_, ok := <-c.send
	require.True(ok)
	_, ok = <-c.send
	require.False(ok)

	// Removing a closed connection is a no-op.
	ws.remove(c)
}
