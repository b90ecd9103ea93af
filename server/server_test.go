// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
)

type echo struct{}

type EchoArgs struct {
	Message string `json:"message"`
}

type EchoReply struct {
	Message string `json:"message"`
}

func (*echo) Echo(_ *http.Request, args *EchoArgs, reply *EchoReply) error {
	reply.Message = args.Message
	return nil
}

func TestServerRoutesJSONRPC(t *testing.T) {
	require := require.New(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	s := New("/ext", logging.NoLog{}, listener, HTTPConfig{ReadHeaderTimeout: time.Second}, []string{"*"}, time.Second)

	handler, err := NewHandler(&echo{}, "echo")
	require.NoError(err)
	require.NoError(s.AddRoute(handler, "cpamm", ""))
	require.ErrorIs(s.AddRoute(handler, "cpamm", ""), ErrDuplicateRoute)

	done := make(chan error, 1)
	go func() { done <- s.Dispatch() }()

	body := []byte(`{"jsonrpc":"2.0","id":1,"method":"echo.echo","params":{"message":"hi"}}`)
	url := fmt.Sprintf("http://%s/ext/cpamm", s.Addr())
	resp, err := http.Post(url, "application/json", bytes.NewReader(body)) //nolint:noctx
	require.NoError(err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(err)
	require.NoError(resp.Body.Close())
	require.Equal(http.StatusOK, resp.StatusCode)
	require.Contains(string(b), `"message":"hi"`)

	require.NoError(s.Shutdown())
	require.NoError(<-done)
}
