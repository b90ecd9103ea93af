// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/gorilla/websocket"

	"github.com/ava-labs/cpamm/codec"
)

// ResultMessage is a streamed transaction result.
type ResultMessage struct {
	TxID       ids.ID          `json:"txId"`
	Actor      codec.Address   `json:"actor"`
	ActionType uint8           `json:"actionType"`
	Timestamp  int64           `json:"timestamp"`
	Success    bool            `json:"success"`
	Error      string          `json:"error,omitempty"`
	Output     json.RawMessage `json:"output,omitempty"`
}

type WebSocketClient struct {
	conn *websocket.Conn
	rl   sync.Mutex
	cl   sync.Once
}

// NewWebSocketClient dials the result stream of the node at [uri].
func NewWebSocketClient(uri string) (*WebSocketClient, error) {
	uri = strings.TrimSuffix(uri, "/")
	switch {
	case strings.HasPrefix(uri, "https://"):
		uri = "wss://" + strings.TrimPrefix(uri, "https://")
	case strings.HasPrefix(uri, "http://"):
		uri = "ws://" + strings.TrimPrefix(uri, "http://")
	}
	uri += WebSocketEndpoint
	conn, resp, err := websocket.DefaultDialer.Dial(uri, nil)
	if err != nil {
		return nil, err
	}
	// not using resp for now
	resp.Body.Close()
	return &WebSocketClient{conn: conn}, nil
}

// ListenForResult blocks until the next result arrives.
func (c *WebSocketClient) ListenForResult() (*ResultMessage, error) {
	c.rl.Lock()
	defer c.rl.Unlock()

	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	result := new(ResultMessage)
	if err := json.Unmarshal(msg, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Close closes the connection. It is safe to call more than once.
func (c *WebSocketClient) Close() error {
	var err error
	c.cl.Do(func() {
		err = c.conn.Close()
	})
	return err
}
