// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/event"
)

var (
	_ event.Subscription[*chain.Result] = (*WebSocketServer)(nil)
	_ http.Handler                      = (*WebSocketServer)(nil)

	upgrader = websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool {
			return true
		},
	}
)

type connection struct {
	conn *websocket.Conn
	send chan []byte
}

// WebSocketServer streams the result of every executed transaction to its
// connections. Register it as a subscription of the VM and serve it under
// [WebSocketEndpoint].
type WebSocketServer struct {
	log                logging.Logger
	maxPendingMessages int

	lock   sync.RWMutex
	conns  map[*connection]struct{}
	closed bool
}

func NewWebSocketServer(log logging.Logger, maxPendingMessages int) *WebSocketServer {
	return &WebSocketServer{
		log:                log,
		maxPendingMessages: maxPendingMessages,
		conns:              make(map[*connection]struct{}),
	}
}

func (w *WebSocketServer) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(rw, r, nil)
	if err != nil {
		w.log.Debug("failed to upgrade",
			zap.Error(err),
		)
		return
	}
	c := &connection{
		conn: wsConn,
		send: make(chan []byte, w.maxPendingMessages),
	}

	w.lock.Lock()
	if w.closed {
		w.lock.Unlock()
		_ = wsConn.Close()
		return
	}
	w.conns[c] = struct{}{}
	w.lock.Unlock()

	go w.writePump(c)
	go w.readPump(c)
}

// Connections returns the number of listening connections.
func (w *WebSocketServer) Connections() int {
	w.lock.RLock()
	defer w.lock.RUnlock()

	return len(w.conns)
}

// Accept publishes [result] to every connection. A connection with
// [maxPendingMessages] unsent results drops new ones.
func (w *WebSocketServer) Accept(_ context.Context, result *chain.Result) error {
	msg, err := json.Marshal(result)
	if err != nil {
		return err
	}

	w.lock.RLock()
	defer w.lock.RUnlock()

	for c := range w.conns {
		select {
		case c.send <- msg:
		default:
			w.log.Debug("dropping result for slow connection",
				zap.Stringer("txID", result.TxID),
			)
		}
	}
	return nil
}

// Close disconnects every connection.
func (w *WebSocketServer) Close() error {
	w.lock.Lock()
	defer w.lock.Unlock()

	w.closed = true
	for c := range w.conns {
		delete(w.conns, c)
		close(c.send)
	}
	return nil
}

func (w *WebSocketServer) remove(c *connection) {
	w.lock.Lock()
	defer w.lock.Unlock()

	if _, ok := w.conns[c]; !ok {
		return
	}
	delete(w.conns, c)
	close(c.send)
}

// readPump only handles control messages; clients do not send anything.
func (w *WebSocketServer) readPump(c *connection) {
	defer func() {
		w.remove(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxReadMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
			) {
				w.log.Debug("unexpected close in websockets",
					zap.Error(err),
				)
			}
			return
		}
	}
}

func (w *WebSocketServer) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		w.remove(c)
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				w.log.Debug("closing the connection",
					zap.String("reason", "failed to write message"),
					zap.Error(err),
				)
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
