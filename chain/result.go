// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/cpamm/codec"
)

// Result is the outcome of executing a transaction. It is also the event
// delivered to subscribers.
type Result struct {
	TxID       ids.ID        `json:"txId"`
	Actor      codec.Address `json:"actor"`
	ActionType uint8         `json:"actionType"`
	Timestamp  int64         `json:"timestamp"`
	Success    bool          `json:"success"`
	Error      string        `json:"error,omitempty"`
	Output     codec.Typed   `json:"output,omitempty"`

	err error
}

// Err returns the error the action failed with, if any.
func (r *Result) Err() error {
	return r.err
}
