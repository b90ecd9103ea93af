// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/pebble"
	"github.com/ava-labs/cpamm/server"
	"github.com/ava-labs/cpamm/trace"
	"github.com/ava-labs/cpamm/utils"
)

var ErrEmptyChainID = errors.New("chain ID must not be empty")

// DefaultChainID is the chain a node serves unless configured otherwise.
var DefaultChainID = utils.ToID([]byte(consts.Name))

type Config struct {
	// Logging
	LogLevel        logging.Level `json:"logLevel"`
	LogDisplayLevel logging.Level `json:"logDisplayLevel"`
	LogDir          string        `json:"logDir"`

	// Storage
	DatabasePath      string        `json:"databasePath"`
	Pebble            pebble.Config `json:"pebble"`
	StoreTransactions bool          `json:"storeTransactions"`

	// Network
	ChainID ids.ID `json:"chainId"`
	// ValidityWindow bounds, in milliseconds, how far a transaction
	// timestamp may be from the node's clock.
	ValidityWindow int64 `json:"validityWindow"`

	// API
	HTTPAddress     string            `json:"httpAddress"`
	HTTP            server.HTTPConfig `json:"http"`
	AllowedOrigins  []string          `json:"allowedOrigins"`
	ShutdownTimeout time.Duration     `json:"shutdownTimeout"`

	// Streaming
	// StreamMaxPendingMessages bounds the results queued for each websocket
	// listener before new ones are dropped.
	StreamMaxPendingMessages int `json:"streamMaxPendingMessages"`

	// Observability
	Trace          trace.Config `json:"trace"`
	MetricsEnabled bool         `json:"metricsEnabled"`
}

// New decodes [b] over the defaults. Empty input yields the defaults.
func New(b []byte) (*Config, error) {
	c := &Config{
		LogLevel:          logging.Info,
		LogDisplayLevel:   logging.Info,
		LogDir:            ".cpamm/logs",
		ChainID:           DefaultChainID,
		DatabasePath:      ".cpamm/db",
		Pebble:            pebble.NewDefaultConfig(),
		StoreTransactions: true,
		ValidityWindow:    60_000,
		HTTPAddress:       "127.0.0.1:9650",
		HTTP: server.HTTPConfig{
			ReadTimeout:       30 * time.Second,
			ReadHeaderTimeout: 30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		AllowedOrigins:           []string{"*"},
		ShutdownTimeout:          10 * time.Second,
		StreamMaxPendingMessages: 1_024,
		Trace: trace.Config{
			Enabled:         false,
			TraceSampleRate: 1,
			Endpoint:        trace.DefaultEndpoint,
		},
		MetricsEnabled: true,
	}

	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, err
		}
	}
	if c.ChainID == ids.Empty {
		return nil, ErrEmptyChainID
	}

	return c, nil
}

// Load reads the config at [path]. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return New(nil)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(b)
}
