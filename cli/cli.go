// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"github.com/ava-labs/cpamm/pebble"
)

// Handler holds the keys and settings of the command line client.
type Handler struct {
	db *pebble.Database
}

func New(databasePath string) (*Handler, error) {
	cfg := pebble.NewDefaultConfig()
	db, _, err := pebble.New(databasePath, cfg)
	if err != nil {
		return nil, err
	}
	return &Handler{db: db}, nil
}

func (h *Handler) CloseDatabase() error {
	return h.db.Close()
}
