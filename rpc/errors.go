// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"fmt"
	"strings"

	"github.com/ava-labs/cpamm/amm"
)

// restoreKind re-attaches the pool error kind named in the message of [err].
// Errors only carry their text across the wire.
func restoreKind(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range amm.Kinds {
		if strings.Contains(err.Error(), kind.Error()) {
			return fmt.Errorf("%w: %w", kind, err)
		}
	}
	return err
}
