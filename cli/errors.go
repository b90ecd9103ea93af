// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import "errors"

var (
	ErrDuplicate       = errors.New("duplicate")
	ErrNoKeys          = errors.New("no available keys")
	ErrKeyNotFound     = errors.New("key not found")
	ErrInvalidEndpoint = errors.New("invalid endpoint")
)
