// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import "errors"

var (
	ErrInvalidArgs         = errors.New("invalid arguments")
	ErrInvalidConfigFormat = errors.New("invalid config format")
	ErrInvalidPlan         = errors.New("invalid plan")
	ErrInvalidStep         = errors.New("invalid step")
	ErrUnknownCommand      = errors.New("unknown command")
	ErrUnknownKey          = errors.New("unknown key")
	ErrDuplicateKeyName    = errors.New("duplicate key name")
	ErrAssertionFailed     = errors.New("assertion failed")
	ErrInvalidOperator     = errors.New("invalid operator")
	ErrMissingField        = errors.New("missing result field")
	ErrRemoteGenesis       = errors.New("genesis can only be applied to a local database")
	ErrAborted             = errors.New("aborted")
	ErrNoEndpoint          = errors.New("no endpoint set")
)
