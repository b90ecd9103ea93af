// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	ErrMissingAction    = errors.New("missing action")
	ErrMissingAuth      = errors.New("missing auth")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidObject    = errors.New("invalid object")
	ErrDuplicateTx      = errors.New("duplicate transaction")
	ErrTimestampTooLate = errors.New("timestamp too late")
	ErrTimestampTooOld  = errors.New("timestamp too old")
	ErrInvalidChainID   = errors.New("invalid chain id")
	ErrUnsignedTx       = errors.New("transaction is not signed")
)
