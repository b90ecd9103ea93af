// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import (
	"errors"
	"fmt"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// Add returns a + b or ErrOverflow.
func Add(a, b uint64) (uint64, error) {
	v, err := smath.Add(a, b)
	if errors.Is(err, smath.ErrOverflow) {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}
	return v, err
}

// Sub returns a - b or ErrUnderflow.
func Sub(a, b uint64) (uint64, error) {
	v, err := smath.Sub(a, b)
	if errors.Is(err, smath.ErrUnderflow) {
		return 0, fmt.Errorf("%w: %d - %d", ErrUnderflow, a, b)
	}
	return v, err
}
