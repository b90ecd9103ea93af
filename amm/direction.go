// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import (
	"errors"
	"fmt"
)

var ErrUnknownDirection = errors.New("unknown swap direction")

// Direction selects which asset a swap takes in.
type Direction uint8

const (
	AToB Direction = iota
	BToA
)

func (d Direction) String() string {
	switch d {
	case AToB:
		return "a_to_b"
	case BToA:
		return "b_to_a"
	default:
		return "unknown"
	}
}

// ParseDirection accepts the String form of a direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "a_to_b":
		return AToB, nil
	case "b_to_a":
		return BToA, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	if d != AToB && d != BToA {
		return nil, ErrUnknownDirection
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
