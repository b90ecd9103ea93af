// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting/address"
)

const AddressLen = 1 + ids.IDLen

// Address is a type byte followed by a 32 byte identifier. Accounts, pools,
// custody accounts and assets all share this representation.
type Address [AddressLen]byte

var EmptyAddress = Address{}

// CreateAddress returns [Address] made from concatenating
// [typeID] with [id].
func CreateAddress(typeID uint8, id ids.ID) Address {
	var a Address
	a[0] = typeID
	copy(a[1:], id[:])
	return a
}

func (a Address) TypeID() uint8 {
	return a[0]
}

// StringToAddress parses the hex representation of an address, with or
// without a 0x prefix.
func StringToAddress(s string) (Address, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return EmptyAddress, err
	}
	if len(b) != AddressLen {
		return EmptyAddress, fmt.Errorf("%w: expected %d bytes but got %d", ErrInsufficientLength, AddressLen, len(b))
	}
	return Address(b), nil
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalText returns the hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a hex-encoded address.
func (a *Address) UnmarshalText(input []byte) error {
	parsed, err := StringToAddress(string(input))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// AddressBech32 returns a human-readable representation of [p] under [hrp].
func AddressBech32(hrp string, p Address) (string, error) {
	return address.FormatBech32(hrp, p[:])
}

// MustAddressBech32 panics if the address cannot be formatted. Only used by
// CLI output.
func MustAddressBech32(hrp string, p Address) string {
	addr, err := AddressBech32(hrp, p)
	if err != nil {
		panic(err)
	}
	return addr
}

// ParseAddressBech32 parses a bech32 encoded address string and verifies
// its human-readable part.
func ParseAddressBech32(hrp, saddr string) (Address, error) {
	phrp, p, err := address.ParseBech32(saddr)
	if err != nil {
		return EmptyAddress, err
	}
	if phrp != hrp {
		return EmptyAddress, ErrIncorrectHRP
	}
	// Decoding 5-bit groups back to bytes pads the payload, so it may be
	// longer than [AddressLen].
	if len(p) < AddressLen {
		return EmptyAddress, ErrInsufficientLength
	}
	return Address(p[:AddressLen]), nil
}

// ParseAnyAddress accepts either hex or bech32 under [hrp].
func ParseAnyAddress(hrp, s string) (Address, error) {
	if strings.HasPrefix(s, hrp+"1") {
		return ParseAddressBech32(hrp, s)
	}
	return StringToAddress(s)
}
