// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"errors"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/crypto/ed25519"
	"github.com/ava-labs/cpamm/utils"
)

var (
	ErrInputEmpty          = errors.New("input is empty")
	ErrInputTooLarge       = errors.New("input is too large")
	ErrInvalidChoice       = errors.New("invalid choice")
	ErrIndexOutOfRange     = errors.New("index out-of-range")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

const maxSymbolLen = 32

func PrivateKey(label string) (ed25519.PrivateKey, error) {
	promptText := promptui.Prompt{
		Label: label,
		Mask:  '*',
		Validate: func(input string) error {
			_, err := ed25519.HexToKey(strings.TrimSpace(input))
			return err
		},
	}
	hexString, err := promptText.Run()
	if err != nil {
		return ed25519.EmptyPrivateKey, err
	}
	return ed25519.HexToKey(strings.TrimSpace(hexString))
}

func Address(label string) (codec.Address, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := codec.ParseAnyAddress(consts.HRP, strings.TrimSpace(input))
			return err
		},
	}
	recipient, err := promptText.Run()
	if err != nil {
		return codec.EmptyAddress, err
	}
	return codec.ParseAnyAddress(consts.HRP, strings.TrimSpace(recipient))
}

// Symbol asks for the symbol of an asset.
func Symbol(label string) (string, error) {
	promptText := promptui.Prompt{
		Label:    label,
		Validate: ValidateSymbol,
	}
	text, err := promptText.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func ValidateSymbol(input string) error {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return ErrInputEmpty
	}
	if len(input) > maxSymbolLen {
		return ErrInputTooLarge
	}
	return nil
}

// Amount asks for an amount no larger than [balance].
func Amount(label string, balance uint64) (uint64, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := ParseAmount(input, balance)
			return err
		},
	}
	rawAmount, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return ParseAmount(rawAmount, balance)
}

func ParseAmount(input string, balance uint64) (uint64, error) {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return 0, ErrInputEmpty
	}
	amount, err := strconv.ParseUint(input, 10, 64)
	if err != nil {
		return 0, err
	}
	if amount > balance {
		return 0, ErrInsufficientBalance
	}
	return amount, nil
}

func Direction(label string) (amm.Direction, error) {
	promptSelect := promptui.Select{
		Label: label,
		Items: []string{amm.AToB.String(), amm.BToA.String()},
	}
	_, choice, err := promptSelect.Run()
	if err != nil {
		return 0, err
	}
	return amm.ParseDirection(choice)
}

func Choice(label string, maxChoice int) (int, error) {
	if maxChoice == 1 {
		utils.Outf("{{yellow}}%s:{{/}} 0 [auto-selected]\n", label)
		return 0, nil
	}
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := ParseChoice(input, maxChoice)
			return err
		},
	}
	rawIndex, err := promptText.Run()
	if err != nil {
		return -1, err
	}
	return ParseChoice(rawIndex, maxChoice)
}

func ParseChoice(input string, maxChoice int) (int, error) {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return -1, ErrInputEmpty
	}
	index, err := strconv.Atoi(input)
	if err != nil {
		return -1, err
	}
	if index >= maxChoice || index < 0 {
		return -1, ErrIndexOutOfRange
	}
	return index, nil
}

func Continue() (bool, error) {
	promptText := promptui.Prompt{
		Label: "continue (y/n)",
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			lower := strings.ToLower(input)
			if lower == "y" || lower == "n" {
				return nil
			}
			return ErrInvalidChoice
		},
	}
	rawContinue, err := promptText.Run()
	if err != nil {
		return false, err
	}
	cont := strings.ToLower(rawContinue)
	if cont == "n" {
		utils.Outf("{{red}}exiting...{{/}}\n")
		return false, nil
	}
	return true, nil
}
