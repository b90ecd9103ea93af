// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/crypto/ed25519"
	"github.com/ava-labs/cpamm/utils"
)

func newKeyCmd(r *root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage signing keys",
	}
	cmd.AddCommand(
		newKeyGenerateCmd(r),
		newKeyImportCmd(r),
		newKeyAddressCmd(r),
		newKeyListCmd(r),
		newKeySetCmd(r),
	)
	return cmd
}

func newKeyGenerateCmd(r *root) *cobra.Command {
	var save string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a key and make it the default",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			h, err := r.keys()
			if err != nil {
				return err
			}
			if save == "" {
				_, err = h.GenerateKey()
				return err
			}
			priv, err := ed25519.GeneratePrivateKey()
			if err != nil {
				return err
			}
			if err := priv.Save(save); err != nil {
				return err
			}
			utils.Outf("{{green}}saved key to:{{/}} %s\n", save)
			_, err = h.ImportKey(priv.ToHex())
			return err
		},
	}
	cmd.Flags().StringVar(&save, "save", "", "also write the key to this file")
	return cmd
}

func newKeyImportCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "import [hex|file]",
		Short: "Import a key and make it the default",
		Long:  "Import a hex encoded ed25519 key or a key file. The key is prompted for when no argument is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			h, err := r.keys()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				_, err = h.ImportKey("")
				return err
			}
			if _, statErr := os.Stat(args[0]); statErr == nil {
				priv, err := ed25519.LoadKey(args[0])
				if err != nil {
					return err
				}
				_, err = h.ImportKey(priv.ToHex())
				return err
			}
			_, err = h.ImportKey(args[0])
			return err
		},
	}
}

type keyOutput struct {
	Address string `json:"address"`
	Hex     string `json:"hex"`
	Base58  string `json:"base58"`
}

func newKeyAddressCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the address of the default key",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			h, err := r.keys()
			if err != nil {
				return err
			}
			key, err := h.GetDefaultKey()
			if err != nil {
				return err
			}
			infos, err := h.ListKeys()
			if err != nil {
				return err
			}
			for _, info := range infos {
				if info.Address != key.Address {
					continue
				}
				out := keyOutput{Address: info.Bech32, Hex: info.Address.String(), Base58: info.Base58}
				return r.print(out, func() {
					utils.Outf("{{cyan}}address:{{/}} %s\n{{cyan}}hex:{{/}} %s\n{{cyan}}base58:{{/}} %s\n", out.Address, out.Hex, out.Base58)
				})
			}
			return ErrUnknownKey
		},
	}
}

func newKeyListCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored keys",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			h, err := r.keys()
			if err != nil {
				return err
			}
			infos, err := h.ListKeys()
			if err != nil {
				return err
			}
			var defaultAddr codec.Address
			if key, err := h.GetDefaultKey(); err == nil {
				defaultAddr = key.Address
			}
			out := make([]keyOutput, len(infos))
			for i, info := range infos {
				out[i] = keyOutput{Address: info.Bech32, Hex: info.Address.String(), Base58: info.Base58}
			}
			return r.print(out, func() {
				utils.Outf("{{cyan}}stored keys:{{/}} %d\n", len(infos))
				for i, info := range infos {
					marker := ""
					if info.Address == defaultAddr {
						marker = " {{green}}(default){{/}}"
					}
					utils.Outf("%d) %s"+marker+"\n", i, info.Bech32)
				}
			})
		},
	}
}

func newKeySetCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "set [address]",
		Short: "Choose the default key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			h, err := r.keys()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return h.SetKey()
			}
			addr, err := codec.ParseAnyAddress(consts.HRP, args[0])
			if err != nil {
				return err
			}
			if _, err := h.GetKey(addr); err != nil {
				return err
			}
			return h.StoreDefaultKey(addr)
		},
	}
}

// addressOf resolves [s] as an address, or as the address of a stored key
// when it is the literal "me".
func addressOf(r *root, s string) (codec.Address, error) {
	if s != "me" {
		return codec.ParseAnyAddress(consts.HRP, s)
	}
	h, err := r.keys()
	if err != nil {
		return codec.EmptyAddress, err
	}
	key, err := h.GetDefaultKey()
	if err != nil {
		return codec.EmptyAddress, err
	}
	return key.Address, nil
}
