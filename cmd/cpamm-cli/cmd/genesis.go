// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/cpamm/genesis"
	"github.com/ava-labs/cpamm/utils"
)

func newGenesisCmd(r *root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genesis",
		Short: "Manage the genesis of the local database",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "apply <file>",
		Short: "Credit the allocations and create the pools of a genesis file",
		Long:  "Apply a genesis file to the local database. Applying the same genesis again is a no-op.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if r.endpoint != "" {
				return ErrRemoteGenesis
			}
			gen, err := genesis.LoadFile(args[0])
			if err != nil {
				return err
			}
			node, err := r.openLocal(cmd.Context(), gen)
			if err != nil {
				return err
			}
			utils.Outf("{{green}}applied genesis:{{/}} %d allocations, %d pools\n", len(gen.Allocations), len(gen.Pools))
			return node.Close()
		},
	})
	return cmd
}
