// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/rpc"
	"github.com/ava-labs/cpamm/utils"
)

var actionNames = map[uint8]string{
	consts.InitializeID:      "init",
	consts.AddLiquidityID:    "add",
	consts.RemoveLiquidityID: "remove",
	consts.SwapAToBID:        "swap a_to_b",
	consts.SwapBToAID:        "swap b_to_a",
	consts.TransferID:        "transfer",
}

func newWatchCmd(r *root) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream the transactions a node executes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			uri, err := r.remote()
			if err != nil {
				return err
			}
			if uri == "" {
				return ErrNoEndpoint
			}
			client, err := rpc.NewWebSocketClient(uri)
			if err != nil {
				return err
			}
			defer client.Close()
			go func() {
				<-ctx.Done()
				_ = client.Close()
			}()

			for i := 0; count <= 0 || i < count; i++ {
				result, err := client.ListenForResult()
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					return err
				}
				err = r.print(result, func() {
					name := actionNames[result.ActionType]
					if !result.Success {
						utils.Outf("{{red}}%s{{/}} %s {{red}}failed:{{/}} %s\n", name, result.TxID, result.Error)
						return
					}
					utils.Outf("{{green}}%s{{/}} %s {{green}}by{{/}} %s %s\n", name, result.TxID, result.Actor, string(result.Output))
				})
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 0, "stop after this many transactions (0 streams until interrupted)")
	return cmd
}
