// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/cli/prompt"
	"github.com/ava-labs/cpamm/pricing"
	"github.com/ava-labs/cpamm/storage"
	"github.com/ava-labs/cpamm/utils"
)

func newQueryCmd(r *root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Read pool state",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "pool <assetA> <assetB>",
			Short: "Show a pool, its live custody balances and its spot price",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				node, err := r.node(ctx)
				if err != nil {
					return err
				}
				defer node.Close()

				state, err := node.Pool(ctx, storage.AssetAddress(args[0]), storage.AssetAddress(args[1]))
				if err != nil {
					return err
				}
				return r.print(state, func() {
					utils.Outf("{{cyan}}pool:{{/}} %s\n", state.Address)
					utils.Outf("{{cyan}}authority:{{/}} %s\n", state.Pool.Authority)
					utils.Outf("{{cyan}}%s:{{/}} %d (custody %d)\n", args[0], state.Pool.AmountA, state.LiveA)
					utils.Outf("{{cyan}}%s:{{/}} %d (custody %d)\n", args[1], state.Pool.AmountB, state.LiveB)
					utils.Outf("{{cyan}}price:{{/}} 1 %s = %s %s\n", args[0], pricing.SpotPrice(state.LiveA, state.LiveB).String(), args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "position <assetA> <assetB> <owner|me>",
			Short: "Show the contribution of a liquidity provider",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				owner, err := addressOf(r, args[2])
				if err != nil {
					return err
				}
				node, err := r.node(ctx)
				if err != nil {
					return err
				}
				defer node.Close()

				position, err := node.Position(ctx, storage.AssetAddress(args[0]), storage.AssetAddress(args[1]), owner)
				if err != nil {
					return err
				}
				return r.print(position, func() {
					utils.Outf("{{cyan}}owner:{{/}} %s\n", position.Owner)
					utils.Outf("{{cyan}}%s:{{/}} %d\n{{cyan}}%s:{{/}} %d\n", args[0], position.AmountA, args[1], position.AmountB)
				})
			},
		},
		&cobra.Command{
			Use:   "balance <asset> <account|me>",
			Short: "Show the balance of an account",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				account, err := addressOf(r, args[1])
				if err != nil {
					return err
				}
				node, err := r.node(ctx)
				if err != nil {
					return err
				}
				defer node.Close()

				balance, err := node.Balance(ctx, storage.AssetAddress(args[0]), account)
				if err != nil {
					return err
				}
				return r.print(map[string]uint64{"balance": balance}, func() {
					utils.Outf("{{cyan}}balance:{{/}} %d %s\n", balance, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "quote <assetA> <assetB> <a_to_b|b_to_a> <amount>",
			Short: "Price a swap without executing it",
			Args:  cobra.ExactArgs(4),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				dir, err := amm.ParseDirection(args[2])
				if err != nil {
					return err
				}
				in, err := prompt.ParseAmount(args[3], maxAmount)
				if err != nil {
					return err
				}
				node, err := r.node(ctx)
				if err != nil {
					return err
				}
				defer node.Close()

				quote, err := node.Quote(ctx, storage.AssetAddress(args[0]), storage.AssetAddress(args[1]), dir, in)
				if err != nil {
					return err
				}
				return r.print(quote, func() {
					utils.Outf("{{cyan}}in:{{/}} %d {{cyan}}out:{{/}} %d\n", quote.AmountIn, quote.AmountOut)
					utils.Outf("{{cyan}}reserves after:{{/}} %d / %d\n", quote.NewReserveIn, quote.NewReserveOut)
					utils.Outf("{{cyan}}spot price:{{/}} %s {{cyan}}execution price:{{/}} %s\n", quote.SpotPrice.String(), quote.ExecPrice.String())
					utils.Outf("{{cyan}}price impact:{{/}} %s%%\n", quote.PriceImpact.Shift(2).StringFixed(4))
				})
			},
		},
	)
	return cmd
}
