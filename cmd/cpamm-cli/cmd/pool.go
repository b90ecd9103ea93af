// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/cpamm/actions"
	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/cli/prompt"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/storage"
	"github.com/ava-labs/cpamm/utils"
)

func newPoolCmd(r *root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Submit pool operations signed with the default key",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "init [assetA] [assetB]",
			Short: "Create the pool of an asset pair",
			Long:  "Create the pool of an asset pair. Missing symbols are prompted for.",
			Args:  cobra.MaximumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				symbols, err := symbolsOf(args, "assetA", "assetB")
				if err != nil {
					return err
				}
				return r.submit(cmd.Context(), &actions.Initialize{
					AssetA: storage.AssetAddress(symbols[0]),
					AssetB: storage.AssetAddress(symbols[1]),
				})
			},
		},
		&cobra.Command{
			Use:   "add <assetA> <assetB> <amountA> <amountB>",
			Short: "Deposit liquidity",
			Args:  cobra.ExactArgs(4),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, b, err := parseAmounts(args[2], args[3])
				if err != nil {
					return err
				}
				return r.submit(cmd.Context(), &actions.AddLiquidity{
					AssetA:  storage.AssetAddress(args[0]),
					AssetB:  storage.AssetAddress(args[1]),
					AmountA: a,
					AmountB: b,
				})
			},
		},
		&cobra.Command{
			Use:   "remove <assetA> <assetB> <amountA> <amountB>",
			Short: "Withdraw liquidity",
			Args:  cobra.ExactArgs(4),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, b, err := parseAmounts(args[2], args[3])
				if err != nil {
					return err
				}
				return r.submit(cmd.Context(), &actions.RemoveLiquidity{
					AssetA:  storage.AssetAddress(args[0]),
					AssetB:  storage.AssetAddress(args[1]),
					AmountA: a,
					AmountB: b,
				})
			},
		},
		newSwapCmd(r),
		&cobra.Command{
			Use:   "transfer <asset> [to|me] [amount]",
			Short: "Transfer an asset",
			Long:  "Transfer an asset. The recipient and amount are prompted for when omitted.",
			Args:  cobra.RangeArgs(1, 3),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				asset := storage.AssetAddress(args[0])

				var (
					to  codec.Address
					err error
				)
				if len(args) > 1 {
					to, err = addressOf(r, args[1])
				} else {
					to, err = prompt.Address("recipient")
				}
				if err != nil {
					return err
				}

				var value uint64
				if len(args) > 2 {
					value, err = prompt.ParseAmount(args[2], maxAmount)
				} else {
					value, err = r.promptAmount(ctx, asset, "amount")
				}
				if err != nil {
					return err
				}
				return r.submit(ctx, &actions.Transfer{
					Asset: asset,
					To:    to,
					Value: value,
				})
			},
		},
	)
	return cmd
}

func newSwapCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "swap <assetA> <assetB> [a_to_b|b_to_a] [amount]",
		Short: "Swap against a pool",
		Long:  "Swap against a pool. The direction and amount are prompted for when omitted.",
		Args:  cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			assetA, assetB := storage.AssetAddress(args[0]), storage.AssetAddress(args[1])

			var (
				dir amm.Direction
				err error
			)
			if len(args) > 2 {
				dir, err = amm.ParseDirection(args[2])
			} else {
				dir, err = prompt.Direction("direction")
			}
			if err != nil {
				return err
			}

			var in uint64
			if len(args) > 3 {
				in, err = prompt.ParseAmount(args[3], maxAmount)
			} else {
				assetIn := assetA
				if dir == amm.BToA {
					assetIn = assetB
				}
				in, err = r.promptAmount(ctx, assetIn, "amount in")
			}
			if err != nil {
				return err
			}

			var action chain.Action = &actions.SwapAToB{AssetA: assetA, AssetB: assetB, AmountIn: in}
			if dir == amm.BToA {
				action = &actions.SwapBToA{AssetA: assetA, AssetB: assetB, AmountIn: in}
			}
			return r.submit(ctx, action)
		},
	}
}

// promptAmount asks for an amount bounded by the default key's balance of
// [asset].
func (r *root) promptAmount(ctx context.Context, asset codec.Address, label string) (uint64, error) {
	factory, err := r.factory()
	if err != nil {
		return 0, err
	}
	node, err := r.node(ctx)
	if err != nil {
		return 0, err
	}
	defer node.Close()

	balance, err := node.Balance(ctx, asset, factory.Address())
	if err != nil {
		return 0, err
	}
	utils.Outf("{{yellow}}balance:{{/}} %d\n", balance)
	return prompt.Amount(label, balance)
}

// symbolsOf returns [args] followed by prompted symbols for the missing
// [labels].
func symbolsOf(args []string, labels ...string) ([]string, error) {
	symbols := make([]string, len(labels))
	for i, label := range labels {
		if i < len(args) {
			if err := prompt.ValidateSymbol(args[i]); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArgs, label, err)
			}
			symbols[i] = args[i]
			continue
		}
		symbol, err := prompt.Symbol(label)
		if err != nil {
			return nil, err
		}
		symbols[i] = symbol
	}
	return symbols, nil
}

const maxAmount = ^uint64(0)

func parseAmounts(a, b string) (uint64, uint64, error) {
	amountA, err := prompt.ParseAmount(a, maxAmount)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: amountA: %w", ErrInvalidArgs, err)
	}
	amountB, err := prompt.ParseAmount(b, maxAmount)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: amountB: %w", ErrInvalidArgs, err)
	}
	return amountA, amountB, nil
}

// submit signs [action] with the default key and reports the outcome.
func (r *root) submit(ctx context.Context, action chain.Action) error {
	factory, err := r.factory()
	if err != nil {
		return err
	}
	if err := r.confirm(); err != nil {
		return err
	}
	node, err := r.node(ctx)
	if err != nil {
		return err
	}
	defer node.Close()

	outcome, err := node.Submit(ctx, action, factory)
	if err != nil {
		return err
	}
	if log, logErr := r.logger(); logErr == nil {
		log.Info("submitted action",
			zap.Stringer("txID", outcome.TxID),
			zap.Stringer("actor", factory.Address()),
			zap.Error(outcome.Err),
		)
	}
	if outcome.Err != nil {
		utils.Outf("{{red}}txID:{{/}} %s {{red}}failed:{{/}} %s\n", outcome.TxID, outcome.Err)
		return outcome.Err
	}
	return r.print(outcome, func() {
		utils.Outf("{{green}}txID:{{/}} %s\n{{green}}output:{{/}} %s\n", outcome.TxID, string(outcome.Output))
	})
}
