// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/mattn/go-shellwords"
	"github.com/neilotoole/errgroup"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/ava-labs/cpamm/actions"
	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/auth"
	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/cli/prompt"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/config"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/crypto/ed25519"
	"github.com/ava-labs/cpamm/genesis"
	"github.com/ava-labs/cpamm/storage"
	"github.com/ava-labs/cpamm/trace"
	"github.com/ava-labs/cpamm/utils"
	"github.com/ava-labs/cpamm/vm"
)

// commands a step may run, with the number of arguments each takes and
// whether it needs a signer.
var commands = map[string]struct {
	args   int
	signed bool
}{
	"init":     {2, true},
	"add":      {4, true},
	"remove":   {4, true},
	"swap":     {4, true},
	"transfer": {3, true},
	"pool":     {2, false},
	"position": {3, false},
	"balance":  {2, false},
	"quote":    {4, false},
}

func newRunCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "run <plan|->",
		Short: "Run a plan against a fresh in-memory node",
		Long:  "Run a YAML or JSON plan against a fresh in-memory node. Use - to read the plan from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				b   []byte
				err error
			)
			if args[0] == "-" {
				b, err = io.ReadAll(cmd.InOrStdin())
			} else {
				b, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}
			plan, err := unmarshalPlan(b)
			if err != nil {
				return err
			}
			log, err := r.logger()
			if err != nil {
				return err
			}
			return runPlan(cmd.Context(), log, plan, cmd.OutOrStdout())
		},
	}
}

// Response is printed for every step.
type Response struct {
	ID          int             `json:"id"`
	Description string          `json:"description,omitempty"`
	TxID        string          `json:"txId,omitempty"`
	Output      json.RawMessage `json:"output,omitempty"`
	Error       string          `json:"error,omitempty"`
	Failure     string          `json:"failure,omitempty"`
}

type runner struct {
	plan *Plan
	log  logging.Logger
	node *localBackend
	keys map[string]chain.AuthFactory
	out  io.Writer

	outLock sync.Mutex
	passed  atomic.Uint64
	failed  atomic.Uint64
}

// runPlan verifies [plan] and runs it. Every step runs even when an earlier
// one fails; the run fails when any step did.
func runPlan(ctx context.Context, log logging.Logger, plan *Plan, out io.Writer) error {
	if err := plan.Verify(); err != nil {
		return err
	}
	r := &runner{
		plan: plan,
		log:  log,
		keys: make(map[string]chain.AuthFactory, len(plan.Keys)),
		out:  out,
	}
	for _, name := range plan.Keys {
		priv, err := ed25519.GeneratePrivateKey()
		if err != nil {
			return err
		}
		r.keys[name] = auth.NewED25519Factory(priv)
	}
	if err := r.open(ctx); err != nil {
		return err
	}
	defer r.node.Close()

	log.Info("running plan",
		zap.String("name", plan.Name),
		zap.Int("steps", len(plan.Steps)),
	)
	for start := 0; start < len(plan.Steps); {
		end := start + 1
		if plan.Steps[start].Parallel {
			for end < len(plan.Steps) && plan.Steps[end].Parallel {
				end++
			}
		}
		if err := r.runGroup(ctx, start, end); err != nil {
			return err
		}
		start = end
	}

	passed, failed := r.passed.Load(), r.failed.Load()
	utils.Outf("{{cyan}}plan %s:{{/}} %d passed, %d failed\n", plan.Name, passed, failed)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d steps", ErrAssertionFailed, failed, passed+failed)
	}
	return nil
}

func (r *runner) open(ctx context.Context) error {
	cfg, err := config.New(nil)
	if err != nil {
		return err
	}
	cfg.ChainID = utils.ToID([]byte(r.plan.Name))

	gen := &genesis.Genesis{}
	for _, alloc := range r.plan.Genesis.Allocations {
		gen.Allocations = append(gen.Allocations, &genesis.Allocation{
			Asset:   alloc.Asset,
			Address: r.keys[alloc.Key].Address().String(),
			Balance: alloc.Balance,
		})
	}
	for _, p := range r.plan.Genesis.Pools {
		gen.Pools = append(gen.Pools, &genesis.Pool{
			Authority: r.keys[p.Authority].Address().String(),
			AssetA:    p.AssetA,
			AssetB:    p.AssetB,
		})
	}

	v, err := vm.New(ctx, cfg, r.log, trace.Noop(), memdb.New(), prometheus.NewRegistry(), gen)
	if err != nil {
		return err
	}
	r.node = &localBackend{VM: v, close: v.Close}
	return nil
}

// runGroup runs steps [start, end) concurrently and prints their responses
// in order.
func (r *runner) runGroup(ctx context.Context, start, end int) error {
	responses := make([]*Response, end-start)
	g, gctx := errgroup.WithContextN(ctx, 0, 0)
	for i := start; i < end; i++ {
		g.Go(func() error {
			resp, err := r.runStep(gctx, i, &r.plan.Steps[i])
			if err != nil {
				return err
			}
			responses[i-start] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, resp := range responses {
		if err := r.print(resp); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) runStep(ctx context.Context, i int, step *Step) (*Response, error) {
	args, err := shellwords.Parse(step.Run)
	if err != nil {
		return nil, err
	}
	r.log.Debug("running step",
		zap.Int("step", i),
		zap.String("run", step.Run),
		zap.String("key", step.Key),
	)

	resp := &Response{ID: i, Description: step.Description}
	output, err := r.exec(ctx, step, args, resp)
	resp.Output = output
	if err != nil {
		resp.Error = err.Error()
	}
	if failure := check(step.Require, output, err); failure != "" {
		resp.Failure = failure
		r.failed.Inc()
	} else {
		r.passed.Inc()
	}
	return resp, nil
}

func (r *runner) exec(ctx context.Context, step *Step, args []string, resp *Response) (json.RawMessage, error) {
	name, args := args[0], args[1:]
	if commands[name].signed {
		action, err := r.action(name, args)
		if err != nil {
			return nil, err
		}
		outcome, err := r.node.Submit(ctx, action, r.keys[step.Key])
		if err != nil {
			return nil, err
		}
		resp.TxID = outcome.TxID.String()
		return outcome.Output, outcome.Err
	}

	var (
		v   any
		err error
	)
	assetA := storage.AssetAddress(args[0])
	switch name {
	case "pool":
		v, err = r.node.Pool(ctx, assetA, storage.AssetAddress(args[1]))
	case "position":
		var owner codec.Address
		owner, err = r.address(args[2])
		if err != nil {
			return nil, err
		}
		v, err = r.node.Position(ctx, assetA, storage.AssetAddress(args[1]), owner)
	case "balance":
		var account codec.Address
		account, err = r.address(args[1])
		if err != nil {
			return nil, err
		}
		var balance uint64
		balance, err = r.node.Balance(ctx, assetA, account)
		v = map[string]uint64{"balance": balance}
	case "quote":
		var (
			dir amm.Direction
			in  uint64
		)
		dir, in, err = parseSwap(args[2], args[3])
		if err != nil {
			return nil, err
		}
		v, err = r.node.Quote(ctx, assetA, storage.AssetAddress(args[1]), dir, in)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func (r *runner) action(name string, args []string) (chain.Action, error) {
	switch name {
	case "init":
		return &actions.Initialize{
			AssetA: storage.AssetAddress(args[0]),
			AssetB: storage.AssetAddress(args[1]),
		}, nil
	case "add", "remove":
		a, b, err := parseAmounts(args[2], args[3])
		if err != nil {
			return nil, err
		}
		if name == "add" {
			return &actions.AddLiquidity{
				AssetA:  storage.AssetAddress(args[0]),
				AssetB:  storage.AssetAddress(args[1]),
				AmountA: a,
				AmountB: b,
			}, nil
		}
		return &actions.RemoveLiquidity{
			AssetA:  storage.AssetAddress(args[0]),
			AssetB:  storage.AssetAddress(args[1]),
			AmountA: a,
			AmountB: b,
		}, nil
	case "swap":
		dir, in, err := parseSwap(args[2], args[3])
		if err != nil {
			return nil, err
		}
		if dir == amm.BToA {
			return &actions.SwapBToA{
				AssetA:   storage.AssetAddress(args[0]),
				AssetB:   storage.AssetAddress(args[1]),
				AmountIn: in,
			}, nil
		}
		return &actions.SwapAToB{
			AssetA:   storage.AssetAddress(args[0]),
			AssetB:   storage.AssetAddress(args[1]),
			AmountIn: in,
		}, nil
	case "transfer":
		to, err := r.address(args[1])
		if err != nil {
			return nil, err
		}
		value, err := prompt.ParseAmount(args[2], maxAmount)
		if err != nil {
			return nil, err
		}
		return &actions.Transfer{
			Asset: storage.AssetAddress(args[0]),
			To:    to,
			Value: value,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
}

// address resolves a plan key name or a literal address.
func (r *runner) address(s string) (codec.Address, error) {
	if factory, ok := r.keys[s]; ok {
		return factory.Address(), nil
	}
	return codec.ParseAnyAddress(consts.HRP, s)
}

func (r *runner) print(resp *Response) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	r.outLock.Lock()
	defer r.outLock.Unlock()

	_, err = fmt.Fprintln(r.out, string(b))
	return err
}

func parseSwap(direction, amount string) (amm.Direction, uint64, error) {
	dir, err := amm.ParseDirection(direction)
	if err != nil {
		return 0, 0, err
	}
	in, err := prompt.ParseAmount(amount, maxAmount)
	if err != nil {
		return 0, 0, err
	}
	return dir, in, nil
}

// check returns why a step with [output] and [stepErr] does not meet
// [req], or an empty string.
func check(req *Require, output json.RawMessage, stepErr error) string {
	if req == nil {
		req = &Require{}
	}
	if req.Error != "" {
		if stepErr == nil {
			return fmt.Sprintf("expected error %q", req.Error)
		}
		if !matchesKind(stepErr, req.Error) {
			return fmt.Sprintf("expected error %q, got %q", req.Error, stepErr)
		}
		return ""
	}
	if stepErr != nil {
		return fmt.Sprintf("unexpected error %q", stepErr)
	}
	for _, assertion := range req.Result {
		actual, err := field(output, assertion.Field)
		if err != nil {
			return err.Error()
		}
		expected, err := decimal.NewFromString(assertion.Value)
		if err != nil {
			return fmt.Sprintf("invalid value %q: %s", assertion.Value, err)
		}
		if !Operator(assertion.Operator).compare(actual, expected) {
			return fmt.Sprintf("%s = %s, expected %s %s", assertion.Field, actual, assertion.Operator, assertion.Value)
		}
	}
	return ""
}

func matchesKind(err error, kind string) bool {
	if k := amm.KindFromString(kind); k != nil {
		return errors.Is(err, k)
	}
	return strings.Contains(err.Error(), kind)
}

// field reads the number at the dot separated [path] of [output].
func field(output json.RawMessage, path string) (decimal.Decimal, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(output))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrMissingField, path)
	}
	for _, part := range strings.Split(path, ".") {
		m, ok := v.(map[string]any)
		if !ok {
			return decimal.Zero, fmt.Errorf("%w: %s", ErrMissingField, path)
		}
		v, ok = m[part]
		if !ok {
			return decimal.Zero, fmt.Errorf("%w: %s", ErrMissingField, path)
		}
	}
	switch n := v.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case string:
		return decimal.NewFromString(n)
	default:
		return decimal.Zero, fmt.Errorf("%w: %s is not a number", ErrMissingField, path)
	}
}

// Verify checks the plan before anything runs.
func (p *Plan) Verify() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("%w: no steps found", ErrInvalidPlan)
	}
	keys := make(map[string]struct{}, len(p.Keys))
	for _, name := range p.Keys {
		if _, ok := keys[name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateKeyName, name)
		}
		keys[name] = struct{}{}
	}
	for _, alloc := range p.Genesis.Allocations {
		if _, ok := keys[alloc.Key]; !ok {
			return fmt.Errorf("%w: %w: %q in genesis", ErrInvalidPlan, ErrUnknownKey, alloc.Key)
		}
	}
	for _, pool := range p.Genesis.Pools {
		if _, ok := keys[pool.Authority]; !ok {
			return fmt.Errorf("%w: %w: %q in genesis", ErrInvalidPlan, ErrUnknownKey, pool.Authority)
		}
	}
	for i, step := range p.Steps {
		if err := step.verify(keys); err != nil {
			return fmt.Errorf("%w %d: %w", ErrInvalidStep, i, err)
		}
	}
	return nil
}

func (s *Step) verify(keys map[string]struct{}) error {
	args, err := shellwords.Parse(s.Run)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: empty run", ErrUnknownCommand)
	}
	command, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	if len(args)-1 != command.args {
		return fmt.Errorf("%w: %s takes %d arguments", ErrInvalidArgs, args[0], command.args)
	}
	if command.signed {
		if _, ok := keys[s.Key]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownKey, s.Key)
		}
	}
	if s.Require != nil {
		for _, assertion := range s.Require.Result {
			if !Operator(assertion.Operator).valid() {
				return fmt.Errorf("%w: %q", ErrInvalidOperator, assertion.Operator)
			}
		}
	}
	return nil
}
