// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/cpamm/amm"
)

func loadPlan(t *testing.T, name string) *Plan {
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	plan, err := unmarshalPlan(b)
	require.NoError(t, err)
	return plan
}

func readResponses(t *testing.T, out *bytes.Buffer) []*Response {
	responses := []*Response{}
	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		resp := &Response{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), resp))
		responses = append(responses, resp)
	}
	require.NoError(t, scanner.Err())
	return responses
}

func TestRunReferencePlan(t *testing.T) {
	require := require.New(t)
	plan := loadPlan(t, "reference.yaml")

	out := &bytes.Buffer{}
	require.NoError(runPlan(context.Background(), logging.NoLog{}, plan, out))

	responses := readResponses(t, out)
	require.Len(responses, len(plan.Steps))
	for i, resp := range responses {
		require.Equal(i, resp.ID)
		require.Empty(resp.Failure, resp.Description)
	}
	require.NotEmpty(responses[2].TxID)
	require.Contains(responses[4].Error, amm.ErrInsufficientPoolBalance.Error())
}

func TestRunPlanReportsFailures(t *testing.T) {
	require := require.New(t)
	plan := &Plan{
		Name: "failing",
		Keys: []string{"lp"},
		Genesis: PlanGenesis{
			Pools: []PlanPool{{Authority: "lp", AssetA: "AAA", AssetB: "BBB"}},
		},
		Steps: []Step{
			{Key: "lp", Run: "add AAA BBB 1 1"},
			{Run: "pool AAA BBB", Require: &Require{Result: []Assertion{{Field: "liveA", Operator: "==", Value: "0"}}}},
			{Run: "pool AAA BBB", Require: &Require{Result: []Assertion{{Field: "liveA", Operator: ">", Value: "0"}}}},
		},
	}

	out := &bytes.Buffer{}
	err := runPlan(context.Background(), logging.NoLog{}, plan, out)
	require.ErrorIs(err, ErrAssertionFailed)

	responses := readResponses(t, out)
	require.Len(responses, 3)
	require.Contains(responses[0].Failure, "unexpected error")
	require.Contains(responses[0].Error, amm.ErrInsufficientTraderBalance.Error())
	require.Empty(responses[1].Failure)
	require.Contains(responses[2].Failure, "liveA = 0")
}

func TestPlanVerify(t *testing.T) {
	tests := []struct {
		name        string
		plan        *Plan
		expectedErr error
	}{
		{
			name:        "no steps",
			plan:        &Plan{},
			expectedErr: ErrInvalidPlan,
		},
		{
			name:        "duplicate key",
			plan:        &Plan{Keys: []string{"a", "a"}, Steps: []Step{{Run: "pool A B"}}},
			expectedErr: ErrDuplicateKeyName,
		},
		{
			name: "unknown genesis key",
			plan: &Plan{
				Genesis: PlanGenesis{Allocations: []PlanAllocation{{Asset: "A", Key: "x", Balance: 1}}},
				Steps:   []Step{{Run: "pool A B"}},
			},
			expectedErr: ErrUnknownKey,
		},
		{
			name:        "unknown command",
			plan:        &Plan{Steps: []Step{{Run: "mint A 5"}}},
			expectedErr: ErrUnknownCommand,
		},
		{
			name:        "empty run",
			plan:        &Plan{Steps: []Step{{Run: "  "}}},
			expectedErr: ErrUnknownCommand,
		},
		{
			name:        "wrong arity",
			plan:        &Plan{Steps: []Step{{Run: "quote A B a_to_b"}}},
			expectedErr: ErrInvalidArgs,
		},
		{
			name:        "unsigned write",
			plan:        &Plan{Steps: []Step{{Run: "init A B"}}},
			expectedErr: ErrUnknownKey,
		},
		{
			name: "bad operator",
			plan: &Plan{Steps: []Step{{
				Run:     "pool A B",
				Require: &Require{Result: []Assertion{{Field: "liveA", Operator: "=~", Value: "1"}}},
			}}},
			expectedErr: ErrInvalidOperator,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.plan.Verify(), tt.expectedErr)
		})
	}

	require.NoError(t, loadPlan(t, "reference.yaml").Verify())
}

func TestUnmarshalPlan(t *testing.T) {
	require := require.New(t)

	plan, err := unmarshalPlan([]byte(`{"name":"j","keys":["a"],"steps":[{"run":"pool \"A A\" B"}]}`))
	require.NoError(err)
	require.Equal("j", plan.Name)
	require.Equal([]string{"a"}, plan.Keys)
	require.Len(plan.Steps, 1)

	plan, err = unmarshalPlan([]byte("name: y\nsteps:\n  - run: pool A B\n    parallel: true\n"))
	require.NoError(err)
	require.Equal("y", plan.Name)
	require.True(plan.Steps[0].Parallel)

	_, err = unmarshalPlan([]byte("   "))
	require.ErrorIs(err, ErrInvalidConfigFormat)
	_, err = unmarshalPlan([]byte("name: y\nunknown: 1\n"))
	require.ErrorIs(err, ErrInvalidConfigFormat)
	_, err = unmarshalPlan([]byte("{not json"))
	require.ErrorIs(err, ErrInvalidConfigFormat)
}

func TestCheck(t *testing.T) {
	output := json.RawMessage(`{"amountOut":182,"pool":{"amountA":18446744073709551615},"spotPrice":"1.5","direction":"a_to_b"}`)
	tests := []struct {
		name    string
		req     *Require
		output  json.RawMessage
		err     error
		failure string
	}{
		{
			name:   "no requirement",
			output: output,
		},
		{
			name:    "unexpected error",
			err:     amm.ErrOverflow,
			failure: `unexpected error "arithmetic overflow"`,
		},
		{
			name: "expected kind",
			req:  &Require{Error: "invalid amount"},
			err:  errors.Join(errors.New("swap"), amm.ErrInvalidAmount),
		},
		{
			name:    "wrong kind",
			req:     &Require{Error: "invalid amount"},
			err:     amm.ErrOverflow,
			failure: `expected error "invalid amount", got "arithmetic overflow"`,
		},
		{
			name: "free text error",
			req:  &Require{Error: "duplicate"},
			err:  errors.New("duplicate transaction"),
		},
		{
			name:    "missing error",
			req:     &Require{Error: "invalid amount"},
			failure: `expected error "invalid amount"`,
		},
		{
			name: "numeric fields",
			req: &Require{Result: []Assertion{
				{Field: "amountOut", Operator: "==", Value: "182"},
				{Field: "pool.amountA", Operator: "==", Value: "18446744073709551615"},
				{Field: "spotPrice", Operator: "<", Value: "2"},
			}},
			output: output,
		},
		{
			name:    "failed comparison",
			req:     &Require{Result: []Assertion{{Field: "amountOut", Operator: "!=", Value: "182"}}},
			output:  output,
			failure: "amountOut = 182, expected != 182",
		},
		{
			name:    "missing field",
			req:     &Require{Result: []Assertion{{Field: "pool.amountB", Operator: "==", Value: "1"}}},
			output:  output,
			failure: "missing result field: pool.amountB",
		},
		{
			name:    "not a number",
			req:     &Require{Result: []Assertion{{Field: "direction", Operator: "==", Value: "1"}}},
			output:  output,
			failure: "a_to_b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failure := check(tt.req, tt.output, tt.err)
			if tt.failure == "" {
				require.Empty(t, failure)
				return
			}
			require.Contains(t, failure, tt.failure)
		})
	}
}

func TestOperatorCompare(t *testing.T) {
	require := require.New(t)

	one, two := decimal.NewFromInt(1), decimal.NewFromInt(2)
	require.True(NumericLt.compare(one, two))
	require.True(NumericLe.compare(two, two))
	require.True(NumericGt.compare(two, one))
	require.True(NumericGe.compare(one, one))
	require.True(NumericEq.compare(one, one))
	require.True(NumericNe.compare(one, two))
	require.False(Operator("~").compare(one, one))
	require.False(Operator("~").valid())
}
