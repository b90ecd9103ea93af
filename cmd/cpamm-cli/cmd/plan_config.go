// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

// Plan is a scripted session against a fresh in-memory node.
type Plan struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	// Keys are generated for the run and referenced by name.
	Keys    []string    `json:"keys" yaml:"keys"`
	Genesis PlanGenesis `json:"genesis" yaml:"genesis"`
	Steps   []Step      `json:"steps" yaml:"steps"`
}

type PlanGenesis struct {
	Allocations []PlanAllocation `json:"allocations" yaml:"allocations"`
	Pools       []PlanPool       `json:"pools" yaml:"pools"`
}

type PlanAllocation struct {
	Asset   string `json:"asset" yaml:"asset"`
	Key     string `json:"key" yaml:"key"`
	Balance uint64 `json:"balance" yaml:"balance"`
}

type PlanPool struct {
	Authority string `json:"authority" yaml:"authority"`
	AssetA    string `json:"assetA" yaml:"assetA"`
	AssetB    string `json:"assetB" yaml:"assetB"`
}

type Step struct {
	Description string `json:"description" yaml:"description"`
	// Key signs the step. Reads do not need one.
	Key string `json:"key" yaml:"key"`
	// Run is the command line of the step, e.g. "swap AAA BBB a_to_b 100".
	Run string `json:"run" yaml:"run"`
	// Consecutive parallel steps run concurrently.
	Parallel bool     `json:"parallel" yaml:"parallel"`
	Require  *Require `json:"require,omitempty" yaml:"require,omitempty"`
}

type Require struct {
	// Error is the error kind the step must fail with. Empty means the step
	// must succeed.
	Error  string      `json:"error,omitempty" yaml:"error,omitempty"`
	Result []Assertion `json:"result,omitempty" yaml:"result,omitempty"`
}

// Assertion compares a numeric field of the step output with Value.
type Assertion struct {
	// Field is a dot separated path into the output, e.g. "pool.amountA".
	Field    string `json:"field" yaml:"field"`
	Operator string `json:"operator" yaml:"operator"`
	Value    string `json:"value" yaml:"value"`
}

type Operator string

const (
	NumericGt Operator = ">"
	NumericLt Operator = "<"
	NumericGe Operator = ">="
	NumericLe Operator = "<="
	NumericEq Operator = "=="
	NumericNe Operator = "!="
)

func (o Operator) valid() bool {
	switch o {
	case NumericGt, NumericLt, NumericGe, NumericLe, NumericEq, NumericNe:
		return true
	default:
		return false
	}
}

// compare applies [o] to [actual] and [expected].
func (o Operator) compare(actual, expected decimal.Decimal) bool {
	c := actual.Cmp(expected)
	switch o {
	case NumericGt:
		return c > 0
	case NumericLt:
		return c < 0
	case NumericGe:
		return c >= 0
	case NumericLe:
		return c <= 0
	case NumericEq:
		return c == 0
	case NumericNe:
		return c != 0
	default:
		return false
	}
}

func unmarshalPlan(b []byte) (*Plan, error) {
	var p Plan
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return nil, ErrInvalidConfigFormat
	}
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfigFormat, err)
		}
		return &p, nil
	}
	if err := yaml.UnmarshalStrict(trimmed, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfigFormat, err)
	}
	return &p, nil
}
