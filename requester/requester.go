// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package requester

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/rpc"
)

// EndpointRequester sends JSON-RPC requests to the methods of a single
// service.
type EndpointRequester struct {
	inner rpc.EndpointRequester
	name  string
}

func New(uri string, name string) *EndpointRequester {
	return &EndpointRequester{
		inner: rpc.NewEndpointRequester(uri),
		name:  name,
	}
}

// SendRequest calls [method] of the service with [params] and decodes the
// response into [reply].
func (e *EndpointRequester) SendRequest(
	ctx context.Context,
	method string,
	params interface{},
	reply interface{},
) error {
	return e.inner.SendRequest(ctx, fmt.Sprintf("%s.%s", e.name, method), params, reply)
}
