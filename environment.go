// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package odoo

import (
	"context"
	"net/http"

	"github.com/kolo/xmlrpc"
)

// Environment is the capability through which all remote operations are
// issued. It corresponds to the two endpoints of the Odoo external API:
// authentication (common) and model-scoped method execution (object).
//
// The default implementation is backed by the kolo/xmlrpc client. A custom
// implementation can be injected via the WithEnvironment option, e.g. for
// testing or alternative transports.
type Environment interface {
	// Authenticate performs the authentication handshake and returns the
	// user ID, or 0 when the server rejects the credentials.
	Authenticate(ctx context.Context, db, login, credential string, userAgentEnv map[string]any) (int64, error)

	// ExecuteKw invokes a method on a model with positional args and an
	// optional keyword map, returning the decoded result unmodified.
	ExecuteKw(ctx context.Context, uid int64, credential, model, method string, args []any, kwargs map[string]any) (any, error)
}

// Odoo external API endpoint paths
const (
	commonEndpoint = "/xmlrpc/2/common"
	objectEndpoint = "/xmlrpc/2/object"
)

// xmlrpcEnvironment is the default Environment backed by kolo/xmlrpc.
//
// Both endpoints share one transport; the timeout and TLS behavior configured
// on the client are applied there. The XML-RPC clients connect lazily, so
// constructing the environment performs no network call.
type xmlrpcEnvironment struct {
	db     string
	common *xmlrpc.Client
	object *xmlrpc.Client
}

// newXMLRPCEnvironment creates the default environment for the given base URL
// (trailing separator already stripped) and database.
func newXMLRPCEnvironment(url, db string, transport http.RoundTripper) (*xmlrpcEnvironment, error) {
	common, err := xmlrpc.NewClient(url+commonEndpoint, transport)
	if err != nil {
		return nil, err
	}
	object, err := xmlrpc.NewClient(url+objectEndpoint, transport)
	if err != nil {
		return nil, err
	}
	return &xmlrpcEnvironment{
		db:     db,
		common: common,
		object: object,
	}, nil
}

// Authenticate calls the authenticate method on the common endpoint.
//
// Odoo returns the integer user ID on success and boolean false on bad
// credentials; the false case is surfaced as uid 0 with a nil error so the
// caller decides how to signal it.
func (e *xmlrpcEnvironment) Authenticate(ctx context.Context, db, login, credential string, userAgentEnv map[string]any) (int64, error) {
	if err := checkContextCancellation(ctx); err != nil {
		return 0, err
	}
	if userAgentEnv == nil {
		userAgentEnv = map[string]any{}
	}

	var reply any
	err := e.common.Call("authenticate", []any{db, login, credential, userAgentEnv}, &reply)
	if err != nil {
		return 0, err
	}

	uid, err := toInt64(reply)
	if err != nil {
		// Boolean false or any non-integer reply means rejected credentials
		return 0, nil
	}
	return uid, nil
}

// ExecuteKw calls execute_kw on the object endpoint.
//
// The keyword map is omitted from the call entirely when empty, matching the
// server-side signature where kw is an optional trailing parameter.
func (e *xmlrpcEnvironment) ExecuteKw(ctx context.Context, uid int64, credential, model, method string, args []any, kwargs map[string]any) (any, error) {
	if err := checkContextCancellation(ctx); err != nil {
		return nil, err
	}
	if args == nil {
		args = []any{}
	}

	params := []any{e.db, uid, credential, model, method, args}
	if len(kwargs) > 0 {
		params = append(params, kwargs)
	}

	var reply any
	if err := e.object.Call("execute_kw", params, &reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// checkContextCancellation checks if context is canceled or deadline exceeded
//
// This is a non-blocking check that immediately returns if the context is
// canceled or the deadline has exceeded. Used before issuing a blocking
// remote call.
//
// Returns context.Canceled if context is canceled, context.DeadlineExceeded
// if deadline exceeded, or nil if context is still valid.
func checkContextCancellation(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
