// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package odoo

import "errors"

// Locally-defined error conditions.
//
// This library performs zero recovery: remote-originated failures (XML-RPC
// faults, transport errors) are returned to the caller verbatim. Only the
// purely local checks below have dedicated errors.
var (
	// ErrMissingCredentials is returned by NewClient when neither a password
	// nor an API key is configured. This is the only cross-field configuration
	// check; it runs once, at construction.
	ErrMissingCredentials = errors.New("odoo: either password or api key must be provided")

	// ErrEnvironmentUnavailable is returned by NewClient when the XML-RPC
	// environment handle cannot be obtained. Every operation depends on the
	// handle, so construction fails before any other work.
	ErrEnvironmentUnavailable = errors.New("odoo: xmlrpc environment unavailable")

	// ErrAuthenticationFailed is returned by Authenticate when the server
	// rejects the configured credentials (remote authenticate returned a
	// falsy result). The user ID stays uncached so a later call retries.
	ErrAuthenticationFailed = errors.New("odoo: authentication failed, check credentials")
)
