// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package odoo provides a simple, fluent API for interacting with Odoo servers
// using the external XML-RPC API.
//
// The library is a thin layer over the XML-RPC transport: it validates the
// connection configuration, shapes method arguments the way the Odoo external
// API expects them (positional args plus keyword maps), and normalizes result
// shapes. All protocol work (marshaling, HTTP, faults) is delegated to the
// kolo/xmlrpc client.
//
// # Quick Start
//
// Create a client and perform basic operations:
//
//	client, err := odoo.NewClient(
//	    "https://demo.odoo.com",
//	    odoo.Database("demo"),
//	    odoo.Username("admin"),
//	    odoo.Password("secret"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//
//	// Search for record IDs
//	ids, err := client.Search(ctx, "res.partner",
//	    odoo.Domain{odoo.Clause("name", "ilike", "test")},
//	    odoo.Limit(10),
//	    odoo.Order("name asc"),
//	)
//
//	// Search and read in a single call
//	records, err := client.SearchRead(ctx, "res.partner", nil,
//	    odoo.Fields("name", "email"),
//	    odoo.Limit(5),
//	)
//	fmt.Println(records.GetValue("0.name").String())
//
// # Authentication
//
// Authentication is deferred and memoized: the first operation (or an explicit
// Authenticate call) performs the remote authentication handshake, and the
// resulting user ID is cached for the lifetime of the client.
//
//	uid, err := client.Authenticate(ctx)
//
// # Record Values
//
// Use the Body builder for constructing record values:
//
//	values, err := odoo.Body{}.
//	    Set("name", "New Partner").
//	    Set("email", "partner@example.com").
//	    Map()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	id, err := client.Create(ctx, "res.partner", values)
//
// # Error Handling
//
// The library performs no local recovery: every remote-originated failure
// (XML-RPC fault, transport error) surfaces verbatim to the caller. Only the
// purely local conditions have dedicated errors: ErrMissingCredentials,
// ErrEnvironmentUnavailable and ErrAuthenticationFailed.
//
// # Thread Safety
//
// The client holds no mutable state beyond the memoized user ID, and that
// memoization is not synchronized. Callers sharing one client across
// goroutines must serialize access themselves.
//
// # Supported Operations
//
//   - Search: retrieve record IDs matching a domain
//   - SearchRead: search and read records in a single call
//   - Read: read records by ID
//   - Create / CreateBatch: create one or more records
//   - Write: update records
//   - Unlink: delete records
//   - FieldsGet: retrieve field definitions for a model
//   - Models: list all registered models
//
// # References
//
//   - Odoo External API: https://www.odoo.com/documentation/17.0/developer/reference/external_api.html
//   - kolo/xmlrpc: https://github.com/kolo/xmlrpc
//   - gjson: https://github.com/tidwall/gjson
//   - sjson: https://github.com/tidwall/sjson
package odoo
