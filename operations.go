// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package odoo

import (
	"context"
	"fmt"
	"strings"
)

// modelRegistry is the model holding the registry of all installed models
const modelRegistry = "ir.model"

// modelRegistryFields is the fixed projection used by Models
var modelRegistryFields = []string{"model", "name", "transient"}

// validateModel validates a model name before a remote call
//
// Model names are dot-separated identifiers like "res.partner"; only
// emptiness is checked locally, everything else is the server's business.
func validateModel(model string) error {
	if strings.TrimSpace(model) == "" {
		return fmt.Errorf("model cannot be empty")
	}
	return nil
}

// execute runs the common preamble of every operation (model validation,
// context check, lazy authentication) and issues the remote call. Remote
// failures are returned verbatim: this layer performs zero recovery.
func (c *Client) execute(ctx context.Context, model, method string, args []any, kwargs map[string]any) (any, error) {
	if err := validateModel(model); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	if err := checkContextCancellation(ctx); err != nil {
		return nil, err
	}

	uid, err := c.ensureAuthenticated(ctx)
	if err != nil {
		return nil, err
	}

	c.logger.Debug(ctx, "odoo execute_kw request",
		"url", c.URL,
		"model", model,
		"method", method,
		"args", len(args),
		"kwargs", len(kwargs))

	result, err := c.env.ExecuteKw(ctx, uid, c.credential, model, method, args, kwargs)
	if err != nil {
		c.logger.Error(ctx, "odoo execute_kw failed",
			"url", c.URL,
			"model", model,
			"method", method,
			"error", err.Error())
		return nil, err
	}

	c.logger.Debug(ctx, "odoo execute_kw response",
		"url", c.URL,
		"model", model,
		"method", method)

	return result, nil
}

// Search returns the IDs of the records matching the domain.
//
// A nil domain matches all records. The offset is always forwarded; limit
// and order are forwarded only when supplied via request modifiers, so the
// server's own defaults apply otherwise.
//
// Example:
//
//	ids, err := client.Search(ctx, "res.partner",
//	    odoo.Domain{odoo.Clause("name", "ilike", "test")},
//	    odoo.Limit(10),
//	    odoo.Order("name asc"),
//	)
//
// Returns the matching record IDs in server order.
func (c *Client) Search(ctx context.Context, model string, domain Domain, mods ...func(*Req)) ([]int64, error) {
	req := newReq(mods)

	result, err := c.execute(ctx, model, "search",
		[]any{domain.list()}, req.searchKwargs(false))
	if err != nil {
		return nil, err
	}

	ids, err := toInt64Slice(result)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return ids, nil
}

// SearchRead searches for records matching the domain and reads them in a
// single call.
//
// Domain, offset, limit and order behave as in Search. The field projection
// is forwarded only when supplied via the Fields modifier; otherwise the
// server decides the default projection.
//
// Example:
//
//	records, err := client.SearchRead(ctx, "res.partner",
//	    odoo.Domain{odoo.Clause("active", "=", true)},
//	    odoo.Fields("name", "email"),
//	    odoo.Limit(5),
//	)
//
// Returns the matching records in server order.
func (c *Client) SearchRead(ctx context.Context, model string, domain Domain, mods ...func(*Req)) (Records, error) {
	req := newReq(mods)

	result, err := c.execute(ctx, model, "search_read",
		[]any{domain.list()}, req.searchKwargs(true))
	if err != nil {
		return nil, err
	}

	records, err := toRecords(result)
	if err != nil {
		return nil, fmt.Errorf("search_read: %w", err)
	}
	return records, nil
}

// Read reads the records with the given IDs.
//
// The field projection is forwarded only when supplied via the Fields
// modifier. The result shape depends on the number of requested IDs: exactly
// one ID yields a single record in ReadRes.Result, more than one yields the
// record sequence. See ReadRes for shape-agnostic accessors.
//
// Example:
//
//	res, err := client.Read(ctx, "res.partner", []int64{1}, odoo.Fields("name"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Record()["name"])
func (c *Client) Read(ctx context.Context, model string, ids []int64, mods ...func(*Req)) (ReadRes, error) {
	req := newReq(mods)

	result, err := c.execute(ctx, model, "read",
		[]any{ids}, req.readKwargs())
	if err != nil {
		return ReadRes{OK: false}, err
	}

	records, err := toRecords(result)
	if err != nil {
		return ReadRes{OK: false}, fmt.Errorf("read: %w", err)
	}

	// Unwrap when exactly one ID was requested
	if len(ids) == 1 && len(records) > 0 {
		return ReadRes{Result: records[0], OK: true}, nil
	}
	return ReadRes{Result: records, OK: true}, nil
}

// Create creates a single record and returns its ID.
//
// Example:
//
//	id, err := client.Create(ctx, "res.partner", map[string]any{
//	    "name":  "New Partner",
//	    "email": "partner@example.com",
//	})
func (c *Client) Create(ctx context.Context, model string, values map[string]any) (int64, error) {
	result, err := c.execute(ctx, model, "create",
		[]any{[]any{values}}, nil)
	if err != nil {
		return 0, err
	}

	ids, err := toInt64Slice(result)
	if err != nil {
		return 0, fmt.Errorf("create: %w", err)
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("create: server returned no record ID")
	}
	return ids[0], nil
}

// CreateBatch creates multiple records in one call and returns their IDs in
// input order.
//
// Example:
//
//	ids, err := client.CreateBatch(ctx, "res.partner", []map[string]any{
//	    {"name": "Partner 1"},
//	    {"name": "Partner 2"},
//	})
func (c *Client) CreateBatch(ctx context.Context, model string, values []map[string]any) ([]int64, error) {
	list := make([]any, 0, len(values))
	for _, v := range values {
		list = append(list, v)
	}

	result, err := c.execute(ctx, model, "create",
		[]any{list}, nil)
	if err != nil {
		return nil, err
	}

	ids, err := toInt64Slice(result)
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}
	return ids, nil
}

// Write updates the records with the given IDs.
//
// The remote result (normally boolean true) is passed through unmodified.
//
// Example:
//
//	_, err := client.Write(ctx, "res.partner", []int64{1, 2},
//	    map[string]any{"active": false})
func (c *Client) Write(ctx context.Context, model string, ids []int64, values map[string]any) (any, error) {
	return c.execute(ctx, model, "write", []any{ids, values}, nil)
}

// Unlink deletes the records with the given IDs.
//
// The remote result (normally boolean true) is passed through unmodified.
//
// Example:
//
//	_, err := client.Unlink(ctx, "res.partner", []int64{1, 2})
func (c *Client) Unlink(ctx context.Context, model string, ids []int64) (any, error) {
	return c.execute(ctx, model, "unlink", []any{ids}, nil)
}

// FieldsGet returns the field definitions of a model as a mapping from field
// name to attribute map.
//
// The fields and attributes keywords are forwarded only when supplied via
// the Fields and Attributes modifiers; omission lets the server return its
// full default.
//
// Example:
//
//	fields, err := client.FieldsGet(ctx, "res.partner",
//	    odoo.Fields("name", "email"),
//	    odoo.Attributes("string", "type", "required"),
//	)
func (c *Client) FieldsGet(ctx context.Context, model string, mods ...func(*Req)) (map[string]any, error) {
	req := newReq(mods)

	result, err := c.execute(ctx, model, "fields_get",
		[]any{}, req.fieldsGetKwargs())
	if err != nil {
		return nil, err
	}

	fields, err := toRecord(result)
	if err != nil {
		return nil, fmt.Errorf("fields_get: %w", err)
	}
	return fields, nil
}

// Models returns all registered models with their technical name, display
// name and transient flag.
//
// This is a fixed search_read against the model registry with an empty
// domain and the projection ["model", "name", "transient"]; the result is
// returned unmodified.
//
// Example:
//
//	models, err := client.Models(ctx)
//	for _, m := range models {
//	    fmt.Println(m["model"], m["name"])
//	}
func (c *Client) Models(ctx context.Context) (Records, error) {
	result, err := c.execute(ctx, modelRegistry, "search_read",
		[]any{[]any{}, modelRegistryFields}, nil)
	if err != nil {
		return nil, err
	}

	records, err := toRecords(result)
	if err != nil {
		return nil, fmt.Errorf("search_read: %w", err)
	}
	return records, nil
}
