// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package odoo

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/sjson"
)

// Body provides a fluent interface for building record values using sjson
// for path-based manipulation.
//
// The Body builder tracks errors internally to enable method chaining
// while providing error checking through Map(), String() or Err().
//
// Example:
//
//	values, err := odoo.Body{}.
//	    Set("name", "New Partner").
//	    Set("email", "partner@example.com").
//	    Set("is_company", true).
//	    Map()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	id, err := client.Create(ctx, "res.partner", values)
type Body struct {
	// str contains the JSON string being built
	str string
	// err tracks the first error encountered during building
	err error
}

// Set sets a value at the specified path and returns a new Body
//
// The path uses dot notation for nested fields (e.g. "address.city").
// The value can be any type that sjson supports (string, number, bool, etc.).
//
// If an error occurs, the error is stored and returned by Map(), String() or
// Err(). Once an error occurs, all subsequent operations are no-ops that
// preserve the error.
//
// Returns the Body for method chaining.
func (b Body) Set(path string, value any) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Set(b.str, path, value)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Set(%q): %w", path, err)}
	}
	return Body{str: result, err: nil}
}

// Delete removes a value at the specified path and returns a new Body
//
// If an error occurs, the error is stored and returned by Map(), String() or
// Err().
//
// Returns the Body for method chaining.
func (b Body) Delete(path string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Delete(b.str, path)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Delete(%q): %w", path, err)}
	}
	return Body{str: result, err: nil}
}

// Map returns the built values as a field-to-value mapping suitable for
// Create, CreateBatch and Write, along with any error encountered during
// building. An empty Body yields an empty map.
//
// Example:
//
//	values, err := odoo.Body{}.Set("name", "New Partner").Map()
//	if err != nil {
//	    log.Fatal(err)
//	}
func (b Body) Map() (map[string]any, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.str == "" {
		return map[string]any{}, nil
	}

	var values map[string]any
	if err := json.Unmarshal([]byte(b.str), &values); err != nil {
		return nil, fmt.Errorf("Map: %w", err)
	}
	return values, nil
}

// String returns the JSON string representation and any error encountered
// during building.
func (b Body) String() (string, error) {
	return b.str, b.err
}

// Err returns any error that occurred during the building process
//
// This method allows checking for errors without retrieving the values.
func (b Body) Err() error {
	return b.err
}
