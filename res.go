// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package odoo

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Records is an ordered sequence of records, each a mapping from field name
// to value, as returned by SearchRead, Read and Models.
type Records []map[string]any

// JSON returns the records as a JSON string.
// This is useful for debugging, logging, or custom parsing.
// Returns an empty string if marshaling fails.
func (r Records) JSON() string {
	data, err := json.Marshal([]map[string]any(r))
	if err != nil {
		return ""
	}
	return string(data)
}

// GetValue retrieves a value from the records using a gjson path.
//
// Example paths:
//   - "0.name" - name field of the first record
//   - "#" - number of records
//   - "#.id" - ids of all records
//
// Returns gjson.Result which can be converted to specific types:
//   - result.String() for string values
//   - result.Int() for integer values
//   - result.Bool() for boolean values
//   - result.Array() for array values
//
// Example:
//
//	records, err := client.SearchRead(ctx, "res.partner", nil, odoo.Fields("name"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	name := records.GetValue("0.name").String()
func (r Records) GetValue(path string) gjson.Result {
	jsonStr := r.JSON()
	if jsonStr == "" {
		return gjson.Result{}
	}
	return gjson.Get(jsonStr, path)
}

// ReadRes represents the result of a Read operation.
//
// The result shape mirrors the Odoo read contract: when exactly one record ID
// was requested, Result holds the single record mapping; otherwise it holds
// the full record sequence. Use Record and Records for typed access without
// caring about the shape.
type ReadRes struct {
	// Result is the single record map (one requested ID) or the record
	// sequence (multiple requested IDs)
	Result any

	// OK indicates if the operation succeeded
	OK bool
}

// Record returns the result as a single record mapping.
// For a multi-record result, the first record is returned; nil if empty.
func (r ReadRes) Record() map[string]any {
	switch v := r.Result.(type) {
	case map[string]any:
		return v
	case Records:
		if len(v) > 0 {
			return v[0]
		}
	}
	return nil
}

// Records returns the result as a record sequence regardless of shape.
func (r ReadRes) Records() Records {
	switch v := r.Result.(type) {
	case map[string]any:
		return Records{v}
	case Records:
		return v
	}
	return nil
}

// JSON returns the result as a JSON string, preserving its shape (object for
// a single record, array otherwise). Returns an empty string if marshaling
// fails.
func (r ReadRes) JSON() string {
	if r.Result == nil {
		return ""
	}
	data, err := json.Marshal(r.Result)
	if err != nil {
		return ""
	}
	return string(data)
}

// GetValue retrieves a value from the result using a gjson path.
//
// Example paths:
//   - "name" - field of a single-record result
//   - "0.name" - field of the first record of a multi-record result
//
// Example:
//
//	res, err := client.Read(ctx, "res.partner", []int64{1}, odoo.Fields("name"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	name := res.GetValue("name").String()
func (r ReadRes) GetValue(path string) gjson.Result {
	jsonStr := r.JSON()
	if jsonStr == "" {
		return gjson.Result{}
	}
	return gjson.Get(jsonStr, path)
}

// Result coercion helpers
//
// kolo/xmlrpc decodes XML-RPC values into any as int64, string, bool,
// []any and map[string]any. The helpers below coerce those generic shapes
// into the library's typed results. A payload that does not match the
// expected shape is an error, not a panic.

// toInt64 coerces a decoded XML-RPC value into an int64.
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	}
	return 0, fmt.Errorf("unexpected value of type %T, expected integer", v)
}

// toInt64Slice coerces a decoded XML-RPC array into a slice of int64.
func toInt64Slice(v any) ([]int64, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected result of type %T, expected array", v)
	}
	ids := make([]int64, 0, len(list))
	for i, item := range list {
		id, err := toInt64(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// toRecord coerces a decoded XML-RPC struct into a record mapping.
func toRecord(v any) (map[string]any, error) {
	record, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected result of type %T, expected struct", v)
	}
	return record, nil
}

// toRecords coerces a decoded XML-RPC array of structs into Records.
func toRecords(v any) (Records, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected result of type %T, expected array", v)
	}
	records := make(Records, 0, len(list))
	for i, item := range list {
		record, err := toRecord(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}
