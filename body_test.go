// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package odoo

import (
	"reflect"
	"testing"
)

// TestBodySet tests building record values with the fluent interface
func TestBodySet(t *testing.T) {
	values, err := Body{}.
		Set("name", "New Partner").
		Set("email", "partner@example.com").
		Set("is_company", true).
		Set("credit_limit", 1000).
		Map()
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}

	want := map[string]any{
		"name":         "New Partner",
		"email":        "partner@example.com",
		"is_company":   true,
		"credit_limit": float64(1000),
	}
	if !reflect.DeepEqual(values, want) {
		t.Errorf("Map() = %#v, want %#v", values, want)
	}
}

// TestBodyNestedPath tests dot-notation paths for nested values
func TestBodyNestedPath(t *testing.T) {
	values, err := Body{}.
		Set("name", "HQ").
		Set("address.city", "Brussels").
		Set("address.zip", "1000").
		Map()
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}

	address, ok := values["address"].(map[string]any)
	if !ok {
		t.Fatalf("address = %#v, want nested map", values["address"])
	}
	if address["city"] != "Brussels" {
		t.Errorf("address.city = %v, want Brussels", address["city"])
	}
}

// TestBodyDelete tests removing values from the builder
func TestBodyDelete(t *testing.T) {
	values, err := Body{}.
		Set("name", "Temp").
		Set("comment", "remove me").
		Delete("comment").
		Map()
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}

	if _, exists := values["comment"]; exists {
		t.Errorf("comment still present after Delete: %#v", values)
	}
	if values["name"] != "Temp" {
		t.Errorf("name = %v, want Temp", values["name"])
	}
}

// TestBodyEmpty tests that an empty builder yields an empty values map
func TestBodyEmpty(t *testing.T) {
	values, err := Body{}.Map()
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("Map() = %#v, want empty map", values)
	}
}

// TestBodyErrorState tests that an error short-circuits later operations
func TestBodyErrorState(t *testing.T) {
	body := Body{}.
		Set("name", "Valid").
		Set("", "invalid path"). // empty path is an sjson error
		Set("email", "ignored@example.com")

	if body.Err() == nil {
		t.Fatal("expected error from empty path, got none")
	}

	if _, err := body.Map(); err == nil {
		t.Error("Map() expected error in error state, got none")
	}

	// The value before the error is preserved, later sets are no-ops
	str, _ := body.String()
	if str != `{"name":"Valid"}` {
		t.Errorf("String() = %q, want the pre-error state", str)
	}
}

// TestBodyString tests the raw JSON representation
func TestBodyString(t *testing.T) {
	str, err := Body{}.Set("name", "Test").String()
	if err != nil {
		t.Fatalf("String failed: %v", err)
	}
	if str != `{"name":"Test"}` {
		t.Errorf("String() = %q, want %q", str, `{"name":"Test"}`)
	}
}
