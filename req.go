// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package odoo

// Domain is an Odoo search domain: an ordered sequence of filter clauses,
// optionally combined with the prefix logical operators "&", "|" and "!".
// A nil or empty domain matches all records.
//
// Example:
//
//	// name ilike "test" AND active = true
//	domain := odoo.Domain{
//	    odoo.Clause("name", "ilike", "test"),
//	    odoo.Clause("active", "=", true),
//	}
//
//	// customer = true OR supplier = true
//	domain := odoo.Domain{
//	    odoo.Or,
//	    odoo.Clause("customer_rank", ">", 0),
//	    odoo.Clause("supplier_rank", ">", 0),
//	}
type Domain []any

// Prefix logical operators for combining domain clauses.
// Odoo domains use Polish notation: the operator precedes its operands.
const (
	And = "&"
	Or  = "|"
	Not = "!"
)

// Clause builds a single domain filter clause (field, operator, value) triple.
//
// Common operators: "=", "!=", ">", ">=", "<", "<=", "like", "ilike", "in",
// "not in", "child_of".
func Clause(field, operator string, value any) []any {
	return []any{field, operator, value}
}

// list returns the wire form of the domain. A nil domain is forwarded as an
// empty list (match-all) rather than XML-RPC nil.
func (d Domain) list() []any {
	if d == nil {
		return []any{}
	}
	return []any(d)
}

// Req carries the optional keyword parameters of a single operation.
//
// Optional parameters are presence-aware: a parameter that was not supplied
// via a request modifier is never forwarded to the server, so the server's
// own defaults apply. Explicitly supplying an empty value (e.g. Fields() with
// no names) is forwarded as an empty value, which is a different thing.
//
// Example:
//
//	ids, err := client.Search(ctx, "res.partner", domain,
//	    odoo.Limit(10),
//	    odoo.Order("name asc"))
type Req struct {
	offset     int
	limit      *int
	order      *string
	fields     []string
	attributes []string
}

// newReq builds a Req and applies the given modifiers.
func newReq(mods []func(*Req)) *Req {
	req := &Req{}
	for _, mod := range mods {
		mod(req)
	}
	return req
}

// searchKwargs builds the keyword map for search and search_read calls.
// The offset is always forwarded; limit, order and (for search_read) fields
// only when supplied.
func (r *Req) searchKwargs(withFields bool) map[string]any {
	kwargs := map[string]any{"offset": r.offset}
	if withFields && r.fields != nil {
		kwargs["fields"] = r.fields
	}
	if r.limit != nil {
		kwargs["limit"] = *r.limit
	}
	if r.order != nil {
		kwargs["order"] = *r.order
	}
	return kwargs
}

// readKwargs builds the keyword map for read calls. Only fields is optional.
func (r *Req) readKwargs() map[string]any {
	kwargs := map[string]any{}
	if r.fields != nil {
		kwargs["fields"] = r.fields
	}
	return kwargs
}

// fieldsGetKwargs builds the keyword map for fields_get calls.
func (r *Req) fieldsGetKwargs() map[string]any {
	kwargs := map[string]any{}
	if r.fields != nil {
		kwargs["fields"] = r.fields
	}
	if r.attributes != nil {
		kwargs["attributes"] = r.attributes
	}
	return kwargs
}
