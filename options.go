// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package odoo

import (
	"net/http"
	"time"
)

// Client configuration options using the functional options pattern

// Database sets the Odoo database name (required)
func Database(database string) func(*Client) {
	return func(c *Client) {
		c.Database = database
	}
}

// Username sets the Odoo login name, typically an email address (required)
func Username(username string) func(*Client) {
	return func(c *Client) {
		c.username = username
	}
}

// Password sets the password for authentication
//
// At least one of Password and APIKey must be configured; when both are set,
// the API key takes precedence.
func Password(password string) func(*Client) {
	return func(c *Client) {
		c.password = password
	}
}

// APIKey sets the API key for authentication
//
// API keys are the recommended credential for the Odoo external API and take
// precedence over a password when both are configured.
func APIKey(apiKey string) func(*Client) {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

// Timeout sets the request timeout forwarded to the transport layer
// (default: 120s)
func Timeout(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.Timeout = duration
	}
}

// Transport overrides the outbound HTTP transport
//
// When set, the client uses the given transport as-is and the Timeout,
// VerifyCertificate and RequestDecorator settings do not apply; the override
// owns all transport behavior.
func Transport(transport http.RoundTripper) func(*Client) {
	return func(c *Client) {
		c.transport = transport
	}
}

// VerifyCertificate enables or disables TLS certificate verification
// (default: true)
//
// WARNING: Disabling certificate verification makes the connection vulnerable
// to Man-in-the-Middle attacks. Only use this in testing environments where
// security is not a concern.
//
// Example:
//
//	client, _ := odoo.NewClient("https://test.odoo.local",
//	    odoo.Database("test"),
//	    odoo.Username("admin"),
//	    odoo.Password("secret"),
//	    odoo.VerifyCertificate(false))  // Insecure, use only for testing
func VerifyCertificate(verify bool) func(*Client) {
	return func(c *Client) {
		c.VerifyCertificate = verify
	}
}

// RequestDecorator registers a hook applied to every outbound request
//
// Decorators run before the request hits the wire and can add headers or
// otherwise adjust the request. The process-wide header configured via the
// ODOO_PROXY_HEADER_NAME and ODOO_PROXY_HEADER_VALUE environment variables
// is applied through the same mechanism; explicit decorators compose with it.
//
// Example:
//
//	client, _ := odoo.NewClient("https://demo.odoo.com",
//	    odoo.Database("demo"),
//	    odoo.Username("admin"),
//	    odoo.APIKey("key"),
//	    odoo.RequestDecorator(func(req *http.Request) {
//	        req.Header.Set("X-Gateway-Token", "abc123")
//	    }))
func RequestDecorator(decorator func(*http.Request)) func(*Client) {
	return func(c *Client) {
		if decorator != nil {
			c.decorators = append(c.decorators, decorator)
		}
	}
}

// WithLogger configures a custom logger for the client
//
// By default, the client uses NoOpLogger which discards all log messages.
// Use this option to enable logging with DefaultLogger or a custom logger.
//
// Example:
//
//	logger := odoo.NewDefaultLogger(odoo.LogLevelInfo)
//	client, _ := odoo.NewClient("https://demo.odoo.com",
//	    odoo.Database("demo"),
//	    odoo.Username("admin"),
//	    odoo.Password("secret"),
//	    odoo.WithLogger(logger))
func WithLogger(logger Logger) func(*Client) {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEnvironment injects a custom Environment implementation
//
// The default environment is backed by the kolo/xmlrpc client. Injecting a
// replacement bypasses transport construction entirely; this is primarily
// useful for tests and for alternative transports.
func WithEnvironment(env Environment) func(*Client) {
	return func(c *Client) {
		c.env = env
		c.envInjected = true
	}
}

// Request modifiers for individual operations

// Offset sets the number of records to skip (default: 0)
//
// The offset is always forwarded, so setting it explicitly only matters for
// non-zero values.
func Offset(offset int) func(*Req) {
	return func(req *Req) {
		req.offset = offset
	}
}

// Limit caps the number of records returned
//
// When not supplied, no limit keyword is forwarded and the server's own
// default applies.
//
// Example:
//
//	ids, err := client.Search(ctx, "res.partner", domain, odoo.Limit(10))
func Limit(limit int) func(*Req) {
	return func(req *Req) {
		req.limit = &limit
	}
}

// Order sets the sort specification, e.g. "name asc" or "date desc, id"
//
// When not supplied, no order keyword is forwarded and the server's own
// default ordering applies.
func Order(order string) func(*Req) {
	return func(req *Req) {
		req.order = &order
	}
}

// Fields sets the field projection for SearchRead, Read and FieldsGet
//
// When not supplied, the server decides the default projection. Supplying
// Fields() with no names forwards an explicit empty projection, which is a
// different thing.
//
// Example:
//
//	records, err := client.SearchRead(ctx, "res.partner", nil,
//	    odoo.Fields("name", "email"))
func Fields(fields ...string) func(*Req) {
	return func(req *Req) {
		if fields == nil {
			fields = []string{}
		}
		req.fields = fields
	}
}

// Attributes restricts which field attributes FieldsGet returns,
// e.g. "string", "type", "required"
//
// When not supplied, no attributes keyword is forwarded and the server
// returns all attributes.
func Attributes(attributes ...string) func(*Req) {
	return func(req *Req) {
		if attributes == nil {
			attributes = []string{}
		}
		req.attributes = attributes
	}
}
