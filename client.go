// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package odoo

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Default client configuration values
const (
	DefaultTimeout           = 120 * time.Second
	DefaultVerifyCertificate = true
)

// Client represents a session against one Odoo instance and database.
//
// The client holds the validated configuration, the derived credential and a
// handle to the XML-RPC environment through which all remote operations are
// issued. Beyond the memoized user ID it is stateless; it holds no sockets
// directly and needs no explicit teardown.
type Client struct {
	// Connection parameters
	URL      string
	Database string
	username string // unexported for security
	password string // unexported for security
	apiKey   string // unexported for security

	// credential is the effective secret used on the wire:
	// the API key when set, the password otherwise
	credential string

	// Timeout is forwarded to the transport layer (default: 120s)
	Timeout time.Duration

	// VerifyCertificate controls TLS certificate verification (default: true)
	VerifyCertificate bool

	// Transport configuration
	transport  http.RoundTripper
	decorators []func(*http.Request)

	// env is the sole channel for remote operations
	env         Environment
	envInjected bool

	// uid is the memoized authenticated user ID, set at most once
	uid *int64

	// Logging configuration
	logger Logger
}

// NewClient creates a new Odoo client for the given instance URL.
//
// The client validates its configuration and obtains an XML-RPC environment
// handle immediately, but performs NO network call: authentication happens
// lazily on the first operation (or an explicit Authenticate call).
//
// A trailing path separator on the URL is stripped before use. At least one
// of Password and APIKey must be configured; when both are set, the API key
// takes precedence.
//
// Example:
//
//	client, err := odoo.NewClient(
//	    "https://demo.odoo.com",
//	    odoo.Database("demo"),
//	    odoo.Username("admin"),
//	    odoo.APIKey("key"),
//	    odoo.Timeout(60*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)  // Configuration error
//	}
//
//	uid, err := client.Authenticate(ctx)
//
// Returns a configured Client or an error if configuration validation fails
// or the XML-RPC environment cannot be obtained.
func NewClient(url string, opts ...func(*Client)) (*Client, error) {
	// Create client with default values
	client := &Client{
		URL:               url,
		Timeout:           DefaultTimeout,
		VerifyCertificate: DefaultVerifyCertificate,
		logger:            &NoOpLogger{},
	}

	// Apply functional options
	for _, opt := range opts {
		opt(client)
	}

	// Strip trailing path separators before use
	client.URL = strings.TrimRight(client.URL, "/")

	// Derive the effective credential (API key overrides password)
	client.credential = client.password
	if client.apiKey != "" {
		client.credential = client.apiKey
	}

	// Validate configuration
	if err := client.validateConfig(); err != nil {
		return nil, err
	}

	// Obtain the environment handle; every operation depends on it, so this
	// happens before any other work
	if err := client.createEnvironment(); err != nil {
		return nil, err
	}

	client.logger.Info(context.Background(), "odoo client created",
		"url", client.URL,
		"database", client.Database,
		"authentication", "lazy")

	return client, nil
}

// validateConfig validates client configuration before any remote use
//
// Validates:
//   - URL, database and username are non-empty
//   - At least one of password and API key is configured (the only
//     cross-field check; never re-checked after construction)
//   - Timeout is positive
//
// Returns an error if validation fails.
func (c *Client) validateConfig() error {
	if strings.TrimSpace(c.URL) == "" {
		return fmt.Errorf("url cannot be empty")
	}
	if strings.TrimSpace(c.Database) == "" {
		return fmt.Errorf("database cannot be empty")
	}
	if strings.TrimSpace(c.username) == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if c.credential == "" {
		return ErrMissingCredentials
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %v", c.Timeout)
	}

	// Warn on insecure TLS configuration
	if !c.VerifyCertificate {
		c.logger.Warn(context.Background(), "certificate verification disabled",
			"url", c.URL,
			"security_risk", "Man-in-the-Middle attacks possible",
			"recommendation", "Use only in testing environments")
	}

	return nil
}

// createEnvironment obtains the XML-RPC environment handle
//
// An injected Environment (WithEnvironment) is used as-is; a nil injection is
// rejected. Otherwise the default kolo/xmlrpc environment is constructed on a
// transport carrying the configured timeout, TLS behavior and request
// decorators. An explicit Transport override is used verbatim.
//
// PRECONDITION: Configuration must be validated via validateConfig().
//
// Returns ErrEnvironmentUnavailable if the handle cannot be obtained.
func (c *Client) createEnvironment() error {
	if c.envInjected {
		if c.env == nil {
			return ErrEnvironmentUnavailable
		}
		return nil
	}

	transport := c.transport
	if transport == nil {
		decorators := c.decorators
		if envDecorator := envRequestDecorator(); envDecorator != nil {
			decorators = append(decorators, envDecorator)
		}
		transport = newTransport(c.Timeout, c.VerifyCertificate, decorators)
	}

	env, err := newXMLRPCEnvironment(c.URL, c.Database, transport)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrEnvironmentUnavailable, err)
	}

	c.env = env
	return nil
}

// Authenticate performs the authentication handshake and returns the user ID.
//
// The result is memoized: the first successful call issues one remote
// authenticate request and caches the user ID; subsequent calls return the
// cached value without a round-trip. A rejected credential returns
// ErrAuthenticationFailed and leaves nothing cached, so a later call retries.
//
// Operations call this implicitly; an explicit call is only needed to verify
// credentials up front.
//
// Example:
//
//	uid, err := client.Authenticate(ctx)
//	if err != nil {
//	    log.Fatal(err)  // Bad credentials or transport failure
//	}
func (c *Client) Authenticate(ctx context.Context) (int64, error) {
	if c.uid != nil {
		return *c.uid, nil
	}

	c.logger.Debug(ctx, "odoo authenticate request",
		"url", c.URL,
		"database", c.Database,
		"username", c.username)

	uid, err := c.env.Authenticate(ctx, c.Database, c.username, c.credential, map[string]any{})
	if err != nil {
		c.logger.Error(ctx, "odoo authenticate failed",
			"url", c.URL,
			"database", c.Database,
			"error", err.Error())
		return 0, err
	}
	if uid == 0 {
		c.logger.Error(ctx, "odoo authentication rejected",
			"url", c.URL,
			"database", c.Database,
			"username", c.username)
		return 0, ErrAuthenticationFailed
	}

	c.uid = &uid

	c.logger.Info(ctx, "odoo authenticated",
		"url", c.URL,
		"database", c.Database,
		"uid", uid)

	return uid, nil
}

// ensureAuthenticated returns the memoized user ID, authenticating first if
// needed (lazy authentication). Every operation goes through this before
// issuing its remote call.
func (c *Client) ensureAuthenticated(ctx context.Context) (int64, error) {
	return c.Authenticate(ctx)
}

// UserID returns the memoized authenticated user ID, if any.
//
// The second return value reports whether authentication has happened; it is
// false until the first successful Authenticate call (explicit or implicit).
func (c *Client) UserID() (int64, bool) {
	if c.uid == nil {
		return 0, false
	}
	return *c.uid, true
}

// HasCredentials returns true if a usable credential is configured
//
// This method only indicates if a credential exists without exposing
// the actual value.
func (c *Client) HasCredentials() bool {
	return c.credential != ""
}
