// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package odoo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// envCall records one ExecuteKw invocation for assertion
type envCall struct {
	uid    int64
	model  string
	method string
	args   []any
	kwargs map[string]any
}

// mockEnv is a recording Environment used to assert the exact shapes the
// client forwards to the remote side.
type mockEnv struct {
	// Authenticate behavior
	authUID int64
	authErr error

	// ExecuteKw behavior
	result any
	err    error

	// Recorded inputs
	authCalls      int
	authDB         string
	authLogin      string
	authCredential string
	authContext    map[string]any
	calls          []envCall
}

func (m *mockEnv) Authenticate(_ context.Context, db, login, credential string, userAgentEnv map[string]any) (int64, error) {
	m.authCalls++
	m.authDB = db
	m.authLogin = login
	m.authCredential = credential
	m.authContext = userAgentEnv
	return m.authUID, m.authErr
}

func (m *mockEnv) ExecuteKw(_ context.Context, uid int64, _, model, method string, args []any, kwargs map[string]any) (any, error) {
	m.calls = append(m.calls, envCall{
		uid:    uid,
		model:  model,
		method: method,
		args:   args,
		kwargs: kwargs,
	})
	return m.result, m.err
}

// newTestClient creates a client with valid configuration on top of a mock
// environment.
func newTestClient(t *testing.T, env *mockEnv, opts ...func(*Client)) *Client {
	t.Helper()
	opts = append([]func(*Client){
		Database("test_db"),
		Username("test_user"),
		Password("test_pass"),
		WithEnvironment(env),
	}, opts...)
	client, err := NewClient("https://test.odoo.com", opts...)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

// TestNewClientValidation tests client configuration validation
func TestNewClientValidation(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		opts        []func(*Client)
		wantErrMsg  string
		description string
	}{
		{
			name:        "empty url",
			url:         "",
			opts:        []func(*Client){Database("db"), Username("user"), Password("pass")},
			wantErrMsg:  "url cannot be empty",
			description: "Empty URL should fail validation",
		},
		{
			name:        "slash-only url",
			url:         "/",
			opts:        []func(*Client){Database("db"), Username("user"), Password("pass")},
			wantErrMsg:  "url cannot be empty",
			description: "URL that is only a path separator should fail validation",
		},
		{
			name:        "missing database",
			url:         "https://test.odoo.com",
			opts:        []func(*Client){Username("user"), Password("pass")},
			wantErrMsg:  "database cannot be empty",
			description: "Missing database should fail validation",
		},
		{
			name:        "missing username",
			url:         "https://test.odoo.com",
			opts:        []func(*Client){Database("db"), Password("pass")},
			wantErrMsg:  "username cannot be empty",
			description: "Missing username should fail validation",
		},
		{
			name:        "no credentials",
			url:         "https://test.odoo.com",
			opts:        []func(*Client){Database("db"), Username("user")},
			wantErrMsg:  "either password or api key must be provided",
			description: "Missing both password and API key should fail validation",
		},
		{
			name: "zero timeout",
			url:  "https://test.odoo.com",
			opts: []func(*Client){
				Database("db"), Username("user"), Password("pass"),
				Timeout(0),
			},
			wantErrMsg:  "timeout must be positive",
			description: "Zero timeout should fail validation",
		},
		{
			name: "negative timeout",
			url:  "https://test.odoo.com",
			opts: []func(*Client){
				Database("db"), Username("user"), Password("pass"),
				Timeout(-1 * time.Second),
			},
			wantErrMsg:  "timeout must be positive",
			description: "Negative timeout should fail validation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.url, tt.opts...)
			if err == nil {
				t.Errorf("%s: expected error but got none", tt.description)
				return
			}
			if !strings.Contains(err.Error(), tt.wantErrMsg) {
				t.Errorf("%s: expected error containing %q, got %q",
					tt.description, tt.wantErrMsg, err.Error())
			}
		})
	}
}

// TestNewClientCredentialForms tests that any single credential form passes
// the cross-field check
func TestNewClientCredentialForms(t *testing.T) {
	tests := []struct {
		name string
		opts []func(*Client)
	}{
		{
			name: "password only",
			opts: []func(*Client){Password("test_pass")},
		},
		{
			name: "api key only",
			opts: []func(*Client){APIKey("test_key")},
		},
		{
			name: "both password and api key",
			opts: []func(*Client){Password("test_pass"), APIKey("test_key")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]func(*Client){
				Database("test_db"),
				Username("test_user"),
				WithEnvironment(&mockEnv{authUID: 1}),
			}, tt.opts...)
			client, err := NewClient("https://test.odoo.com", opts...)
			if err != nil {
				t.Fatalf("NewClient failed: %v", err)
			}
			if !client.HasCredentials() {
				t.Error("HasCredentials() = false, want true")
			}
		})
	}
}

// TestNewClientMissingCredentialsSentinel tests that the credential check
// surfaces as ErrMissingCredentials
func TestNewClientMissingCredentialsSentinel(t *testing.T) {
	_, err := NewClient("https://test.odoo.com",
		Database("test_db"),
		Username("test_user"),
	)
	if !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials, got %v", err)
	}
}

// TestNewClientDefaults tests default configuration values
func TestNewClientDefaults(t *testing.T) {
	client := newTestClient(t, &mockEnv{})

	if client.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", client.Timeout, DefaultTimeout)
	}
	if client.VerifyCertificate != DefaultVerifyCertificate {
		t.Errorf("VerifyCertificate = %v, want %v", client.VerifyCertificate, DefaultVerifyCertificate)
	}
	if _, ok := client.UserID(); ok {
		t.Error("UserID() reports authenticated before any authenticate call")
	}
}

// TestNewClientTrailingSeparator tests that trailing path separators are
// stripped from the URL before use
func TestNewClientTrailingSeparator(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "no trailing slash",
			url:  "https://test.odoo.com",
			want: "https://test.odoo.com",
		},
		{
			name: "single trailing slash",
			url:  "https://test.odoo.com/",
			want: "https://test.odoo.com",
		},
		{
			name: "multiple trailing slashes",
			url:  "https://test.odoo.com///",
			want: "https://test.odoo.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.url,
				Database("test_db"),
				Username("test_user"),
				Password("test_pass"),
				WithEnvironment(&mockEnv{}),
			)
			if err != nil {
				t.Fatalf("NewClient failed: %v", err)
			}
			if client.URL != tt.want {
				t.Errorf("URL = %q, want %q", client.URL, tt.want)
			}
		})
	}
}

// TestNewClientNilEnvironment tests that a nil injected environment fails
// construction before any other work
func TestNewClientNilEnvironment(t *testing.T) {
	_, err := NewClient("https://test.odoo.com",
		Database("test_db"),
		Username("test_user"),
		Password("test_pass"),
		WithEnvironment(nil),
	)
	if !errors.Is(err, ErrEnvironmentUnavailable) {
		t.Errorf("expected ErrEnvironmentUnavailable, got %v", err)
	}
}

// TestAuthenticate tests the authentication handshake
func TestAuthenticate(t *testing.T) {
	env := &mockEnv{authUID: 123}
	client := newTestClient(t, env)

	uid, err := client.Authenticate(context.Background())
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if uid != 123 {
		t.Errorf("Authenticate() = %d, want 123", uid)
	}

	if env.authDB != "test_db" {
		t.Errorf("authenticate db = %q, want %q", env.authDB, "test_db")
	}
	if env.authLogin != "test_user" {
		t.Errorf("authenticate login = %q, want %q", env.authLogin, "test_user")
	}
	if env.authCredential != "test_pass" {
		t.Errorf("authenticate credential = %q, want %q", env.authCredential, "test_pass")
	}
	if env.authContext == nil || len(env.authContext) != 0 {
		t.Errorf("authenticate context = %v, want empty map", env.authContext)
	}

	got, ok := client.UserID()
	if !ok || got != 123 {
		t.Errorf("UserID() = %d, %v, want 123, true", got, ok)
	}
}

// TestAuthenticateMemoization tests that repeated calls issue exactly one
// remote authenticate request
func TestAuthenticateMemoization(t *testing.T) {
	env := &mockEnv{authUID: 123}
	client := newTestClient(t, env)

	for i := 0; i < 3; i++ {
		uid, err := client.Authenticate(context.Background())
		if err != nil {
			t.Fatalf("Authenticate call %d failed: %v", i+1, err)
		}
		if uid != 123 {
			t.Errorf("Authenticate call %d = %d, want 123", i+1, uid)
		}
	}

	if env.authCalls != 1 {
		t.Errorf("remote authenticate called %d times, want 1", env.authCalls)
	}
}

// TestAuthenticateRejected tests that a falsy remote result surfaces as
// ErrAuthenticationFailed and leaves the user ID uncached
func TestAuthenticateRejected(t *testing.T) {
	env := &mockEnv{authUID: 0}
	client := newTestClient(t, env)

	_, err := client.Authenticate(context.Background())
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
	if _, ok := client.UserID(); ok {
		t.Error("UserID() reports authenticated after rejected credentials")
	}

	// Nothing was cached, so a later call retries and can succeed
	env.authUID = 123
	uid, err := client.Authenticate(context.Background())
	if err != nil {
		t.Fatalf("Authenticate retry failed: %v", err)
	}
	if uid != 123 {
		t.Errorf("Authenticate retry = %d, want 123", uid)
	}
	if env.authCalls != 2 {
		t.Errorf("remote authenticate called %d times, want 2", env.authCalls)
	}
}

// TestAuthenticateTransportError tests that transport failures propagate
// verbatim
func TestAuthenticateTransportError(t *testing.T) {
	wantErr := errors.New("connection refused")
	env := &mockEnv{authErr: wantErr}
	client := newTestClient(t, env)

	_, err := client.Authenticate(context.Background())
	if !errors.Is(err, wantErr) {
		t.Errorf("expected error %v, got %v", wantErr, err)
	}
	if _, ok := client.UserID(); ok {
		t.Error("UserID() reports authenticated after transport failure")
	}
}

// TestCredentialPrecedence tests that the API key overrides the password at
// use time when both are configured
func TestCredentialPrecedence(t *testing.T) {
	env := &mockEnv{authUID: 1}
	client := newTestClient(t, env, APIKey("test_key"))

	if _, err := client.Authenticate(context.Background()); err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if env.authCredential != "test_key" {
		t.Errorf("authenticate credential = %q, want API key %q", env.authCredential, "test_key")
	}
}
