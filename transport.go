// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package odoo

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/joeshaw/envdecode"
)

// headerEnv is the process-wide outbound header configuration, read once at
// transport construction. When both variables are set, the header is applied
// to every outbound request. This supports reverse proxies and WAFs that
// require a fixed header on API traffic.
type headerEnv struct {
	// Header name. ENV: ODOO_PROXY_HEADER_NAME
	Name string `env:"ODOO_PROXY_HEADER_NAME"`
	// Header value. ENV: ODOO_PROXY_HEADER_VALUE
	Value string `env:"ODOO_PROXY_HEADER_VALUE"`
}

// envRequestDecorator builds a request decorator from the process environment
// via envdecode. Returns nil when the header configuration is absent or
// incomplete.
func envRequestDecorator() func(*http.Request) {
	var cfg headerEnv
	// Both fields are optional; decode errors only mean nothing was set.
	_ = envdecode.Decode(&cfg)
	if cfg.Name == "" || cfg.Value == "" {
		return nil
	}
	return func(req *http.Request) {
		req.Header.Set(cfg.Name, cfg.Value)
	}
}

// decoratingTransport applies request decorators before delegating to the
// base transport. The request is cloned first: RoundTrippers must not mutate
// the caller's request.
type decoratingTransport struct {
	base       http.RoundTripper
	decorators []func(*http.Request)
}

// RoundTrip implements http.RoundTripper
func (t *decoratingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	for _, decorate := range t.decorators {
		decorate(clone)
	}
	return t.base.RoundTrip(clone)
}

// newTransport builds the outbound transport used by the XML-RPC endpoints.
//
// The configured timeout is applied at the transport layer (dial, TLS
// handshake, response header) rather than locally; this library implements
// no timeout or cancellation machinery of its own. Certificate verification
// is controlled by the VerifyCertificate option and is enabled by default.
func newTransport(timeout time.Duration, verify bool, decorators []func(*http.Request)) http.RoundTripper {
	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: timeout,
		}).DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: !verify, //nolint:gosec // Opt-in via VerifyCertificate(false)
		},
	}

	if len(decorators) == 0 {
		return base
	}
	return &decoratingTransport{base: base, decorators: decorators}
}
