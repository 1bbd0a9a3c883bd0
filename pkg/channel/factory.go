// Package channel builds and pools gRPC connections to the control plane.
//
// A Factory turns one endpoint plus optional client certificate material into
// ready-to-use connections (plaintext, TLS, or mutual TLS). A Pool shares
// those connections between concurrent callers with exclusive leases.
package channel

import (
	"crypto/tls"
	"fmt"
	"net/url"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// Credentials points at PEM-encoded client certificate material.
// Either both fields are set or both are empty; anything in between is a
// configuration error reported before any file I/O happens.
type Credentials struct {
	CertFile string
	KeyFile  string
}

func (c Credentials) empty() bool { return c.CertFile == "" && c.KeyFile == "" }

func (c Credentials) partial() bool {
	return (c.CertFile == "") != (c.KeyFile == "")
}

// ConfigError reports invalid endpoint or credential configuration.
// It is always detected before any network or file activity.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "channel config: " + e.Reason }

// CredentialError reports certificate material that could not be read or parsed.
type CredentialError struct {
	CertFile string
	KeyFile  string
	Err      error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("channel credentials %q/%q: %v", e.CertFile, e.KeyFile, e.Err)
}

func (e *CredentialError) Unwrap() error { return e.Err }

// Factory builds connections for exactly one endpoint and one credential
// configuration. The endpoint scheme decides transport security: grpcs/https
// are encrypted, grpc/http/tcp are plaintext. Client credentials require an
// encrypted scheme.
type Factory struct {
	// Endpoint is the control-plane URI, e.g. "grpcs://cp.example:5001".
	Endpoint string

	// Credentials optionally adds a client identity (mutual TLS).
	Credentials Credentials

	// InsecureSkipVerify disables server certificate verification. The zero
	// value verifies; only ever relax this against test clusters.
	InsecureSkipVerify bool

	// DialOptions are appended to the options the factory computes itself.
	DialOptions []grpc.DialOption
}

// Build produces one connection. The connection is lazy: no network traffic
// happens until the first RPC, so Build failing always means bad input, not a
// bad network.
func (f Factory) Build() (*grpc.ClientConn, error) {
	target, secure, err := splitEndpoint(f.Endpoint)
	if err != nil {
		return nil, err
	}
	if f.Credentials.partial() {
		return nil, &ConfigError{Reason: "client certificate and key must be supplied together"}
	}
	if !f.Credentials.empty() && !secure {
		return nil, &ConfigError{Reason: fmt.Sprintf("client certificate supplied but endpoint %q is not a secure scheme", f.Endpoint)}
	}

	var tc credentials.TransportCredentials
	if !secure {
		tc = insecure.NewCredentials()
	} else {
		conf := &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: f.InsecureSkipVerify,
		}
		if !f.Credentials.empty() {
			// tls.LoadX509KeyPair consumes PEM directly on every platform, so
			// no container re-encoding is needed to present the identity.
			cert, err := tls.LoadX509KeyPair(f.Credentials.CertFile, f.Credentials.KeyFile)
			if err != nil {
				return nil, &CredentialError{CertFile: f.Credentials.CertFile, KeyFile: f.Credentials.KeyFile, Err: err}
			}
			conf.Certificates = []tls.Certificate{cert}
		}
		tc = credentials.NewTLS(conf)
	}

	opts := append([]grpc.DialOption{grpc.WithTransportCredentials(tc)}, f.DialOptions...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("dial target %q: %v", target, err)}
	}
	return conn, nil
}

// NewBuildFunc adapts the factory into the closure shape the pool consumes.
func (f Factory) NewBuildFunc() BuildFunc {
	return func() (Conn, error) { return f.Build() }
}

// splitEndpoint extracts the host:port dial target and whether the scheme
// demands an encrypted transport.
func splitEndpoint(endpoint string) (target string, secure bool, err error) {
	u, perr := url.Parse(endpoint)
	if perr != nil {
		return "", false, &ConfigError{Reason: fmt.Sprintf("endpoint %q: %v", endpoint, perr)}
	}
	if u.Host == "" {
		// Bare host:port without a scheme; treat as plaintext.
		if !strings.Contains(endpoint, "//") && endpoint != "" {
			return endpoint, false, nil
		}
		return "", false, &ConfigError{Reason: fmt.Sprintf("endpoint %q has no host", endpoint)}
	}
	switch strings.ToLower(u.Scheme) {
	case "grpcs", "https":
		return u.Host, true, nil
	case "grpc", "http", "tcp":
		return u.Host, false, nil
	default:
		return "", false, &ConfigError{Reason: fmt.Sprintf("endpoint %q: unsupported scheme %q", endpoint, u.Scheme)}
	}
}
