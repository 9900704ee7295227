package client

import (
	"net/http"
	"time"
)

// DefaultConnectTimeout is used when no connect timeout is configured
const DefaultConnectTimeout = 30 * time.Second

// DefaultProxyPort is used when a proxy host is given without a port
const DefaultProxyPort = 80

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	httpClient     *http.Client
	connectTimeout time.Duration
	proxyHost      string
	proxyPort      int
	applicationID  string
	userAgent      string
	tracing        bool
}

func defaultOptions() clientOptions {
	return clientOptions{
		connectTimeout: DefaultConnectTimeout,
		proxyPort:      DefaultProxyPort,
		userAgent:      "wgapi",
	}
}

// WithHTTPClient uses a custom HTTP client.
// Connect timeout and proxy options are ignored in that case.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithConnectTimeout sets the timeout for establishing connections.
func WithConnectTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.connectTimeout = timeout
		}
	}
}

// WithProxy routes every request through an HTTP proxy.
// A non-positive port falls back to DefaultProxyPort.
func WithProxy(host string, port int) Option {
	return func(o *clientOptions) {
		o.proxyHost = host
		if port > 0 {
			o.proxyPort = port
		}
	}
}

// WithApplicationID sets the application id appended to requests that do not carry one.
func WithApplicationID(id string) Option {
	return func(o *clientOptions) {
		o.applicationID = id
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithTracing wraps the transport with OpenTelemetry HTTP instrumentation.
func WithTracing() Option {
	return func(o *clientOptions) {
		o.tracing = true
	}
}
