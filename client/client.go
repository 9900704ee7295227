package client

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/s0up4200/wgapi/apierr"
	"github.com/s0up4200/wgapi/config"
	"github.com/s0up4200/wgapi/request"
)

// Client dispatches built requests to the Wargaming API
type Client struct {
	httpClient    HTTPDoer
	applicationID string
	userAgent     string
	logger        zerolog.Logger
}

// New creates a new client. Connection settings are fixed for the
// lifetime of the client and apply to every request.
func New(logger zerolog.Logger, opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	httpClient, err := newHTTPClient(o)
	if err != nil {
		return nil, err
	}

	return &Client{
		httpClient:    httpClient,
		applicationID: o.applicationID,
		userAgent:     o.userAgent,
		logger:        logger,
	}, nil
}

// NewFromConfig creates a client from the process-wide API configuration
func NewFromConfig(cfg config.APIConfig, logger zerolog.Logger, opts ...Option) (*Client, error) {
	base := []Option{
		WithApplicationID(cfg.ApplicationID),
		WithConnectTimeout(cfg.ConnectionTimeout()),
		WithUserAgent(cfg.UserAgent),
	}
	if cfg.HasProxy() {
		base = append(base, WithProxy(cfg.ProxyHost, cfg.ProxyPort))
	}
	if cfg.Tracing {
		base = append(base, WithTracing())
	}
	return New(logger, append(base, opts...)...)
}

// NewWithDoer creates a client around an arbitrary HTTPDoer, mainly for tests
func NewWithDoer(doer HTTPDoer, logger zerolog.Logger, opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Client{
		httpClient:    doer,
		applicationID: o.applicationID,
		userAgent:     o.userAgent,
		logger:        logger,
	}
}

func newHTTPClient(o clientOptions) (*http.Client, error) {
	httpClient := o.httpClient
	if httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.DialContext = (&net.Dialer{
			Timeout:   o.connectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext

		// Only the configured proxy is used, never HTTP(S)_PROXY from the environment
		transport.Proxy = nil
		if o.proxyHost != "" {
			proxyURL, err := url.Parse("http://" + net.JoinHostPort(o.proxyHost, strconv.Itoa(o.proxyPort)))
			if err != nil {
				return nil, &apierr.Error{Code: apierr.RequestFailed, Err: err}
			}
			transport.Proxy = http.ProxyURL(proxyURL)
		}

		httpClient = &http.Client{Transport: transport}
	}

	if o.tracing {
		base := httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		traced := *httpClient
		traced.Transport = otelhttp.NewTransport(base)
		httpClient = &traced
	}

	return httpClient, nil
}

// Get issues a GET request. The response body is left for Decode.
func (c *Client) Get(ctx context.Context, b request.Builder) (*http.Response, error) {
	return c.dispatch(ctx, http.MethodGet, b, apierr.RequestGetFailed)
}

// Post issues a POST request carrying the parameters both in the query and
// as a form-encoded body.
func (c *Client) Post(ctx context.Context, b request.Builder) (*http.Response, error) {
	return c.dispatch(ctx, http.MethodPost, b, apierr.RequestPostFailed)
}

func (c *Client) dispatch(ctx context.Context, method string, b request.Builder, failure apierr.Code) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, b)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("method", method).
		Str("host", req.URL.Host).
		Str("path", req.URL.Path).
		Msg("Making API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierr.Wrap(failure, err)
	}
	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, method string, b request.Builder) (*http.Request, error) {
	if c.applicationID != "" && !b.HasParam(request.ApplicationIDParam) {
		b = b.WithApplicationID(c.applicationID)
	}

	u, err := b.Build()
	if err != nil {
		return nil, err
	}
	if !b.HasParam(request.ApplicationIDParam) {
		return nil, apierr.Wrap(apierr.BuildURLFailed, apierr.New(apierr.NullApplicationID))
	}

	var body io.Reader
	if method == http.MethodPost {
		body = strings.NewReader(request.Encode(b.Params()))
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, apierr.Wrap(apierr.RequestFailed, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	return req, nil
}
