package client

import (
	"context"
	"net/http"

	"github.com/s0up4200/wgapi/request"
)

// HTTPDoer executes HTTP requests. *http.Client implements it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Dispatcher sends built requests and returns the raw response
type Dispatcher interface {
	Get(ctx context.Context, b request.Builder) (*http.Response, error)
	Post(ctx context.Context, b request.Builder) (*http.Response, error)
}

var _ Dispatcher = (*Client)(nil)
