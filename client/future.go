package client

import (
	"context"
	"net/http"

	"github.com/s0up4200/wgapi/apierr"
	"github.com/s0up4200/wgapi/request"
)

// Future is the pending result of an asynchronous request
type Future struct {
	done chan struct{}
	resp *http.Response
	err  error
}

// Done is closed once the request has completed
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the request completes. The caller owns the response body.
func (f *Future) Wait() (*http.Response, error) {
	<-f.done
	return f.resp, f.err
}

// GetAsync issues a GET request without blocking for the result.
// Build errors are reported through the returned Future as well.
func (c *Client) GetAsync(ctx context.Context, b request.Builder) *Future {
	return c.dispatchAsync(ctx, http.MethodGet, b, apierr.RequestGetAsyncFailed)
}

// PostAsync issues a POST request without blocking for the result
func (c *Client) PostAsync(ctx context.Context, b request.Builder) *Future {
	return c.dispatchAsync(ctx, http.MethodPost, b, apierr.RequestPostAsyncFailed)
}

func (c *Client) dispatchAsync(ctx context.Context, method string, b request.Builder, failure apierr.Code) *Future {
	f := &Future{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		f.resp, f.err = c.dispatch(ctx, method, b, failure)
	}()

	return f
}

// Await waits for f and decodes the envelope's data
func Await[T any](c *Client, f *Future) (T, error) {
	var zero T

	resp, err := f.Wait()
	if err != nil {
		return zero, err
	}
	env, err := Decode[T](resp, c.logger)
	if err != nil {
		return zero, err
	}
	return env.Data, nil
}
