package wot

import (
	"context"
	"fmt"

	"github.com/s0up4200/wgapi/client"
	"github.com/s0up4200/wgapi/request"
)

// block is the shared plumbing of every method block: a client and a base
// builder carrying cluster, region and credentials.
type block struct {
	client *client.Client
	base   request.Builder
	name   string
}

func newBlock(c *client.Client, base request.Builder, name string) block {
	return block{client: c, base: base, name: name}
}

// method returns a builder for one method of the block with opts appended
func (b block) method(name string, opts any, extra ...request.Param) (request.Builder, error) {
	rb := b.base.WithMethod(b.name, name).WithParameters(extra...)
	if opts == nil {
		return rb, nil
	}

	params, err := request.StructParams(opts)
	if err != nil {
		return request.Builder{}, fmt.Errorf("failed to encode %s/%s options: %w", b.name, name, err)
	}
	return rb.WithParameters(params...), nil
}

func fetch[T any](ctx context.Context, b block, name string, opts any, extra ...request.Param) (T, error) {
	rb, err := b.method(name, opts, extra...)
	if err != nil {
		var zero T
		return zero, err
	}
	return client.Get[T](ctx, b.client, rb)
}

func fetchEnvelope[T any](ctx context.Context, b block, name string, opts any, extra ...request.Param) (*client.Envelope[T], error) {
	rb, err := b.method(name, opts, extra...)
	if err != nil {
		return nil, err
	}
	return client.GetEnvelope[T](ctx, b.client, rb)
}
