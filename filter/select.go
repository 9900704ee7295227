package filter

import (
	"context"
	"fmt"
	"slices"
	"strconv"
)

// Select keeps the entries of data that match the predicate. Lists keep
// their order; objects keep their keys. data is expected to be decoded JSON.
func Select(ctx context.Context, p *Program, data any) (any, error) {
	if p.Kind() != Predicate {
		return nil, fmt.Errorf("select needs a predicate, got a %s", p.Kind())
	}

	switch v := data.(type) {
	case []any:
		out := make([]any, 0, len(v))
		for i, item := range v {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			ok, err := p.Match(strconv.Itoa(i), item)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, item)
			}
		}
		return out, nil

	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		out := make(map[string]any)
		for _, k := range keys {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			// Unknown ids come back as null and never match
			if v[k] == nil {
				continue
			}
			ok, err := p.Match(k, v[k])
			if err != nil {
				return nil, err
			}
			if ok {
				out[k] = v[k]
			}
		}
		return out, nil

	default:
		return nil, ErrNotCollection
	}
}

// Apply runs the optional predicate then the optional projection over data.
// Either program may be nil.
func Apply(ctx context.Context, where, projection *Program, data any) (any, error) {
	var err error
	if where != nil {
		if data, err = Select(ctx, where, data); err != nil {
			return nil, err
		}
	}
	if projection != nil {
		return projection.Run(data)
	}
	return data, nil
}
