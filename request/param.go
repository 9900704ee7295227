package request

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/google/go-querystring/query"
)

// Reserved parameter names
const (
	ApplicationIDParam = "application_id"
	AccessTokenParam   = "access_token"
)

// Param is a single request parameter.
// Values are transmitted as is; the constructors decide on normalization.
type Param struct {
	Name  string
	Value string
}

// NewParam creates a parameter with name and value lower-cased
func NewParam(name, value string) Param {
	return Param{
		Name:  strings.ToLower(name),
		Value: strings.ToLower(value),
	}
}

// ExactParam creates a parameter whose value keeps its case.
// Use it for opaque values such as tokens or free-text search.
func ExactParam(name, value string) Param {
	return Param{
		Name:  strings.ToLower(name),
		Value: value,
	}
}

// ListParam joins values with commas. Excluding nested fields with a "-"
// prefix is left to the caller.
func ListParam(name string, values []string) Param {
	return NewParam(name, strings.Join(values, ","))
}

// IntListParam joins integer identifiers with commas
func IntListParam(name string, values []int64) Param {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return NewParam(name, strings.Join(parts, ","))
}

// BoolParam renders true as "1" and false as "0"
func BoolParam(name string, value bool) Param {
	if value {
		return NewParam(name, "1")
	}
	return NewParam(name, "0")
}

// IntParam renders an integer in base 10
func IntParam(name string, value int64) Param {
	return NewParam(name, strconv.FormatInt(value, 10))
}

// FloatParam renders a float in its shortest exact form
func FloatParam(name string, value float64) Param {
	return NewParam(name, strconv.FormatFloat(value, 'f', -1, 64))
}

// String returns "name=value"
func (p Param) String() string {
	return p.Name + "=" + p.Value
}

// StructParams converts a struct tagged for go-querystring into parameters.
// Keys are sorted so the result is deterministic; multi-valued keys keep
// their value order.
func StructParams(v any) ([]Param, error) {
	values, err := query.Values(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode parameters: %w", err)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	params := make([]Param, 0, len(keys))
	for _, k := range keys {
		for _, val := range values[k] {
			params = append(params, NewParam(k, val))
		}
	}
	return params, nil
}

// Encode renders params as an ordered "k=v&k=v" string, suitable for a
// query string or a form body. Duplicate names are kept.
func Encode(params []Param) string {
	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Name))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}
