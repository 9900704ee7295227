package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/s0up4200/wgapi/apierr"
	"github.com/s0up4200/wgapi/request"
)

// Envelope status values
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Envelope is the uniform wrapper of every API response
type Envelope[T any] struct {
	Status string       `json:"status"`
	Data   T            `json:"data"`
	Error  *ErrorDetail `json:"error,omitempty"`
	Meta   *Meta        `json:"meta,omitempty"`
}

// ErrorDetail is the error object of a failed envelope
type ErrorDetail struct {
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Field   string     `json:"field"`
	Value   ErrorValue `json:"value"`
}

// ErrorValue accepts the offending value as a JSON string, number or null
type ErrorValue string

// UnmarshalJSON implements json.Unmarshaler
func (v *ErrorValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = ErrorValue(s)
		return nil
	}
	*v = ErrorValue(data)
	return nil
}

// Meta carries the envelope's meta block. Only Count is always present.
type Meta struct {
	Count     int  `json:"count"`
	Total     *int `json:"total,omitempty"`
	Page      *int `json:"page,omitempty"`
	PageTotal *int `json:"page_total,omitempty"`
	Limit     *int `json:"limit,omitempty"`
}

// rawEnvelope defers decoding of data until the status is known
type rawEnvelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *ErrorDetail    `json:"error"`
	Meta   *Meta           `json:"meta"`
}

// Decode reads and closes the response body and decodes the envelope.
// The body is logged at debug level.
func Decode[T any](resp *http.Response, logger zerolog.Logger) (*Envelope[T], error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.Wrap(apierr.ParsingFailed, fmt.Errorf("failed to read response body: %w", err))
	}

	logger.Debug().
		Int("status_code", resp.StatusCode).
		Bytes("body", body).
		Msg("Received API response")

	env, err := DecodeBody[T](body)
	if err != nil {
		var apiErr *apierr.Error
		if resp.StatusCode != http.StatusOK && asResponseError(err, &apiErr) {
			apiErr.Message = appendStatus(apiErr.Message, resp.StatusCode)
		}
		return nil, err
	}
	return env, nil
}

// DecodeBody decodes a raw envelope. A status other than "ok" is returned
// as an *apierr.Error translated from the envelope's error object.
func DecodeBody[T any](body []byte) (*Envelope[T], error) {
	var raw rawEnvelope
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apierr.Wrap(apierr.ParsingFailed, err)
	}

	if raw.Status != StatusOK {
		return nil, remoteError(raw)
	}

	env := &Envelope[T]{
		Status: raw.Status,
		Meta:   raw.Meta,
	}
	if len(raw.Data) > 0 && !bytes.Equal(raw.Data, []byte("null")) {
		if err := json.Unmarshal(raw.Data, &env.Data); err != nil {
			return nil, apierr.Wrap(apierr.ParsingFailed, err)
		}
	}
	return env, nil
}

func remoteError(raw rawEnvelope) error {
	if raw.Error == nil {
		return &apierr.Error{
			Code:    apierr.ResponseError,
			Message: fmt.Sprintf("status %q without error details", raw.Status),
		}
	}
	return apierr.FromRemote(raw.Error.Code, raw.Error.Message, raw.Error.Field, string(raw.Error.Value))
}

func asResponseError(err error, target **apierr.Error) bool {
	e, ok := err.(*apierr.Error)
	if !ok || e.Code != apierr.ResponseError {
		return false
	}
	*target = e
	return true
}

func appendStatus(message string, statusCode int) string {
	if message == "" {
		return "HTTP " + strconv.Itoa(statusCode)
	}
	return message + " (HTTP " + strconv.Itoa(statusCode) + ")"
}

// Get performs a GET request and returns the decoded data
func Get[T any](ctx context.Context, c *Client, b request.Builder) (T, error) {
	env, err := GetEnvelope[T](ctx, c, b)
	if err != nil {
		var zero T
		return zero, err
	}
	return env.Data, nil
}

// Post performs a POST request and returns the decoded data
func Post[T any](ctx context.Context, c *Client, b request.Builder) (T, error) {
	env, err := PostEnvelope[T](ctx, c, b)
	if err != nil {
		var zero T
		return zero, err
	}
	return env.Data, nil
}

// GetEnvelope performs a GET request and returns the whole envelope
func GetEnvelope[T any](ctx context.Context, c *Client, b request.Builder) (*Envelope[T], error) {
	resp, err := c.Get(ctx, b)
	if err != nil {
		return nil, err
	}
	return Decode[T](resp, c.logger)
}

// PostEnvelope performs a POST request and returns the whole envelope
func PostEnvelope[T any](ctx context.Context, c *Client, b request.Builder) (*Envelope[T], error) {
	resp, err := c.Post(ctx, b)
	if err != nil {
		return nil, err
	}
	return Decode[T](resp, c.logger)
}
