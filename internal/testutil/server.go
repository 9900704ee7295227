package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// NewAPIServer starts a test server and returns an HTTP client that sends
// every request to it, whatever host the request URL names. The handler sees
// the original host in r.Host.
func NewAPIServer(t *testing.T, handler http.Handler) (*httptest.Server, *http.Client) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	target, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("Failed to parse test server URL: %v", err)
	}

	return server, &http.Client{
		Transport: &rewriteTransport{target: target, base: http.DefaultTransport},
	}
}

type rewriteTransport struct {
	target *url.URL
	base   http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	if out.Host == "" {
		out.Host = req.URL.Host
	}
	out.URL.Scheme = rt.target.Scheme
	out.URL.Host = rt.target.Host
	return rt.base.RoundTrip(out)
}

// WriteOK writes a successful envelope around data
func WriteOK(t *testing.T, w http.ResponseWriter, data any, count int) {
	t.Helper()
	writeJSON(t, w, map[string]any{
		"status": "ok",
		"meta":   map[string]any{"count": count},
		"data":   data,
	})
}

// WriteError writes a failed envelope with the given error object
func WriteError(t *testing.T, w http.ResponseWriter, code int, message, field string, value any) {
	t.Helper()
	writeJSON(t, w, map[string]any{
		"status": "error",
		"error": map[string]any{
			"code":    code,
			"message": message,
			"field":   field,
			"value":   value,
		},
	})
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("Failed to encode response: %v", err)
	}
}
