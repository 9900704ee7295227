// Package client dispatches requests built with package request to the
// Wargaming public API and decodes the JSON envelope of every response.
//
// # Usage
//
// Create a client once. Connection settings apply to every request:
//
//	logger := zerolog.New(os.Stderr)
//	c, err := client.New(logger,
//		client.WithApplicationID("your-application-id"),
//		client.WithConnectTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	base := request.New().WithCluster(cluster.WOT).WithRegion(cluster.EU)
//	players, err := client.Get[[]Player](ctx, c, base.
//		WithMethod("account", "list").
//		WithParameter(request.NewParam("search", "tanker")))
//
// # Envelope
//
// Every response is wrapped as
//
//	{"status": "ok", "meta": {"count": 1}, "data": ...}
//	{"status": "error", "error": {"code": 407, "message": "INVALID_SEARCH", "field": "search", "value": "x"}}
//
// Decode returns the typed data for "ok" and an *apierr.Error for anything
// else. Use GetEnvelope or PostEnvelope when the meta block is needed.
//
// # Error Handling
//
// All failures are *apierr.Error values:
//
//   - BUILD_URL_FAILED: the builder could not produce a URL
//   - REQUEST_GET_FAILED, REQUEST_POST_FAILED: transport failure
//   - PARSING_FAILED: unreadable body or malformed JSON
//   - remote codes (401 to 504): errors reported by the service
//
// Nothing is retried.
package client
