// Package request builds request URLs for the Wargaming public API.
//
// A Builder is configured fluently and is immutable, so a base builder can be
// reused for every call against the same cluster and region:
//
//	base := request.New().
//		WithCluster(cluster.WOT).
//		WithRegion(cluster.EU).
//		WithApplicationID(appID)
//
//	u, err := base.
//		WithMethod("account", "list").
//		WithParameter(request.NewParam("search", "tanker")).
//		Build()
//
// Parameters keep insertion order and are never de-duplicated. NewParam and
// the typed helpers lower-case both name and value; ExactParam keeps the
// value's case.
package request
