// Package wot provides typed method blocks on top of package client.
//
// Each block is created with a client and a base builder that carries the
// cluster, the region and, when needed, an access token:
//
//	base := request.New().WithCluster(cluster.WOT).WithRegion(cluster.EU)
//	accounts := wot.NewAccounts(c, base)
//	players, err := accounts.List(ctx, wot.AccountListOptions{Search: "tanker", Limit: 10})
//
// Clans and Servers always talk to the WGN cluster.
package wot
