// Package apierr catalogues every error condition of the wgapi client.
//
// Client-side failures (URL building, transport, parsing) and errors reported
// by the remote service share one type, *Error, which carries a Code with a
// numeric value, an enum-like name and a human readable title.
//
// Remote errors are resolved with a dual key: the numeric code alone is
// ambiguous (many conditions share 407), so the message is normalized by
// replacing the offending field name with the FIELD token and matched against
// the code names:
//
//	{"code": 407, "message": "INVALID_ACCOUNT_ID", "field": "account_id"}
//
// resolves to InvalidField. Anything unknown becomes ResponseError.
//
// Use HasCode to test for a condition anywhere in the cause chain:
//
//	if apierr.HasCode(err, apierr.NullRegion) {
//		// region was never configured
//	}
package apierr
