package apierr

import (
	"strconv"
	"strings"
)

// FieldPlaceholder is substituted with the offending field name when a title is rendered.
const FieldPlaceholder = "%FIELD%"

// fieldToken replaces the upper-cased field name in remote messages before lookup.
const fieldToken = "FIELD"

// Code is a catalogued error condition
type Code struct {
	Number int
	Name   string
	Title  string
}

// Render returns the title with the field placeholder filled in
func (c Code) Render(field string) string {
	if field == "" {
		return strings.ReplaceAll(c.Title, FieldPlaceholder, "field")
	}
	return strings.ReplaceAll(c.Title, FieldPlaceholder, field)
}

// String returns "<number> <name>"
func (c Code) String() string {
	return strconv.Itoa(c.Number) + " " + c.Name
}

// Client-side conditions. Numbers above 1000 never come from the remote service.
var (
	BuildURLFailed    = Code{1001, "BUILD_URL_FAILED", "failed to build request URL"}
	NullRegion        = Code{1002, "NULL_REGION", "region is not set"}
	NullCluster       = Code{1003, "NULL_CLUSTER", "cluster is not set"}
	NullMethod        = Code{1004, "NULL_METHOD", "method block is not set"}
	NullApplicationID = Code{1005, "NULL_APPLICATION_ID", "application_id is not set"}
	NullParameter     = Code{1006, "NULL_PARAMETER", "parameter name is empty"}
	NoSuchRegion      = Code{1007, "NO_SUCH_REGION", "cluster is not served in this region"}

	RequestFailed          = Code{1101, "REQUEST_FAILED", "failed to create request"}
	RequestGetFailed       = Code{1102, "REQUEST_GET_FAILED", "GET request failed"}
	RequestPostFailed      = Code{1103, "REQUEST_POST_FAILED", "POST request failed"}
	RequestGetAsyncFailed  = Code{1104, "REQUEST_GET_ASYNC_FAILED", "asynchronous GET request failed"}
	RequestPostAsyncFailed = Code{1105, "REQUEST_POST_ASYNC_FAILED", "asynchronous POST request failed"}

	ParsingFailed = Code{1201, "PARSING_FAILED", "failed to parse response"}
	ResponseError = Code{1202, "RESPONSE_ERROR", "unknown error from remote service"}
)

// Conditions reported by the remote service in the envelope's error object.
var (
	AuthCancel             = Code{401, "AUTH_CANCEL", "user cancelled authorization for application"}
	AuthExpired            = Code{401, "AUTH_EXPIRED", "user authorization for application expired"}
	AuthError              = Code{401, "AUTH_ERROR", "authentication error"}
	FieldNotSpecified      = Code{402, "FIELD_NOT_SPECIFIED", "required field " + FieldPlaceholder + " is not specified"}
	FieldNotFound          = Code{404, "FIELD_NOT_FOUND", "invalid value of field " + FieldPlaceholder}
	MethodNotFound         = Code{404, "METHOD_NOT_FOUND", "invalid API method"}
	MethodDisabled         = Code{405, "METHOD_DISABLED", "specified method is disabled"}
	FieldListLimitExceeded = Code{407, "FIELD_LIST_LIMIT_EXCEEDED", "limit of passed-in identifiers in " + FieldPlaceholder + " exceeded"}
	ApplicationIsBlocked   = Code{407, "APPLICATION_IS_BLOCKED", "application is blocked by the administration"}
	InvalidField           = Code{407, "INVALID_FIELD", "specified field value " + FieldPlaceholder + " is not valid"}
	InvalidApplicationID   = Code{407, "INVALID_APPLICATION_ID", "invalid application_id"}
	InvalidAccessToken     = Code{407, "INVALID_ACCESS_TOKEN", "invalid access_token"}
	InvalidIPAddress       = Code{407, "INVALID_IP_ADDRESS", "invalid IP-address for the server application"}
	RequestLimitExceeded   = Code{407, "REQUEST_LIMIT_EXCEEDED", "request limit is exceeded"}
	NotEnoughFieldLength   = Code{407, "NOT_ENOUGH_FIELD_LENGTH", "not enough characters in " + FieldPlaceholder}
	SourceNotAvailable     = Code{504, "SOURCE_NOT_AVAILABLE", "data source is not available"}
)

// remote lists the lookup candidates. Order matters: the first match wins.
var remote = []Code{
	AuthCancel,
	AuthExpired,
	AuthError,
	FieldNotSpecified,
	MethodNotFound,
	FieldNotFound,
	MethodDisabled,
	ApplicationIsBlocked,
	InvalidApplicationID,
	InvalidAccessToken,
	InvalidIPAddress,
	RequestLimitExceeded,
	NotEnoughFieldLength,
	FieldListLimitExceeded,
	InvalidField,
	SourceNotAvailable,
}

// Catalog returns every remote code in lookup order
func Catalog() []Code {
	out := make([]Code, len(remote))
	copy(out, remote)
	return out
}

// NormalizeMessage replaces the upper-cased field name in message with the FIELD token
func NormalizeMessage(message, field string) string {
	message = strings.ToUpper(strings.TrimSpace(message))
	field = strings.ToUpper(strings.TrimSpace(field))
	if field == "" || field == fieldToken {
		return message
	}
	return strings.ReplaceAll(message, field, fieldToken)
}

// Lookup finds the catalogued code for a remote error.
// Both the numeric code and the message must agree. A catalogued name equal
// to the raw message wins, so INVALID_ACCESS_TOKEN keeps its own entry even
// when field is access_token. Otherwise the normalized message is matched,
// exact names before substrings.
func Lookup(number int, message, field string) (Code, bool) {
	normalized := NormalizeMessage(message, field)
	if normalized == "" {
		return Code{}, false
	}

	raw := strings.ToUpper(strings.TrimSpace(message))
	for _, c := range remote {
		if c.Number == number && c.Name == raw {
			return c, true
		}
	}
	for _, c := range remote {
		if c.Number == number && c.Name == normalized {
			return c, true
		}
	}
	for _, c := range remote {
		if c.Number == number && strings.Contains(c.Name, normalized) {
			return c, true
		}
	}
	return Code{}, false
}
