// Package httputil provides HTTP plumbing for the barbell server.
//
// # Overview
//
// This package provides infrastructure used by every handler:
//
//   - [WriteJSON] and [WriteError]: JSON responses, with coded errors from
//     pkg/errors mapped to HTTP status codes
//   - [Instrument]: request logging and [observability.HTTPHooks] reporting
//   - [ClientID]: a cookie-backed anonymous client id for per-client
//     preferences
//
// # Errors
//
// Errors are written as
//
//	{"error": {"code": "INVALID_INPUT", "message": "invalid target weight: \"abc\""}}
//
// with the status chosen by [StatusFor]. Input errors are 400, NOT_FOUND is
// 404, UNSUPPORTED is 501 and an unavailable storage backend is 503. Other
// errors are 500 and their messages are not exposed to clients.
//
// # Client ids
//
// [ClientID] reads the barbell_client cookie, issuing a fresh UUID when it is
// missing or malformed, and stores the id in the request context:
//
//	r.Use(httputil.ClientID(httputil.CookieOptions{}))
//	id := httputil.ClientIDFrom(r.Context())
package httputil
