// Package httputil provides HTTP helpers for the browser session server.
//
// # Responses
//
// [WriteJSON] writes a value as an indented JSON body. [WriteError] maps a
// structured error from pkg/errors onto an HTTP status and writes it as
//
//	{"code": "INVALID_INPUT", "error": "key must be a string"}
//
// Status mapping:
//
//   - INVALID_INPUT, INVALID_KEY: 400
//   - NOT_FOUND: 404
//   - everything else: 500
//
// # Middleware
//
// [Observe] reports every served request to the registered
// observability.HTTPHooks with its method, route path, status and latency.
package httputil
