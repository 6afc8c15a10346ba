// Package errs defines the error shapes returned to API clients.
//
// Every failure that reaches a client is an *HTTPError so responses have a
// consistent JSON structure: a machine-friendly code, a message, the HTTP
// status and optional field-level details.
package errs
