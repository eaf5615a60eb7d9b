// Package api contains the HTTP handlers for users, plantings and the index
// route, the request DTOs they validate, and the mapping from service and
// store errors to status codes and client-safe messages.
//
// Route registration lives in cmd/server; authentication and tracing live in
// the middleware subpackage.
package api
