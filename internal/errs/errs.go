// Package errs defines the error types returned to API clients.
//
// HTTPError is the single response shape for failures; FieldError carries
// per-field validation messages inside it.
package errs
