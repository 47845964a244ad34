// Package handler is the HTTP layer between the router and the services.
//
// Handlers bind and validate requests through the validation package and
// hand the result to a service.
package handler
