// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or email formats) and extracts validation
// errors into a format the client can understand.
//
// Payloads implementing FormRequest declare a RuleSet per request, which may
// depend on the authenticated user (e.g. uniqueness ignoring their own row).
// Any other payload is only bound; a value of the wrong JSON type is still
// reported as a field error.
package validation
