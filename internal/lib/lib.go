// Package lib groups supporting packages that fit no single layer:
// background jobs (asynq), the email client (Resend) and small utilities.
package lib
