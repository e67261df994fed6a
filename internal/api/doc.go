// Package api exposes the oracle over HTTP. Handlers decode and validate
// JSON requests, call the application services and map their errors to
// status codes and safe messages.
package api
