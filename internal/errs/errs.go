// Package errs defines the error shape returned to API clients.
//
// Every failure that is not an explicit application response is converted
// into an HTTPError by the global error handler and serialized as JSON, so
// clients always receive the same structure.
package errs
