// Package middleware stores global middleware and the error funnel.
//
// These intercept requests to handle cross-cutting concerns such as
// request ids, request-scoped logging, request logging, CORS, tracing,
// Prometheus metrics and panic recovery.
package middleware
