// Package api implements the HTTP REST API for the recipe manager.
//
// This package provides:
//   - REST endpoints for accounts, recipes, components, ingredients and steps
//   - Bearer token verification that degrades to anonymous on any failure
//   - Route-level permission gates and the mapping of domain errors to responses
//   - Middleware stack (request ID, logging, metrics, recovery, CORS, body limit)
//   - Prometheus metrics at /metrics and a health endpoint at /api/health
//
// # Security
//
// The token middleware never rejects a request. Route groups require a
// permission derived from the caller's authorities and answer 403 otherwise.
// Ownership of individual recipes is enforced by the recipe service, not here.
//
// # Errors
//
// Every error body is {"status", "message", "timestamp"} except 401, which
// has no body.
package api
