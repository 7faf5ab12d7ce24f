// Package webhook forwards inbound webhook calls to a single remote N8N
// webhook and translates the outcome into a JSON response carrying permissive
// CORS headers.
//
// Handler is host neutral: it consumes a Request and produces a Response.
// The proxy (API Gateway / Lambda) and server (gin) packages adapt their
// native request types onto it.
//
// POST bodies are reduced to the message, user and timestamp fields while GET
// query strings are forwarded untouched. Both end up as the query string of a
// single outbound GET.
package webhook
