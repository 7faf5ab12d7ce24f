package webhook

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

const (
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderAllowHeaders = "Access-Control-Allow-Headers"
	HeaderMaxAge       = "Access-Control-Max-Age"
	HeaderContentType  = "Content-Type"

	allowOrigin  = "*"
	allowMethods = "GET, POST, OPTIONS"
	allowHeaders = "Content-Type, Authorization"
	maxAge       = "3600"
	contentJSON  = "application/json"

	emptyRemoteMessage = "Response received from N8N"
)

// Request is the host-neutral view of an inbound call.
type Request struct {
	Method string
	Query  map[string]string
	Body   []byte
}

// Response is what the host writes back. Body is empty for preflight.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// CORSHeaders returns the headers attached to every JSON response.
func CORSHeaders() map[string]string {
	return map[string]string{
		HeaderAllowOrigin:  allowOrigin,
		HeaderAllowMethods: allowMethods,
		HeaderAllowHeaders: allowHeaders,
		HeaderContentType:  contentJSON,
	}
}

// Preflight answers a CORS preflight request.
func Preflight() Response {
	return Response{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			HeaderAllowOrigin:  allowOrigin,
			HeaderAllowMethods: allowMethods,
			HeaderAllowHeaders: allowHeaders,
			HeaderMaxAge:       maxAge,
		},
	}
}

type successPayload struct {
	Message   string `json:"message"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type errorPayload struct {
	Error     string `json:"error"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// HealthPayload is served on the root path.
type HealthPayload struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
	N8NWebhook string `json:"n8n_webhook"`
}

// IndexPayload is served on /test.
type IndexPayload struct {
	Message   string   `json:"message"`
	Timestamp string   `json:"timestamp"`
	Endpoints []string `json:"endpoints"`
}

// ProbePayload reports the outcome of a test call to the remote webhook.
type ProbePayload struct {
	TestStatus    string `json:"test_status"`
	N8NStatusCode int    `json:"n8n_status_code,omitempty"`
	N8NResponse   string `json:"n8n_response,omitempty"`
	TestParams    Params `json:"test_params,omitempty"`
	Error         string `json:"error,omitempty"`
	Timestamp     string `json:"timestamp"`
}

// Endpoints lists the routes both hosts expose, relative to their base path.
var Endpoints = []string{
	"GET / - Health check",
	"GET/POST /webhook - N8N webhook proxy",
	"GET /test - This test endpoint",
	"GET/POST /webhook/test - Test webhook integration",
}

// jsonResponse encodes v with the CORS headers attached.
func jsonResponse(statusCode int, v any) Response {
	body, err := json.Marshal(v)
	if err != nil {
		statusCode = http.StatusInternalServerError
		body = []byte(`{"error":"Unexpected error: failed encoding response","status":"server_error"}`)
	}

	return Response{
		StatusCode: statusCode,
		Headers:    CORSHeaders(),
		Body:       body,
	}
}

// rawJSONResponse relays body unchanged with the CORS headers attached.
func rawJSONResponse(statusCode int, body []byte) Response {
	return Response{
		StatusCode: statusCode,
		Headers:    CORSHeaders(),
		Body:       body,
	}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// formatSeconds renders d the way the timeout message expects: "30", "0.5".
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
