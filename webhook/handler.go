package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const defaultProbeMessage = "Hello from test endpoint!"

// Config is the fixed configuration of a Handler.
type Config struct {
	// URL of the remote webhook. Required.
	URL string
	// Timeout bounds each outbound call. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Handler forwards requests to the remote webhook. It holds no per-request
// state and is safe for concurrent use.
type Handler struct {
	url       string
	forwarder *Forwarder
	log       *slog.Logger

	nowFunc func() time.Time
}

// NewHandler returns a Handler for cfg. client may be nil.
func NewHandler(cfg Config, client Doer, log *slog.Logger) (*Handler, error) {
	forwarder, err := NewForwarder(cfg, client)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = slog.Default()
	}

	return &Handler{
		url:       cfg.URL,
		forwarder: forwarder,
		log:       log.With("component", "webhook.handler"),
	}, nil
}

// now is used internally to assist stubs on time.Now() for testing
func (h *Handler) now() time.Time {
	if h.nowFunc != nil {
		return h.nowFunc()
	}

	return time.Now()
}

func (h *Handler) timestamp() string {
	return formatTimestamp(h.now())
}

// Handle proxies req to the remote webhook. OPTIONS requests are answered
// locally. Every failure is reported as a JSON response; Handle never panics.
func (h *Handler) Handle(ctx context.Context, req Request) (resp Response) {
	if strings.EqualFold(req.Method, http.MethodOptions) {
		return Preflight()
	}

	defer func() {
		if r := recover(); r != nil {
			resp = h.Fail(errors.Errorf("%v", r))
		}
	}()

	h.log.Info("Received webhook request", "method", req.Method)

	params := ExtractParams(req)
	h.log.Info("Forwarding to N8N", "params", map[string]string(params))

	result, err := h.forwarder.Forward(ctx, params)
	if err != nil {
		return h.Fail(err)
	}

	h.log.Info("N8N response", "status", result.StatusCode, "bytes", len(result.Body))

	return h.translate(result)
}

// translate relays a JSON body as is and wraps anything else in a success
// envelope. The remote status code is kept either way.
func (h *Handler) translate(result *Result) Response {
	if len(bytes.TrimSpace(result.Body)) > 0 && json.Valid(result.Body) {
		return rawJSONResponse(result.StatusCode, result.Body)
	}

	h.log.Debug("N8N response is not JSON", "body", string(result.Body))

	message := string(result.Body)
	if message == "" {
		message = emptyRemoteMessage
	}

	return jsonResponse(result.StatusCode, successPayload{
		Message:   message,
		Status:    "success",
		Timestamp: h.timestamp(),
	})
}

// Fail renders err as an error response. Errors that were never classified
// are reported as unexpected.
func (h *Handler) Fail(err error) Response {
	kind := KindOf(err)

	var message string
	switch kind {
	case KindTimeout:
		message = fmt.Sprintf("Timeout: N8N webhook did not respond within %s seconds", formatSeconds(h.forwarder.Timeout()))
	case KindConnection:
		message = fmt.Sprintf("Error connecting to N8N webhook: %v", err)
	default:
		message = fmt.Sprintf("Unexpected error: %v", err)
	}

	h.log.Error(message, "status", kind.Status())

	return jsonResponse(kind.StatusCode(), errorPayload{
		Error:     message,
		Status:    kind.Status(),
		Timestamp: h.timestamp(),
	})
}

// Health reports that the proxy is running and where it forwards to.
func (h *Handler) Health() Response {
	return jsonResponse(http.StatusOK, HealthPayload{
		Status:     "running",
		Message:    "N8N Webhook Proxy Server",
		Timestamp:  h.timestamp(),
		N8NWebhook: h.url,
	})
}

// Index lists the available endpoints.
func (h *Handler) Index() Response {
	return jsonResponse(http.StatusOK, IndexPayload{
		Message:   "Test successful! Server is running.",
		Timestamp: h.timestamp(),
		Endpoints: Endpoints,
	})
}

// NotFound answers requests no route matched.
func (h *Handler) NotFound(method, path string) Response {
	return jsonResponse(http.StatusNotFound, errorPayload{
		Error:     fmt.Sprintf("'%s %s' not found", method, path),
		Status:    "not_found",
		Timestamp: h.timestamp(),
	})
}

// Probe sends a synthetic message to the remote webhook and reports the raw
// outcome, whatever the remote status. An empty message uses a default text.
func (h *Handler) Probe(ctx context.Context, message string) Response {
	if message == "" {
		message = defaultProbeMessage
	}

	params := Params{
		"message":   message,
		"user":      "test_user",
		"timestamp": h.timestamp(),
	}

	h.log.Info("Testing N8N webhook", "params", map[string]string(params))

	result, err := h.forwarder.Forward(ctx, params)
	if err != nil {
		h.log.Error("N8N webhook test failed", "error", err)
		return jsonResponse(http.StatusInternalServerError, ProbePayload{
			TestStatus: "failed",
			Error:      err.Error(),
			Timestamp:  h.timestamp(),
		})
	}

	return jsonResponse(http.StatusOK, ProbePayload{
		TestStatus:    "success",
		N8NStatusCode: result.StatusCode,
		N8NResponse:   string(result.Body),
		TestParams:    params,
		Timestamp:     h.timestamp(),
	})
}
