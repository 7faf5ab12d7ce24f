package webhook

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds the outbound call when Config.Timeout is unset.
const DefaultTimeout = 30 * time.Second

// Doer issues HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Result is the remote webhook's answer.
type Result struct {
	StatusCode int
	Body       []byte
}

// Forwarder issues the single outbound GET to the remote webhook.
type Forwarder struct {
	target  *url.URL
	timeout time.Duration
	client  Doer
}

// NewForwarder returns a Forwarder for cfg. A nil client falls back to a
// plain *http.Client; the timeout is enforced through the request context
// either way.
func NewForwarder(cfg Config, client Doer) (*Forwarder, error) {
	if cfg.URL == "" {
		return nil, errors.New("webhook url is required")
	}

	target, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed parsing webhook url %q", cfg.URL)
	}

	if !target.IsAbs() || target.Host == "" {
		return nil, errors.Errorf("webhook url %q must be absolute", cfg.URL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if client == nil {
		client = &http.Client{}
	}

	return &Forwarder{
		target:  target,
		timeout: timeout,
		client:  client,
	}, nil
}

// Timeout returns the bound applied to each outbound call.
func (f *Forwarder) Timeout() time.Duration {
	return f.timeout
}

// URL returns the outbound request URL for params. Parameters are merged onto
// any query the configured URL already carries.
func (f *Forwarder) URL(params Params) string {
	target := *f.target
	query := target.Query()
	for key, value := range params {
		query.Set(key, value)
	}
	target.RawQuery = query.Encode()

	return target.String()
}

// Forward sends params to the remote webhook and reads the full response.
// Failures are returned as *Error.
func (f *Forwarder) Forward(ctx context.Context, params Params) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(params), nil)
	if err != nil {
		return nil, &Error{Kind: KindUnexpected, Err: errors.Wrap(err, "failed building outbound request")}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(ctx, err)
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
