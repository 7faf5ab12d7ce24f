package webhook

import (
	"context"
	"net"
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies a failure at the outbound boundary.
type Kind int

const (
	// KindUnexpected is any failure that is neither a timeout nor a transport
	// error.
	KindUnexpected Kind = iota
	// KindTimeout means the remote webhook did not answer in time.
	KindTimeout
	// KindConnection covers DNS, dial, reset and malformed response errors.
	KindConnection
)

var kindStatus = map[Kind]string{
	KindUnexpected: "server_error",
	KindTimeout:    "timeout",
	KindConnection: "connection_error",
}

var kindCode = map[Kind]int{
	KindUnexpected: http.StatusInternalServerError,
	KindTimeout:    http.StatusRequestTimeout,
	KindConnection: http.StatusBadGateway,
}

// Status returns the value used for the "status" field of error bodies.
func (k Kind) Status() string {
	return kindStatus[k]
}

// StatusCode returns the HTTP status reported to the caller.
func (k Kind) StatusCode() int {
	return kindCode[k]
}

func (k Kind) String() string {
	return k.Status()
}

// Error is a classified failure.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}

	return e.Err.Error()
}

// Unwrap supports errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Cause supports errors.Cause.
func (e *Error) Cause() error {
	return e.Err
}

// KindOf returns the kind carried by err, or KindUnexpected when err was never
// classified.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}

	return KindUnexpected
}

// classify turns an error returned while talking to the remote webhook into a
// timeout or connection failure.
func classify(ctx context.Context, err error) *Error {
	if isTimeout(ctx, err) {
		return &Error{Kind: KindTimeout, Err: errors.WithStack(err)}
	}

	return &Error{Kind: KindConnection, Err: errors.WithStack(err)}
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
