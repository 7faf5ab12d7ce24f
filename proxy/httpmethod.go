package proxy

import (
	"strings"

	"github.com/pkg/errors"
)

// HttpMethod is an enum of the standard Http Methods.
type HttpMethod int

const (
	GET HttpMethod = iota
	HEAD
	POST
	PUT
	DELETE
	CONNECT
	OPTIONS
	TRACE
	PATCH
)

var httpMethodNames = [...]string{"GET", "HEAD", "POST", "PUT", "DELETE", "CONNECT", "OPTIONS", "TRACE", "PATCH"}

// String returns the method name as it appears on the wire.
func (m HttpMethod) String() string {
	if m < 0 || int(m) >= len(httpMethodNames) {
		return "UNKNOWN"
	}

	return httpMethodNames[m]
}

// ParseHttpMethod returns the HttpMethod for name, ignoring case.
func ParseHttpMethod(name string) (HttpMethod, error) {
	for i, candidate := range httpMethodNames {
		if strings.EqualFold(candidate, name) {
			return HttpMethod(i), nil
		}
	}

	return 0, errors.Errorf("unknown http method '%s'", name)
}
