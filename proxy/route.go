package proxy

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// RouteHandler serves a request once its route matched.
type RouteHandler func(*RouteContext) (events.APIGatewayProxyResponse, error)

// Route pairs a method with an anchored path pattern. A trailing slash on the
// request path is tolerated.
type Route struct {
	Method  HttpMethod
	Pattern string
	Regex   *regexp.Regexp
	Handler RouteHandler
}

// NewRoute compiles pattern and binds it to handler.
func NewRoute(method HttpMethod, pattern string, handler RouteHandler) (*Route, error) {
	rx, err := regexp.Compile("^" + pattern + "/?$")
	if err != nil {
		return nil, errors.Wrapf(err, "failed compiling regex pattern '%s'", pattern)
	}

	if handler == nil {
		return nil, errors.Errorf("no handler for route %s %s", method, pattern)
	}

	return &Route{Method: method, Pattern: pattern, Regex: rx, Handler: handler}, nil
}

func (route *Route) String() string {
	return fmt.Sprintf("%s %s", route.Method, route.Regex)
}

// IsMatch reports whether request targets this route, along with the
// submatches of the path. Methods compare case-insensitively.
func (route *Route) IsMatch(request events.APIGatewayV2HTTPRequest) (bool, []string) {
	if !strings.EqualFold(request.RequestContext.HTTP.Method, route.Method.String()) {
		return false, nil
	}

	if groups := route.Regex.FindStringSubmatch(request.RawPath); len(groups) > 0 {
		return true, groups
	}

	return false, nil
}

// Context builds the RouteContext handed to the handler. Named groups with a
// non-empty match become Params.
func (route *Route) Context(ctx context.Context, request events.APIGatewayV2HTTPRequest, groups []string) (*RouteContext, error) {
	if len(groups) == 0 {
		return nil, errors.Errorf("no matches available, unable to generate context for route %v", route)
	}

	params := map[string]string{}
	for i, name := range route.Regex.SubexpNames() {
		if i == 0 || name == "" || i >= len(groups) || groups[i] == "" {
			continue
		}
		params[name] = groups[i]
	}

	return &RouteContext{Context: ctx, Request: request, Params: params}, nil
}

// Follow runs the handler for a request IsMatch accepted.
func (route *Route) Follow(ctx context.Context, request events.APIGatewayV2HTTPRequest, groups []string) (events.APIGatewayProxyResponse, error) {
	rctx, err := route.Context(ctx, request, groups)
	if err != nil {
		return events.APIGatewayProxyResponse{}, errors.Wrapf(err, "failed following route %s", route.Pattern)
	}

	return route.Handler(rctx)
}
