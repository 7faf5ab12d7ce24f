package proxy

import (
	"context"
	"encoding/base64"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"

	"github.com/prognoshealth/webhookproxy/webhook"
)

// RouteContext contains all the request information for a route when matched.
type RouteContext struct {
	Context context.Context
	Request events.APIGatewayV2HTTPRequest
	Params  map[string]string
}

// Body returns a string representation of the request body
func (ctx *RouteContext) Body() (string, error) {
	if ctx.Request.IsBase64Encoded {
		b, err := base64.StdEncoding.DecodeString(ctx.Request.Body)
		if err != nil {
			return "", errors.Wrapf(err, "unable to decode request body for %s %s", ctx.Request.RequestContext.HTTP.Method, ctx.Request.RawPath)
		}

		return string(b), nil
	}

	return ctx.Request.Body, nil
}

// Query returns a copy of the request's query string parameters. API Gateway
// joins repeated keys with commas.
func (ctx *RouteContext) Query() map[string]string {
	query := make(map[string]string, len(ctx.Request.QueryStringParameters))
	for key, value := range ctx.Request.QueryStringParameters {
		query[key] = value
	}

	return query
}

// WebhookRequest converts the API Gateway request into the handler's request.
func (ctx *RouteContext) WebhookRequest() (webhook.Request, error) {
	body, err := ctx.Body()
	if err != nil {
		return webhook.Request{}, err
	}

	return webhook.Request{
		Method: ctx.Request.RequestContext.HTTP.Method,
		Query:  ctx.Query(),
		Body:   []byte(body),
	}, nil
}
