package proxy

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/prognoshealth/webhookproxy/lambdautils"
	"github.com/prognoshealth/webhookproxy/webhook"
)

// LambdaHandler is the signature passed to lambda.Start.
type LambdaHandler func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayProxyResponse, error)

// NewWebhookRouter returns a router serving the webhook endpoints under
// basePath. Preflight requests are answered on any path.
func NewWebhookRouter(h *webhook.Handler, basePath string) *Router {
	router := &Router{BasePath: basePath}

	router.AddRouteIfNoError(NewRoute(OPTIONS, ".*", func(*RouteContext) (events.APIGatewayProxyResponse, error) {
		return toProxyResponse(webhook.Preflight()), nil
	}))

	router.GET("", func(*RouteContext) (events.APIGatewayProxyResponse, error) {
		return toProxyResponse(h.Health()), nil
	})

	router.GET("/test", func(*RouteContext) (events.APIGatewayProxyResponse, error) {
		return toProxyResponse(h.Index()), nil
	})

	probe := func(ctx *RouteContext) (events.APIGatewayProxyResponse, error) {
		return toProxyResponse(h.Probe(ctx.Context, ctx.Request.QueryStringParameters["message"])), nil
	}
	router.GET("/webhook/test", probe)
	router.POST("/webhook/test", probe)

	forward := func(ctx *RouteContext) (events.APIGatewayProxyResponse, error) {
		req, err := ctx.WebhookRequest()
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}

		return toProxyResponse(h.Handle(ctx.Context, req)), nil
	}
	router.GET("/webhook", forward)
	router.POST("/webhook", forward)

	router.AddCatchAllHandler(func(_ context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayProxyResponse, error) {
		return toProxyResponse(h.NotFound(request.RequestContext.HTTP.Method, request.RawPath)), nil
	})

	router.AddErrorHandler(func(_ context.Context, _ events.APIGatewayV2HTTPRequest, err error) (events.APIGatewayProxyResponse, error) {
		return toProxyResponse(h.Fail(err)), nil
	})

	return router
}

// Handler wraps router for lambda.Start, logging each invocation with its
// lambda metadata.
func Handler(router *Router, log *slog.Logger) LambdaHandler {
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "proxy.lambda")

	return func(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayProxyResponse, error) {
		meta := lambdautils.GetLambdaMetaData(ctx)
		invocationLog := log.With(meta.LogAttrs())

		invocationLog.Info("Received request", "method", request.RequestContext.HTTP.Method, "path", request.RawPath)

		response, err := router.Route(ctx, request)
		if err != nil {
			invocationLog.Error("Request failed", "error", err)
			return response, err
		}

		invocationLog.Info("Request completed", "status", response.StatusCode)
		return response, nil
	}
}

func toProxyResponse(resp webhook.Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      resp.StatusCode,
		Headers:         resp.Headers,
		Body:            string(resp.Body),
		IsBase64Encoded: false,
	}
}
