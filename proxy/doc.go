// Package proxy hosts the webhook handler as an aws lambda function behind an
// aws api gateway v2 (http) integration. Requests arrive as
// events.APIGatewayV2HTTPRequest, are matched by a small regex Router and
// answered with events.APIGatewayProxyResponse.
//
// NewWebhookRouter wires the webhook routes; Handler wraps a router into the
// function passed to lambda.Start.
//
// The router is designed to be as simplistic as possible and is not feature
// rich.
package proxy
