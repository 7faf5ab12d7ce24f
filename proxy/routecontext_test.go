package proxy

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteContext_Body(t *testing.T) {
	request := testRequest(POST, "/webhook")
	request.Body = "some content"

	ctx := &RouteContext{Request: request}

	actual, err := ctx.Body()

	assert.NoError(t, err)
	assert.Equal(t, "some content", actual)
}

func TestRouteContext_Body_encoded(t *testing.T) {
	request := testRequest(POST, "/webhook")
	request.Body = base64.StdEncoding.EncodeToString([]byte(`{"message": "hey"}`))
	request.IsBase64Encoded = true

	ctx := &RouteContext{Request: request}

	actual, err := ctx.Body()

	assert.NoError(t, err)
	assert.Equal(t, `{"message": "hey"}`, actual)
}

func TestRouteContext_Body_error(t *testing.T) {
	request := testRequest(POST, "/webhook")
	request.Body = "sefdfxsdf.d.dsd"
	request.IsBase64Encoded = true

	ctx := &RouteContext{Request: request}

	_, err := ctx.Body()

	assert.Error(t, err)
}

func TestRouteContext_Query(t *testing.T) {
	request := fixtureRequest("webhook-get")
	ctx := &RouteContext{Request: request}

	query := ctx.Query()
	assert.Equal(t, map[string]string{
		"message": "hello",
		"user":    "bob",
		"session": "s-1",
		"tag":     "a,b",
	}, query)

	query["message"] = "changed"
	assert.Equal(t, "hello", request.QueryStringParameters["message"])
}

func TestRouteContext_Query_none(t *testing.T) {
	ctx := &RouteContext{Request: testRequest(GET, "/webhook")}

	assert.Empty(t, ctx.Query())
}

func TestRouteContext_WebhookRequest(t *testing.T) {
	ctx := &RouteContext{Request: fixtureRequest("webhook-post")}

	req, err := ctx.WebhookRequest()

	assert.NoError(t, err)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, `{"message": "hi", "user": "alice", "extra": "ignored"}`, string(req.Body))
	assert.Empty(t, req.Query)
}

func TestRouteContext_WebhookRequest_error(t *testing.T) {
	request := testRequest(POST, "/webhook")
	request.Body = "%%%"
	request.IsBase64Encoded = true

	_, err := (&RouteContext{Request: request}).WebhookRequest()

	assert.Error(t, err)
}
