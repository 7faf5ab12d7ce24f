package webhook

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// forwardedFields are the only POST body fields passed to the remote webhook.
var forwardedFields = []string{"message", "user", "timestamp"}

// Params is the outbound parameter map attached to the remote call as its
// query string.
type Params map[string]string

// Values returns params as url.Values.
func (p Params) Values() url.Values {
	values := make(url.Values, len(p))
	for key, value := range p {
		values.Set(key, value)
	}

	return values
}

// ExtractParams derives the outbound parameters for req. It never fails: an
// unparseable POST body is treated as an empty object.
func ExtractParams(req Request) Params {
	if strings.EqualFold(req.Method, http.MethodPost) {
		return paramsFromBody(req.Body)
	}

	params := make(Params, len(req.Query))
	for key, value := range req.Query {
		params[key] = value
	}

	return params
}

func paramsFromBody(body []byte) Params {
	params := make(Params)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return params
	}

	for _, name := range forwardedFields {
		if raw, ok := fields[name]; ok {
			params[name] = stringValue(raw)
		}
	}

	return params
}

// stringValue renders a JSON value as a query parameter value. Strings are
// unquoted, null is empty and everything else keeps its JSON text.
func stringValue(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}

	return string(trimmed)
}
