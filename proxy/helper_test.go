package proxy

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/aws/aws-lambda-go/events"
)

func testHandler(*RouteContext) (events.APIGatewayProxyResponse, error) {
	return events.APIGatewayProxyResponse{StatusCode: 200}, nil
}

func testRequest(method HttpMethod, path string) events.APIGatewayV2HTTPRequest {
	request := events.APIGatewayV2HTTPRequest{RawPath: path, Headers: map[string]string{}}
	request.RequestContext.HTTP.Method = method.String()

	return request
}

// fixtureRequest loads an API Gateway v2 event recorded under testdata.
func fixtureRequest(name string) events.APIGatewayV2HTTPRequest {
	file := filepath.Join("testdata", "events", name+".json")

	content, err := os.ReadFile(file)
	if err != nil {
		panic(err)
	}

	var request events.APIGatewayV2HTTPRequest
	if err := json.Unmarshal(content, &request); err != nil {
		panic(err)
	}

	return request
}
