package lambdautils

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

// LambdaMetaData stores details about the current lambda invocation.
type LambdaMetaData struct {
	FunctionName    string
	FunctionVersion string
	LogGroupName    string
	LogStreamName   string
	MemoryLimitInMB int
	Context         *lambdacontext.LambdaContext
}

// GetLambdaMetaData returns MetaData extracted from the current lambda context.
// Context is nil outside of a lambda invocation.
func GetLambdaMetaData(ctx context.Context) LambdaMetaData {
	lm := LambdaMetaData{
		FunctionName:    lambdacontext.FunctionName,
		FunctionVersion: lambdacontext.FunctionVersion,
		LogGroupName:    lambdacontext.LogGroupName,
		LogStreamName:   lambdacontext.LogStreamName,
		MemoryLimitInMB: lambdacontext.MemoryLimitInMB,
	}

	lm.Context, _ = lambdacontext.FromContext(ctx)
	return lm
}

// RequestID returns the aws request id of the invocation, or "" when unknown.
func (lm LambdaMetaData) RequestID() string {
	if lm.Context == nil {
		return ""
	}

	return lm.Context.AwsRequestID
}

// LogAttrs returns the metadata as a slog group for attaching to a logger.
func (lm LambdaMetaData) LogAttrs() slog.Attr {
	attrs := []any{
		slog.String("function", lm.FunctionName),
		slog.String("version", lm.FunctionVersion),
	}

	if id := lm.RequestID(); id != "" {
		attrs = append(attrs, slog.String("request_id", id))
	}

	if lm.Context != nil && lm.Context.InvokedFunctionArn != "" {
		attrs = append(attrs, slog.String("arn", lm.Context.InvokedFunctionArn))
	}

	return slog.Group("lambda", attrs...)
}
