//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

type optimizeResponse struct {
	Results []Result `json:"results"`
	TotalMs int64    `json:"totalMs"`
}

// lambdaConfig is loaded once per cold start from INSPECT_* variables.
var lambdaConfig = mustLoadLambdaConfig()

func mustLoadLambdaConfig() Config {
	cfg, err := LoadConfig("")
	if err != nil {
		logf("config", "falling back to defaults: %v", err)
		return DefaultConfig()
	}
	return cfg
}

// handler solves every instance in the request body. The body is JSON when it
// starts with '{' or '[' and instance CSV rows otherwise.
func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}

	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return errResp(400, "empty body")
	}
	asJSON := trimmed[0] == '{' || trimmed[0] == '['
	instances, err := readInstances(strings.NewReader(body), asJSON)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			return errResp(400, "invalid instances: "+perr.Error())
		}
		return errResp(400, err.Error())
	}
	if len(instances) == 0 {
		return errResp(400, "no instances in body")
	}

	batch := SolveAll(ctx, instances, lambdaConfig)
	respJSON, _ := json.Marshal(optimizeResponse{Results: batch.Results, TotalMs: batch.Elapsed.Milliseconds()})
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	lambda.Start(handler)
}
