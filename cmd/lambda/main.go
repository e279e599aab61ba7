package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"resume-generator/internal/bootstrap"
	"resume-generator/internal/generation"
	"resume-generator/internal/shared/config"
)

var (
	initOnce sync.Once
	initErr  error
	app      *bootstrap.App
)

func initApp() {
	cfg := config.Load()
	built, err := bootstrap.Build(cfg)
	if err != nil {
		initErr = err
		return
	}
	app = built
}

func handler(ctx context.Context, event json.RawMessage) (generation.Response, error) {
	initOnce.Do(initApp)
	if initErr != nil {
		log.Printf("bootstrap error: %v", initErr)
		body, _ := json.Marshal(generation.ErrorBody{Error: "bootstrap failed"})
		return generation.Response{StatusCode: http.StatusInternalServerError, Body: string(body)}, nil
	}

	if lc, ok := lambdacontext.FromContext(ctx); ok {
		ctx = generation.WithRequestID(ctx, lc.AwsRequestID)
	}
	return app.GenerationService.Handle(ctx, unwrapProxyBody(event)), nil
}

// unwrapProxyBody accepts both direct invocations and proxy events whose
// request sits in a string "body" field, base64 encoded or not. A body that
// does not decode is passed on as is and fails request validation.
func unwrapProxyBody(event json.RawMessage) []byte {
	var proxy struct {
		Body            *string `json:"body"`
		IsBase64Encoded bool    `json:"isBase64Encoded"`
	}
	if err := json.Unmarshal(event, &proxy); err != nil || proxy.Body == nil {
		return event
	}
	if proxy.IsBase64Encoded {
		if decoded, err := base64.StdEncoding.DecodeString(*proxy.Body); err == nil {
			return decoded
		}
	}
	return []byte(*proxy.Body)
}

func main() {
	lambda.Start(handler)
}
