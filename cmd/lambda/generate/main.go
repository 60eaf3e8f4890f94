package main

import (
	"context"
	"net/http"

	"prompt-relay-api/internal/handlers"
	"prompt-relay-api/internal/middleware"
	"prompt-relay-api/pkg/lambda"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
)

// corsHeaders returns the permissive header set carried by every response
func corsHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Credentials": "true",
		"Access-Control-Allow-Origin":      "*",
		"Access-Control-Allow-Methods":     "POST, OPTIONS",
		"Access-Control-Allow-Headers":     middleware.AllowedHeaders,
	}
}

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	headers := corsHeaders()

	// Preflight short-circuits with 200 and no body
	if event.HTTPMethod == http.MethodOptions {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    headers,
		}, nil
	}

	if event.HTTPMethod != http.MethodPost {
		headers["Allow"] = http.MethodPost
		headers["Content-Type"] = "application/json"
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusMethodNotAllowed,
			Headers:    headers,
			Body:       `{"error": "Método no permitido. Usa POST."}`,
		}, nil
	}

	container, err := lambda.GetConnectionManager().GetContainer(ctx)
	if err != nil {
		headers["Content-Type"] = "application/json"
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    headers,
			Body:       `{"error": "Internal server error"}`,
		}, nil
	}

	req := &lambda.Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        []byte(event.Body),
	}

	generateHandler := handlers.NewGenerateHandler(container.GenerationService)
	resp, err := generateHandler.HandleGenerate(ctx, req)
	if err != nil {
		headers["Content-Type"] = "application/json"
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    headers,
			Body:       `{"error": "Internal server error"}`,
		}, nil
	}

	for k, v := range resp.Headers {
		headers[k] = v
	}

	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       string(resp.Body),
	}, nil
}

func main() {
	awslambda.Start(handler)
}
