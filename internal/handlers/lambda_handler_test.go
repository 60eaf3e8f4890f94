package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"prompt-relay-api/internal/services"
	"prompt-relay-api/pkg/lambda"
)

func newLambdaHandler(provider services.TextGenerator, apiKey string) *GenerateHandler {
	svc := services.NewGenerationService(provider, func() string { return apiKey }, nil, nil)
	return NewGenerateHandler(svc)
}

func TestHandleGenerateSuccess(t *testing.T) {
	handler := newLambdaHandler(&stubProvider{text: "hello"}, "test-key")

	resp, err := handler.HandleGenerate(context.Background(), &lambda.Request{
		Method: http.MethodPost,
		Path:   "/api/generate",
		Body:   []byte(`{"prompt":"say hi"}`),
	})
	if err != nil {
		t.Fatalf("HandleGenerate failed: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	expected := `{"candidates":[{"content":{"parts":[{"text":"hello"}]}}]}`
	if string(resp.Body) != expected {
		t.Errorf("unexpected body:\n got: %s\nwant: %s", resp.Body, expected)
	}
}

func TestHandleGenerateMissingPrompt(t *testing.T) {
	handler := newLambdaHandler(&stubProvider{text: "hello"}, "test-key")

	resp, err := handler.HandleGenerate(context.Background(), &lambda.Request{
		Method: http.MethodPost,
		Path:   "/api/generate",
		Body:   []byte(`{}`),
	})
	if err != nil {
		t.Fatalf("HandleGenerate failed: %v", err)
	}

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
	expected := `{"error":"El campo \"prompt\" es requerido."}`
	if string(resp.Body) != expected {
		t.Errorf("unexpected body:\n got: %s\nwant: %s", resp.Body, expected)
	}
}

func TestHandleGenerateEmptyBody(t *testing.T) {
	handler := newLambdaHandler(&stubProvider{text: "hello"}, "test-key")

	resp, err := handler.HandleGenerate(context.Background(), &lambda.Request{
		Method: http.MethodPost,
		Path:   "/api/generate",
	})
	if err != nil {
		t.Fatalf("HandleGenerate failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for empty body, got %d", resp.StatusCode)
	}
}

func TestHandleGenerateProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("Blocked reason: SAFETY")}
	handler := newLambdaHandler(provider, "test-key")

	resp, err := handler.HandleGenerate(context.Background(), &lambda.Request{
		Method: http.MethodPost,
		Path:   "/api/generate",
		Body:   []byte(`{"prompt":"something nasty"}`),
	})
	if err != nil {
		t.Fatalf("errors map to responses, not handler failures: %v", err)
	}

	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(resp.Body), "Blocked reason: SAFETY") {
		t.Errorf("expected original error text in body, got %s", resp.Body)
	}
}
