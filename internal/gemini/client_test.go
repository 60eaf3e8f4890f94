package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(serverURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL: serverURL,
		Model:   "gemini-pro",
	})
}

func TestGenerateTextSuccess(t *testing.T) {
	var gotPath string
	var gotKey string
	var gotBody GenerateContentRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}

		resp := GenerateContentResponse{
			Candidates: []ResponseCandidate{
				{Content: Content{Parts: []Part{{Text: "generated text"}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	text, err := client.GenerateText(context.Background(), "secret-key", "say hi")
	if err != nil {
		t.Fatalf("GenerateText failed: %v", err)
	}
	if text != "generated text" {
		t.Errorf("expected 'generated text', got %q", text)
	}

	if gotPath != "/v1beta/models/gemini-pro:generateContent" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotKey != "secret-key" {
		t.Errorf("expected API key in query, got %q", gotKey)
	}
	if len(gotBody.Contents) != 1 || gotBody.Contents[0].Parts[0].Text != "say hi" {
		t.Errorf("prompt not forwarded: %+v", gotBody.Contents)
	}
	if gotBody.GenerationConfig != DefaultGenerationConfig() {
		t.Errorf("generation config not fixed: %+v", gotBody.GenerationConfig)
	}
	if len(gotBody.SafetySettings) != 4 {
		t.Errorf("expected 4 safety settings, got %d", len(gotBody.SafetySettings))
	}
}

func TestGenerateTextStructuredError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GenerateText(context.Background(), "bad-key", "say hi")
	if err == nil {
		t.Fatal("expected an error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != 400 {
		t.Errorf("expected embedded status 400, got %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Message, "API key not valid") {
		t.Errorf("expected provider message preserved, got %q", apiErr.Message)
	}
}

func TestGenerateTextUnreadableError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream blew up"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GenerateText(context.Background(), "key", "say hi")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != 502 {
		t.Errorf("expected status 502, got %d", apiErr.StatusCode)
	}
}

func TestGenerateTextBlockedPrompt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(GenerateContentResponse{
			PromptFeedback: &PromptFeedback{BlockReason: "SAFETY"},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GenerateText(context.Background(), "key", "something nasty")
	if err == nil {
		t.Fatal("expected an error for blocked prompt")
	}

	var blocked *BlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected *BlockedError, got %T: %v", err, err)
	}
	if !strings.HasPrefix(err.Error(), "Blocked reason") {
		t.Errorf("blocked error must carry the 'Blocked reason' prefix, got %q", err.Error())
	}
}

func TestGenerateTextBlockedCandidate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(GenerateContentResponse{
			Candidates: []ResponseCandidate{
				{FinishReason: "SAFETY"},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GenerateText(context.Background(), "key", "something nasty")
	var blocked *BlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected *BlockedError, got %T: %v", err, err)
	}
}

func TestGenerateTextEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(GenerateContentResponse{})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	text, err := client.GenerateText(context.Background(), "key", "say hi")
	if err != nil {
		t.Fatalf("expected no error for empty candidates, got %v", err)
	}
	if text != "" {
		t.Errorf("expected empty text, got %q", text)
	}
}
