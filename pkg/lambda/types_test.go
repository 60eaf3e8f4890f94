package lambda

import (
	"strings"
	"testing"
)

func TestRequestHeaderLookup(t *testing.T) {
	req := &Request{
		Headers: map[string]string{
			"Content-Type":  "application/json",
			"x-request-id":  "abc-123",
			"Authorization": "Bearer token",
		},
	}

	if got := req.Header("Content-Type"); got != "application/json" {
		t.Errorf("exact match failed: %q", got)
	}
	if got := req.Header("content-type"); got != "application/json" {
		t.Errorf("lowercase lookup failed: %q", got)
	}
	if got := req.Header("X-Request-ID"); got != "abc-123" {
		t.Errorf("mixed-case lookup failed: %q", got)
	}
	if got := req.Header("X-Missing"); got != "" {
		t.Errorf("expected empty value for missing header, got %q", got)
	}
}

func TestNewJSONResponse(t *testing.T) {
	resp := NewJSONResponse(201, map[string]string{"status": "created"})

	if resp.StatusCode != 201 {
		t.Errorf("expected status 201, got %d", resp.StatusCode)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("expected JSON content type, got %q", resp.Headers["Content-Type"])
	}
	if string(resp.Body) != `{"status":"created"}` {
		t.Errorf("unexpected body: %s", resp.Body)
	}
}

func TestNewJSONResponseMarshalFailure(t *testing.T) {
	// Channels cannot be marshalled
	resp := NewJSONResponse(200, map[string]interface{}{"ch": make(chan int)})

	if resp.StatusCode != 500 {
		t.Errorf("expected 500 on marshal failure, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(resp.Body), "Internal server error") {
		t.Errorf("unexpected fallback body: %s", resp.Body)
	}
}
