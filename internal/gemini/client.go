package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the production endpoint of the generative language API
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// DefaultModel is the model identifier used when none is configured
const DefaultModel = "gemini-pro"

// ClientConfig holds provider client configuration
type ClientConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *logrus.Logger
}

// Client is a REST client for the Gemini generateContent endpoint.
// The API key is supplied per call, never stored on the client, so a
// missing key stays a per-request configuration error.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	logger     *logrus.Logger
}

// NewClient creates a new Gemini client
func NewClient(config ClientConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Logger == nil {
		config.Logger = logrus.New()
	}

	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		baseURL:    config.BaseURL,
		model:      config.Model,
		logger:     config.Logger,
	}
}

// Model returns the configured model identifier
func (c *Client) Model() string {
	return c.model
}

// GenerateText sends the prompt to the provider with the fixed generation
// config and safety settings, and returns the first candidate's text.
// One synchronous call, no streaming, no retries.
func (c *Client) GenerateText(ctx context.Context, apiKey, prompt string) (string, error) {
	reqBody := GenerateContentRequest{
		Contents: []Content{
			{Parts: []Part{{Text: prompt}}},
		},
		GenerationConfig: DefaultGenerationConfig(),
		SafetySettings:   DefaultSafetySettings(),
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read generation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.decodeError(resp.StatusCode, body)
	}

	var genResp GenerateContentResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}

	if genResp.PromptFeedback != nil && genResp.PromptFeedback.BlockReason != "" {
		c.logger.WithFields(logrus.Fields{
			"model":        c.model,
			"block_reason": genResp.PromptFeedback.BlockReason,
		}).Warn("Prompt blocked by safety policy")
		return "", &BlockedError{Reason: genResp.PromptFeedback.BlockReason}
	}

	if len(genResp.Candidates) == 0 {
		return "", nil
	}

	candidate := genResp.Candidates[0]
	if candidate.FinishReason == "SAFETY" {
		c.logger.WithField("model", c.model).Warn("Candidate blocked by safety policy")
		return "", &BlockedError{Reason: candidate.FinishReason}
	}

	if len(candidate.Content.Parts) == 0 {
		return "", nil
	}

	return candidate.Content.Parts[0].Text, nil
}

// decodeError maps a non-2xx provider response to an error. Structured error
// bodies become an APIError carrying the embedded status and message.
func (c *Client) decodeError(statusCode int, body []byte) error {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		code := envelope.Error.Code
		if code == 0 {
			code = statusCode
		}

		c.logger.WithFields(logrus.Fields{
			"model":       c.model,
			"status_code": code,
			"status":      envelope.Error.Status,
			"message":     envelope.Error.Message,
		}).Error("Provider returned an error")

		return &APIError{
			StatusCode: code,
			Status:     envelope.Error.Status,
			Message:    envelope.Error.Message,
		}
	}

	c.logger.WithFields(logrus.Fields{
		"model":       c.model,
		"status_code": statusCode,
	}).Error("Provider returned an unreadable error")

	return &APIError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("provider request failed with status %d", statusCode),
	}
}
