package gemini

// Part wraps a single piece of prompt or generated text
type Part struct {
	Text string `json:"text"`
}

// Content is a single message in the generation request or response
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerationConfig holds the tuning parameters sent with every request.
// These are process-wide constants, not user-configurable.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// SafetySetting is a (category, threshold) pair governing provider-side content filtering
type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// GenerateContentRequest is the payload for the generateContent endpoint
type GenerateContentRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
	SafetySettings   []SafetySetting  `json:"safetySettings"`
}

// ResponseCandidate is one generation candidate in the provider response
type ResponseCandidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// PromptFeedback carries provider-side safety feedback about the prompt
type PromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

// GenerateContentResponse is the provider's response payload
type GenerateContentResponse struct {
	Candidates     []ResponseCandidate `json:"candidates"`
	PromptFeedback *PromptFeedback     `json:"promptFeedback,omitempty"`
}

// errorEnvelope is the provider's structured error body
type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// DefaultGenerationConfig returns the fixed tuning parameters used for every request
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Temperature:     0.9,
		TopK:            1,
		TopP:            1,
		MaxOutputTokens: 2048,
	}
}

// DefaultSafetySettings returns the fixed content-filtering policy used for every request
func DefaultSafetySettings() []SafetySetting {
	return []SafetySetting{
		{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
		{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
		{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
		{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	}
}
