package models

// GenerateRequest is the inbound payload for the generate endpoint
type GenerateRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// Part wraps a single piece of generated text
type Part struct {
	Text string `json:"text"`
}

// Content wraps the parts of a single candidate
type Content struct {
	Parts []Part `json:"parts"`
}

// Candidate represents one generation candidate
type Candidate struct {
	Content Content `json:"content"`
}

// GenerateResponse is the success payload for the generate endpoint.
// The nested candidates/content/parts shape is a compatibility contract
// with the calling frontend and must not change.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// NewGenerateResponse wraps generated text in the response shape expected by the frontend
func NewGenerateResponse(text string) *GenerateResponse {
	return &GenerateResponse{
		Candidates: []Candidate{
			{
				Content: Content{
					Parts: []Part{
						{Text: text},
					},
				},
			},
		},
	}
}

// Text returns the first generated text in the response, or empty string
func (r *GenerateResponse) Text() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return r.Candidates[0].Content.Parts[0].Text
}
