package gemini

import "fmt"

// APIError is a structured error returned by the provider, carrying the
// embedded HTTP status code and message from the provider's error body.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// BlockedError is returned when the provider blocks a prompt under the safety policy
type BlockedError struct {
	Reason string
}

// Error implements the error interface. The "Blocked reason" prefix is what
// callers match on to classify safety blocks; keep it stable.
func (e *BlockedError) Error() string {
	return fmt.Sprintf("Blocked reason: %s", e.Reason)
}
