package handlers

// ErrorResponse is the error body returned by every endpoint. The single
// "error" field is a compatibility contract with the calling frontend.
type ErrorResponse struct {
	Error string `json:"error"`
}
