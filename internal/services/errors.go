package services

import (
	"errors"
	"net/http"
	"strings"

	"prompt-relay-api/internal/gemini"
)

// Typed errors for the generation flow. Each maps to exactly one
// status+message pair in MapError.
var (
	// ErrPromptRequired is returned when the prompt field is missing or empty
	ErrPromptRequired = errors.New("prompt is required")

	// ErrMissingAPIKey is returned when no provider credential is configured
	ErrMissingAPIKey = errors.New("provider API key is not configured")

	// ErrEmptyResult is returned when the provider succeeded but returned no usable text
	ErrEmptyResult = errors.New("provider returned no usable text")
)

// User-facing error messages. The frontend is Spanish-language; the missing
// prompt message in particular is asserted verbatim by the frontend and must
// not change.
const (
	MsgPromptRequired = `El campo "prompt" es requerido.`
	MsgMissingAPIKey  = "La clave de API no está configurada en el servidor."
	MsgEmptyResult    = "El modelo no devolvió una respuesta válida."
	MsgInvalidAPIKey  = "La clave de API no es válida. Verifica la configuración del servidor."
	MsgBlockedPrefix  = "La solicitud fue bloqueada por los filtros de seguridad: "
	MsgGenerateFailed = "Error al generar el contenido. Inténtalo de nuevo más tarde."
)

// MapError normalizes a generation error into an HTTP status code and a
// user-facing message. Provider errors are classified heuristically: errors
// carrying an embedded status are used as-is, otherwise the message text is
// matched against known provider phrasings. The matching is best-effort and
// tracks the provider's current wording.
func MapError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrPromptRequired):
		return http.StatusBadRequest, MsgPromptRequired
	case errors.Is(err, ErrMissingAPIKey):
		return http.StatusInternalServerError, MsgMissingAPIKey
	case errors.Is(err, ErrEmptyResult):
		return http.StatusInternalServerError, MsgEmptyResult
	}

	var apiErr *gemini.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, apiErr.Message
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key not valid"):
		return http.StatusUnauthorized, MsgInvalidAPIKey
	case strings.Contains(msg, "Blocked reason"):
		return http.StatusForbidden, MsgBlockedPrefix + msg
	default:
		return http.StatusInternalServerError, MsgGenerateFailed
	}
}
