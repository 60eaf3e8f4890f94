package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"prompt-relay-api/internal/middleware"
	"prompt-relay-api/internal/models"
	"prompt-relay-api/internal/services"
	"prompt-relay-api/pkg/lambda"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GenerateHandler handles generation HTTP requests
type GenerateHandler struct {
	generationService services.GenerationService
}

// NewGenerateHandler creates a new generate handler
func NewGenerateHandler(generationService services.GenerationService) *GenerateHandler {
	return &GenerateHandler{
		generationService: generationService,
	}
}

// @Summary Generate text from a prompt
// @Description Relays the prompt to the generation provider and returns the generated text
// @Tags generate
// @Accept json
// @Produce json
// @Param request body models.GenerateRequest true "Prompt"
// @Success 200 {object} models.GenerateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/generate [post]
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// An unreadable body is handled the same as a missing prompt
		req = models.GenerateRequest{}
	}

	resp, err := h.generationService.GenerateContent(c.Request.Context(), c.GetString(middleware.RequestIDKey), &req)
	if err != nil {
		status, message := services.MapError(err)
		c.JSON(status, ErrorResponse{Error: message})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleGenerate is the framework-agnostic handler used by the Lambda entrypoint
func (h *GenerateHandler) HandleGenerate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	requestID := req.Header("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
	}

	var genReq models.GenerateRequest
	if len(req.Body) > 0 {
		// An unreadable body is handled the same as a missing prompt
		_ = json.Unmarshal(req.Body, &genReq)
	}

	resp, err := h.generationService.GenerateContent(ctx, requestID, &genReq)
	if err != nil {
		status, message := services.MapError(err)
		return lambda.NewJSONResponse(status, ErrorResponse{Error: message}), nil
	}

	return lambda.NewJSONResponse(http.StatusOK, resp), nil
}
