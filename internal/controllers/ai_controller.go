package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vivaha-be/internal/llm"
	"vivaha-be/internal/models"
	"vivaha-be/internal/service"
)

// AIController proxies the AI endpoints. Its bodies are not wrapped in the
// APIResponse envelope.
type AIController struct {
	aiService service.AIService
}

func NewAIController(aiService service.AIService) *AIController {
	return &AIController{aiService: aiService}
}

// Chat handles POST /api/ai/chat and relays the provider's JSON untouched.
func (ac *AIController) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.AIErrorResponse{Error: "Message is required"})
		return
	}

	raw, err := ac.aiService.Chat(c.Request.Context(), req.Message, req.SystemPrompt)
	if err != nil {
		var upstream *llm.UpstreamError
		switch {
		case errors.As(err, &llm.ConfigurationError{}):
			c.JSON(http.StatusInternalServerError, models.AIErrorResponse{Error: err.Error()})
		case errors.As(err, &upstream):
			c.JSON(upstream.StatusCode, models.AIErrorResponse{Error: "AI service error"})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.AIErrorResponse{Error: "Failed to reach AI service"})
		}
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// BudgetSuggestions handles POST /api/ai/budget-suggestions. Every failure
// other than a missing credential answers 200 with an empty list.
func (ac *AIController) BudgetSuggestions(c *gin.Context) {
	var req models.BudgetSuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.AIErrorResponse{Error: "Invalid request body"})
		return
	}

	suggestions, err := ac.aiService.BudgetSuggestions(c.Request.Context(), &req)
	if errors.As(err, &llm.ConfigurationError{}) {
		c.JSON(http.StatusInternalServerError, models.AIErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		_ = c.Error(err)
		suggestions = []string{}
	}

	c.JSON(http.StatusOK, models.BudgetSuggestionsResponse{Suggestions: suggestions})
}
