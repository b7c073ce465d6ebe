package models

// ChatRequest is the body of POST /api/ai/chat.
type ChatRequest struct {
	Message      string `json:"message" binding:"required"`
	SystemPrompt string `json:"systemPrompt"`
}

// BudgetSuggestionsRequest is the body of POST /api/ai/budget-suggestions.
type BudgetSuggestionsRequest struct {
	Budget     float64  `json:"budget" binding:"gte=0"`
	GuestCount int      `json:"guestCount" binding:"gte=0"`
	City       string   `json:"city"`
	Priorities []string `json:"priorities"`
}

// BudgetSuggestionsResponse always carries a list, possibly empty.
type BudgetSuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// AIErrorResponse is the error body of the AI endpoints.
type AIErrorResponse struct {
	Error string `json:"error"`
}
