package dto

// ==================== CHAT DTOs ====================

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant" example:"user"`
	Content string `json:"content" validate:"required" example:"I had a rough day."`
}

type ChatRequest struct {
	Message string        `json:"message" validate:"required" example:"I had a rough day."`
	History []ChatMessage `json:"history" validate:"omitempty,dive"`
}

func (r ChatRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ChatResponse struct {
	Reply     string `json:"reply"`
	Timestamp string `json:"timestamp"`
}
