package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/theramind/journal_api/dto"
	"github.com/theramind/journal_api/shared"
)

type ChatHandler struct {
	chatSvc ChatServiceInterface
}

func NewChatHandler(chatSvc ChatServiceInterface) *ChatHandler {
	return &ChatHandler{
		chatSvc: chatSvc,
	}
}

// @Summary Chat
// @Description Supportive conversational reply with conversation context
// @Tags chat
// @Accept json
// @Produce json
// @Security Bearer
// @Param chatRequest body dto.ChatRequest true "Message and prior turns"
// @Success 200 {object} shared.Response{data=dto.ChatResponse}
// @Router /api/v1/chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", h.chatSvc.Chat(req))
}
