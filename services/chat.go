package services

import (
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/theramind/journal_api/dto"
)

const defaultChatReply = "I'm here to listen and support you. While my AI features are temporarily unavailable, remember that your feelings matter and seeking help is a sign of strength."

// Chat generates a supportive reply to a conversational message, carrying
// prior turns as context. Falls back to a static reply when the model is
// unreachable, so the endpoint never fails.
func (svc *EmotionService) Chat(req dto.ChatRequest) dto.ChatResponse {
	reply := defaultChatReply

	raw, err := svc.query(generationModelURL, buildChatPrompt(req.History, req.Message))
	if err != nil {
		log.WithError(err).Warn("Chat generation failed, using default reply")
	} else if text, perr := parseGeneratedText(raw); perr == nil && strings.TrimSpace(text) != "" {
		reply = strings.TrimSpace(text)
	}

	return dto.ChatResponse{
		Reply:     reply,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// buildChatPrompt flattens the conversation into a single generation
// prompt, newest message last.
func buildChatPrompt(history []dto.ChatMessage, message string) string {
	var b strings.Builder
	b.WriteString("You are a warm, supportive listener helping someone reflect on their feelings. Keep replies short and kind.\n")

	for _, m := range history {
		if m.Role == "assistant" {
			b.WriteString("Listener: ")
		} else {
			b.WriteString("Person: ")
		}
		b.WriteString(m.Content)
		b.WriteString("\n")
	}

	b.WriteString("Person: ")
	b.WriteString(message)
	b.WriteString("\nListener:")
	return b.String()
}
