package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theramind/journal_api/dto"
)

type stubBackupService struct {
	listed bool
}

func (s *stubBackupService) Backup() (*dto.BackupResponse, error) {
	return &dto.BackupResponse{Object: "journal-backups/20240101T000000Z.json", Size: 42}, nil
}

func (s *stubBackupService) ListBackups() (*dto.BackupListResponse, error) {
	s.listed = true
	return &dto.BackupListResponse{
		Backups: []dto.BackupInfo{
			{Object: "journal-backups/20240101T000000Z.json", Size: 42, LastModified: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}, nil
}

type stubChatService struct{}

func (s *stubChatService) Chat(req dto.ChatRequest) dto.ChatResponse {
	return dto.ChatResponse{Reply: "echo: " + req.Message, Timestamp: "2024-01-01T00:00:00Z"}
}

func TestBackupsRoute_ListsSnapshots(t *testing.T) {
	backupSvc := &stubBackupService{}
	h := NewInsightsHandler(nil, nil, backupSvc)

	app := fiber.New()
	app.Get("/api/v1/backups", h.Backups)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/backups", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, backupSvc.listed)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope struct {
		Data dto.BackupListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.Len(t, envelope.Data.Backups, 1)
	assert.Equal(t, "journal-backups/20240101T000000Z.json", envelope.Data.Backups[0].Object)
	assert.Equal(t, int64(42), envelope.Data.Backups[0].Size)
}

func TestChatRoute_RepliesWithContext(t *testing.T) {
	h := NewChatHandler(&stubChatService{})

	app := fiber.New()
	app.Post("/api/v1/chat", h.Chat)

	req := httptest.NewRequest("POST", "/api/v1/chat", strings.NewReader(`{"message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope struct {
		Data dto.ChatResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "echo: hello", envelope.Data.Reply)
}

func TestChatRoute_RejectsMissingMessage(t *testing.T) {
	h := NewChatHandler(&stubChatService{})

	app := fiber.New()
	app.Post("/api/v1/chat", h.Chat)

	req := httptest.NewRequest("POST", "/api/v1/chat", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
