package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theramind/journal_api/dto"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(userID string) error
	RequiredAuth() fiber.Handler
}

type JournalServiceInterface interface {
	AnalyzeEntry(req dto.AnalyzeRequest) (*dto.AnalyzeResponse, error)
	History() dto.HistoryResponse
	GetEntry(id int) (*dto.EntryResponse, error)
	Stats() dto.UserStatsResponse
	WeeklyInsights() dto.WeeklySummaryResponse
	MonthlyInsights() dto.MonthlySummaryResponse
	SetPin(req dto.SetPinRequest) error
	VerifyPin(req dto.VerifyPinRequest) dto.VerifyPinResponse
}

type PromptServiceInterface interface {
	DailyPrompt() dto.PromptResponse
}

type BackupServiceInterface interface {
	Backup() (*dto.BackupResponse, error)
	ListBackups() (*dto.BackupListResponse, error)
}

type ChatServiceInterface interface {
	Chat(req dto.ChatRequest) dto.ChatResponse
}
