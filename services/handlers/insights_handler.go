package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/theramind/journal_api/shared"
)

type InsightsHandler struct {
	journalSvc JournalServiceInterface
	promptSvc  PromptServiceInterface
	backupSvc  BackupServiceInterface
}

func NewInsightsHandler(journalSvc JournalServiceInterface, promptSvc PromptServiceInterface, backupSvc BackupServiceInterface) *InsightsHandler {
	return &InsightsHandler{
		journalSvc: journalSvc,
		promptSvc:  promptSvc,
		backupSvc:  backupSvc,
	}
}

// @Summary Weekly insights
// @Description Emotion aggregates over the trailing seven days
// @Tags insights
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.WeeklySummaryResponse}
// @Router /api/v1/insights/weekly [get]
func (h *InsightsHandler) Weekly(c *fiber.Ctx) error {
	return shared.ResponseJSON(c, http.StatusOK, "Success", h.journalSvc.WeeklyInsights())
}

// @Summary Monthly insights
// @Description Emotion aggregates, active days and entry rate over the trailing thirty days
// @Tags insights
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.MonthlySummaryResponse}
// @Router /api/v1/insights/monthly [get]
func (h *InsightsHandler) Monthly(c *fiber.Ctx) error {
	return shared.ResponseJSON(c, http.StatusOK, "Success", h.journalSvc.MonthlyInsights())
}

// @Summary Daily prompt
// @Description Writing prompt and affirmation for today
// @Tags insights
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.PromptResponse}
// @Router /api/v1/prompt [get]
func (h *InsightsHandler) Prompt(c *fiber.Ctx) error {
	return shared.ResponseJSON(c, http.StatusOK, "Success", h.promptSvc.DailyPrompt())
}

// @Summary Backup journal
// @Description Upload a snapshot of the journal document to object storage
// @Tags insights
// @Produce json
// @Security Bearer
// @Success 201 {object} shared.Response{data=dto.BackupResponse}
// @Router /api/v1/backup [post]
func (h *InsightsHandler) Backup(c *fiber.Ctx) error {
	resp, err := h.backupSvc.Backup()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Backup created", resp)
}

// @Summary List backups
// @Description Prior journal snapshots in object storage
// @Tags insights
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.BackupListResponse}
// @Router /api/v1/backups [get]
func (h *InsightsHandler) Backups(c *fiber.Ctx) error {
	resp, err := h.backupSvc.ListBackups()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
