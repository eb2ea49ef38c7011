package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/theramind/journal_api/dto"
	"github.com/theramind/journal_api/shared"
)

type JournalHandler struct {
	journalSvc JournalServiceInterface
}

func NewJournalHandler(journalSvc JournalServiceInterface) *JournalHandler {
	return &JournalHandler{
		journalSvc: journalSvc,
	}
}

// @Summary Analyze a journal entry
// @Description Score emotions, extract themes, generate a reflection and persist the entry
// @Tags journal
// @Accept json
// @Produce json
// @Security Bearer
// @Param analyzeRequest body dto.AnalyzeRequest true "Entry content"
// @Success 201 {object} shared.Response{data=dto.AnalyzeResponse}
// @Router /api/v1/analyze [post]
func (h *JournalHandler) Analyze(c *fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.journalSvc.AnalyzeEntry(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Entry analyzed", resp)
}

// @Summary Journal history
// @Description All decrypted entries, newest first
// @Tags journal
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.HistoryResponse}
// @Router /api/v1/history [get]
func (h *JournalHandler) History(c *fiber.Ctx) error {
	return shared.ResponseJSON(c, http.StatusOK, "Success", h.journalSvc.History())
}

// @Summary Get a journal entry
// @Description A single decrypted entry by id
// @Tags journal
// @Produce json
// @Security Bearer
// @Param id path int true "Entry ID"
// @Success 200 {object} shared.Response{data=dto.EntryResponse}
// @Router /api/v1/entries/{id} [get]
func (h *JournalHandler) GetEntry(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return shared.NewBadRequestError(err, "Invalid entry id")
	}

	resp, err := h.journalSvc.GetEntry(id)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary User stats
// @Description Streak, badges, level and entry totals
// @Tags journal
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.UserStatsResponse}
// @Router /api/v1/stats [get]
func (h *JournalHandler) Stats(c *fiber.Ctx) error {
	return shared.ResponseJSON(c, http.StatusOK, "Success", h.journalSvc.Stats())
}

// @Summary Enable pin protection
// @Description Store a hashed pin and mark the journal protected
// @Tags journal
// @Accept json
// @Produce json
// @Security Bearer
// @Param setPinRequest body dto.SetPinRequest true "Pin"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/pin [post]
func (h *JournalHandler) SetPin(c *fiber.Ctx) error {
	var req dto.SetPinRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	if err := h.journalSvc.SetPin(req); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Pin protection enabled", nil)
}

// @Summary Verify pin
// @Description Check a pin against the stored hash
// @Tags journal
// @Accept json
// @Produce json
// @Security Bearer
// @Param verifyPinRequest body dto.VerifyPinRequest true "Pin"
// @Success 200 {object} shared.Response{data=dto.VerifyPinResponse}
// @Router /api/v1/pin/verify [post]
func (h *JournalHandler) VerifyPin(c *fiber.Ctx) error {
	var req dto.VerifyPinRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", h.journalSvc.VerifyPin(req))
}
