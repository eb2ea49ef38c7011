package dto

import (
	"time"

	"github.com/theramind/journal_api/model"
)

// ==================== JOURNAL REQUEST DTOs ====================

type AnalyzeRequest struct {
	Content string `json:"content" validate:"required" example:"Today I finally finished the project."`
}

func (r AnalyzeRequest) Validate() error {
	return GetValidator().Struct(r)
}

type SetPinRequest struct {
	Pin string `json:"pin" validate:"required,min=4,max=8,numeric" example:"1234"`
}

func (r SetPinRequest) Validate() error {
	return GetValidator().Struct(r)
}

type VerifyPinRequest struct {
	Pin string `json:"pin" validate:"required" example:"1234"`
}

func (r VerifyPinRequest) Validate() error {
	return GetValidator().Struct(r)
}

// ==================== JOURNAL RESPONSE DTOs ====================

type AnalyzeResponse struct {
	ID         int                  `json:"id"`
	Emotions   []model.EmotionScore `json:"emotions"`
	Reflection string               `json:"reflection"`
	Themes     []string             `json:"themes,omitempty"`
	Timestamp  string               `json:"timestamp"`
}

// EntryResponse is a decrypted journal entry. Degraded marks entries whose
// content or reflection failed authentication and is surfaced raw.
type EntryResponse struct {
	ID         int                  `json:"id"`
	Content    string               `json:"content"`
	Emotions   []model.EmotionScore `json:"emotions"`
	Reflection string               `json:"reflection"`
	Timestamp  string               `json:"timestamp"`
	Degraded   bool                 `json:"degraded,omitempty"`
}

type HistoryResponse struct {
	Entries []EntryResponse `json:"entries"`
}

type UserStatsResponse struct {
	Streak        int      `json:"streak"`
	LastEntryDate string   `json:"last_entry_date"`
	Badges        []string `json:"badges"`
	TotalEntries  int      `json:"total_entries"`
	Level         int      `json:"level"`
	PinProtected  bool     `json:"pin_protected"`
}

type EmotionAggregate struct {
	Label     string  `json:"label"`
	Count     int     `json:"count"`
	MeanScore float64 `json:"mean_score"`
}

type WeeklySummaryResponse struct {
	EntryCount      int                `json:"entry_count"`
	Emotions        []EmotionAggregate `json:"emotions"`
	DominantEmotion *string            `json:"dominant_emotion"`
}

type MonthlySummaryResponse struct {
	EntryCount     int                `json:"entry_count"`
	Emotions       []EmotionAggregate `json:"emotions"`
	ActiveDays     int                `json:"active_days"`
	EntriesPerWeek float64            `json:"entries_per_week"`
}

type VerifyPinResponse struct {
	Valid bool `json:"valid"`
}

type PromptResponse struct {
	Prompt      string `json:"prompt"`
	Affirmation string `json:"affirmation"`
}

type BackupResponse struct {
	Object string `json:"object"`
	Size   int64  `json:"size"`
}

type BackupInfo struct {
	Object       string    `json:"object"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

type BackupListResponse struct {
	Backups []BackupInfo `json:"backups"`
}
