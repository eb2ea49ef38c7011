package services

import (
	"errors"
	"os"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/theramind/journal_api/cryptox"
	"github.com/theramind/journal_api/dto"
	"github.com/theramind/journal_api/model"
	"github.com/theramind/journal_api/services/repositories"
	"github.com/theramind/journal_api/shared"
)

const JOURNAL_SVC = "journal_svc"

// JournalService orchestrates entry analysis and owns the journal
// repository. Analysis calls the emotion model, extracts themes, generates
// a reflection and persists the entry in one pass.
type JournalService struct {
	appContext.DefaultService

	emotionSvc *EmotionService

	repo     *repositories.JournalRepository
	dataFile string
}

func (svc JournalService) Id() string {
	return JOURNAL_SVC
}

func (svc *JournalService) Configure(ctx *appContext.Context) error {
	svc.dataFile = os.Getenv("JOURNAL_DATA_FILE")
	if svc.dataFile == "" {
		svc.dataFile = "data.json"
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *JournalService) Start() error {
	svc.emotionSvc = svc.Service(EMOTION_SVC).(*EmotionService)

	cipher, err := newJournalCipher()
	if err != nil {
		return err
	}

	svc.repo = repositories.NewJournalRepository(svc.dataFile, cipher)

	if monitoringSvc, ok := svc.Service(MONITORING_SVC).(*MonitoringService); ok && monitoringSvc != nil {
		svc.repo.SetHooks(monitoringSvc.RecordEntrySaved, monitoringSvc.RecordDegradedDecrypt)
	}

	return svc.repo.EnsureInitialized()
}

// newJournalCipher builds the entry cipher from the environment, warning
// when the insecure built-in fallback key is in use.
func newJournalCipher() (*cryptox.Cipher, error) {
	passphrase, usedFallback := cryptox.PassphraseFromEnv()
	if usedFallback {
		log.Warn("ENCRYPTION_KEY not set, journal entries use the built-in default key")
	}
	return cryptox.NewCipher(passphrase)
}

// Repository exposes the journal store for services layered on top of it,
// such as backups and prompt personalization.
func (svc *JournalService) Repository() *repositories.JournalRepository {
	return svc.repo
}

// AnalyzeEntry runs the full analysis pipeline on new entry content and
// persists the result.
func (svc *JournalService) AnalyzeEntry(req dto.AnalyzeRequest) (*dto.AnalyzeResponse, error) {
	emotions := svc.emotionSvc.Classify(req.Content)
	themes := ExtractThemes(req.Content)
	reflection := svc.emotionSvc.GenerateReflection(req.Content, emotions)
	timestamp := time.Now().UTC().Format(time.RFC3339)

	id, err := svc.repo.SaveEntry(req.Content, emotions, reflection, timestamp)
	if err != nil {
		return nil, shared.NewInternalError(err)
	}

	log.WithField("entry_id", id).Info("Journal entry analyzed")

	return &dto.AnalyzeResponse{
		ID:         id,
		Emotions:   emotions,
		Reflection: reflection,
		Themes:     themes,
		Timestamp:  timestamp,
	}, nil
}

// History returns all entries decrypted, newest first.
func (svc *JournalService) History() dto.HistoryResponse {
	decrypted := svc.repo.GetAllEntries()

	entries := make([]dto.EntryResponse, 0, len(decrypted))
	for _, e := range decrypted {
		entries = append(entries, toEntryResponse(e))
	}
	return dto.HistoryResponse{Entries: entries}
}

// GetEntry returns a single decrypted entry by id.
func (svc *JournalService) GetEntry(id int) (*dto.EntryResponse, error) {
	entry, err := svc.repo.GetEntryByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrEntryNotFound) {
			return nil, shared.NewNotFoundError("Journal entry not found")
		}
		return nil, shared.NewInternalError(err)
	}

	resp := toEntryResponse(*entry)
	return &resp, nil
}

// Stats returns the derived user profile. The stored pin hash never leaves
// the repository.
func (svc *JournalService) Stats() dto.UserStatsResponse {
	user := svc.repo.GetUserStats()

	return dto.UserStatsResponse{
		Streak:        user.Streak,
		LastEntryDate: user.LastEntryDate,
		Badges:        user.Badges,
		TotalEntries:  user.TotalEntries,
		Level:         user.Level,
		PinProtected:  user.PinProtected,
	}
}

// WeeklyInsights aggregates the trailing seven days.
func (svc *JournalService) WeeklyInsights() dto.WeeklySummaryResponse {
	s := svc.repo.WeeklySummary()

	return dto.WeeklySummaryResponse{
		EntryCount:      s.EntryCount,
		Emotions:        toEmotionAggregates(s.Emotions),
		DominantEmotion: dominantOrNil(s.DominantEmotion),
	}
}

// MonthlyInsights aggregates the trailing thirty days.
func (svc *JournalService) MonthlyInsights() dto.MonthlySummaryResponse {
	s := svc.repo.MonthlySummary()

	return dto.MonthlySummaryResponse{
		EntryCount:     s.EntryCount,
		Emotions:       toEmotionAggregates(s.Emotions),
		ActiveDays:     s.ActiveDays,
		EntriesPerWeek: s.EntriesPerWeek,
	}
}

// SetPin enables pin protection for the journal.
func (svc *JournalService) SetPin(req dto.SetPinRequest) error {
	if !svc.repo.SetPinProtection(req.Pin) {
		return shared.NewInternalError(errors.New("failed to enable pin protection"))
	}
	return nil
}

// VerifyPin checks a pin against the stored hash. An unprotected journal
// accepts any pin.
func (svc *JournalService) VerifyPin(req dto.VerifyPinRequest) dto.VerifyPinResponse {
	return dto.VerifyPinResponse{Valid: svc.repo.VerifyPin(req.Pin)}
}

// LatestEmotions returns the emotion scores of the most recent entry, or
// nil when the journal is empty.
func (svc *JournalService) LatestEmotions() []model.EmotionScore {
	entries := svc.repo.GetAllEntries()
	if len(entries) == 0 {
		return nil
	}
	return entries[0].Emotions
}

func toEntryResponse(e repositories.DecryptedEntry) dto.EntryResponse {
	return dto.EntryResponse{
		ID:         e.ID,
		Content:    e.Content,
		Emotions:   e.Emotions,
		Reflection: e.Reflection,
		Timestamp:  e.Timestamp,
		Degraded:   e.Degraded,
	}
}

func toEmotionAggregates(aggs []repositories.EmotionAggregate) []dto.EmotionAggregate {
	out := make([]dto.EmotionAggregate, 0, len(aggs))
	for _, a := range aggs {
		out = append(out, dto.EmotionAggregate{
			Label:     a.Label,
			Count:     a.Count,
			MeanScore: a.MeanScore,
		})
	}
	return out
}

func dominantOrNil(label string) *string {
	if label == "" {
		return nil
	}
	return &label
}
