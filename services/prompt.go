package services

import (
	"context"
	"fmt"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/theramind/journal_api/dto"
)

const PROMPT_SVC = "prompt_svc"

// promptPools holds writing prompts keyed by the mood of the user's latest
// entry, with a generic pool for fresh journals.
var promptPools = map[string][]string{
	"joy": {
		"What made today feel so good? How can you invite more of it?",
		"Describe a moment today you want to remember a year from now.",
	},
	"sadness": {
		"What is weighing on you right now? Write it down without judging it.",
		"If a close friend felt the way you do, what would you tell them?",
	},
	"anger": {
		"What crossed a boundary for you today? What would protecting it look like?",
		"Write the unsent letter. Say everything, send nothing.",
	},
	"fear": {
		"Name the worry. What is the smallest step that shrinks it?",
		"What would you do this week if you knew it would work out?",
	},
	"generic": {
		"What is one thing you're grateful for today?",
		"What challenged you today, and how did you respond?",
		"Describe your current mood in three words, then explain each one.",
		"What would make tomorrow feel like a success?",
	},
}

var affirmations = []string{
	"You are allowed to take up space and time.",
	"Small steps still move you forward.",
	"Your feelings are valid, and they will pass through you.",
	"You have handled hard days before. You can handle this one.",
	"Rest is productive too.",
}

// PromptService serves a daily writing prompt and affirmation,
// personalized from the latest entry's dominant emotion and cached in
// redis for the rest of the day.
type PromptService struct {
	appContext.DefaultService

	redisSvc   *RedisService
	journalSvc *JournalService
}

func (svc PromptService) Id() string {
	return PROMPT_SVC
}

func (svc *PromptService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *PromptService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.journalSvc = svc.Service(JOURNAL_SVC).(*JournalService)
	return nil
}

// DailyPrompt returns the prompt and affirmation for today.
func (svc *PromptService) DailyPrompt() dto.PromptResponse {
	ctx := context.Background()
	today := time.Now().UTC().Format("2006-01-02")
	cacheKey := fmt.Sprintf("prompt:daily:%s", today)

	var cached dto.PromptResponse
	if err := svc.redisSvc.GetJSON(ctx, cacheKey, &cached); err == nil && cached.Prompt != "" {
		return cached
	}

	resp := svc.buildPrompt(time.Now().UTC())

	if err := svc.redisSvc.Set(ctx, cacheKey, resp, 24*time.Hour); err != nil {
		log.WithError(err).Debug("Failed to cache daily prompt")
	}

	return resp
}

func (svc *PromptService) buildPrompt(now time.Time) dto.PromptResponse {
	pool := promptPools["generic"]

	if emotions := svc.journalSvc.LatestEmotions(); len(emotions) > 0 {
		if moodPool, ok := promptPools[emotions[0].Label]; ok {
			pool = moodPool
		}
	}

	day := now.YearDay()
	return dto.PromptResponse{
		Prompt:      pool[day%len(pool)],
		Affirmation: affirmations[day%len(affirmations)],
	}
}
