package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/theramind/journal_api/model"
)

const (
	EMOTION_SVC = "emotion_svc"

	emotionModelURL    = "https://api-inference.huggingface.co/models/bhadresh-savani/distilbert-base-uncased-emotion"
	generationModelURL = "https://api-inference.huggingface.co/models/google/flan-t5-large"

	defaultReflection = "Thank you for sharing. Taking time to write down your thoughts is a meaningful step in understanding yourself better."
)

// EmotionService talks to the Hugging Face inference API for emotion
// classification and reflection generation. Every remote failure degrades
// to a usable default so journaling never blocks on the model.
type EmotionService struct {
	appContext.DefaultService

	httpClient *http.Client
	apiKey     string
}

func (svc EmotionService) Id() string {
	return EMOTION_SVC
}

func (svc *EmotionService) Configure(ctx *appContext.Context) error {
	svc.httpClient = &http.Client{
		Timeout: 10 * time.Second,
	}

	svc.apiKey = os.Getenv("HUGGING_FACE_API_KEY")
	if svc.apiKey == "" {
		log.Warn("HUGGING_FACE_API_KEY not set, emotion analysis will use defaults")
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *EmotionService) Start() error {
	return nil
}

// Classify scores the entry content across emotion labels, strongest first.
// Falls back to a neutral default set when the model is unreachable.
func (svc *EmotionService) Classify(content string) []model.EmotionScore {
	raw, err := svc.query(emotionModelURL, content)
	if err != nil {
		log.WithError(err).Warn("Emotion classification failed, using defaults")
		return defaultEmotions()
	}

	scores, err := parseEmotionScores(raw)
	if err != nil {
		log.WithError(err).Warn("Unexpected emotion model response, using defaults")
		return defaultEmotions()
	}
	return scores
}

// GenerateReflection asks the generation model for a short supportive
// reflection on the entry.
func (svc *EmotionService) GenerateReflection(content string, emotions []model.EmotionScore) string {
	mood := "neutral"
	if len(emotions) > 0 {
		mood = emotions[0].Label
	}

	prompt := fmt.Sprintf(
		"A person wrote this journal entry and seems to feel %s: %q. Write one short, warm, supportive reflection for them.",
		mood, content,
	)

	raw, err := svc.query(generationModelURL, prompt)
	if err != nil {
		log.WithError(err).Warn("Reflection generation failed, using default")
		return defaultReflection
	}

	text, err := parseGeneratedText(raw)
	if err != nil || strings.TrimSpace(text) == "" {
		return defaultReflection
	}
	return strings.TrimSpace(text)
}

func (svc *EmotionService) query(url, input string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{"inputs": input})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if svc.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+svc.apiKey)
	}

	resp, err := svc.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference API returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// parseEmotionScores accepts both response shapes the inference API emits,
// [[{label,score}]] and [{label,score}], and returns scores sorted
// strongest first.
func parseEmotionScores(raw []byte) ([]model.EmotionScore, error) {
	var nested [][]model.EmotionScore
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 {
		return sortScores(nested[0]), nil
	}

	var flat []model.EmotionScore
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 {
		return sortScores(flat), nil
	}

	return nil, fmt.Errorf("unrecognized classification response")
}

func sortScores(scores []model.EmotionScore) []model.EmotionScore {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}

// parseGeneratedText extracts generated_text from a generation response.
func parseGeneratedText(raw []byte) (string, error) {
	var results []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(raw, &results); err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", fmt.Errorf("empty generation response")
	}
	return results[0].GeneratedText, nil
}

func defaultEmotions() []model.EmotionScore {
	return []model.EmotionScore{
		{Label: "neutral", Score: 0.5},
		{Label: "joy", Score: 0.25},
		{Label: "sadness", Score: 0.25},
	}
}
