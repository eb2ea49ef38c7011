package repositories

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theramind/journal_api/cryptox"
	"github.com/theramind/journal_api/model"
)

func newTestRepo(t *testing.T) *JournalRepository {
	t.Helper()

	cipher, err := cryptox.NewCipher("test-passphrase")
	require.NoError(t, err)

	return NewJournalRepository(filepath.Join(t.TempDir(), "data.json"), cipher)
}

func testEmotions() []model.EmotionScore {
	return []model.EmotionScore{
		{Label: "joy", Score: 0.8},
		{Label: "sadness", Score: 0.1},
	}
}

func TestEnsureInitialized_Idempotent(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.EnsureInitialized())
	require.NoError(t, repo.EnsureInitialized())

	raw, err := os.ReadFile(repo.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"entries"`)
	assert.Contains(t, string(raw), `"user"`)
}

func TestSaveEntry_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	id, err := repo.SaveEntry("a private thought", testEmotions(), "a kind reflection", "2024-01-01T10:00:00")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	entry, err := repo.GetEntryByID(id)
	require.NoError(t, err)
	assert.Equal(t, "a private thought", entry.Content)
	assert.Equal(t, "a kind reflection", entry.Reflection)
	assert.Equal(t, testEmotions(), entry.Emotions)
	assert.False(t, entry.Degraded)

	// At rest the sensitive fields are ciphertext while emotions stay
	// readable.
	raw, err := os.ReadFile(repo.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "a private thought")
	assert.NotContains(t, string(raw), "a kind reflection")
	assert.Contains(t, string(raw), `"joy"`)
}

func TestSaveEntry_SequentialIDs(t *testing.T) {
	repo := newTestRepo(t)

	for want := 1; want <= 3; want++ {
		id, err := repo.SaveEntry("entry", nil, "", "2024-01-01T10:00:00")
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestSaveEntry_NoTempResidue(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.SaveEntry("entry", nil, "", "2024-01-01T10:00:00")
	require.NoError(t, err)

	_, err = os.Stat(repo.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestStreak_ConsecutiveDays(t *testing.T) {
	repo := newTestRepo(t)

	for _, ts := range []string{
		"2024-01-01T10:00:00",
		"2024-01-02T10:00:00",
		"2024-01-03T10:00:00",
	} {
		_, err := repo.SaveEntry("entry", nil, "", ts)
		require.NoError(t, err)
	}

	stats := repo.GetUserStats()
	assert.Equal(t, 3, stats.Streak)
	assert.Equal(t, 3, stats.TotalEntries)
	assert.Contains(t, stats.Badges, "streak_3")
	assert.NotContains(t, stats.Badges, "streak_7")
	assert.NotContains(t, stats.Badges, "entries_5")
}

func TestStreak_SameDayUnchanged(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.SaveEntry("morning", nil, "", "2024-01-01T08:00:00")
	require.NoError(t, err)
	_, err = repo.SaveEntry("evening", nil, "", "2024-01-01T21:00:00")
	require.NoError(t, err)

	stats := repo.GetUserStats()
	assert.Equal(t, 1, stats.Streak)
	assert.Equal(t, 2, stats.TotalEntries)
}

func TestStreak_GapResets(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.SaveEntry("entry", nil, "", "2024-01-01T10:00:00")
	require.NoError(t, err)
	_, err = repo.SaveEntry("entry", nil, "", "2024-01-02T10:00:00")
	require.NoError(t, err)
	_, err = repo.SaveEntry("entry", nil, "", "2024-01-05T10:00:00")
	require.NoError(t, err)

	stats := repo.GetUserStats()
	assert.Equal(t, 1, stats.Streak)
}

// Backfilling an entry with an earlier timestamp resets the streak and
// moves last_entry_date backwards. That is the documented behavior of the
// incremental computation, not a bug: the streak tracks last_entry_date,
// never the maximum timestamp across entries.
func TestStreak_BackfillResetsAndMovesDateBack(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.SaveEntry("entry", nil, "", "2024-01-04T10:00:00")
	require.NoError(t, err)
	_, err = repo.SaveEntry("entry", nil, "", "2024-01-05T10:00:00")
	require.NoError(t, err)
	_, err = repo.SaveEntry("backfilled", nil, "", "2024-01-02T10:00:00")
	require.NoError(t, err)

	stats := repo.GetUserStats()
	assert.Equal(t, 1, stats.Streak)
	assert.Equal(t, "2024-01-02T10:00:00", stats.LastEntryDate)
}

func TestBadges_EntryCountAwardedOnceAndKept(t *testing.T) {
	repo := newTestRepo(t)

	for i := 0; i < 4; i++ {
		_, err := repo.SaveEntry("entry", nil, "", "2024-01-01T10:00:00")
		require.NoError(t, err)
	}
	assert.NotContains(t, repo.GetUserStats().Badges, "entries_5")

	_, err := repo.SaveEntry("entry", nil, "", "2024-01-01T10:00:00")
	require.NoError(t, err)
	assert.Contains(t, repo.GetUserStats().Badges, "entries_5")

	_, err = repo.SaveEntry("entry", nil, "", "2024-01-01T10:00:00")
	require.NoError(t, err)

	stats := repo.GetUserStats()
	assert.Equal(t, 6, stats.TotalEntries)

	count := 0
	for _, b := range stats.Badges {
		if b == "entries_5" {
			count++
		}
	}
	assert.Equal(t, 1, count, "badge must be awarded exactly once")
}

func TestLevel_TracksEntryCount(t *testing.T) {
	repo := newTestRepo(t)

	for i := 0; i < 9; i++ {
		_, err := repo.SaveEntry("entry", nil, "", "2024-01-01T10:00:00")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, repo.GetUserStats().Level)

	_, err := repo.SaveEntry("entry", nil, "", "2024-01-01T10:00:00")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.GetUserStats().Level)
}

func TestGetAllEntries_NewestFirst(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.SaveEntry("oldest", nil, "", "2024-01-01T10:00:00")
	require.NoError(t, err)
	_, err = repo.SaveEntry("newest", nil, "", "2024-01-03T10:00:00")
	require.NoError(t, err)
	_, err = repo.SaveEntry("middle", nil, "", "2024-01-02T10:00:00")
	require.NoError(t, err)

	entries := repo.GetAllEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "newest", entries[0].Content)
	assert.Equal(t, "middle", entries[1].Content)
	assert.Equal(t, "oldest", entries[2].Content)
}

func TestGetEntryByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetEntryByID(42)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestGetUserStats_MissingDocument(t *testing.T) {
	repo := newTestRepo(t)

	stats := repo.GetUserStats()
	assert.Equal(t, 0, stats.Streak)
	assert.Equal(t, 0, stats.TotalEntries)
	assert.Empty(t, stats.Badges)
	assert.False(t, stats.PinProtected)
}

func TestCorruptDocument_ReadsAsEmpty(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, os.WriteFile(repo.Path(), []byte("{not json"), 0o644))

	assert.Empty(t, repo.GetAllEntries())

	id, err := repo.SaveEntry("fresh start", nil, "", "2024-01-01T10:00:00")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestPreEncryptionDataSurfacesDegraded(t *testing.T) {
	repo := newTestRepo(t)

	doc := model.NewJournalDocument()
	doc.Entries = append(doc.Entries, model.JournalEntry{
		ID:        1,
		Content:   "plain legacy content",
		Emotions:  []model.EmotionScore{},
		Timestamp: "2024-01-01T10:00:00",
	})
	doc.User.TotalEntries = 1
	require.NoError(t, repo.writeDocument(doc))

	entry, err := repo.GetEntryByID(1)
	require.NoError(t, err)
	assert.True(t, entry.Degraded)
	assert.Equal(t, "plain legacy content", entry.Content)
}

func TestPinProtection(t *testing.T) {
	repo := newTestRepo(t)

	// Without protection any pin verifies.
	assert.True(t, repo.VerifyPin("anything"))

	require.True(t, repo.SetPinProtection("1234"))

	assert.True(t, repo.VerifyPin("1234"))
	assert.False(t, repo.VerifyPin("4321"))

	stats := repo.GetUserStats()
	assert.True(t, stats.PinProtected)
	assert.NotEqual(t, "1234", stats.Pin)
	assert.True(t, strings.HasPrefix(stats.Pin, "$2"), "pin must be stored as a bcrypt hash")
}

func TestWeeklySummary_OnlyOldEntries(t *testing.T) {
	repo := newTestRepo(t)

	old := time.Now().AddDate(0, 0, -10).Format(time.RFC3339)
	_, err := repo.SaveEntry("old entry", testEmotions(), "", old)
	require.NoError(t, err)

	summary := repo.WeeklySummary()
	assert.Equal(t, 0, summary.EntryCount)
	assert.Empty(t, summary.DominantEmotion)
	assert.Empty(t, summary.Emotions)
}

func TestWeeklySummary_AggregatesAndDominant(t *testing.T) {
	repo := newTestRepo(t)

	yesterday := time.Now().AddDate(0, 0, -1).Format(time.RFC3339)
	today := time.Now().Format(time.RFC3339)

	_, err := repo.SaveEntry("one", []model.EmotionScore{
		{Label: "joy", Score: 0.9},
		{Label: "fear", Score: 0.3},
	}, "", yesterday)
	require.NoError(t, err)

	_, err = repo.SaveEntry("two", []model.EmotionScore{
		{Label: "joy", Score: 0.5},
		{Label: "fear", Score: 0.2},
	}, "", today)
	require.NoError(t, err)

	summary := repo.WeeklySummary()
	assert.Equal(t, 2, summary.EntryCount)
	assert.Equal(t, "joy", summary.DominantEmotion)

	require.Len(t, summary.Emotions, 2)
	assert.Equal(t, "joy", summary.Emotions[0].Label)
	assert.Equal(t, 2, summary.Emotions[0].Count)
	assert.InDelta(t, 0.7, summary.Emotions[0].MeanScore, 1e-9)
	assert.InDelta(t, 0.25, summary.Emotions[1].MeanScore, 1e-9)
}

// Equal mean scores keep the label seen first during aggregation. The tie
// break is acknowledged nondeterminism of the contract across documents,
// but deterministic for a given entry order.
func TestWeeklySummary_TieKeepsFirstSeen(t *testing.T) {
	repo := newTestRepo(t)

	today := time.Now().Format(time.RFC3339)
	_, err := repo.SaveEntry("tied", []model.EmotionScore{
		{Label: "anger", Score: 0.6},
		{Label: "joy", Score: 0.6},
	}, "", today)
	require.NoError(t, err)

	summary := repo.WeeklySummary()
	assert.Equal(t, "anger", summary.DominantEmotion)
}

func TestMonthlySummary_ActiveDaysAndRate(t *testing.T) {
	repo := newTestRepo(t)

	day1 := time.Now().AddDate(0, 0, -2).Format(time.RFC3339)
	day2 := time.Now().AddDate(0, 0, -1).Format(time.RFC3339)

	for _, ts := range []string{day1, day1, day2} {
		_, err := repo.SaveEntry("entry", testEmotions(), "", ts)
		require.NoError(t, err)
	}

	summary := repo.MonthlySummary()
	assert.Equal(t, 3, summary.EntryCount)
	assert.Equal(t, 2, summary.ActiveDays)
	assert.InDelta(t, 3/4.345, summary.EntriesPerWeek, 1e-9)
}

func TestSnapshot_ReturnsPersistedDocument(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.SaveEntry("secret text", testEmotions(), "kind words", "2024-01-01T10:00:00")
	require.NoError(t, err)

	raw, err := repo.Snapshot()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"entries"`)
	assert.NotContains(t, string(raw), "secret text")
}

func TestBadges_AwardOrderDeterministic(t *testing.T) {
	// Seven consecutive days crosses streak_3, entries_5 and streak_7 in a
	// fixed sequence; award order must not vary between runs.
	saveWeek := func(repo *JournalRepository) {
		for day := 1; day <= 7; day++ {
			ts := fmt.Sprintf("2024-01-%02dT10:00:00", day)
			_, err := repo.SaveEntry("entry", nil, "", ts)
			require.NoError(t, err)
		}
	}

	first := newTestRepo(t)
	saveWeek(first)

	second := newTestRepo(t)
	saveWeek(second)

	expected := []string{"streak_3", "entries_5", "streak_7"}
	assert.Equal(t, expected, first.GetUserStats().Badges)
	assert.Equal(t, expected, second.GetUserStats().Badges)
}
