package model

// EmotionScore is a single classifier label with its confidence, stored in
// plaintext so aggregate analytics never need the cipher.
type EmotionScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// JournalEntry is one journal submission. Content and Reflection hold
// ciphertext tokens at rest; IDs are assigned sequentially at save time and
// never reused.
type JournalEntry struct {
	ID         int            `json:"id"`
	Content    string         `json:"content"`
	Emotions   []EmotionScore `json:"emotions"`
	Reflection string         `json:"reflection"`
	Timestamp  string         `json:"timestamp"`
}

// UserProfile is the singleton derived-statistics record embedded in the
// journal document. Badges only ever grow; Pin is set only while
// PinProtected is true.
type UserProfile struct {
	Streak        int      `json:"streak"`
	LastEntryDate string   `json:"last_entry_date"`
	Badges        []string `json:"badges"`
	TotalEntries  int      `json:"total_entries"`
	Level         int      `json:"level"`
	PinProtected  bool     `json:"pin_protected"`
	Pin           string   `json:"pin,omitempty"`
}

// JournalDocument is the whole persisted unit. Every operation loads and
// writes it in full.
type JournalDocument struct {
	Entries []JournalEntry `json:"entries"`
	User    UserProfile    `json:"user"`
}

// NewJournalDocument returns an empty document with a zero-valued profile.
func NewJournalDocument() *JournalDocument {
	return &JournalDocument{
		Entries: []JournalEntry{},
		User:    UserProfile{Badges: []string{}},
	}
}

// Heal synthesizes any keys missing from a loaded document so older or
// partially written files read as valid.
func (d *JournalDocument) Heal() {
	if d.Entries == nil {
		d.Entries = []JournalEntry{}
	}
	if d.User.Badges == nil {
		d.User.Badges = []string{}
	}
}

// BadgeThreshold pairs an unlock threshold with its badge id.
type BadgeThreshold struct {
	Threshold int
	Badge     string
}

// Badge thresholds. Streak badges unlock on consecutive-day streaks, entry
// badges on lifetime entry counts. A badge is awarded once and never
// revoked. Ordered slices keep award order, and so the persisted badges
// slice, stable across runs.
var (
	StreakBadgeThresholds = []BadgeThreshold{
		{Threshold: 3, Badge: "streak_3"},
		{Threshold: 7, Badge: "streak_7"},
		{Threshold: 30, Badge: "streak_30"},
	}
	EntryBadgeThresholds = []BadgeThreshold{
		{Threshold: 5, Badge: "entries_5"},
		{Threshold: 20, Badge: "entries_20"},
		{Threshold: 50, Badge: "entries_50"},
	}
)

// HasBadge reports whether the profile already holds the badge.
func (u *UserProfile) HasBadge(id string) bool {
	for _, b := range u.Badges {
		if b == id {
			return true
		}
	}
	return false
}
