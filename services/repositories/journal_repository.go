package repositories

import (
	"encoding/json"
	"errors"
	"os"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/theramind/journal_api/cryptox"
	"github.com/theramind/journal_api/model"
)

// ErrEntryNotFound is returned by GetEntryByID when no entry carries the id.
var ErrEntryNotFound = errors.New("journal entry not found")

// entriesPerWeekDivisor approximates weeks per month for the monthly
// summary.
const entriesPerWeekDivisor = 4.345

// JournalRepository is the sole reader and writer of the journal document
// file. Every operation loads the whole document, mutates it in memory and
// writes it back in full. A process-local mutex serializes that cycle;
// there is no cross-process locking, so concurrent processes remain
// last-writer-wins over the whole document.
type JournalRepository struct {
	BaseFileRepository

	cipher *cryptox.Cipher

	onEntrySaved    func()
	onDegradedField func()
}

func NewJournalRepository(path string, cipher *cryptox.Cipher) *JournalRepository {
	return &JournalRepository{
		BaseFileRepository: NewBaseFileRepository(path),
		cipher:             cipher,
	}
}

// SetHooks registers optional counters invoked on entry saves and degraded
// decrypts.
func (r *JournalRepository) SetHooks(onEntrySaved, onDegradedField func()) {
	r.onEntrySaved = onEntrySaved
	r.onDegradedField = onDegradedField
}

// EnsureInitialized creates an empty document file when none exists.
// Idempotent.
func (r *JournalRepository) EnsureInitialized() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	return r.writeDocument(model.NewJournalDocument())
}

// loadDocument reads the document, treating a missing or corrupt file as an
// empty document. Missing keys are healed.
func (r *JournalRepository) loadDocument() *model.JournalDocument {
	doc := model.NewJournalDocument()

	raw, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).WithField("path", r.path).Warn("Failed to read journal document, treating as empty")
		}
		return doc
	}

	if err := json.Unmarshal(raw, doc); err != nil {
		log.WithError(err).WithField("path", r.path).Warn("Corrupt journal document, treating as empty")
		return model.NewJournalDocument()
	}

	doc.Heal()
	return doc
}

// SaveEntry appends a new entry with the next sequential id, encrypting
// content and reflection while leaving emotion scores in plaintext, then
// recomputes the derived profile and persists the whole document. Returns
// the assigned id.
func (r *JournalRepository) SaveEntry(content string, emotions []model.EmotionScore, reflection, timestamp string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.loadDocument()

	encContent, err := r.cipher.Encrypt(content)
	if err != nil {
		return 0, err
	}
	encReflection, err := r.cipher.Encrypt(reflection)
	if err != nil {
		return 0, err
	}

	if emotions == nil {
		emotions = []model.EmotionScore{}
	}

	entry := model.JournalEntry{
		ID:         len(doc.Entries) + 1,
		Content:    encContent,
		Emotions:   emotions,
		Reflection: encReflection,
		Timestamp:  timestamp,
	}
	doc.Entries = append(doc.Entries, entry)

	r.updateUserStats(doc, timestamp)

	if err := r.writeDocument(doc); err != nil {
		return 0, err
	}

	if r.onEntrySaved != nil {
		r.onEntrySaved()
	}
	return entry.ID, nil
}

// updateUserStats recomputes the derived profile after an entry was
// appended. The streak compares calendar dates against last_entry_date,
// not the maximum timestamp across entries, so backfilled out-of-order
// timestamps reset the streak; that behavior is part of the contract.
func (r *JournalRepository) updateUserStats(doc *model.JournalDocument, timestamp string) {
	user := &doc.User

	user.TotalEntries = len(doc.Entries)

	switch {
	case user.LastEntryDate == "":
		user.Streak = 1
	default:
		switch daysBetween(user.LastEntryDate, timestamp) {
		case 0:
			// Same calendar day, streak unchanged.
		case 1:
			user.Streak++
		default:
			user.Streak = 1
		}
	}

	user.LastEntryDate = timestamp
	user.Level = user.TotalEntries/10 + 1

	r.updateBadges(doc)
}

// updateBadges awards streak and entry-count badges once each; badges are
// never revoked even when the streak later drops.
func (r *JournalRepository) updateBadges(doc *model.JournalDocument) {
	user := &doc.User

	for _, bt := range model.StreakBadgeThresholds {
		if user.Streak >= bt.Threshold && !user.HasBadge(bt.Badge) {
			user.Badges = append(user.Badges, bt.Badge)
		}
	}
	for _, bt := range model.EntryBadgeThresholds {
		if user.TotalEntries >= bt.Threshold && !user.HasBadge(bt.Badge) {
			user.Badges = append(user.Badges, bt.Badge)
		}
	}
}

// daysBetween returns the whole calendar days from the date portion of a
// to the date portion of b. Unparseable timestamps count as a gap.
func daysBetween(a, b string) int {
	da, okA := parseDate(a)
	db, okB := parseDate(b)
	if !okA || !okB {
		return -1
	}
	return int(db.Sub(da).Hours() / 24)
}

func parseDate(timestamp string) (time.Time, bool) {
	if len(timestamp) < 10 {
		return time.Time{}, false
	}
	d, err := time.Parse("2006-01-02", timestamp[:10])
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// DecryptedEntry pairs an entry with the degraded flag of its field
// decryption.
type DecryptedEntry struct {
	model.JournalEntry
	Degraded bool
}

// GetAllEntries returns all entries decrypted, newest first. Ordering is a
// lexicographic sort on the ISO-8601 timestamp strings, which preserves
// chronology for same-timezone timestamps.
func (r *JournalRepository) GetAllEntries() []DecryptedEntry {
	r.mu.Lock()
	doc := r.loadDocument()
	r.mu.Unlock()

	entries := make([]DecryptedEntry, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		entries = append(entries, r.decryptEntry(e))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})

	return entries
}

// GetEntryByID scans for the entry and returns it decrypted, or
// ErrEntryNotFound.
func (r *JournalRepository) GetEntryByID(id int) (*DecryptedEntry, error) {
	r.mu.Lock()
	doc := r.loadDocument()
	r.mu.Unlock()

	for _, e := range doc.Entries {
		if e.ID == id {
			entry := r.decryptEntry(e)
			return &entry, nil
		}
	}
	return nil, ErrEntryNotFound
}

func (r *JournalRepository) decryptEntry(e model.JournalEntry) DecryptedEntry {
	content := r.cipher.Decrypt(e.Content)
	reflection := r.cipher.Decrypt(e.Reflection)

	degraded := content.Degraded || reflection.Degraded
	if degraded {
		log.WithField("entry_id", e.ID).Warn("Journal entry decryption degraded, surfacing raw field")
		if r.onDegradedField != nil {
			r.onDegradedField()
		}
	}

	e.Content = content.Text
	e.Reflection = reflection.Text
	return DecryptedEntry{JournalEntry: e, Degraded: degraded}
}

// GetUserStats returns the stored profile; a missing or corrupt document
// yields a zero-valued profile rather than an error.
func (r *JournalRepository) GetUserStats() model.UserProfile {
	r.mu.Lock()
	doc := r.loadDocument()
	r.mu.Unlock()

	return doc.User
}

// EmotionAggregate accumulates per-label counts and mean scores over a
// summary window. Order follows first appearance during aggregation.
type EmotionAggregate struct {
	Label     string
	Count     int
	MeanScore float64
}

// Summary is the aggregate over a trailing time window.
type Summary struct {
	EntryCount      int
	Emotions        []EmotionAggregate
	DominantEmotion string
	ActiveDays      int
	EntriesPerWeek  float64
}

// WeeklySummary aggregates entries from the trailing 7 days, measured from
// the wall clock at call time. DominantEmotion is the label with the
// highest mean score; ties keep the first-seen label.
func (r *JournalRepository) WeeklySummary() Summary {
	return r.summarize(7 * 24 * time.Hour)
}

// MonthlySummary aggregates the trailing 30 days and additionally reports
// distinct active calendar days and an approximate entries-per-week rate.
func (r *JournalRepository) MonthlySummary() Summary {
	s := r.summarize(30 * 24 * time.Hour)
	s.EntriesPerWeek = float64(s.EntryCount) / entriesPerWeekDivisor
	return s
}

func (r *JournalRepository) summarize(window time.Duration) Summary {
	r.mu.Lock()
	doc := r.loadDocument()
	r.mu.Unlock()

	cutoff := time.Now().Add(-window)

	type bucket struct {
		label string
		count int
		total float64
	}
	var order []*bucket
	byLabel := map[string]*bucket{}
	activeDays := map[string]struct{}{}

	var summary Summary
	for _, e := range doc.Entries {
		ts, err := parseTimestamp(e.Timestamp)
		if err != nil || ts.Before(cutoff) {
			continue
		}

		summary.EntryCount++
		if len(e.Timestamp) >= 10 {
			activeDays[e.Timestamp[:10]] = struct{}{}
		}

		for _, em := range e.Emotions {
			b, ok := byLabel[em.Label]
			if !ok {
				b = &bucket{label: em.Label}
				byLabel[em.Label] = b
				order = append(order, b)
			}
			b.count++
			b.total += em.Score
		}
	}

	summary.ActiveDays = len(activeDays)
	summary.Emotions = make([]EmotionAggregate, 0, len(order))

	var best *EmotionAggregate
	for _, b := range order {
		agg := EmotionAggregate{
			Label:     b.label,
			Count:     b.count,
			MeanScore: b.total / float64(b.count),
		}
		summary.Emotions = append(summary.Emotions, agg)
		if best == nil || agg.MeanScore > best.MeanScore {
			last := agg
			best = &last
		}
	}
	if best != nil {
		summary.DominantEmotion = best.Label
	}

	return summary
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// SetPinProtection stores a bcrypt hash of the pin and enables protection.
// The pin is never persisted in cleartext. Returns false on any failure
// rather than an error.
func (r *JournalRepository) SetPinProtection(pin string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("Failed to hash pin")
		return false
	}

	doc := r.loadDocument()
	doc.User.PinProtected = true
	doc.User.Pin = string(hash)

	if err := r.writeDocument(doc); err != nil {
		log.WithError(err).Error("Failed to persist pin protection")
		return false
	}
	return true
}

// VerifyPin reports whether the supplied pin unlocks the journal. When no
// protection is configured every pin passes.
func (r *JournalRepository) VerifyPin(pin string) bool {
	r.mu.Lock()
	doc := r.loadDocument()
	r.mu.Unlock()

	if !doc.User.PinProtected {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(doc.User.Pin), []byte(pin)) == nil
}

// Snapshot returns the raw persisted document bytes, for backups. The
// document is already encrypted at rest field-by-field.
func (r *JournalRepository) Snapshot() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.loadDocument()
	return json.MarshalIndent(doc, "", "  ")
}
