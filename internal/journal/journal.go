// Package journal records reflections and labels them with a fixed keyword
// matcher. The matcher is deliberately a word list, not sentiment analysis.
package journal

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stridex/stridex/internal/config"
	"github.com/stridex/stridex/internal/constants"
	"github.com/stridex/stridex/internal/errors"
	"github.com/stridex/stridex/internal/models"
	"github.com/stridex/stridex/internal/xp"
)

// PositiveWords is the stock word list. A substring match on the lowercased text counts.
var PositiveWords = []string{"good", "great", "happy", "productive", "awesome", "focus", "energy"}

// Matcher labels text by substring match against Words
type Matcher struct {
	Words []string
}

// DefaultMatcher uses PositiveWords
func DefaultMatcher() Matcher {
	return Matcher{Words: PositiveWords}
}

// Classify returns Positive when any word occurs in the lowercased text
func (m Matcher) Classify(text string) constants.Sentiment {
	lower := strings.ToLower(text)
	for _, w := range m.Words {
		if w != "" && strings.Contains(lower, strings.ToLower(w)) {
			return constants.SentimentPositive
		}
	}
	return constants.SentimentNeutral
}

// Award returns the XP bonus for a sentiment label
func Award(s constants.Sentiment, b config.Balance) int {
	if s == constants.SentimentPositive {
		return b.XPPerPositiveEntry
	}
	return b.XPPerNeutralEntry
}

// Journal appends entries to an account
type Journal struct {
	Matcher Matcher
	Balance config.Balance
}

func New(m Matcher, b config.Balance) *Journal {
	return &Journal{Matcher: m, Balance: b}
}

// Append labels the text, records the entry and credits the bonus XP.
// Blank text is rejected without touching the account.
func (j *Journal) Append(a *models.Account, text string, now time.Time) (models.JournalEntry, error) {
	if strings.TrimSpace(text) == "" {
		return models.JournalEntry{}, errors.Validation("journal text", "cannot be empty")
	}

	sentiment := j.Matcher.Classify(text)
	entry := models.JournalEntry{
		ID:        uuid.New().String(),
		CreatedAt: now,
		Text:      text,
		Sentiment: sentiment,
		XPAwarded: Award(sentiment, j.Balance),
	}
	a.Journal = append(a.Journal, entry)
	xp.Credit(&a.User, entry.XPAwarded)
	return entry, nil
}

// Recent returns up to n entries, newest first
func Recent(a models.Account, n int) []models.JournalEntry {
	start := max(0, len(a.Journal)-n)
	out := slices.Clone(a.Journal[start:])
	slices.Reverse(out)
	return out
}
