// Package habits mutates the ordered habit collection of an account.
package habits

import (
	"fmt"
	"slices"
	"strings"

	"github.com/stridex/stridex/internal/config"
	"github.com/stridex/stridex/internal/constants"
	"github.com/stridex/stridex/internal/errors"
	"github.com/stridex/stridex/internal/models"
	"github.com/stridex/stridex/internal/random"
	"github.com/stridex/stridex/internal/xp"
)

var (
	// SetupEmojis is the pool used for habits created with the account
	SetupEmojis = []string{"💪", "📚", "🧘", "💻", "🎯", "🏃", "🎨", "🔥"}
	// AddEmojis is the smaller pool used for habits added later
	AddEmojis = []string{"💪", "📚", "🧘", "💻", "🎯"}
	// Categories is the fixed category set
	Categories = []string{"Health", "Intellect", "Spirit", "Career", "Creativity"}
)

// ToggleResult describes what a toggle did
type ToggleResult struct {
	HabitID   string `json:"habit_id"`
	Day       string `json:"day"`
	Completed bool   `json:"completed"` // state after the toggle
	XPDelta   int    `json:"xp_delta"`
}

// Store applies habit operations with the configured balance
type Store struct {
	Balance config.Balance
	Source  random.Source
}

func NewStore(b config.Balance, src random.Source) *Store {
	return &Store{Balance: b, Source: src}
}

// New builds a habit for the owning user. emojis selects the cosmetic pool.
func New(userID string, index int, name string, emojis []string, src random.Source) models.Habit {
	return models.Habit{
		ID:             fmt.Sprintf("%s_%d", userID, index),
		Name:           name,
		Emoji:          random.Choice(src, emojis),
		Category:       random.Choice(src, Categories),
		Level:          constants.HabitLevel,
		CompletedDates: []string{},
	}
}

// Toggle flips the completion state of habitID on day. Completing adds the
// date, bumps completions and streak and credits XP. Undoing reverses all of
// it, flooring every counter at zero.
func (s *Store) Toggle(a *models.Account, habitID, day string) (ToggleResult, error) {
	h := a.Habit(habitID)
	if h == nil {
		return ToggleResult{}, errors.NotFound("habit", habitID)
	}

	res := ToggleResult{HabitID: habitID, Day: day}
	if idx := slices.Index(h.CompletedDates, day); idx >= 0 {
		h.CompletedDates = slices.Delete(h.CompletedDates, idx, idx+1)
		h.TotalCompletions = max(0, h.TotalCompletions-1)
		h.Streak = max(0, h.Streak-1)
		before := a.User.XP
		xp.Debit(&a.User, s.Balance.XPPerCompletion)
		res.XPDelta = a.User.XP - before
		return res, nil
	}

	h.CompletedDates = append(h.CompletedDates, day)
	h.TotalCompletions++
	h.Streak = min(h.Streak+1, s.Balance.MaxHabitStreak)
	xp.Credit(&a.User, s.Balance.XPPerCompletion)
	res.Completed = true
	res.XPDelta = s.Balance.XPPerCompletion
	return res, nil
}

// Add appends a new habit. The name is trimmed and must not be empty.
func (s *Store) Add(a *models.Account, name string) (models.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Habit{}, errors.Validation("habit name", "cannot be empty")
	}

	h := New(a.User.ID, len(a.Habits), name, AddEmojis, s.Source)
	a.Habits = append(a.Habits, h)
	return h, nil
}
