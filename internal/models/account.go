package models

import "slices"

// Account is the per-user aggregate. Every operation of the session layer
// loads one, mutates it, and saves it back.
type Account struct {
	User     User             `json:"user"`
	Habits   []Habit          `json:"habits"`
	Progress []ProgressRecord `json:"progress"`
	Journal  []JournalEntry   `json:"journal"`
	Unlocked []string         `json:"unlocked"` // achievement ids in unlock order
	Chat     []ChatMessage    `json:"chat"`
}

// Habit returns a pointer into a.Habits for the given id, or nil
func (a *Account) Habit(id string) *Habit {
	for i := range a.Habits {
		if a.Habits[i].ID == id {
			return &a.Habits[i]
		}
	}
	return nil
}

// CompletedOn counts the habits completed on the given day
func (a Account) CompletedOn(day string) int {
	count := 0
	for _, h := range a.Habits {
		if h.IsCompletedOn(day) {
			count++
		}
	}
	return count
}

// TotalCompletions sums completions across all habits
func (a Account) TotalCompletions() int {
	total := 0
	for _, h := range a.Habits {
		total += h.TotalCompletions
	}
	return total
}

// IsUnlocked reports whether the achievement id has been unlocked
func (a Account) IsUnlocked(id string) bool {
	return slices.Contains(a.Unlocked, id)
}

// Clone deep-copies the aggregate so that stores never alias live state
func (a Account) Clone() Account {
	out := a
	out.Habits = make([]Habit, len(a.Habits))
	for i, h := range a.Habits {
		out.Habits[i] = h.Clone()
	}
	out.Progress = slices.Clone(a.Progress)
	out.Journal = slices.Clone(a.Journal)
	out.Unlocked = slices.Clone(a.Unlocked)
	out.Chat = slices.Clone(a.Chat)
	return out
}
