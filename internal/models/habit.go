package models

import "slices"

// Habit represents a daily practice owned by a single user
type Habit struct {
	ID               string   `json:"id"` // <userID>_<n>, unique within the owning user
	Name             string   `json:"name"`
	Emoji            string   `json:"emoji"`
	Category         string   `json:"category"`
	Streak           int      `json:"streak"`
	Level            int      `json:"level"`
	TotalCompletions int      `json:"total_completions"`
	CompletedDates   []string `json:"completed_dates"` // YYYY-MM-DD format, no duplicates
}

// IsCompletedOn reports whether the habit was completed on the given day
func (h Habit) IsCompletedOn(day string) bool {
	return slices.Contains(h.CompletedDates, day)
}

// Clone returns a copy that shares no memory with h
func (h Habit) Clone() Habit {
	h.CompletedDates = slices.Clone(h.CompletedDates)
	return h
}
