// Package leaderboard ranks every account of the session by XP.
package leaderboard

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/stridex/stridex/internal/models"
)

var medals = []string{"🥇", "🥈", "🥉"}

// Entry is one ranked row
type Entry struct {
	Position    int    `json:"position"`
	Rank        string `json:"rank"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Level       int    `json:"level"`
	XP          int    `json:"xp"`
	TotalStreak int    `json:"total_streak"`
	IsViewer    bool   `json:"is_viewer"`
}

// Label is the display name, with "(YOU)" for the viewing user
func (e Entry) Label() string {
	if e.IsViewer {
		return e.Username + " (YOU)"
	}
	return e.Username
}

// Build sorts users by XP descending, ties broken by username, and marks viewerID
func Build(users []models.User, viewerID string) []Entry {
	sorted := slices.Clone(users)
	slices.SortStableFunc(sorted, func(a, b models.User) int {
		if c := cmp.Compare(b.XP, a.XP); c != 0 {
			return c
		}
		return cmp.Compare(a.Username, b.Username)
	})

	out := make([]Entry, len(sorted))
	for i, u := range sorted {
		rank := strconv.Itoa(i + 1)
		if i < len(medals) {
			rank = medals[i]
		}
		out[i] = Entry{
			Position:    i + 1,
			Rank:        rank,
			UserID:      u.ID,
			Username:    u.Username,
			Level:       u.Level(),
			XP:          u.XP,
			TotalStreak: u.TotalStreak,
			IsViewer:    u.ID == viewerID,
		}
	}
	return out
}

// Top returns at most n entries
func Top(entries []Entry, n int) []Entry {
	if n < 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}
