package models

import (
	"time"

	"github.com/stridex/stridex/internal/constants"
)

// User holds the account-level score state
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	XP          int       `json:"xp"`
	TotalStreak int       `json:"total_streak"` // consecutive days where every habit was completed
	Rank        string    `json:"rank"`
	CreatedAt   time.Time `json:"created_at"`
}

// Level is derived from XP on every read and never stored
func (u User) Level() int {
	return u.XP/constants.XPPerLevel + 1
}
