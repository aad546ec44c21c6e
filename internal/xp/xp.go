// Package xp implements the experience-point ledger and the level formula.
package xp

import (
	"github.com/stridex/stridex/internal/constants"
	"github.com/stridex/stridex/internal/models"
)

// Level returns floor(xp/500) + 1. Negative xp is treated as zero.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/constants.XPPerLevel + 1
}

// Credit adds amount to the user's XP. Negative amounts are ignored.
func Credit(u *models.User, amount int) {
	if amount > 0 {
		u.XP += amount
	}
}

// Debit removes amount from the user's XP, flooring at zero
func Debit(u *models.User, amount int) {
	if amount <= 0 {
		return
	}
	u.XP = max(0, u.XP-amount)
}

// ProgressInLevel is the XP earned since the current level began
func ProgressInLevel(xp int) int {
	return max(0, xp) % constants.XPPerLevel
}

// ToNextLevel is the XP still needed to reach the next level
func ToNextLevel(xp int) int {
	return constants.XPPerLevel - ProgressInLevel(xp)
}

// LevelFraction is ProgressInLevel as a value in [0,1) for progress bars
func LevelFraction(xp int) float64 {
	return float64(ProgressInLevel(xp)) / float64(constants.XPPerLevel)
}
