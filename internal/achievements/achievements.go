// Package achievements evaluates the badge catalog against an account.
package achievements

import (
	"github.com/stridex/stridex/internal/models"
)

// Achievement ids, in catalog order
const (
	FirstStep     = "first_step"
	WeekWarrior   = "week_warrior"
	MasterMind    = "master_mind"
	ZenMaster     = "zen_master"
	Perfectionist = "perfectionist"
	Marathon      = "marathon"
	Scholar       = "scholar"
	Elite         = "elite"
)

type rule struct {
	achievement models.Achievement
	met         func(a models.Account, today string) bool
}

var rules = []rule{
	{
		achievement: models.Achievement{ID: FirstStep, Name: "First Step", Description: "Complete your first habit", Icon: "🌱"},
		met:         func(a models.Account, _ string) bool { return a.User.XP > 10 },
	},
	{
		achievement: models.Achievement{ID: WeekWarrior, Name: "Week Warrior", Description: "7 Day Streak", Icon: "🔥"},
		met:         func(a models.Account, _ string) bool { return a.User.TotalStreak >= 7 },
	},
	{
		achievement: models.Achievement{ID: MasterMind, Name: "Mastermind", Description: "Reach Level 5", Icon: "🧠"},
		met:         func(a models.Account, _ string) bool { return a.User.Level() >= 5 },
	},
	{
		achievement: models.Achievement{ID: ZenMaster, Name: "Zen Master", Description: "Log 3 Journal Entries", Icon: "🧘"},
		met:         func(a models.Account, _ string) bool { return len(a.Journal) >= 3 },
	},
	{
		achievement: models.Achievement{ID: Perfectionist, Name: "Perfectionist", Description: "100% Day Completion", Icon: "💎"},
		met: func(a models.Account, today string) bool {
			return len(a.Habits) > 0 && a.CompletedOn(today) == len(a.Habits)
		},
	},
	{
		achievement: models.Achievement{ID: Marathon, Name: "Marathon Runner", Description: "30 Day Streak", Icon: "🏃"},
		met:         func(a models.Account, _ string) bool { return a.User.TotalStreak >= 30 },
	},
	{
		achievement: models.Achievement{ID: Scholar, Name: "Scholar", Description: "Complete 100 habits", Icon: "📚"},
		met:         func(a models.Account, _ string) bool { return a.TotalCompletions() >= 100 },
	},
	{
		achievement: models.Achievement{ID: Elite, Name: "Elite", Description: "Reach Level 10", Icon: "⭐"},
		met:         func(a models.Account, _ string) bool { return a.User.Level() >= 10 },
	},
}

// Catalog returns the static badge list in catalog order
func Catalog() []models.Achievement {
	out := make([]models.Achievement, len(rules))
	for i, r := range rules {
		out[i] = r.achievement
	}
	return out
}

// Lookup returns the catalog entry for id
func Lookup(id string) (models.Achievement, bool) {
	for _, r := range rules {
		if r.achievement.ID == id {
			return r.achievement, true
		}
	}
	return models.Achievement{}, false
}

// Check evaluates every rule against the current state of the account and
// appends newly met ids to a.Unlocked. Ids already unlocked are skipped even if
// their condition no longer holds. today is the YYYY-MM-DD key used by the
// perfect-day rule.
func Check(a *models.Account, today string) []models.Achievement {
	var unlocked []models.Achievement
	for _, r := range rules {
		if a.IsUnlocked(r.achievement.ID) || !r.met(*a, today) {
			continue
		}
		a.Unlocked = append(a.Unlocked, r.achievement.ID)
		unlocked = append(unlocked, r.achievement)
	}
	return unlocked
}

// Progress returns the unlocked fraction of the catalog
func Progress(a models.Account) float64 {
	return float64(len(a.Unlocked)) / float64(len(rules))
}
