// Package history seeds new accounts with a synthetic progress ledger and
// keeps the ledger's row for today in step with live completions.
package history

import (
	"time"

	"github.com/stridex/stridex/internal/config"
	"github.com/stridex/stridex/internal/constants"
	"github.com/stridex/stridex/internal/models"
	"github.com/stridex/stridex/internal/random"
)

// Generator produces the backfilled history for a new account
type Generator struct {
	Balance config.Balance
	Source  random.Source
}

func NewGenerator(b config.Balance, src random.Source) *Generator {
	return &Generator{Balance: b, Source: src}
}

// Generate writes Balance.HistoryDays records ending on today into a.Progress
// and backfills every habit and the user's XP and total streak to match.
//
// Each habit completes independently with the weekday or weekend probability.
// Today's draw counts towards the day's record and XP, but is not persisted on
// the habits: the user marks today live.
func (g *Generator) Generate(a *models.Account, today time.Time) []models.ProgressRecord {
	today = Midnight(today)
	todayKey := today.Format(constants.DateFormat)
	days := g.Balance.HistoryDays
	total := len(a.Habits)

	records := make([]models.ProgressRecord, 0, days)
	totalXP := 0
	totalStreak := 0

	for offset := days - 1; offset >= 0; offset-- {
		date := today.AddDate(0, 0, -offset)
		key := date.Format(constants.DateFormat)
		p := g.Balance.WeekdayCompletionP
		if IsWeekend(date) {
			p = g.Balance.WeekendCompletionP
		}

		completed := 0
		for i := range a.Habits {
			h := &a.Habits[i]
			done := g.Source.Float64() < p
			if done {
				completed++
			}
			if key == todayKey {
				continue
			}
			if done {
				h.CompletedDates = append(h.CompletedDates, key)
				h.TotalCompletions++
				h.Streak = min(h.Streak+1, g.Balance.MaxHabitStreak)
			} else {
				h.Streak = 0
			}
		}

		earned := completed * g.Balance.XPPerCompletion
		totalXP += earned

		switch {
		case completed == total:
			totalStreak++
		case float64(completed) < float64(total)/2:
			totalStreak = max(0, totalStreak-1)
		}

		_, week := date.ISOWeek()
		records = append(records, models.ProgressRecord{
			Date:            key,
			CompletionRate:  Rate(completed, total),
			HabitsCompleted: completed,
			TotalHabits:     total,
			XPEarned:        earned,
			Mood:            random.Between(g.Source, constants.MoodMin, constants.MoodMax),
			Motivation:      random.Between(g.Source, constants.MotivationMin, constants.MotivationMax),
			FocusMinutes:    random.Between(g.Source, constants.FocusMinutesMin, constants.FocusMinutesMax),
			DayOfWeek:       DayOfWeek(date),
			WeekNumber:      week,
		})
	}

	a.User.XP += totalXP
	a.User.TotalStreak = totalStreak
	a.Progress = records
	return records
}

// Rate is completed/total as a percentage, 0 when there are no habits
func Rate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// DayOfWeek maps time.Weekday onto 0=Monday..6=Sunday
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// IsWeekend reports Saturday or Sunday
func IsWeekend(t time.Time) bool {
	return DayOfWeek(t) >= 5
}

// Midnight truncates t to the start of its calendar day in t's location
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
