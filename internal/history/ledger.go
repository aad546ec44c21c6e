package history

import (
	"time"

	"github.com/stridex/stridex/internal/constants"
	"github.com/stridex/stridex/internal/models"
)

// SyncToday recomputes the ledger row for today from the habits' live
// completed dates, appending the row when the ledger has none. Mood,
// motivation and focus minutes keep whatever the row already had.
func SyncToday(a *models.Account, today time.Time, xpPerCompletion int) models.ProgressRecord {
	today = Midnight(today)
	key := today.Format(constants.DateFormat)
	completed := a.CompletedOn(key)
	total := len(a.Habits)

	idx := -1
	for i := len(a.Progress) - 1; i >= 0; i-- {
		if a.Progress[i].Date == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		_, week := today.ISOWeek()
		a.Progress = append(a.Progress, models.ProgressRecord{
			Date:       key,
			Mood:       constants.DefaultMood,
			Motivation: constants.DefaultMotivation,
			DayOfWeek:  DayOfWeek(today),
			WeekNumber: week,
		})
		idx = len(a.Progress) - 1
	}

	rec := &a.Progress[idx]
	rec.HabitsCompleted = completed
	rec.TotalHabits = total
	rec.CompletionRate = Rate(completed, total)
	rec.XPEarned = completed * xpPerCompletion
	return *rec
}
