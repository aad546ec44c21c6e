package history

import (
	"testing"

	"github.com/stridex/stridex/internal/config"
	"github.com/stridex/stridex/internal/models"
	"github.com/stridex/stridex/internal/random"
)

func TestSyncTodayUpdatesExistingRow(t *testing.T) {
	a := account(4)
	NewGenerator(config.DefaultBalance(), random.New(8)).Generate(a, sunday)
	before := a.Progress[len(a.Progress)-1]

	for i := range a.Habits {
		a.Habits[i].CompletedDates = append(a.Habits[i].CompletedDates, "2026-03-15")
		a.Habits[i].TotalCompletions++
	}
	rec := SyncToday(a, sunday, 15)

	if len(a.Progress) != 60 {
		t.Fatalf("ledger grew to %d rows", len(a.Progress))
	}
	if rec.CompletionRate != 100 || rec.HabitsCompleted != 4 || rec.XPEarned != 60 {
		t.Errorf("SyncToday() = %+v", rec)
	}
	if rec.Mood != before.Mood || rec.Motivation != before.Motivation || rec.FocusMinutes != before.FocusMinutes {
		t.Errorf("generated mood/motivation/focus must be kept: before %+v after %+v", before, rec)
	}
	if a.Progress[59] != rec {
		t.Error("returned record does not match the stored row")
	}
}

func TestSyncTodayAppendsMissingRow(t *testing.T) {
	a := &models.Account{Habits: []models.Habit{
		{ID: "x", CompletedDates: []string{"2026-03-15"}, TotalCompletions: 1},
		{ID: "y", CompletedDates: []string{}},
	}}
	rec := SyncToday(a, sunday, 15)

	if len(a.Progress) != 1 {
		t.Fatalf("expected one row, got %d", len(a.Progress))
	}
	if rec.Date != "2026-03-15" || rec.DayOfWeek != 6 || rec.CompletionRate != 50 {
		t.Errorf("SyncToday() = %+v", rec)
	}
	if rec.Mood != 7 || rec.Motivation != 7 {
		t.Errorf("expected default mood/motivation, got %+v", rec)
	}
}

func TestRate(t *testing.T) {
	if Rate(0, 0) != 0 {
		t.Error("Rate with no habits must be 0")
	}
	if Rate(3, 4) != 75 {
		t.Errorf("Rate(3,4) = %v", Rate(3, 4))
	}
}
