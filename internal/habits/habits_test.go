package habits

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stridex/stridex/internal/config"
	"github.com/stridex/stridex/internal/errors"
	"github.com/stridex/stridex/internal/models"
	"github.com/stridex/stridex/internal/random"
)

const today = "2026-05-10"

func newAccount(names ...string) *models.Account {
	src := random.New(3)
	a := &models.Account{User: models.User{ID: "u1"}}
	for i, n := range names {
		a.Habits = append(a.Habits, New(a.User.ID, i, n, SetupEmojis, src))
	}
	return a
}

func newStore() *Store {
	return NewStore(config.DefaultBalance(), random.New(9))
}

func TestToggleCompletes(t *testing.T) {
	a := newAccount("Workout")
	s := newStore()

	res, err := s.Toggle(a, "u1_0", today)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !res.Completed || res.XPDelta != 15 {
		t.Errorf("Toggle() = %+v, want completed with +15", res)
	}

	h := a.Habits[0]
	if !h.IsCompletedOn(today) || h.TotalCompletions != 1 || h.Streak != 1 {
		t.Errorf("habit after toggle = %+v", h)
	}
	if a.User.XP != 15 || a.User.Level() != 1 {
		t.Errorf("user xp=%d level=%d, want 15/1", a.User.XP, a.User.Level())
	}
}

func TestToggleTwiceRestoresState(t *testing.T) {
	a := newAccount("Workout", "Read")
	a.User.XP = 120
	a.Habits[1].CompletedDates = []string{"2026-05-08", "2026-05-09"}
	a.Habits[1].TotalCompletions = 2
	a.Habits[1].Streak = 2
	before := a.Clone()
	s := newStore()

	if _, err := s.Toggle(a, "u1_1", today); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	res, err := s.Toggle(a, "u1_1", today)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if res.Completed || res.XPDelta != -15 {
		t.Errorf("undo result = %+v", res)
	}
	if diff := cmp.Diff(before, *a); diff != "" {
		t.Errorf("state after toggle/untoggle differs (-before +after):\n%s", diff)
	}
}

func TestToggleUndoFloorsAtZero(t *testing.T) {
	a := newAccount("Workout")
	a.Habits[0].CompletedDates = []string{today}
	// Counters deliberately inconsistent to exercise the floors
	a.Habits[0].TotalCompletions = 0
	a.Habits[0].Streak = 0
	a.User.XP = 5

	res, err := newStore().Toggle(a, "u1_0", today)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	h := a.Habits[0]
	if h.TotalCompletions != 0 || h.Streak != 0 || a.User.XP != 0 {
		t.Errorf("floors violated: habit=%+v xp=%d", h, a.User.XP)
	}
	if res.XPDelta != -5 {
		t.Errorf("XPDelta = %d, want -5", res.XPDelta)
	}
}

func TestToggleStreakCap(t *testing.T) {
	a := newAccount("Workout")
	a.Habits[0].Streak = 100
	if _, err := newStore().Toggle(a, "u1_0", today); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if a.Habits[0].Streak != 100 {
		t.Errorf("Streak = %d, want cap 100", a.Habits[0].Streak)
	}
}

func TestToggleUnknownHabit(t *testing.T) {
	a := newAccount("Workout")
	before := a.Clone()
	_, err := newStore().Toggle(a, "u1_7", today)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if diff := cmp.Diff(before, *a); diff != "" {
		t.Errorf("state mutated on error:\n%s", diff)
	}
}

func TestCompletionInvariantUnderRandomToggles(t *testing.T) {
	a := newAccount("A", "B", "C")
	s := newStore()
	src := random.New(11)
	days := []string{"2026-05-07", "2026-05-08", "2026-05-09", today}

	for i := 0; i < 500; i++ {
		id := a.Habits[src.IntN(len(a.Habits))].ID
		day := days[src.IntN(len(days))]
		if _, err := s.Toggle(a, id, day); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		for _, h := range a.Habits {
			if h.TotalCompletions < 0 || len(h.CompletedDates) != h.TotalCompletions {
				t.Fatalf("step %d: invariant broken for %+v", i, h)
			}
			sorted := slices.Clone(h.CompletedDates)
			slices.Sort(sorted)
			if len(slices.Compact(sorted)) != len(h.CompletedDates) {
				t.Fatalf("step %d: duplicate dates in %v", i, h.CompletedDates)
			}
		}
		if a.User.XP < 0 {
			t.Fatalf("step %d: negative xp", i)
		}
	}
}

func TestAdd(t *testing.T) {
	a := newAccount("Workout")
	s := newStore()

	h, err := s.Add(a, "  Morning Journaling  ")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if h.Name != "Morning Journaling" || h.ID != "u1_1" {
		t.Errorf("Add() = %+v", h)
	}
	if h.Streak != 0 || h.Level != 1 || h.TotalCompletions != 0 || len(h.CompletedDates) != 0 {
		t.Errorf("new habit not zeroed: %+v", h)
	}
	if !slices.Contains(AddEmojis, h.Emoji) {
		t.Errorf("emoji %q not from the add pool", h.Emoji)
	}
	if !slices.Contains(Categories, h.Category) {
		t.Errorf("category %q not in the category set", h.Category)
	}
	if len(a.Habits) != 2 {
		t.Errorf("habit count = %d, want 2", len(a.Habits))
	}
}

func TestAddRejectsBlankNames(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		a := newAccount("Workout")
		_, err := newStore().Add(a, name)
		if !errors.Is(err, errors.ErrValidation) {
			t.Errorf("Add(%q) error = %v, want ValidationError", name, err)
		}
		if len(a.Habits) != 1 {
			t.Errorf("Add(%q) changed habit count to %d", name, len(a.Habits))
		}
	}
}
