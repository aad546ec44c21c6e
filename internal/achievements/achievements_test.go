package achievements

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/stridex/stridex/internal/models"
)

const today = "2026-03-04"

func ids(list []models.Achievement) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func habits(n int, completedToday int) []models.Habit {
	hs := make([]models.Habit, n)
	for i := range hs {
		hs[i] = models.Habit{ID: fmt.Sprintf("u_%d", i), Name: fmt.Sprintf("habit %d", i)}
		if i < completedToday {
			hs[i].CompletedDates = []string{today}
			hs[i].TotalCompletions = 1
		}
	}
	return hs
}

func TestCatalogOrder(t *testing.T) {
	want := []string{FirstStep, WeekWarrior, MasterMind, ZenMaster, Perfectionist, Marathon, Scholar, Elite}
	if diff := cmp.Diff(want, ids(Catalog())); diff != "" {
		t.Errorf("catalog order mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckRules(t *testing.T) {
	tests := []struct {
		name    string
		account models.Account
		want    []string
	}{
		{
			name:    "fresh account unlocks nothing",
			account: models.Account{Habits: habits(3, 0)},
			want:    nil,
		},
		{
			name:    "xp of exactly 10 is not enough",
			account: models.Account{User: models.User{XP: 10}, Habits: habits(3, 0)},
			want:    nil,
		},
		{
			name:    "first completion",
			account: models.Account{User: models.User{XP: 15}, Habits: habits(3, 1)},
			want:    []string{FirstStep},
		},
		{
			name:    "perfect day",
			account: models.Account{User: models.User{XP: 60}, Habits: habits(4, 4)},
			want:    []string{FirstStep, Perfectionist},
		},
		{
			name:    "no habits is never a perfect day",
			account: models.Account{},
			want:    nil,
		},
		{
			name:    "streaks",
			account: models.Account{User: models.User{TotalStreak: 30}, Habits: habits(2, 0)},
			want:    []string{WeekWarrior, Marathon},
		},
		{
			name:    "levels",
			account: models.Account{User: models.User{XP: 4500}, Habits: habits(2, 0)},
			want:    []string{FirstStep, MasterMind, Elite},
		},
		{
			name: "journal",
			account: models.Account{
				Habits:  habits(1, 0),
				Journal: make([]models.JournalEntry, 3),
			},
			want: []string{ZenMaster},
		},
		{
			name: "scholar",
			account: models.Account{Habits: []models.Habit{
				{ID: "a", TotalCompletions: 60},
				{ID: "b", TotalCompletions: 40},
			}},
			want: []string{Scholar},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acct := tt.account
			got := Check(&acct, today)
			if diff := cmp.Diff(tt.want, ids(got), cmpEmpty); diff != "" {
				t.Errorf("Check() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.want, acct.Unlocked, cmpEmpty); diff != "" {
				t.Errorf("Unlocked mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// cmpEmpty treats nil and empty slices as equal
var cmpEmpty = cmpopts.EquateEmpty()

func TestCheckIsIdempotent(t *testing.T) {
	acct := models.Account{
		User:   models.User{XP: 2600, TotalStreak: 8},
		Habits: habits(2, 2),
	}

	first := Check(&acct, today)
	if len(first) == 0 {
		t.Fatal("expected unlocks on first check")
	}
	snapshot := append([]string(nil), acct.Unlocked...)

	second := Check(&acct, today)
	if len(second) != 0 {
		t.Errorf("second Check() unlocked %v, want nothing", ids(second))
	}
	if diff := cmp.Diff(snapshot, acct.Unlocked); diff != "" {
		t.Errorf("unlocked set changed on re-check (-want +got):\n%s", diff)
	}
}

func TestCheckSkipsUnlockedEvenIfConditionLapsed(t *testing.T) {
	acct := models.Account{User: models.User{XP: 20}, Habits: habits(1, 0)}
	Check(&acct, today)

	acct.User.XP = 0
	if got := Check(&acct, today); len(got) != 0 {
		t.Errorf("unexpected unlocks %v", ids(got))
	}
	if !acct.IsUnlocked(FirstStep) {
		t.Error("first_step must stay unlocked")
	}
}

func TestProgressAndLookup(t *testing.T) {
	acct := models.Account{Unlocked: []string{FirstStep, ZenMaster}}
	if got := Progress(acct); got != 0.25 {
		t.Errorf("Progress() = %v, want 0.25", got)
	}
	a, ok := Lookup(Scholar)
	if !ok || a.Name != "Scholar" {
		t.Errorf("Lookup(scholar) = %+v, %v", a, ok)
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup of unknown id must fail")
	}
}
