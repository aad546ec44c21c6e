package habits

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stridex/stridex/internal/models"
)

func testHabits() []models.Habit {
	return []models.Habit{
		{ID: "u_0", Name: "Run", Emoji: "💪", Category: "Health", Streak: 4, TotalCompletions: 9, CompletedDates: []string{"2026-03-11"}},
		{ID: "u_1", Name: "Read", Emoji: "📚", Category: "Learning"},
	}
}

func TestItemText(t *testing.T) {
	done := Item{Habit: testHabits()[0], DoneToday: true}
	if got := done.Title(); got != "✓ 💪 Run" {
		t.Errorf("Title() = %q", got)
	}
	if got := done.Description(); !strings.Contains(got, "4-day streak") || !strings.Contains(got, "completed today") {
		t.Errorf("Description() = %q", got)
	}
	if got := (Item{Habit: testHabits()[1]}).Title(); got != "○ 📚 Read" {
		t.Errorf("Title() = %q", got)
	}
}

func TestUpdateEmitsMessages(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want tea.Msg
	}{
		{"space toggles", tea.KeyMsg{Type: tea.KeySpace}, ToggleHabitMsg{ID: "u_0"}},
		{"x toggles", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, ToggleHabitMsg{ID: "u_0"}},
		{"a adds", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, AddHabitMsg{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(testHabits(), "2026-03-11", 80, 20)
			_, cmd := m.Update(tt.key)
			if cmd == nil {
				t.Fatal("Update returned no command")
			}
			if got := cmd(); got != tt.want {
				t.Errorf("msg = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestToggleFollowsCursor(t *testing.T) {
	m := New(testHabits(), "2026-03-11", 80, 20)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if got := cmd(); got != (ToggleHabitMsg{ID: "u_1"}) {
		t.Errorf("msg = %#v, want toggle of u_1", got)
	}
}

func TestSetHabitsKeepsCursor(t *testing.T) {
	m := New(testHabits(), "2026-03-11", 80, 20)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.SetHabits(testHabits(), "2026-03-12")
	if m.list.Index() != 1 {
		t.Errorf("cursor = %d, want 1", m.list.Index())
	}
	if item := m.list.SelectedItem().(Item); item.DoneToday {
		t.Error("u_1 is not completed on 2026-03-12")
	}
}

func TestEmptyView(t *testing.T) {
	m := New(nil, "2026-03-11", 80, 20)
	if !strings.Contains(m.View(), "No habits yet") {
		t.Errorf("View() = %q", m.View())
	}
}
