package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stridex/stridex/internal/models"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type Item struct {
	Habit     models.Habit
	DoneToday bool
}

func (i Item) Title() string {
	mark := "○"
	if i.DoneToday {
		mark = "✓"
	}
	return fmt.Sprintf("%s %s %s", mark, i.Habit.Emoji, i.Habit.Name)
}

func (i Item) Description() string {
	state := "not completed today"
	if i.DoneToday {
		state = "completed today"
	}
	return fmt.Sprintf("%s · 🔥 %d-day streak · %d total · %s", i.Habit.Category, i.Habit.Streak, i.Habit.TotalCompletions, state)
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add habit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space/x", "toggle today"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(habits []models.Habit, today string, width, height int) Model {
	l := list.New(items(habits, today), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add}
	}

	return Model{list: l, keys: keys}
}

func items(habits []models.Habit, today string) []list.Item {
	out := make([]list.Item, len(habits))
	for i, h := range habits {
		out[i] = Item{Habit: h, DoneToday: h.IsCompletedOn(today)}
	}
	return out
}

// SetHabits replaces the items and keeps the cursor where it was
func (m *Model) SetHabits(habits []models.Habit, today string) {
	idx := m.list.Index()
	m.list.SetItems(items(habits, today))
	if idx < len(habits) {
		m.list.Select(idx)
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Habit.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
