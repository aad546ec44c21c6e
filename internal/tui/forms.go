package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/stridex/stridex/internal/constants"
	"github.com/stridex/stridex/internal/history"
)

const onboardingHabitSlots = 5

type OnboardFormModel struct {
	Username string
	Habits   [onboardingHabitSlots]string
}

type HabitFormModel struct {
	Name string
}

type JournalFormModel struct {
	Text string
}

type PredictFormModel struct {
	DayOfWeek       int
	Mood            int
	Motivation      int
	HabitsCompleted int
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func newOnboardingForm(fm *OnboardFormModel) *huh.Form {
	fields := []huh.Field{
		huh.NewNote().
			Title("🚀 STRIDEX").
			Description("Enlist as a commander and pick up to five habits to track."),
		huh.NewInput().
			Title("Codename").
			Placeholder("Nova").
			Value(&fm.Username).
			Validate(notBlank("codename")),
	}
	for i := range fm.Habits {
		in := huh.NewInput().
			Title(fmt.Sprintf("Habit %d", i+1)).
			Value(&fm.Habits[i])
		if i == 0 {
			in = in.Placeholder("Morning run").Validate(notBlank("at least one habit"))
		} else {
			in = in.Placeholder("optional")
		}
		fields = append(fields, in)
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula())
}

func newHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New habit").
				Placeholder("Stretch").
				Value(&fm.Name).
				Validate(notBlank("name")),
		),
	).WithTheme(huh.ThemeDracula())
}

func newJournalForm(fm *JournalFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("🧘 Reflection").
				Description("Positive entries earn more XP.").
				CharLimit(1000).
				Value(&fm.Text).
				Validate(notBlank("entry")),
		),
	).WithTheme(huh.ThemeDracula())
}

func scaleOptions(lo, hi int) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		opts = append(opts, huh.NewOption(fmt.Sprint(v), v))
	}
	return opts
}

func newPredictForm(fm *PredictFormModel, habitCount int) *huh.Form {
	days := make([]huh.Option[int], len(constants.WeekdayNames))
	for i, name := range constants.WeekdayNames {
		days[i] = huh.NewOption(name, i)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().Title("Day").Options(days...).Value(&fm.DayOfWeek),
			huh.NewSelect[int]().Title("Mood").Options(scaleOptions(1, 10)...).Value(&fm.Mood),
			huh.NewSelect[int]().Title("Motivation").Options(scaleOptions(1, 10)...).Value(&fm.Motivation),
			huh.NewSelect[int]().Title("Habits completed").Options(scaleOptions(0, habitCount)...).Value(&fm.HabitsCompleted),
		),
	).WithTheme(huh.ThemeDracula())
}

// openForm switches to a form state, remembering the tab to return to
func (m *Model) openForm(state constants.SessionState, form *huh.Form) tea.Cmd {
	if m.state < constants.StateOnboarding {
		m.previousState = m.state
	}
	m.state = state
	m.form = form
	return m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.habitForm = nil
	m.journalForm = nil
	m.predictForm = nil
	m.state = m.previousState
}

func (m *Model) openHabitForm() tea.Cmd {
	m.habitForm = &HabitFormModel{}
	return m.openForm(constants.StateAddHabit, newHabitForm(m.habitForm))
}

func (m *Model) openJournalForm() tea.Cmd {
	m.journalForm = &JournalFormModel{}
	return m.openForm(constants.StateWriteJournal, newJournalForm(m.journalForm))
}

func (m *Model) openPredictForm() tea.Cmd {
	habitCount := len(m.snap.Account.Habits)
	day, _ := time.Parse(constants.DateFormat, m.snap.Day)
	m.predictForm = &PredictFormModel{
		DayOfWeek:       history.DayOfWeek(day),
		Mood:            constants.DefaultMood,
		Motivation:      constants.DefaultMotivation,
		HabitsCompleted: habitCount / 2,
	}
	return m.openForm(constants.StatePredictForm, newPredictForm(m.predictForm, habitCount))
}
