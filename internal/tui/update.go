package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/stridex/stridex/internal/constants"
	"github.com/stridex/stridex/internal/predictor"
	"github.com/stridex/stridex/internal/tui/components/habits"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.habitsModel.SetSize(msg.Width-4, max(msg.Height-16, 4))
		m.xpBar.Width = min(max(msg.Width-30, 10), 60)
		m.chatInput.Width = max(msg.Width-8, 10)
		if m.form != nil {
			m.form = m.form.WithWidth(min(msg.Width, 80))
		}
		return m, nil

	case habits.ToggleHabitMsg:
		m.toggle(msg.ID)
		return m, nil

	case habits.AddHabitMsg:
		cmd := m.openHabitForm()
		return m, cmd
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateActive(msg)
	}

	if m.state == constants.StateCoach {
		return m.updateCoach(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Tab):
		cmd := m.switchTab(1)
		return m, cmd
	case key.Matches(keyMsg, m.keys.ShiftTab):
		cmd := m.switchTab(-1)
		return m, cmd
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.state {
	case constants.StateCommand:
		if key.Matches(keyMsg, m.keys.Refresh) {
			m.refreshMotivation()
			return m, nil
		}
	case constants.StatePredict:
		if key.Matches(keyMsg, m.keys.Predict) {
			cmd := m.openPredictForm()
			return m, cmd
		}
	case constants.StateJournal:
		if key.Matches(keyMsg, m.keys.Journal) {
			cmd := m.openJournalForm()
			return m, cmd
		}
	}

	return m.updateActive(msg)
}

// updateActive forwards msg to the component that owns the current tab
func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case constants.StateCommand:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case constants.StateCoach:
		m.chatInput, cmd = m.chatInput.Update(msg)
	}
	return m, cmd
}

// switchTab moves dir tabs along, wrapping at both ends
func (m *Model) switchTab(dir int) tea.Cmd {
	n := len(constants.TabTitles)
	m.state = constants.SessionState((int(m.state) + dir + n) % n)
	m.notice = ""
	if m.state == constants.StateCoach {
		return m.chatInput.Focus()
	}
	m.chatInput.Blur()
	return nil
}

// updateCoach lets the chat input take every key except navigation and send
func (m Model) updateCoach(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		cmd := m.switchTab(1)
		return m, cmd
	case key.Matches(msg, m.keys.ShiftTab):
		cmd := m.switchTab(-1)
		return m, cmd
	case key.Matches(msg, m.keys.Send):
		m.chat(m.chatInput.Value())
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.chatInput.Reset()
		return m, nil
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Back) && m.state != constants.StateOnboarding {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.submitForm()
	case huh.StateAborted:
		if m.state == constants.StateOnboarding {
			m.quitting = true
			return m, tea.Quit
		}
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.state {
	case constants.StateOnboarding:
		fm := m.onboardForm
		if err := m.onboard(fm.Username, fm.Habits[:]); err != nil {
			// restart the form with the answers kept
			m.setErr(err)
			m.form = newOnboardingForm(fm)
			return m, m.form.Init()
		}
		return m, nil
	case constants.StateAddHabit:
		name := m.habitForm.Name
		m.closeForm()
		m.addHabit(name)
	case constants.StateWriteJournal:
		text := m.journalForm.Text
		m.closeForm()
		m.writeJournal(text)
	case constants.StatePredictForm:
		fm := *m.predictForm
		m.closeForm()
		m.predict(predictor.Features{
			DayOfWeek:       fm.DayOfWeek,
			Mood:            float64(fm.Mood),
			Motivation:      float64(fm.Motivation),
			HabitsCompleted: float64(fm.HabitsCompleted),
		})
	}
	return m, nil
}
