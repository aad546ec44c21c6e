package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/stridex/stridex/internal/analytics"
	"github.com/stridex/stridex/internal/constants"
	"github.com/stridex/stridex/internal/errors"
	"github.com/stridex/stridex/internal/leaderboard"
	"github.com/stridex/stridex/internal/logger"
	"github.com/stridex/stridex/internal/models"
	"github.com/stridex/stridex/internal/predictor"
	"github.com/stridex/stridex/internal/session"
	"github.com/stridex/stridex/internal/tui/components/habits"
)

type Model struct {
	ctx           context.Context
	manager       *session.Manager
	userID        string
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	habitKeys     habits.KeyMap
	help          help.Model
	habitsModel   habits.Model
	xpBar         progress.Model
	chatInput     textinput.Model
	form          *huh.Form
	onboardForm   *OnboardFormModel
	habitForm     *HabitFormModel
	journalForm   *JournalFormModel
	predictForm   *PredictFormModel

	snap        session.Snapshot
	report      analytics.Report
	board       []leaderboard.Entry
	forecast    []predictor.ForecastPoint
	forecastErr string
	prediction  *session.Prediction
	motivation  string
	notice      string
	errMsg      string

	quitting bool
	width    int
	height   int
}

// NewModel opens the dashboard for userID, or the onboarding form when userID is empty
func NewModel(ctx context.Context, mgr *session.Manager, userID string) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask your coach anything..."
	ti.Prompt = "› "
	ti.CharLimit = 280

	m := Model{
		ctx:         ctx,
		manager:     mgr,
		userID:      userID,
		keys:        DefaultKeyMap(),
		habitKeys:   habits.DefaultKeyMap(),
		help:        help.New(),
		habitsModel: habits.New(nil, "", 80, 14),
		xpBar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		chatInput:   ti,
	}

	if userID == "" {
		m.onboardForm = &OnboardFormModel{}
		m.state = constants.StateOnboarding
		m.form = newOnboardingForm(m.onboardForm)
		return m
	}

	m.state = constants.StateCommand
	m.refresh()
	m.refreshMotivation()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateCommand:
		keys = append(keys, m.habitKeys.Toggle, m.habitKeys.Add, m.keys.Refresh)
	case constants.StateCoach:
		keys = []key.Binding{m.keys.Tab, m.keys.Send}
	case constants.StatePredict:
		keys = append(keys, m.keys.Predict)
	case constants.StateJournal:
		keys = append(keys, m.keys.Journal)
	case constants.StateAddHabit, constants.StateWriteJournal, constants.StatePredictForm:
		keys = []key.Binding{m.keys.Back}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}

	var actions []key.Binding
	switch m.state {
	case constants.StateCommand:
		actions = []key.Binding{m.habitKeys.Toggle, m.habitKeys.Add, m.keys.Refresh}
	case constants.StateCoach:
		actions = []key.Binding{m.keys.Send}
	case constants.StatePredict:
		actions = []key.Binding{m.keys.Predict}
	case constants.StateJournal:
		actions = []key.Binding{m.keys.Journal}
	}

	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}
	return nil
}

// UserID is the account shown by the dashboard, empty until onboarding completes
func (m Model) UserID() string {
	return m.userID
}

// refresh reloads every view from the session manager
func (m *Model) refresh() {
	snap, err := m.manager.Account(m.ctx, m.userID)
	if err != nil {
		m.setErr(err)
		return
	}
	m.snap = snap
	m.habitsModel.SetHabits(snap.Account.Habits, snap.Day)

	if report, err := m.manager.Analytics(m.ctx, m.userID); err == nil {
		m.report = report
	}
	if board, err := m.manager.Leaderboard(m.ctx, m.userID); err == nil {
		m.board = board
	}

	m.forecastErr = ""
	forecast, err := m.manager.Forecast(m.ctx, m.userID)
	switch {
	case errors.Is(err, errors.ErrInsufficientData):
		m.forecast = nil
		m.forecastErr = "Keep logging: the forecast needs more history."
	case err != nil:
		m.forecast = nil
		m.forecastErr = err.Error()
	default:
		m.forecast = forecast
	}
}

func (m *Model) refreshMotivation() {
	msg, err := m.manager.Motivation(m.ctx, m.userID)
	if err != nil {
		m.setErr(err)
		return
	}
	m.motivation = msg
}

func (m *Model) setErr(err error) {
	logger.Debug("TUI action failed", "user", m.userID, "error", err)
	m.errMsg = err.Error()
}

func (m *Model) announce(unlocked []models.Achievement, format string, args ...any) {
	m.errMsg = ""
	m.notice = fmt.Sprintf(format, args...)
	if len(unlocked) > 0 {
		names := make([]string, len(unlocked))
		for i, a := range unlocked {
			names[i] = a.Icon + " " + a.Name
		}
		m.notice += "  🏆 Unlocked: " + strings.Join(names, ", ")
	}
}

// onboard creates the account from the onboarding answers and opens the dashboard
func (m *Model) onboard(username string, habitNames []string) error {
	snap, err := m.manager.CreateAccount(m.ctx, username, habitNames)
	if err != nil {
		return err
	}
	m.userID = snap.Account.User.ID
	m.form = nil
	m.onboardForm = nil
	m.state = constants.StateCommand
	m.previousState = constants.StateCommand
	m.refresh()
	m.refreshMotivation()
	m.announce(nil, "Welcome aboard, %s %s.", snap.Account.User.Rank, snap.Account.User.Username)
	return nil
}

func (m *Model) toggle(habitID string) {
	out, err := m.manager.Toggle(m.ctx, m.userID, habitID)
	if err != nil {
		m.setErr(err)
		return
	}
	m.refresh()
	m.refreshMotivation()
	verb := "Undone"
	if out.Completed {
		verb = "Completed"
	}
	name := habitID
	if h := m.snap.Account.Habit(habitID); h != nil {
		name = h.Name
	}
	m.announce(out.Unlocked, "%s %s (%+d XP)", verb, name, out.XPDelta)
}

func (m *Model) addHabit(name string) {
	h, unlocked, err := m.manager.AddHabit(m.ctx, m.userID, name)
	if err != nil {
		m.setErr(err)
		return
	}
	m.refresh()
	m.announce(unlocked, "Added %s %s", h.Emoji, h.Name)
}

func (m *Model) writeJournal(text string) {
	entry, unlocked, err := m.manager.AppendJournal(m.ctx, m.userID, text)
	if err != nil {
		m.setErr(err)
		return
	}
	m.refresh()
	m.announce(unlocked, "%s entry saved (+%d XP)", entry.Sentiment, entry.XPAwarded)
}

func (m *Model) predict(f predictor.Features) {
	p, err := m.manager.Predict(m.ctx, m.userID, f)
	if err != nil {
		m.setErr(err)
		return
	}
	m.prediction = &p
	m.errMsg = ""
}

func (m *Model) chat(prompt string) {
	if strings.TrimSpace(prompt) == "" {
		return
	}
	if _, err := m.manager.Chat(m.ctx, m.userID, prompt); err != nil {
		m.setErr(err)
		return
	}
	m.chatInput.Reset()
	m.refresh()
}
