package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/goleak"

	"github.com/stridex/stridex/internal/config"
	"github.com/stridex/stridex/internal/constants"
	"github.com/stridex/stridex/internal/predictor"
	"github.com/stridex/stridex/internal/random"
	"github.com/stridex/stridex/internal/session"
	"github.com/stridex/stridex/internal/storage/memory"
	"github.com/stridex/stridex/internal/tui/components/habits"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestManager() *session.Manager {
	b := config.DefaultBalance()
	b.WeekdayCompletionP = 0
	b.WeekendCompletionP = 0
	return session.NewManager(memory.NewStore(),
		session.WithSource(random.New(3)),
		session.WithClock(func() time.Time { return time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC) }),
		session.WithBalance(b),
	)
}

func onboarded(t *testing.T) Model {
	t.Helper()
	m := NewModel(context.Background(), newTestManager(), "")
	if err := m.onboard("Nova", []string{"Run", "", "Read"}); err != nil {
		t.Fatalf("onboard() error = %v", err)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out, cmd
}

func TestNewModelStartsOnboarding(t *testing.T) {
	m := NewModel(context.Background(), newTestManager(), "")
	if m.state != constants.StateOnboarding || m.form == nil {
		t.Fatalf("state = %v form = %v, want onboarding form", m.state, m.form)
	}
	if m.UserID() != "" {
		t.Errorf("UserID() = %q before onboarding", m.UserID())
	}
	if !strings.Contains(m.View(), "Codename") {
		t.Error("onboarding view should ask for a codename")
	}
}

func TestOnboard(t *testing.T) {
	m := onboarded(t)

	if m.state != constants.StateCommand || m.form != nil {
		t.Fatalf("state = %v, want command center", m.state)
	}
	if m.UserID() == "" {
		t.Fatal("UserID() empty after onboarding")
	}
	if got := len(m.snap.Account.Habits); got != 2 {
		t.Errorf("habits = %d, want 2 (blank slot skipped)", got)
	}
	if m.motivation == "" {
		t.Error("motivation not loaded")
	}
	if len(m.board) != 1 || !m.board[0].IsViewer {
		t.Errorf("leaderboard = %+v", m.board)
	}
	if !strings.Contains(m.notice, "Nova") {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestOnboardRejectsBlankCodename(t *testing.T) {
	m := NewModel(context.Background(), newTestManager(), "")
	if err := m.onboard("  ", []string{"Run"}); err == nil {
		t.Fatal("onboard() with a blank codename should fail")
	}
	if m.state != constants.StateOnboarding {
		t.Errorf("state = %v, want onboarding", m.state)
	}
}

func TestTabCycling(t *testing.T) {
	m := onboarded(t)

	want := []constants.SessionState{
		constants.StateAnalytics,
		constants.StateLeaderboard,
		constants.StateCoach,
		constants.StatePredict,
		constants.StateJournal,
		constants.StateCommand,
	}
	for _, w := range want {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.state != w {
			t.Fatalf("state = %v, want %v", m.state, w)
		}
		if !strings.Contains(m.View(), constants.TabTitles[w]) {
			t.Errorf("view for %v is missing its tab title", w)
		}
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != constants.StateJournal {
		t.Errorf("shift+tab from command center = %v, want journal", m.state)
	}
}

func TestToggleFromHabitList(t *testing.T) {
	m := onboarded(t)

	m, cmd := send(t, m, runes("x"))
	if cmd == nil {
		t.Fatal("toggle key produced no command")
	}
	msg, ok := cmd().(habits.ToggleHabitMsg)
	if !ok {
		t.Fatalf("command produced %T, want ToggleHabitMsg", cmd())
	}
	m, _ = send(t, m, msg)

	if m.snap.Account.User.XP != 15 {
		t.Errorf("XP = %d, want 15", m.snap.Account.User.XP)
	}
	if m.snap.Today.Completed != 1 {
		t.Errorf("today completed = %d, want 1", m.snap.Today.Completed)
	}
	if !strings.Contains(m.notice, "First Step") {
		t.Errorf("notice = %q, want the first_step unlock", m.notice)
	}

	m, _ = send(t, m, msg)
	if m.snap.Account.User.XP != 0 || m.snap.Today.Completed != 0 {
		t.Errorf("after undo XP = %d completed = %d", m.snap.Account.User.XP, m.snap.Today.Completed)
	}
}

func TestAddHabitForm(t *testing.T) {
	m := onboarded(t)

	m, cmd := send(t, m, runes("a"))
	if cmd == nil {
		t.Fatal("add key produced no command")
	}
	m, _ = send(t, m, cmd())
	if m.state != constants.StateAddHabit || m.habitForm == nil {
		t.Fatalf("state = %v, want add habit form", m.state)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != constants.StateCommand || m.form != nil {
		t.Errorf("esc should close the form, state = %v", m.state)
	}

	m.addHabit("Stretch")
	if got := len(m.snap.Account.Habits); got != 3 {
		t.Errorf("habits = %d, want 3", got)
	}
}

func TestJournalTab(t *testing.T) {
	m := onboarded(t)
	for range constants.StateJournal {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}

	m, _ = send(t, m, runes("w"))
	if m.state != constants.StateWriteJournal {
		t.Fatalf("state = %v, want journal form", m.state)
	}
	if m.activeTab() != constants.StateJournal {
		t.Errorf("active tab = %v while the form is open", m.activeTab())
	}
	m.closeForm()

	m.writeJournal("A great and productive morning")
	if len(m.snap.Account.Journal) != 1 {
		t.Fatalf("journal entries = %d", len(m.snap.Account.Journal))
	}
	if m.snap.Account.User.XP != 50 {
		t.Errorf("XP = %d, want 50", m.snap.Account.User.XP)
	}
	if !strings.Contains(m.View(), "A great and productive morning") {
		t.Error("journal view should list the new entry")
	}

	m.writeJournal("   ")
	if m.errMsg == "" {
		t.Error("blank entry should surface an error")
	}
}

func TestCoachTabKeepsTypedKeys(t *testing.T) {
	m := onboarded(t)
	for range constants.StateCoach {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}

	m, cmd := send(t, m, runes("q"))
	if m.quitting {
		t.Fatal("q in the chat input should not quit")
	}
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("q in the chat input returned tea.Quit")
		}
	}
	if m.chatInput.Value() != "q" {
		t.Errorf("input = %q, want q", m.chatInput.Value())
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := len(m.snap.Account.Chat); got != 3 {
		t.Errorf("chat messages = %d, want greeting + prompt + reply", got)
	}
	if m.chatInput.Value() != "" {
		t.Error("input should reset after sending")
	}
}

func TestPredict(t *testing.T) {
	m := onboarded(t)
	m.predict(predictor.Features{DayOfWeek: 2, Mood: 8, Motivation: 8, HabitsCompleted: 1})
	if m.errMsg != "" {
		t.Fatalf("predict error = %s", m.errMsg)
	}
	if m.prediction == nil || m.prediction.Probability < 0 || m.prediction.Probability > 1 {
		t.Fatalf("prediction = %+v", m.prediction)
	}

	m.predict(predictor.Features{DayOfWeek: 9, Mood: 8, Motivation: 8})
	if m.errMsg == "" {
		t.Error("out of range day should surface an error")
	}
}

func TestQuit(t *testing.T) {
	m := onboarded(t)
	m, cmd := send(t, m, runes("q"))
	if !m.quitting || cmd == nil {
		t.Fatal("q should quit from the command center")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command did not produce tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestWindowResize(t *testing.T) {
	m := onboarded(t)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d", m.width, m.height)
	}
	if m.xpBar.Width != 60 {
		t.Errorf("xp bar width = %d, want 60", m.xpBar.Width)
	}
}
