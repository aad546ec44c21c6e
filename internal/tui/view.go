package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stridex/stridex/internal/achievements"
	"github.com/stridex/stridex/internal/constants"
	"github.com/stridex/stridex/internal/journal"
)

const chatHistoryLines = 12

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == constants.StateOnboarding {
		return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.form.View(), m.viewStatus()))
	}

	var content string
	switch m.state {
	case constants.StateCommand:
		content = m.viewCommand()
	case constants.StateAnalytics:
		content = m.viewAnalytics()
	case constants.StateLeaderboard:
		content = m.viewLeaderboard()
	case constants.StateCoach:
		content = m.viewCoach()
	case constants.StatePredict:
		content = m.viewPredict()
	case constants.StateJournal:
		content = m.viewJournal()
	case constants.StateAddHabit, constants.StateWriteJournal, constants.StatePredictForm:
		content = m.form.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) activeTab() constants.SessionState {
	if m.state < constants.StateOnboarding {
		return m.state
	}
	return m.previousState
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range constants.TabTitles {
		if m.activeTab() == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	switch {
	case m.errMsg != "":
		return dangerStyle.Render("⚠ " + m.errMsg)
	case m.notice != "":
		return successStyle.Render(m.notice)
	}
	return ""
}

// bar renders frac of width as a block bar
func bar(frac float64, width int) string {
	frac = math.Max(0, math.Min(1, frac))
	n := int(math.Round(frac * float64(width)))
	return barStyle.Render(strings.Repeat("█", n)) + mutedStyle.Render(strings.Repeat("░", width-n))
}

func (m Model) viewCommand() string {
	u := m.snap.Account.User
	header := titleStyle.Render(fmt.Sprintf("Welcome back, %s %s", u.Rank, u.Username))

	xpLine := fmt.Sprintf("Level %d  %s  %d/%d XP",
		m.snap.Level,
		m.xpBar.ViewAs(float64(m.snap.XPInLevel)/float64(constants.XPPerLevel)),
		m.snap.XPInLevel, constants.XPPerLevel)

	today := m.snap.Today
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render(fmt.Sprintf("⚡ Total XP\n%d", u.XP)),
		cardStyle.Render(fmt.Sprintf("🔥 Streak\n%d days", u.TotalStreak)),
		cardStyle.Render(fmt.Sprintf("✅ Today\n%d/%d  %.0f%%", today.Completed, today.Total, today.Rate)),
		cardStyle.Render(fmt.Sprintf("🏆 Achievements\n%d/%d", len(m.snap.Achievements), len(achievements.Catalog()))),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		xpLine,
		cards,
		coachBubbleStyle.Render("🤖 "+m.motivation),
		"",
		m.habitsModel.View(),
	)
}

func (m Model) viewAnalytics() string {
	var b strings.Builder
	r := m.report

	b.WriteString(titleStyle.Render("Success rate by weekday"))
	b.WriteString("\n")
	for i, rate := range r.WeekdayRates {
		fmt.Fprintf(&b, "%-10s %s %5.1f%%\n", constants.WeekdayNames[i], bar(rate/100, 30), rate)
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Habit strength"))
	b.WriteString("\n")
	for _, s := range r.Strengths {
		fmt.Fprintf(&b, "%-18s %s %5.1f\n", s.Name, bar(s.Strength/100, 30), s.Strength)
	}

	if len(r.Categories) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Category balance"))
		b.WriteString("\n")
		for _, c := range r.Categories {
			fmt.Fprintf(&b, "%-14s %s %3d\n", c.Category, bar(float64(c.Score)/100, 30), c.Score)
		}
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Insights"))
	b.WriteString("\n")
	for _, in := range r.Insights {
		b.WriteString("• " + in.Message + "\n")
	}
	fmt.Fprintf(&b, "\nMood ↔ completion correlation: %.2f\n", r.MoodCorrelation)
	fmt.Fprintf(&b, "Achievement progress: %s %.0f%%", bar(r.AchievementProgress, 20), r.AchievementProgress*100)
	return b.String()
}

func (m Model) viewLeaderboard() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Global rankings"))
	b.WriteString("\n")
	for _, e := range m.board {
		line := fmt.Sprintf("%-3s #%-3d %-24s Lv %-3d %6d XP  🔥 %d",
			e.Rank, e.Position, e.Label(), e.Level, e.XP, e.TotalStreak)
		if e.IsViewer {
			line = successStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if len(m.board) == 0 {
		b.WriteString(mutedStyle.Render("No commanders yet."))
	}
	return b.String()
}

func (m Model) viewCoach() string {
	chat := m.snap.Account.Chat
	if len(chat) > chatHistoryLines {
		chat = chat[len(chat)-chatHistoryLines:]
	}

	var lines []string
	lines = append(lines, titleStyle.Render("AI Coach"))
	if len(chat) == 0 {
		lines = append(lines, mutedStyle.Render("Say hello to start the conversation."))
	}
	for _, msg := range chat {
		if msg.Role == constants.RoleUser {
			lines = append(lines, userBubbleStyle.Render("You: "+msg.Content))
		} else {
			lines = append(lines, coachBubbleStyle.Render("Coach: "+msg.Content))
		}
	}
	lines = append(lines, "", m.chatInput.View())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewPredict() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("7-day success forecast"))
	b.WriteString("\n")
	if m.forecastErr != "" {
		b.WriteString(warningStyle.Render(m.forecastErr) + "\n")
	}
	for _, p := range m.forecast {
		fmt.Fprintf(&b, "%s %-10s %s %s\n",
			p.Date, constants.WeekdayNames[p.DayOfWeek], bar(p.Probability, 20),
			verdictStyle(p.Probability).Render(fmt.Sprintf("%3.0f%% %s", p.Probability*100, p.Verdict)))
	}

	b.WriteString("\n")
	if m.prediction == nil {
		b.WriteString(mutedStyle.Render("Press p to score a custom day."))
		return b.String()
	}
	p := m.prediction
	b.WriteString(titleStyle.Render("Custom prediction"))
	b.WriteString("\n")
	b.WriteString(verdictStyle(p.Probability).Render(fmt.Sprintf("%.0f%% chance of success: %s", p.Probability*100, p.Verdict)))
	b.WriteString("\n\n")
	for _, imp := range p.Importances {
		fmt.Fprintf(&b, "%-18s %s %.0f%%\n", imp.Feature, bar(imp.Weight, 20), imp.Weight*100)
	}
	return b.String()
}

func (m Model) viewJournal() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Recent reflections"))
	b.WriteString("\n")
	entries := journal.Recent(m.snap.Account, 5)
	if len(entries) == 0 {
		b.WriteString(mutedStyle.Render("No entries yet. Press w to write one.") + "\n")
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  %s (+%d XP)\n  %s\n",
			e.CreatedAt.Format("Jan 02 15:04"), e.Sentiment, e.XPAwarded, e.Text)
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Trophy case"))
	b.WriteString("\n")
	for _, a := range achievements.Catalog() {
		if m.snap.Account.IsUnlocked(a.ID) {
			fmt.Fprintf(&b, "%s %s  %s\n", a.Icon, successStyle.Render(a.Name), a.Description)
		} else {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("🔒 %s  %s", a.Name, a.Description)) + "\n")
		}
	}
	return b.String()
}
