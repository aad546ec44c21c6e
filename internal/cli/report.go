package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stridex/stridex/internal/constants"
	"github.com/stridex/stridex/internal/errors"
	"github.com/stridex/stridex/internal/session"
)

var (
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

type ReportCmd struct {
	Name   string   `help:"Commander codename." default:"Commander"`
	Habits []string `name:"habit" help:"Habit to track (repeatable)." default:"Morning run,Read 20 pages,Meditate"`
}

func (c *ReportCmd) Run(ctx *Context) error {
	return c.write(context.Background(), os.Stdout, ctx.Manager())
}

// write creates a throwaway account and prints its dashboard as plain text
func (c *ReportCmd) write(ctx context.Context, w io.Writer, mgr *session.Manager) error {
	snap, err := mgr.CreateAccount(ctx, c.Name, c.Habits)
	if err != nil {
		return err
	}
	id := snap.Account.User.ID

	report, err := mgr.Analytics(ctx, id)
	if err != nil {
		return err
	}
	motivation, err := mgr.Motivation(ctx, id)
	if err != nil {
		return err
	}

	u := snap.Account.User
	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("🚀 STRIDEX report for %s %s", u.Rank, u.Username)))
	b.WriteString("\n\n")

	summary := []string{
		fmt.Sprintf("%s %d", labelStyle.Render("Level"), snap.Level),
		fmt.Sprintf("%s %d (%d to next level)", labelStyle.Render("XP   "), u.XP, snap.XPToNext),
		fmt.Sprintf("%s %d days", labelStyle.Render("Streak"), u.TotalStreak),
		fmt.Sprintf("%s %d/%d", labelStyle.Render("Today"), snap.Today.Completed, snap.Today.Total),
	}
	b.WriteString(boxStyle.Render(strings.Join(summary, "\n")))
	b.WriteString("\n\n")

	b.WriteString(headingStyle.Render("Habits"))
	b.WriteString("\n")
	for _, h := range snap.Account.Habits {
		fmt.Fprintf(&b, "  %s %-20s %-12s 🔥 %-3d total %d\n", h.Emoji, h.Name, h.Category, h.Streak, h.TotalCompletions)
	}

	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Weekday success"))
	b.WriteString("\n")
	for i, rate := range report.WeekdayRates {
		fmt.Fprintf(&b, "  %-10s %5.1f%%\n", constants.WeekdayNames[i], rate)
	}

	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Insights"))
	b.WriteString("\n")
	for _, in := range report.Insights {
		fmt.Fprintf(&b, "  • %s\n", in.Message)
	}

	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Forecast"))
	b.WriteString("\n")
	forecast, err := mgr.Forecast(ctx, id)
	switch {
	case errors.Is(err, errors.ErrInsufficientData):
		b.WriteString("  not enough history for a forecast\n")
	case err != nil:
		return err
	default:
		for _, p := range forecast {
			fmt.Fprintf(&b, "  %s %-10s %3.0f%% %s\n", p.Date, constants.WeekdayNames[p.DayOfWeek], p.Probability*100, p.Verdict)
		}
	}

	b.WriteString("\n🤖 ")
	b.WriteString(motivation)
	b.WriteString("\n")

	_, err = io.WriteString(w, b.String())
	return err
}
