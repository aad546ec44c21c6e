package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stridex/stridex/internal/logger"
	"github.com/stridex/stridex/internal/tui"
)

type TuiCmd struct {
	User string `help:"Open an existing account instead of onboarding." placeholder:"ID"`
}

func (c *TuiCmd) Run(ctx *Context) error {
	model := tui.NewModel(context.Background(), ctx.Manager(), c.User)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if m, ok := final.(tui.Model); ok && m.UserID() != "" {
		logger.Info("TUI session ended", "user", m.UserID(), "storage", ctx.Store.Name())
	}
	return nil
}
