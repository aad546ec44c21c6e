// Package coach produces the canned motivational lines and chat replies.
// Nothing here reads the user's text beyond checking it is not blank.
package coach

import (
	"fmt"
	"strings"

	"github.com/stridex/stridex/internal/constants"
	"github.com/stridex/stridex/internal/errors"
	"github.com/stridex/stridex/internal/models"
	"github.com/stridex/stridex/internal/random"
)

type Coach struct {
	Source random.Source
}

func New(src random.Source) *Coach {
	return &Coach{Source: src}
}

// Motivation picks one of three lines for the completion-rate tier (>= 90, >= 70, below)
func (c *Coach) Motivation(rate float64, streak, level int) string {
	var lines []string
	switch {
	case rate >= 90:
		lines = []string{
			fmt.Sprintf("🌟 Stellar performance! Your %d-day streak is astronomical!", streak),
			fmt.Sprintf("🚀 Level %d mastery achieved! You're entering orbit!", level),
			fmt.Sprintf("⭐ %.0f%% completion - You're a supernova!", rate),
		}
	case rate >= 70:
		lines = []string{
			fmt.Sprintf("💫 Strong trajectory! Keep your %d-day streak alive!", streak),
			fmt.Sprintf("🌙 Level %d progress is solid. Push for the stars!", level),
			fmt.Sprintf("✨ %.0f%% - You're navigating well!", rate),
		}
	default:
		lines = []string{
			fmt.Sprintf("🌠 Course correction needed! Your %d-day streak shows potential!", streak),
			fmt.Sprintf("🔋 Recharge at Level %d. Every astronaut needs rest!", level),
			fmt.Sprintf("💪 %.0f%% is a start. Let's boost those thrusters!", rate),
		}
	}
	return random.Choice(c.Source, lines)
}

// Greeting opens a chat log
func Greeting(username string) models.ChatMessage {
	return models.ChatMessage{
		Role:    constants.RoleAssistant,
		Content: fmt.Sprintf("Hello %s! I'm your habit coach. How can I help you reach your goals today? 🌟", username),
	}
}

// Reply appends the prompt and one canned answer to the account's chat log.
// A blank prompt is rejected without touching the log.
func (c *Coach) Reply(a *models.Account, prompt string, todayRate float64) (models.ChatMessage, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return models.ChatMessage{}, errors.Validation("prompt", "cannot be empty")
	}
	if len(a.Chat) == 0 {
		a.Chat = append(a.Chat, Greeting(a.User.Username))
	}

	anchor := "morning"
	if len(a.Habits) > 0 {
		anchor = a.Habits[0].Name
	}
	responses := []string{
		fmt.Sprintf("Based on your data, you're performing at %.0f%% today! That's stellar progress! 🚀", todayRate),
		fmt.Sprintf("Your %d-day streak shows incredible consistency. Keep that momentum! 💪", a.User.TotalStreak),
		"I analyzed your weekly pattern - you're strongest on weekends. Try scheduling challenging habits then! 📊",
		"Your motivation correlates with completion rate. Maintaining high energy is key! ⚡",
		fmt.Sprintf("Consider habit stacking: pair new habits with your successful '%s' routine! 🎯", anchor),
	}

	reply := models.ChatMessage{Role: constants.RoleAssistant, Content: random.Choice(c.Source, responses)}
	a.Chat = append(a.Chat, models.ChatMessage{Role: constants.RoleUser, Content: prompt}, reply)
	return reply, nil
}
