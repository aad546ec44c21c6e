package coach

import (
	"strings"
	"testing"

	"github.com/stridex/stridex/internal/constants"
	"github.com/stridex/stridex/internal/errors"
	"github.com/stridex/stridex/internal/models"
)

// fixed always picks index i
type fixed int

func (f fixed) Float64() float64 { return 0 }
func (f fixed) IntN(n int) int   { return int(f) % n }

func TestMotivationTiers(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		pick int
		want string
	}{
		{"stellar streak", 95, 0, "🌟 Stellar performance! Your 12-day streak is astronomical!"},
		{"stellar at 90", 90, 2, "⭐ 90% completion - You're a supernova!"},
		{"strong level", 75, 1, "🌙 Level 3 progress is solid. Push for the stars!"},
		{"strong at 70", 70, 0, "💫 Strong trajectory! Keep your 12-day streak alive!"},
		{"low", 40, 2, "💪 40% is a start. Let's boost those thrusters!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(fixed(tt.pick)).Motivation(tt.rate, 12, 3)
			if got != tt.want {
				t.Errorf("Motivation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReply(t *testing.T) {
	a := &models.Account{
		User:   models.User{Username: "Nova", TotalStreak: 6},
		Habits: []models.Habit{{Name: "Meditate"}},
	}

	reply, err := New(fixed(4)).Reply(a, "  how do I improve?  ", 75)
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if !strings.Contains(reply.Content, "'Meditate'") || reply.Role != constants.RoleAssistant {
		t.Errorf("Reply() = %+v", reply)
	}
	if len(a.Chat) != 3 {
		t.Fatalf("chat log has %d messages, want greeting + prompt + reply", len(a.Chat))
	}
	if !strings.Contains(a.Chat[0].Content, "Hello Nova!") || a.Chat[1].Content != "how do I improve?" {
		t.Errorf("chat log = %+v", a.Chat)
	}

	if _, err := New(fixed(1)).Reply(a, "again", 75); err != nil {
		t.Fatal(err)
	}
	if len(a.Chat) != 5 || !strings.Contains(a.Chat[4].Content, "6-day streak") {
		t.Errorf("second reply = %+v", a.Chat[len(a.Chat)-1])
	}
}

func TestReplyRejectsBlankPrompt(t *testing.T) {
	a := &models.Account{}
	if _, err := New(fixed(0)).Reply(a, " ", 0); !errors.Is(err, errors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(a.Chat) != 0 {
		t.Error("chat log mutated on rejected prompt")
	}
}
