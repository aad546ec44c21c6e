package xp

import (
	"testing"

	"github.com/stridex/stridex/internal/models"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{xp: -5, want: 1},
		{xp: 0, want: 1},
		{xp: 15, want: 1},
		{xp: 499, want: 1},
		{xp: 500, want: 2},
		{xp: 2000, want: 5},
		{xp: 4999, want: 10},
		{xp: 4500, want: 10},
	}
	for _, tt := range tests {
		if got := Level(tt.xp); got != tt.want {
			t.Errorf("Level(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestCreditDebitKeepLevelInvariant(t *testing.T) {
	u := models.User{}
	ops := []struct {
		credit bool
		amount int
	}{
		{true, 15}, {true, 50}, {false, 15}, {false, 100}, {true, 495}, {true, 20}, {false, 15},
	}
	for i, op := range ops {
		if op.credit {
			Credit(&u, op.amount)
		} else {
			Debit(&u, op.amount)
		}
		if u.XP < 0 {
			t.Fatalf("step %d: xp went negative: %d", i, u.XP)
		}
		if u.Level() != u.XP/500+1 || u.Level() != Level(u.XP) {
			t.Fatalf("step %d: level %d does not match xp %d", i, u.Level(), u.XP)
		}
	}
}

func TestDebitFloorsAtZero(t *testing.T) {
	u := models.User{XP: 10}
	Debit(&u, 15)
	if u.XP != 0 {
		t.Errorf("XP = %d, want 0", u.XP)
	}
}

func TestCreditIgnoresNegative(t *testing.T) {
	u := models.User{XP: 10}
	Credit(&u, -20)
	if u.XP != 10 {
		t.Errorf("XP = %d, want 10", u.XP)
	}
}

func TestProgressHelpers(t *testing.T) {
	if got := ProgressInLevel(1240); got != 240 {
		t.Errorf("ProgressInLevel(1240) = %d, want 240", got)
	}
	if got := ToNextLevel(1240); got != 260 {
		t.Errorf("ToNextLevel(1240) = %d, want 260", got)
	}
	if got := ToNextLevel(1000); got != 500 {
		t.Errorf("ToNextLevel(1000) = %d, want 500", got)
	}
	if got := LevelFraction(250); got != 0.5 {
		t.Errorf("LevelFraction(250) = %v, want 0.5", got)
	}
}
