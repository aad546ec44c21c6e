// Package analytics derives the dashboard's read-only views from an account.
package analytics

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/stridex/stridex/internal/achievements"
	"github.com/stridex/stridex/internal/constants"
	"github.com/stridex/stridex/internal/history"
	"github.com/stridex/stridex/internal/models"
)

// Today is the live completion summary for one day
type Today struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Rate      float64 `json:"rate"`
	XP        int     `json:"xp"`
}

// HabitStrength is streak*3.5, as shown on the strength chart
type HabitStrength struct {
	HabitID  string  `json:"habit_id"`
	Name     string  `json:"name"`
	Strength float64 `json:"strength"`
}

// CategoryScore is the best habit score within one category
type CategoryScore struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
}

// Insight is one line of the coach's observations
type Insight struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Report bundles every analytics view
type Report struct {
	Today               Today           `json:"today"`
	WeekdayRates        []float64       `json:"weekday_rates"`
	Strengths           []HabitStrength `json:"strengths"`
	Categories          []CategoryScore `json:"categories"`
	Insights            []Insight       `json:"insights"`
	MoodCorrelation     float64         `json:"mood_correlation"`
	AchievementProgress float64         `json:"achievement_progress"`
}

// Build computes the full report for day
func Build(a models.Account, day string, xpPerCompletion int) Report {
	return Report{
		Today:               TodayStats(a, day, xpPerCompletion),
		WeekdayRates:        WeekdayRates(a.Progress),
		Strengths:           Strengths(a.Habits),
		Categories:          CategoryBalance(a.Habits),
		Insights:            Insights(a),
		MoodCorrelation:     MoodCorrelation(a.Progress),
		AchievementProgress: achievements.Progress(a),
	}
}

// TodayStats counts habits completed on day. The rate is 0 with no habits.
func TodayStats(a models.Account, day string, xpPerCompletion int) Today {
	done := a.CompletedOn(day)
	return Today{
		Completed: done,
		Total:     len(a.Habits),
		Rate:      history.Rate(done, len(a.Habits)),
		XP:        done * xpPerCompletion,
	}
}

// WeekdayRates is the mean completion rate per day_of_week, Monday first.
// Days with no records read 0.
func WeekdayRates(records []models.ProgressRecord) []float64 {
	sums := make([]float64, 7)
	counts := make([]int, 7)
	for _, r := range records {
		if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
			continue
		}
		sums[r.DayOfWeek] += r.CompletionRate
		counts[r.DayOfWeek]++
	}
	for d := range sums {
		if counts[d] > 0 {
			sums[d] /= float64(counts[d])
		}
	}
	return sums
}

func Strengths(habits []models.Habit) []HabitStrength {
	out := make([]HabitStrength, 0, len(habits))
	for _, h := range habits {
		out = append(out, HabitStrength{HabitID: h.ID, Name: h.Name, Strength: float64(h.Streak) * 3.5})
	}
	return out
}

// CategoryBalance scores each category by its best habit, min(100, completions*2+20),
// in order of first appearance
func CategoryBalance(habits []models.Habit) []CategoryScore {
	var out []CategoryScore
	index := map[string]int{}
	for _, h := range habits {
		score := min(100, h.TotalCompletions*2+20)
		i, ok := index[h.Category]
		if !ok {
			index[h.Category] = len(out)
			out = append(out, CategoryScore{Category: h.Category, Score: score})
			continue
		}
		out[i].Score = max(out[i].Score, score)
	}
	return out
}

// Insights lists the pattern observations. Weekend uplift only appears when
// weekends beat weekdays; habit and weekday insights need data to exist.
func Insights(a models.Account) []Insight {
	var out []Insight

	var weekend, weekday []float64
	for _, r := range a.Progress {
		if r.DayOfWeek >= 5 {
			weekend = append(weekend, r.CompletionRate)
		} else {
			weekday = append(weekday, r.CompletionRate)
		}
	}
	if len(weekend) > 0 && len(weekday) > 0 {
		we, wd := stat.Mean(weekend, nil), stat.Mean(weekday, nil)
		if we > wd && wd > 0 {
			out = append(out, Insight{
				Kind:    "pattern",
				Message: fmt.Sprintf("You complete %.0f%% more habits on weekends. Consider frontloading important tasks to Saturday-Sunday.", (we/wd-1)*100),
			})
		}
	}

	if len(a.Habits) > 0 {
		best := slices.MaxFunc(a.Habits, func(x, y models.Habit) int { return x.Streak - y.Streak })
		weak := slices.MinFunc(a.Habits, func(x, y models.Habit) int { return x.Streak - y.Streak })
		out = append(out,
			Insight{Kind: "winning_streak", Message: fmt.Sprintf("Your '%s' habit has a %d-day streak!", best.Name, best.Streak)},
			Insight{Kind: "needs_attention", Message: fmt.Sprintf("'%s' streak is at %d days. Set a reminder to maintain consistency.", weak.Name, weak.Streak)},
		)
	}

	if len(a.Progress) > 0 {
		rates := WeekdayRates(a.Progress)
		seen := map[int]bool{}
		for _, r := range a.Progress {
			seen[r.DayOfWeek] = true
		}
		bestDay, worstDay := -1, -1
		for d, rate := range rates {
			if !seen[d] {
				continue
			}
			if bestDay < 0 || rate > rates[bestDay] {
				bestDay = d
			}
			if worstDay < 0 || rate < rates[worstDay] {
				worstDay = d
			}
		}
		out = append(out,
			Insight{Kind: "peak_day", Message: fmt.Sprintf("%s is your peak performance day. Schedule difficult habits then.", constants.WeekdayNames[bestDay])},
			Insight{Kind: "low_day", Message: fmt.Sprintf("Your completion rate is lowest on %s. Plan lighter habit loads.", constants.WeekdayNames[worstDay])},
		)
	}
	return out
}

// MoodCorrelation is the Pearson correlation between mood and completion rate.
// It is 0 when either series is constant or there are fewer than two records.
func MoodCorrelation(records []models.ProgressRecord) float64 {
	if len(records) < 2 {
		return 0
	}
	mood := make([]float64, len(records))
	rate := make([]float64, len(records))
	for i, r := range records {
		mood[i] = float64(r.Mood)
		rate[i] = r.CompletionRate
	}
	c := stat.Correlation(mood, rate, nil)
	if math.IsNaN(c) {
		return 0
	}
	return c
}
