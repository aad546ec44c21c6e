package models

// ProgressRecord is one day of a user's progress ledger
type ProgressRecord struct {
	Date            string  `json:"date"` // YYYY-MM-DD format
	CompletionRate  float64 `json:"completion_rate"`
	HabitsCompleted int     `json:"habits_completed"`
	TotalHabits     int     `json:"total_habits"`
	XPEarned        int     `json:"xp_earned"`
	Mood            int     `json:"mood"`
	Motivation      int     `json:"motivation"`
	FocusMinutes    int     `json:"focus_minutes"`
	DayOfWeek       int     `json:"day_of_week"` // 0=Monday..6=Sunday
	WeekNumber      int     `json:"week_number"` // ISO week
}
