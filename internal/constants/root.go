package constants

// SessionState represents the current state of the TUI application
type SessionState int

// Sentiment is the label attached to a journal entry when it is written
type Sentiment string

const (
	AppName           = "stridex"
	DefaultConfigPath = "~/.config/stridex/stridex.yaml"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Account defaults
	DefaultRank = "Commander"
	HabitLevel  = 1

	// XP and level constants
	XPPerCompletion     = 15
	XPPerPositiveEntry  = 50
	XPPerNeutralEntry   = 20
	XPPerLevel          = 500
	MaxHabitStreak      = 100
	MinPredictorRecords = 10

	// History generation constants
	HistoryDays        = 60
	WeekdayCompletionP = 0.75
	WeekendCompletionP = 0.6
	MoodMin            = 5
	MoodMax            = 10
	MotivationMin      = 4
	MotivationMax      = 9
	FocusMinutesMin    = 30
	FocusMinutesMax    = 180

	// Live ProgressRecord defaults for a day the generator never wrote
	DefaultMood       = 7
	DefaultMotivation = 7

	// SuccessThreshold is the completion rate (percent) that counts as a successful day
	SuccessThreshold = 80.0

	// ForecastDays is the number of days covered by the success forecast
	ForecastDays = 7

	// Sentiment labels
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"

	// Chat roles
	RoleAssistant = "assistant"
	RoleUser      = "user"
)

// Session States. The first six double as dashboard tab indexes.
const (
	StateCommand SessionState = iota
	StateAnalytics
	StateLeaderboard
	StateCoach
	StatePredict
	StateJournal
	StateOnboarding
	StateAddHabit
	StateWriteJournal
	StatePredictForm
)

// TabTitles are the dashboard tabs, indexed by SessionState
var TabTitles = []string{
	"🎯 Command Center",
	"📊 Analytics",
	"🏆 Leaderboard",
	"🤖 Coach",
	"📈 Predictions",
	"🧘 Journal",
}

// WeekdayNames are indexed by day_of_week (0=Monday..6=Sunday)
var WeekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
