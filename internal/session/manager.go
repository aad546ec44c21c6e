// Package session owns the per-user accounts for the life of the process and
// is the single entry point used by the TUI, the HTTP API and the CLI.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stridex/stridex/internal/achievements"
	"github.com/stridex/stridex/internal/analytics"
	"github.com/stridex/stridex/internal/coach"
	"github.com/stridex/stridex/internal/config"
	"github.com/stridex/stridex/internal/constants"
	"github.com/stridex/stridex/internal/errors"
	"github.com/stridex/stridex/internal/habits"
	"github.com/stridex/stridex/internal/history"
	"github.com/stridex/stridex/internal/journal"
	"github.com/stridex/stridex/internal/leaderboard"
	"github.com/stridex/stridex/internal/logger"
	"github.com/stridex/stridex/internal/models"
	"github.com/stridex/stridex/internal/predictor"
	"github.com/stridex/stridex/internal/random"
	"github.com/stridex/stridex/internal/storage"
	"github.com/stridex/stridex/internal/xp"
)

type Option func(*Manager)

// WithSource replaces the unseeded random source
func WithSource(src random.Source) Option {
	return func(m *Manager) { m.src = src }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithBalance(b config.Balance) Option {
	return func(m *Manager) { m.balance = b }
}

func WithClassifier(c predictor.Classifier) Option {
	return func(m *Manager) { m.classifier = c }
}

type Manager struct {
	store      storage.Provider
	balance    config.Balance
	src        random.Source
	now        func() time.Time
	classifier predictor.Classifier

	habits    *habits.Store
	generator *history.Generator
	journal   *journal.Journal
	coach     *coach.Coach
	predictor *predictor.Predictor

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewManager(store storage.Provider, opts ...Option) *Manager {
	m := &Manager{
		store:      store,
		balance:    config.DefaultBalance(),
		src:        random.NewUnseeded(),
		now:        time.Now,
		classifier: predictor.NewLogistic(),
		locks:      make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.habits = habits.NewStore(m.balance, m.src)
	m.generator = history.NewGenerator(m.balance, m.src)
	m.journal = journal.New(journal.DefaultMatcher(), m.balance)
	m.coach = coach.New(m.src)
	m.predictor = predictor.New(m.classifier, m.balance.MinPredictorRecords)
	return m
}

// Snapshot is an account plus the values derived from it for display
type Snapshot struct {
	Day          string               `json:"day"`
	Account      models.Account       `json:"account"`
	Level        int                  `json:"level"`
	XPInLevel    int                  `json:"xp_in_level"`
	XPToNext     int                  `json:"xp_to_next"`
	Today        analytics.Today      `json:"today"`
	Achievements []models.Achievement `json:"achievements"`
}

func (m *Manager) snapshot(a models.Account) Snapshot {
	s := Snapshot{
		Day:          m.today(),
		Account:      a,
		Level:        xp.Level(a.User.XP),
		XPInLevel:    xp.ProgressInLevel(a.User.XP),
		XPToNext:     xp.ToNextLevel(a.User.XP),
		Today:        analytics.TodayStats(a, m.today(), m.balance.XPPerCompletion),
		Achievements: []models.Achievement{},
	}
	for _, id := range a.Unlocked {
		if ach, ok := achievements.Lookup(id); ok {
			s.Achievements = append(s.Achievements, ach)
		}
	}
	return s
}

func (m *Manager) today() string {
	return m.now().Format(constants.DateFormat)
}

func (m *Manager) lock(id string) *sync.Mutex {
	m.locksMu.Lock()
	defer m.locksMu.Unlock()
	mu, ok := m.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		m.locks[id] = mu
	}
	return mu
}

// mutate runs load, fn, achievement check and save under the user's lock.
// An error from fn discards the loaded copy, so nothing is saved.
func (m *Manager) mutate(ctx context.Context, id string, fn func(a *models.Account, now time.Time) error) (models.Account, []models.Achievement, error) {
	mu := m.lock(id)
	mu.Lock()
	defer mu.Unlock()

	a, err := m.store.GetAccount(ctx, id)
	if err != nil {
		return models.Account{}, nil, err
	}
	now := m.now()
	if err := fn(&a, now); err != nil {
		return models.Account{}, nil, err
	}

	unlocked := achievements.Check(&a, now.Format(constants.DateFormat))
	if err := m.store.SaveAccount(ctx, a); err != nil {
		return models.Account{}, nil, err
	}
	for _, ach := range unlocked {
		logger.Info("Achievement unlocked", "user", id, "achievement", ach.ID)
	}
	return a, unlocked, nil
}

// CreateAccount registers a user with their starting habits and backfills
// the synthetic history. Achievements are not evaluated until the first interaction.
func (m *Manager) CreateAccount(ctx context.Context, username string, habitNames []string) (Snapshot, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Snapshot{}, errors.Validation("username", "cannot be empty")
	}
	var names []string
	for _, n := range habitNames {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return Snapshot{}, errors.Validation("habits", "at least one habit is required")
	}

	now := m.now()
	a := models.Account{
		User: models.User{
			ID:        uuid.New().String(),
			Username:  username,
			Rank:      constants.DefaultRank,
			CreatedAt: now,
		},
		Journal:  []models.JournalEntry{},
		Unlocked: []string{},
		Chat:     []models.ChatMessage{},
	}
	for i, n := range names {
		a.Habits = append(a.Habits, habits.New(a.User.ID, i, n, habits.SetupEmojis, m.src))
	}
	m.generator.Generate(&a, now)

	if err := m.store.SaveAccount(ctx, a); err != nil {
		return Snapshot{}, err
	}
	logger.Info("Account created", "user", a.User.ID, "username", username, "habits", len(names), "xp", a.User.XP)
	return m.snapshot(a), nil
}

// Account returns the current snapshot of a user
func (m *Manager) Account(ctx context.Context, id string) (Snapshot, error) {
	a, err := m.store.GetAccount(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	return m.snapshot(a), nil
}

// ToggleOutcome reports a toggle together with its side effects
type ToggleOutcome struct {
	habits.ToggleResult
	Unlocked []models.Achievement `json:"unlocked"`
	Snapshot Snapshot             `json:"snapshot"`
}

// Toggle flips today's completion of a habit
func (m *Manager) Toggle(ctx context.Context, id, habitID string) (ToggleOutcome, error) {
	var res habits.ToggleResult
	a, unlocked, err := m.mutate(ctx, id, func(a *models.Account, now time.Time) error {
		var err error
		res, err = m.habits.Toggle(a, habitID, now.Format(constants.DateFormat))
		if err != nil {
			return err
		}
		history.SyncToday(a, now, m.balance.XPPerCompletion)
		return nil
	})
	if err != nil {
		return ToggleOutcome{}, err
	}
	logger.Debug("Habit toggled", "user", id, "habit", habitID, "completed", res.Completed, "xp_delta", res.XPDelta)
	return ToggleOutcome{ToggleResult: res, Unlocked: unlocked, Snapshot: m.snapshot(a)}, nil
}

// AddHabit appends a habit to the user's list
func (m *Manager) AddHabit(ctx context.Context, id, name string) (models.Habit, []models.Achievement, error) {
	var h models.Habit
	_, unlocked, err := m.mutate(ctx, id, func(a *models.Account, now time.Time) error {
		var err error
		h, err = m.habits.Add(a, name)
		if err != nil {
			return err
		}
		history.SyncToday(a, now, m.balance.XPPerCompletion)
		return nil
	})
	if err != nil {
		return models.Habit{}, nil, err
	}
	logger.Debug("Habit added", "user", id, "habit", h.ID)
	return h, unlocked, nil
}

// AppendJournal records a reflection and credits its bonus
func (m *Manager) AppendJournal(ctx context.Context, id, text string) (models.JournalEntry, []models.Achievement, error) {
	var entry models.JournalEntry
	_, unlocked, err := m.mutate(ctx, id, func(a *models.Account, now time.Time) error {
		var err error
		entry, err = m.journal.Append(a, text, now)
		return err
	})
	if err != nil {
		return models.JournalEntry{}, nil, err
	}
	return entry, unlocked, nil
}

// Chat sends a prompt to the coach and returns its reply
func (m *Manager) Chat(ctx context.Context, id, prompt string) (models.ChatMessage, error) {
	var reply models.ChatMessage
	_, _, err := m.mutate(ctx, id, func(a *models.Account, now time.Time) error {
		rate := analytics.TodayStats(*a, now.Format(constants.DateFormat), m.balance.XPPerCompletion).Rate
		var err error
		reply, err = m.coach.Reply(a, prompt, rate)
		return err
	})
	return reply, err
}

// Motivation returns a coach line for today's completion rate
func (m *Manager) Motivation(ctx context.Context, id string) (string, error) {
	a, err := m.store.GetAccount(ctx, id)
	if err != nil {
		return "", err
	}
	today := analytics.TodayStats(a, m.today(), m.balance.XPPerCompletion)
	return m.coach.Motivation(today.Rate, a.User.TotalStreak, a.User.Level()), nil
}

// Prediction is the answer to one point query
type Prediction struct {
	Probability float64                `json:"probability"`
	Verdict     string                 `json:"verdict"`
	Importances []predictor.Importance `json:"importances"`
}

// Predict fits a fresh model on the user's ledger and scores f
func (m *Manager) Predict(ctx context.Context, id string, f predictor.Features) (Prediction, error) {
	a, err := m.store.GetAccount(ctx, id)
	if err != nil {
		return Prediction{}, err
	}
	if err := f.Validate(len(a.Habits)); err != nil {
		return Prediction{}, err
	}
	model, err := m.predictor.Fit(a.Progress)
	if err != nil {
		return Prediction{}, err
	}
	prob := predictor.Predict(model, f)
	return Prediction{Probability: prob, Verdict: predictor.Verdict(prob), Importances: predictor.FeatureImportances()}, nil
}

// Forecast predicts the next ForecastDays days starting today
func (m *Manager) Forecast(ctx context.Context, id string) ([]predictor.ForecastPoint, error) {
	a, err := m.store.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	model, err := m.predictor.Fit(a.Progress)
	if err != nil {
		return nil, err
	}
	return predictor.Forecast(model, a.Progress, history.Midnight(m.now()), constants.ForecastDays), nil
}

func (m *Manager) Analytics(ctx context.Context, id string) (analytics.Report, error) {
	a, err := m.store.GetAccount(ctx, id)
	if err != nil {
		return analytics.Report{}, err
	}
	return analytics.Build(a, m.today(), m.balance.XPPerCompletion), nil
}

// Leaderboard ranks every account, flagging viewerID
func (m *Manager) Leaderboard(ctx context.Context, viewerID string) ([]leaderboard.Entry, error) {
	users, err := m.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return leaderboard.Build(users, viewerID), nil
}
