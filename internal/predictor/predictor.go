// Package predictor estimates the probability that a day ends at or above the
// success threshold, from a classifier fit fresh on the progress ledger.
package predictor

import (
	"fmt"
	"math"
	"time"

	"github.com/stridex/stridex/internal/constants"
	"github.com/stridex/stridex/internal/errors"
	"github.com/stridex/stridex/internal/history"
	"github.com/stridex/stridex/internal/models"
)

// Classifier fits a binary model. y holds 0 or 1 per row of X.
type Classifier interface {
	Fit(X [][]float64, y []float64) (Model, error)
}

// Model answers point queries
type Model interface {
	PredictProbability(x []float64) float64
}

// Features is one query: [day_of_week, mood, motivation, habits_completed]
type Features struct {
	DayOfWeek       int     `json:"day_of_week"`
	Mood            float64 `json:"mood"`
	Motivation      float64 `json:"motivation"`
	HabitsCompleted float64 `json:"habits_completed"`
}

func (f Features) vector() []float64 {
	return []float64{float64(f.DayOfWeek), f.Mood, f.Motivation, f.HabitsCompleted}
}

// Validate checks a user-supplied query against the ranges the form offers
func (f Features) Validate(habitCount int) error {
	switch {
	case f.DayOfWeek < 0 || f.DayOfWeek > 6:
		return errors.Validation("day_of_week", "must be between 0 and 6, got %d", f.DayOfWeek)
	case f.Mood < 1 || f.Mood > 10:
		return errors.Validation("mood", "must be between 1 and 10, got %v", f.Mood)
	case f.Motivation < 1 || f.Motivation > 10:
		return errors.Validation("motivation", "must be between 1 and 10, got %v", f.Motivation)
	case f.HabitsCompleted < 0 || f.HabitsCompleted > float64(habitCount):
		return errors.Validation("habits_completed", "must be between 0 and %d, got %v", habitCount, f.HabitsCompleted)
	}
	return nil
}

// Importance is one row of the static feature importance table
type Importance struct {
	Feature string  `json:"feature"`
	Weight  float64 `json:"weight"`
}

// FeatureImportances is a display table. It is not derived from the fitted model.
func FeatureImportances() []Importance {
	return []Importance{
		{Feature: "Motivation", Weight: 0.35},
		{Feature: "Habits Completed", Weight: 0.30},
		{Feature: "Mood", Weight: 0.25},
		{Feature: "Day of Week", Weight: 0.10},
	}
}

// Predictor turns ledger rows into training data for its Classifier
type Predictor struct {
	Classifier Classifier
	MinRecords int
}

func New(c Classifier, minRecords int) *Predictor {
	return &Predictor{Classifier: c, MinRecords: minRecords}
}

// Fit trains on the ledger. Fewer than MinRecords rows yields ErrInsufficientData.
func (p *Predictor) Fit(records []models.ProgressRecord) (Model, error) {
	if len(records) < p.MinRecords {
		return nil, fmt.Errorf("%d records, need %d: %w", len(records), p.MinRecords, errors.ErrInsufficientData)
	}

	X := make([][]float64, len(records))
	y := make([]float64, len(records))
	for i, r := range records {
		X[i] = Features{
			DayOfWeek:       r.DayOfWeek,
			Mood:            float64(r.Mood),
			Motivation:      float64(r.Motivation),
			HabitsCompleted: float64(r.HabitsCompleted),
		}.vector()
		if r.CompletionRate >= constants.SuccessThreshold {
			y[i] = 1
		}
	}
	return p.Classifier.Fit(X, y)
}

// Predict returns the success probability for f, clamped to [0,1]
func Predict(m Model, f Features) float64 {
	prob := m.PredictProbability(f.vector())
	if math.IsNaN(prob) {
		return 0
	}
	return min(1, max(0, prob))
}

// ForecastPoint is one day of the forecast
type ForecastPoint struct {
	Date        string  `json:"date"`
	DayOfWeek   int     `json:"day_of_week"`
	Probability float64 `json:"probability"`
	Verdict     string  `json:"verdict"`
}

// Forecast predicts days consecutive days starting at from, holding mood,
// motivation and habits completed at their ledger means.
func Forecast(m Model, records []models.ProgressRecord, from time.Time, days int) []ForecastPoint {
	var mood, motivation, habits float64
	for _, r := range records {
		mood += float64(r.Mood)
		motivation += float64(r.Motivation)
		habits += float64(r.HabitsCompleted)
	}
	if n := float64(len(records)); n > 0 {
		mood /= n
		motivation /= n
		habits /= n
	}

	out := make([]ForecastPoint, 0, days)
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i)
		prob := Predict(m, Features{
			DayOfWeek:       history.DayOfWeek(date),
			Mood:            mood,
			Motivation:      motivation,
			HabitsCompleted: habits,
		})
		out = append(out, ForecastPoint{
			Date:        date.Format(constants.DateFormat),
			DayOfWeek:   history.DayOfWeek(date),
			Probability: prob,
			Verdict:     Verdict(prob),
		})
	}
	return out
}

// Verdict buckets a probability for display
func Verdict(prob float64) string {
	switch {
	case prob >= 0.8:
		return "excellent"
	case prob >= 0.6:
		return "good"
	default:
		return "at risk"
	}
}
