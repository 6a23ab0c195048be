// Package tracker models the manual wellness-habit tracker: one entry
// per day plus goal-progress ratios for display.
package tracker

import "fmt"

// Widget bounds, matching the dashboard inputs.
const (
	MaxMeditationMinutes = 60
	MaxExerciseMinutes   = 180
	MaxWaterGlasses      = 20
)

// Entry is one day's logged habits.
type Entry struct {
	Date       string `json:"date"` // YYYY-MM-DD
	Meditation int    `json:"meditation"`
	Exercise   int    `json:"exercise"`
	Water      int    `json:"water"`
	Diet       string `json:"diet"`
}

// Validate enforces the widget bounds on an entry.
func (e Entry) Validate() error {
	if e.Date == "" {
		return fmt.Errorf("date is required")
	}
	if e.Meditation < 0 || e.Meditation > MaxMeditationMinutes {
		return fmt.Errorf("meditation minutes must be in [0,%d]", MaxMeditationMinutes)
	}
	if e.Exercise < 0 || e.Exercise > MaxExerciseMinutes {
		return fmt.Errorf("exercise minutes must be in [0,%d]", MaxExerciseMinutes)
	}
	if e.Water < 0 || e.Water > MaxWaterGlasses {
		return fmt.Errorf("water glasses must be in [0,%d]", MaxWaterGlasses)
	}
	return nil
}

// Goals are the configured daily targets.
type Goals struct {
	MeditationMinutes int `yaml:"meditation_minutes" json:"meditation_minutes"`
	ExerciseMinutes   int `yaml:"exercise_minutes" json:"exercise_minutes"`
	WaterGlasses      int `yaml:"water_glasses" json:"water_glasses"`
}

// DefaultGoals mirror the daily-ritual tips: 10 minutes of meditation,
// a 30-minute walk, 8 glasses of water.
func DefaultGoals() Goals {
	return Goals{
		MeditationMinutes: 10,
		ExerciseMinutes:   30,
		WaterGlasses:      8,
	}
}

// Progress holds per-metric completion ratios in [0,1].
type Progress struct {
	Meditation float64 `json:"meditation"`
	Exercise   float64 `json:"exercise"`
	Water      float64 `json:"water"`
	Overall    float64 `json:"overall"`
}

// Progress computes the entry's completion against the goals. Ratios are
// clamped to 1 so overachieving a goal reads as done, not >100%.
func (g Goals) Progress(e Entry) Progress {
	p := Progress{
		Meditation: ratio(e.Meditation, g.MeditationMinutes),
		Exercise:   ratio(e.Exercise, g.ExerciseMinutes),
		Water:      ratio(e.Water, g.WaterGlasses),
	}
	p.Overall = (p.Meditation + p.Exercise + p.Water) / 3
	return p
}

func ratio(value, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	r := float64(value) / float64(goal)
	if r > 1 {
		return 1
	}
	if r < 0 {
		return 0
	}
	return r
}
