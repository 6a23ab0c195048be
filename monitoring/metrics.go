package monitoring

import (
	"sync"
	"time"

	"empowerher/ml"
)

// PredictionStats counts classifications served since startup. It backs
// the dashboard stats endpoint and the websocket status messages.
type PredictionStats struct {
	mu sync.RWMutex

	total      int64
	highRisk   int64
	lowRisk    int64
	rejected   int64
	lastServed time.Time
	startTime  time.Time
}

// StatsSnapshot is a point-in-time copy for serving.
type StatsSnapshot struct {
	TotalPredictions int64         `json:"total_predictions"`
	HighRisk         int64         `json:"high_risk"`
	LowRisk          int64         `json:"low_risk"`
	Rejected         int64         `json:"rejected"`
	LastServed       time.Time     `json:"last_served"`
	StartTime        time.Time     `json:"start_time"`
	Uptime           time.Duration `json:"uptime"`
}

// NewPredictionStats creates a collector.
func NewPredictionStats() *PredictionStats {
	return &PredictionStats{startTime: time.Now()}
}

// RecordPrediction tallies one served classification.
func (s *PredictionStats) RecordPrediction(risk string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	switch risk {
	case ml.HighRisk:
		s.highRisk++
	case ml.LowRisk:
		s.lowRisk++
	}
	s.lastServed = time.Now()
}

// RecordRejection tallies a request refused before scoring (schema
// mismatch or out-of-domain input).
func (s *PredictionStats) RecordRejection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejected++
}

// Snapshot returns a copy of the counters.
func (s *PredictionStats) Snapshot() StatsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StatsSnapshot{
		TotalPredictions: s.total,
		HighRisk:         s.highRisk,
		LowRisk:          s.lowRisk,
		Rejected:         s.rejected,
		LastServed:       s.lastServed,
		StartTime:        s.startTime,
		Uptime:           time.Since(s.startTime),
	}
}
