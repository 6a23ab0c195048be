package monitoring

import (
	"testing"

	"empowerher/ml"
)

func TestPredictionStats(t *testing.T) {
	stats := NewPredictionStats()

	stats.RecordPrediction(ml.HighRisk)
	stats.RecordPrediction(ml.LowRisk)
	stats.RecordPrediction(ml.LowRisk)
	stats.RecordRejection()

	snapshot := stats.Snapshot()
	if snapshot.TotalPredictions != 3 {
		t.Fatalf("expected 3 predictions, got %d", snapshot.TotalPredictions)
	}
	if snapshot.HighRisk != 1 || snapshot.LowRisk != 2 {
		t.Fatalf("unexpected tallies: %+v", snapshot)
	}
	if snapshot.Rejected != 1 {
		t.Fatalf("expected 1 rejection, got %d", snapshot.Rejected)
	}
	if snapshot.LastServed.IsZero() {
		t.Fatal("expected last served time")
	}
	if snapshot.Uptime < 0 {
		t.Fatalf("negative uptime: %v", snapshot.Uptime)
	}
}
